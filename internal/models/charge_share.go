package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PropertyChargeShare is the fixed percentage of a charge category borne by
// one property of a building. WATER is never stored here; its share is
// computed from meter readings at settlement time.
type PropertyChargeShare struct {
	ID         int             `json:"id"`
	PropertyID int             `json:"property_id"`
	Category   ChargeCategory  `json:"category"`
	Percentage decimal.Decimal `json:"percentage"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
