package models

import (
	"time"

	"github.com/shopspring/decimal"

	"rental-backend/internal/money"
)

// ChargeCategory classifies a building expense for the annual settlement.
type ChargeCategory string

const (
	CategoryElectricity           ChargeCategory = "ELECTRICITY"
	CategoryCleaning              ChargeCategory = "CLEANING"
	CategoryGarbageTax            ChargeCategory = "GARBAGE_TAX"
	CategoryHeating               ChargeCategory = "HEATING"
	CategoryElevator              ChargeCategory = "ELEVATOR"
	CategoryCommonAreaMaintenance ChargeCategory = "COMMON_AREA_MAINTENANCE"
	CategoryWater                 ChargeCategory = "WATER"
)

// ChargeCategories lists every category in settlement display order.
var ChargeCategories = []ChargeCategory{
	CategoryElectricity,
	CategoryCleaning,
	CategoryGarbageTax,
	CategoryHeating,
	CategoryElevator,
	CategoryCommonAreaMaintenance,
	CategoryWater,
}

// Valid reports whether c is a known category.
func (c ChargeCategory) Valid() bool {
	for _, known := range ChargeCategories {
		if c == known {
			return true
		}
	}
	return false
}

// FinancialDocument is a dated building expense (invoice, tax notice...).
// Only documents flagged IsIncludedInCharges enter the settlement.
type FinancialDocument struct {
	ID                  int              `json:"id"`
	BuildingID          int              `json:"building_id"`
	Category            ChargeCategory   `json:"category"`
	Label               string           `json:"label"`
	DocumentDate        time.Time        `json:"document_date"`
	Amount              money.Money      `json:"amount"`
	IsIncludedInCharges bool             `json:"is_included_in_charges"`
	WaterConsumption    *decimal.Decimal `json:"water_consumption,omitempty"` // m3, water bills only
	CreatedAt           time.Time        `json:"created_at"`
}
