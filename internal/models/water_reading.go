package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WaterMeterReading is a cumulative meter index for a property. Readings are
// expected to be monotonically non-decreasing; a regression signals a meter
// change and is flagged, never silently corrected.
type WaterMeterReading struct {
	ID           int             `json:"id"`
	PropertyID   int             `json:"property_id"`
	ReadingDate  time.Time       `json:"reading_date"`
	MeterReading decimal.Decimal `json:"meter_reading"` // m3, cumulative
	CreatedAt    time.Time       `json:"created_at"`
}
