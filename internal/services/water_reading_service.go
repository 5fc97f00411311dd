package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"rental-backend/internal/ledger"
	"rental-backend/internal/models"
)

// RecordedReading is a stored reading plus any data-quality warnings raised
// while recording it. A regression against the previous reading is flagged
// but not rejected: the allocator treats it as a meter change.
type RecordedReading struct {
	Reading  models.WaterMeterReading `json:"reading"`
	Warnings []string                 `json:"warnings"`
}

type WaterReadingService struct {
	readings   ReadingStore
	properties PropertyStore
	log        zerolog.Logger
}

func NewWaterReadingService(readings ReadingStore, properties PropertyStore, log zerolog.Logger) *WaterReadingService {
	return &WaterReadingService{readings: readings, properties: properties, log: log}
}

// RecordReading stores a cumulative meter index for a property.
func (s *WaterReadingService) RecordReading(ctx context.Context, propertyID int, readingDate time.Time, meterReading decimal.Decimal) (*RecordedReading, error) {
	if _, err := s.properties.GetProperty(ctx, propertyID); err != nil {
		return nil, err
	}
	if meterReading.IsNegative() {
		return nil, fmt.Errorf("%w: meter reading %s", ledger.ErrInvalidAmount, meterReading)
	}

	recorded := &RecordedReading{Warnings: []string{}}

	existing, err := s.readings.FindReadingsByProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	for _, prev := range existing {
		if !prev.ReadingDate.After(readingDate) && prev.MeterReading.GreaterThan(meterReading) {
			recorded.Warnings = append(recorded.Warnings, fmt.Sprintf(
				"reading %s is lower than the %s reading (%s): meter change?",
				meterReading, prev.ReadingDate.Format("2006-01-02"), prev.MeterReading))
			break
		}
	}

	reading := models.WaterMeterReading{
		PropertyID:   propertyID,
		ReadingDate:  readingDate,
		MeterReading: meterReading,
	}
	if err := s.readings.CreateReading(ctx, &reading); err != nil {
		return nil, err
	}
	recorded.Reading = reading

	s.log.Info().
		Int("property_id", propertyID).
		Time("reading_date", readingDate).
		Str("meter_reading", meterReading.String()).
		Int("warnings", len(recorded.Warnings)).
		Msg("water meter reading recorded")

	return recorded, nil
}

// ListReadings returns a property's readings in chronological order.
func (s *WaterReadingService) ListReadings(ctx context.Context, propertyID int) ([]models.WaterMeterReading, error) {
	if _, err := s.properties.GetProperty(ctx, propertyID); err != nil {
		return nil, err
	}
	return s.readings.FindReadingsByProperty(ctx, propertyID)
}
