package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"rental-backend/internal/ledger"
	"rental-backend/internal/metrics"
	"rental-backend/internal/models"
	"rental-backend/internal/money"
)

// Narrow capability interfaces for the settlement snapshot. The engine never
// touches storage itself; this service assembles a point-in-time snapshot
// from them in one read pass.
type PropertyStore interface {
	GetProperty(ctx context.Context, id int) (*models.Property, error)
	FindPropertiesByBuilding(ctx context.Context, buildingID int) ([]models.Property, error)
}

type DocumentStore interface {
	FindDocumentsByBuilding(ctx context.Context, buildingID int, from, to time.Time) ([]models.FinancialDocument, error)
}

type ShareStore interface {
	UpsertShare(ctx context.Context, share *models.PropertyChargeShare) error
	FindSharesByProperty(ctx context.Context, propertyID int) ([]models.PropertyChargeShare, error)
	FindSharesByBuilding(ctx context.Context, buildingID int) ([]models.PropertyChargeShare, error)
}

type ReadingStore interface {
	CreateReading(ctx context.Context, reading *models.WaterMeterReading) error
	FindReadingsByProperty(ctx context.Context, propertyID int) ([]models.WaterMeterReading, error)
	FindReadingsByBuilding(ctx context.Context, buildingID int) (map[int][]models.WaterMeterReading, error)
}

type SettlementService struct {
	properties PropertyStore
	documents  DocumentStore
	shares     ShareStore
	readings   ReadingStore
	tolerance  decimal.Decimal
	log        zerolog.Logger
}

func NewSettlementService(
	properties PropertyStore,
	documents DocumentStore,
	shares ShareStore,
	readings ReadingStore,
	shareTolerance decimal.Decimal,
	log zerolog.Logger,
) *SettlementService {
	return &SettlementService{
		properties: properties,
		documents:  documents,
		shares:     shares,
		readings:   readings,
		tolerance:  shareTolerance,
		log:        log,
	}
}

// CalculateChargeSettlement regularizes one property's charges over the year
// ending at referenceDate.
func (s *SettlementService) CalculateChargeSettlement(ctx context.Context, buildingID, propertyID int, referenceDate time.Time, provisionalChargesPaid money.Money) (*ledger.SettlementResult, error) {
	properties, err := s.properties.FindPropertiesByBuilding(ctx, buildingID)
	if err != nil {
		return nil, err
	}
	propertyIDs := make([]int, 0, len(properties))
	for _, p := range properties {
		propertyIDs = append(propertyIDs, p.ID)
	}

	periodStart := referenceDate.AddDate(-1, 0, 0)
	documents, err := s.documents.FindDocumentsByBuilding(ctx, buildingID, periodStart, referenceDate)
	if err != nil {
		return nil, err
	}
	shares, err := s.shares.FindSharesByBuilding(ctx, buildingID)
	if err != nil {
		return nil, err
	}
	readings, err := s.readings.FindReadingsByBuilding(ctx, buildingID)
	if err != nil {
		return nil, err
	}

	result, err := ledger.Settle(ledger.SettlementInput{
		BuildingID:             buildingID,
		PropertyID:             propertyID,
		ReferenceDate:          referenceDate,
		ProvisionalChargesPaid: provisionalChargesPaid,
		BuildingPropertyIDs:    propertyIDs,
		Documents:              documents,
		Shares:                 shares,
		ReadingsByProperty:     readings,
		ShareTolerance:         &s.tolerance,
	})
	if err != nil {
		return nil, err
	}

	metrics.SettlementsComputedTotal.Inc()
	metrics.SettlementWarningsTotal.Add(float64(len(result.Warnings)))
	s.log.Info().
		Int("building_id", buildingID).
		Int("property_id", propertyID).
		Str("actual", result.TotalChargesActual.String()).
		Str("balance", result.Balance.String()).
		Int("warnings", len(result.Warnings)).
		Msg("charge settlement computed")

	return result, nil
}

// AllocateWater exposes the consumption-based water split on its own, e.g.
// to preview a property's dynamic share before running a settlement.
func (s *SettlementService) AllocateWater(ctx context.Context, buildingID, propertyID int, periodStart, periodEnd time.Time) (*ledger.WaterAllocation, error) {
	property, err := s.properties.GetProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property.BuildingID != buildingID {
		return nil, ledger.ErrPropertyNotInBuilding
	}

	readings, err := s.readings.FindReadingsByBuilding(ctx, buildingID)
	if err != nil {
		return nil, err
	}

	alloc := ledger.AllocateWater(readings, propertyID, periodStart, periodEnd)
	return &alloc, nil
}
