package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"rental-backend/internal/ledger"
	"rental-backend/internal/models"
)

// BuildingShareSummary is the per-category share totals of a building with
// the categories deviating from 100%.
type BuildingShareSummary struct {
	BuildingID int                                      `json:"building_id"`
	Totals     map[models.ChargeCategory]decimal.Decimal `json:"totals"`
	Deviations []ledger.CategoryDeviation               `json:"deviations"`
	Warnings   []string                                 `json:"warnings"`
}

type ChargeShareService struct {
	shares     ShareStore
	properties PropertyStore
	tolerance  decimal.Decimal
	log        zerolog.Logger
}

func NewChargeShareService(shares ShareStore, properties PropertyStore, shareTolerance decimal.Decimal, log zerolog.Logger) *ChargeShareService {
	return &ChargeShareService{shares: shares, properties: properties, tolerance: shareTolerance, log: log}
}

// SetShare upserts one property's percentage for one category. WATER is
// rejected: its share is always computed from meter readings.
func (s *ChargeShareService) SetShare(ctx context.Context, propertyID int, category models.ChargeCategory, percentage decimal.Decimal) (*models.PropertyChargeShare, error) {
	if _, err := s.properties.GetProperty(ctx, propertyID); err != nil {
		return nil, err
	}

	// Same validation the settlement engine applies to stored rows.
	if err := ledger.ValidateShare(category, percentage); err != nil {
		return nil, err
	}

	share := &models.PropertyChargeShare{
		PropertyID: propertyID,
		Category:   category,
		Percentage: percentage,
	}
	if err := s.shares.UpsertShare(ctx, share); err != nil {
		return nil, err
	}

	s.log.Info().
		Int("property_id", propertyID).
		Str("category", string(category)).
		Str("percentage", percentage.String()).
		Msg("charge share updated")

	return share, nil
}

// SharesFor returns the configured category percentages of one property.
func (s *ChargeShareService) SharesFor(ctx context.Context, propertyID int) ([]models.PropertyChargeShare, error) {
	if _, err := s.properties.GetProperty(ctx, propertyID); err != nil {
		return nil, err
	}
	return s.shares.FindSharesByProperty(ctx, propertyID)
}

// BuildingSummary reports the building-wide share totals per category and
// flags the ones off 100%. The table is reported as configured, never
// normalized.
func (s *ChargeShareService) BuildingSummary(ctx context.Context, buildingID int) (*BuildingShareSummary, error) {
	rows, err := s.shares.FindSharesByBuilding(ctx, buildingID)
	if err != nil {
		return nil, err
	}

	summary := &BuildingShareSummary{
		BuildingID: buildingID,
		Totals:     make(map[models.ChargeCategory]decimal.Decimal),
		Warnings:   []string{},
	}

	table, err := ledger.NewShareTable(rows)
	if err != nil {
		return nil, err
	}
	for _, category := range models.ChargeCategories {
		if category == models.CategoryWater {
			continue
		}
		total := table.TotalFor(category)
		if !total.IsZero() {
			summary.Totals[category] = total
		}
	}
	summary.Deviations = table.Deviations(s.tolerance)
	for _, dev := range summary.Deviations {
		summary.Warnings = append(summary.Warnings,
			fmt.Sprintf("%s shares total %s%% across the building instead of 100%%", dev.Category, dev.Total))
	}

	return summary, nil
}
