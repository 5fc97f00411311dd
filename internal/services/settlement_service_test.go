package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-backend/internal/ledger"
	"rental-backend/internal/models"
	"rental-backend/internal/money"
)

type fakeBuildingStore struct {
	properties map[int]models.Property // by property id
	documents  []models.FinancialDocument
	shares     []models.PropertyChargeShare
	readings   map[int][]models.WaterMeterReading
	nextID     int
}

func (f *fakeBuildingStore) GetProperty(_ context.Context, id int) (*models.Property, error) {
	p, ok := f.properties[id]
	if !ok {
		return nil, ledger.ErrPropertyNotInBuilding
	}
	return &p, nil
}

func (f *fakeBuildingStore) FindPropertiesByBuilding(_ context.Context, buildingID int) ([]models.Property, error) {
	var out []models.Property
	for _, p := range f.properties {
		if p.BuildingID == buildingID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeBuildingStore) FindDocumentsByBuilding(_ context.Context, buildingID int, from, to time.Time) ([]models.FinancialDocument, error) {
	var out []models.FinancialDocument
	for _, d := range f.documents {
		if d.BuildingID == buildingID && !d.DocumentDate.Before(from) && !d.DocumentDate.After(to) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeBuildingStore) UpsertShare(_ context.Context, share *models.PropertyChargeShare) error {
	for i, existing := range f.shares {
		if existing.PropertyID == share.PropertyID && existing.Category == share.Category {
			f.shares[i].Percentage = share.Percentage
			share.ID = existing.ID
			return nil
		}
	}
	f.nextID++
	share.ID = f.nextID
	f.shares = append(f.shares, *share)
	return nil
}

func (f *fakeBuildingStore) FindSharesByProperty(_ context.Context, propertyID int) ([]models.PropertyChargeShare, error) {
	var out []models.PropertyChargeShare
	for _, s := range f.shares {
		if s.PropertyID == propertyID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeBuildingStore) FindSharesByBuilding(_ context.Context, buildingID int) ([]models.PropertyChargeShare, error) {
	var out []models.PropertyChargeShare
	for _, s := range f.shares {
		if p, ok := f.properties[s.PropertyID]; ok && p.BuildingID == buildingID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeBuildingStore) CreateReading(_ context.Context, reading *models.WaterMeterReading) error {
	f.nextID++
	reading.ID = f.nextID
	f.readings[reading.PropertyID] = append(f.readings[reading.PropertyID], *reading)
	return nil
}

func (f *fakeBuildingStore) FindReadingsByProperty(_ context.Context, propertyID int) ([]models.WaterMeterReading, error) {
	return f.readings[propertyID], nil
}

func (f *fakeBuildingStore) FindReadingsByBuilding(_ context.Context, buildingID int) (map[int][]models.WaterMeterReading, error) {
	out := make(map[int][]models.WaterMeterReading)
	for _, p := range f.properties {
		if p.BuildingID == buildingID {
			out[p.ID] = f.readings[p.ID]
		}
	}
	return out, nil
}

func seededBuilding() *fakeBuildingStore {
	ref := date(2025, time.January, 1)
	start := ref.AddDate(-1, 0, 0)

	return &fakeBuildingStore{
		properties: map[int]models.Property{
			1: {ID: 1, BuildingID: 1, Label: "Apt A"},
			2: {ID: 2, BuildingID: 1, Label: "Apt B"},
		},
		documents: []models.FinancialDocument{
			{ID: 1, BuildingID: 1, Category: models.CategoryElectricity, DocumentDate: date(2024, time.March, 10), Amount: money.MustNew("500"), IsIncludedInCharges: true},
			{ID: 2, BuildingID: 1, Category: models.CategoryWater, DocumentDate: date(2024, time.June, 2), Amount: money.MustNew("200"), IsIncludedInCharges: true},
		},
		shares: []models.PropertyChargeShare{
			{ID: 1, PropertyID: 1, Category: models.CategoryElectricity, Percentage: decimal.NewFromInt(60)},
			{ID: 2, PropertyID: 2, Category: models.CategoryElectricity, Percentage: decimal.NewFromInt(40)},
		},
		readings: map[int][]models.WaterMeterReading{
			1: {
				{PropertyID: 1, ReadingDate: start, MeterReading: decimal.NewFromInt(100)},
				{PropertyID: 1, ReadingDate: ref, MeterReading: decimal.NewFromInt(130)},
			},
			2: {
				{PropertyID: 2, ReadingDate: start, MeterReading: decimal.NewFromInt(200)},
				{PropertyID: 2, ReadingDate: ref, MeterReading: decimal.NewFromInt(270)},
			},
		},
		nextID: 10,
	}
}

func newSettlementService(store *fakeBuildingStore) *SettlementService {
	return NewSettlementService(store, store, store, store, ledger.ShareToleranceDefault, zerolog.Nop())
}

func TestCalculateChargeSettlement(t *testing.T) {
	svc := newSettlementService(seededBuilding())

	result, err := svc.CalculateChargeSettlement(context.Background(), 1, 1, date(2025, time.January, 1), money.MustNew("1200"))
	require.NoError(t, err)

	assert.Equal(t, "360.00", result.TotalChargesActual.String())
	assert.Equal(t, "840.00", result.Balance.String())
	assert.Equal(t, "30.00", result.NewMonthlyCharges.String())
	assert.Empty(t, result.Warnings)
}

func TestCalculateChargeSettlementPropertyNotInBuilding(t *testing.T) {
	store := seededBuilding()
	store.properties[3] = models.Property{ID: 3, BuildingID: 2, Label: "elsewhere"}
	svc := newSettlementService(store)

	_, err := svc.CalculateChargeSettlement(context.Background(), 1, 3, date(2025, time.January, 1), money.MustNew("1200"))
	assert.ErrorIs(t, err, ledger.ErrPropertyNotInBuilding)
}

func TestCalculateChargeSettlementNegativeProvisional(t *testing.T) {
	svc := newSettlementService(seededBuilding())

	_, err := svc.CalculateChargeSettlement(context.Background(), 1, 1, date(2025, time.January, 1), money.MustNew("-1"))
	assert.ErrorIs(t, err, ledger.ErrInvalidAmount)
}

func TestAllocateWaterService(t *testing.T) {
	svc := newSettlementService(seededBuilding())

	alloc, err := svc.AllocateWater(context.Background(), 1, 2, date(2024, time.January, 1), date(2025, time.January, 1))
	require.NoError(t, err)
	assert.True(t, alloc.DynamicPercentage.Equal(decimal.NewFromInt(70)))

	_, err = svc.AllocateWater(context.Background(), 2, 2, date(2024, time.January, 1), date(2025, time.January, 1))
	assert.ErrorIs(t, err, ledger.ErrPropertyNotInBuilding)
}

func TestChargeShareServiceSetAndSummary(t *testing.T) {
	store := seededBuilding()
	svc := NewChargeShareService(store, store, ledger.ShareToleranceDefault, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.SetShare(ctx, 1, models.CategoryWater, decimal.NewFromInt(50))
	assert.ErrorIs(t, err, ledger.ErrWaterShareNotConfigurable)

	_, err = svc.SetShare(ctx, 1, models.CategoryHeating, decimal.NewFromInt(70))
	require.NoError(t, err)

	summary, err := svc.BuildingSummary(ctx, 1)
	require.NoError(t, err)
	assert.True(t, summary.Totals[models.CategoryElectricity].Equal(decimal.NewFromInt(100)))
	require.Len(t, summary.Deviations, 1)
	assert.Equal(t, models.CategoryHeating, summary.Deviations[0].Category)
	assert.NotEmpty(t, summary.Warnings)
}

func TestWaterReadingServiceRegressionWarning(t *testing.T) {
	store := seededBuilding()
	svc := NewWaterReadingService(store, store, zerolog.Nop())
	ctx := context.Background()

	recorded, err := svc.RecordReading(ctx, 1, date(2025, time.February, 1), decimal.NewFromInt(140))
	require.NoError(t, err)
	assert.Empty(t, recorded.Warnings)

	// Lower than the existing index: flagged, still stored.
	recorded, err = svc.RecordReading(ctx, 1, date(2025, time.March, 1), decimal.NewFromInt(12))
	require.NoError(t, err)
	require.Len(t, recorded.Warnings, 1)
	assert.Contains(t, recorded.Warnings[0], "meter change")

	readings, err := svc.ListReadings(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, readings, 4)
}
