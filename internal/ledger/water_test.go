package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-backend/internal/models"
)

func reading(d time.Time, index string) models.WaterMeterReading {
	return models.WaterMeterReading{ReadingDate: d, MeterReading: decimal.RequireFromString(index)}
}

func TestAllocateWaterProportional(t *testing.T) {
	start := date(2024, time.January, 1)
	end := date(2025, time.January, 1)

	readings := map[int][]models.WaterMeterReading{
		1: {reading(start, "100"), reading(end, "130")}, // 30 m3
		2: {reading(start, "200"), reading(end, "270")}, // 70 m3
	}

	allocA := AllocateWater(readings, 1, start, end)
	require.Equal(t, MethodConsumption, allocA.CalculationMethod)
	assert.True(t, allocA.PropertyConsumption.Equal(decimal.NewFromInt(30)))
	assert.True(t, allocA.BuildingTotalConsumption.Equal(decimal.NewFromInt(100)))
	assert.True(t, allocA.DynamicPercentage.Equal(decimal.NewFromInt(30)))
	assert.Empty(t, allocA.Warnings)

	allocB := AllocateWater(readings, 2, start, end)
	assert.True(t, allocB.DynamicPercentage.Equal(decimal.NewFromInt(70)))
}

func TestAllocateWaterPicksBracketingReadings(t *testing.T) {
	start := date(2024, time.January, 1)
	end := date(2025, time.January, 1)

	// Extra readings before, inside and after the period must not leak in:
	// only the latest at or before each bound counts.
	readings := map[int][]models.WaterMeterReading{
		1: {
			reading(date(2023, time.June, 1), "50"),
			reading(date(2023, time.December, 20), "95"),
			reading(start, "100"),
			reading(date(2024, time.June, 1), "115"),
			reading(end, "130"),
			reading(date(2025, time.March, 1), "160"),
		},
	}

	alloc := AllocateWater(readings, 1, start, end)
	assert.True(t, alloc.PropertyConsumption.Equal(decimal.NewFromInt(30)))
}

func TestAllocateWaterMeterResetClampedToZero(t *testing.T) {
	start := date(2024, time.January, 1)
	end := date(2025, time.January, 1)

	readings := map[int][]models.WaterMeterReading{
		1: {reading(start, "900"), reading(end, "12")}, // meter swapped
		2: {reading(start, "100"), reading(end, "140")},
	}

	alloc := AllocateWater(readings, 2, start, end)
	require.Equal(t, MethodConsumption, alloc.CalculationMethod)
	assert.True(t, alloc.BuildingTotalConsumption.Equal(decimal.NewFromInt(40)),
		"reset meter must contribute zero, not a negative delta")
	assert.True(t, alloc.DynamicPercentage.Equal(decimal.NewFromInt(100)))
	require.Len(t, alloc.Warnings, 1)
	assert.Contains(t, alloc.Warnings[0], "meter change")
}

func TestAllocateWaterZeroTotalEqualSplit(t *testing.T) {
	start := date(2024, time.January, 1)
	end := date(2025, time.January, 1)

	readings := map[int][]models.WaterMeterReading{
		1: {reading(start, "100"), reading(end, "100")},
		2: {reading(start, "200"), reading(end, "200")},
		3: {}, // never metered
	}

	alloc := AllocateWater(readings, 1, start, end)
	assert.Equal(t, MethodEqualSplitFallback, alloc.CalculationMethod)
	assert.True(t, alloc.DynamicPercentage.Equal(decimal.NewFromInt(50)),
		"equal split goes across metered properties only")
	assert.NotEmpty(t, alloc.Warnings)
}

func TestAllocateWaterPropertyWithoutReadings(t *testing.T) {
	start := date(2024, time.January, 1)
	end := date(2025, time.January, 1)

	readings := map[int][]models.WaterMeterReading{
		1: {reading(start, "100"), reading(end, "130")},
		2: {},
	}

	alloc := AllocateWater(readings, 2, start, end)
	require.Equal(t, MethodConsumption, alloc.CalculationMethod)
	assert.True(t, alloc.DynamicPercentage.IsZero())
	require.NotEmpty(t, alloc.Warnings)
	assert.Contains(t, alloc.Warnings[0], "no water meter readings")
}

func TestAllocateWaterUnbracketedPeriod(t *testing.T) {
	start := date(2024, time.January, 1)
	end := date(2025, time.January, 1)

	// Only readings inside the period: no baseline at the period start.
	readings := map[int][]models.WaterMeterReading{
		1: {reading(date(2024, time.June, 1), "115")},
	}

	alloc := AllocateWater(readings, 1, start, end)
	assert.True(t, alloc.PropertyConsumption.IsZero())

	found := false
	for _, w := range alloc.Warnings {
		if w == "property 1: not enough readings to bracket the period" {
			found = true
		}
	}
	assert.True(t, found, "expected bracketing warning, got %v", alloc.Warnings)
}

func TestAllocateWaterNoDataAtAll(t *testing.T) {
	alloc := AllocateWater(map[int][]models.WaterMeterReading{}, 1, date(2024, time.January, 1), date(2025, time.January, 1))
	assert.Equal(t, MethodNoData, alloc.CalculationMethod)
	assert.True(t, alloc.DynamicPercentage.IsZero())
	assert.NotEmpty(t, alloc.Warnings)
}
