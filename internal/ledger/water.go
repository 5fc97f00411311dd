package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"rental-backend/internal/models"
)

// Calculation methods reported on settlement lines.
const (
	MethodFixedPercentage    = "FIXED_PERCENTAGE"
	MethodConsumption        = "CONSUMPTION"
	MethodEqualSplitFallback = "EQUAL_SPLIT_FALLBACK"
	MethodNoData             = "NO_DATA"
)

// WaterAllocation is one property's dynamic share of a building's water
// cost for a period, derived from meter readings.
type WaterAllocation struct {
	PropertyID               int             `json:"property_id"`
	PeriodStart              time.Time       `json:"period_start"`
	PeriodEnd                time.Time       `json:"period_end"`
	PropertyConsumption      decimal.Decimal `json:"property_consumption"`       // m3
	BuildingTotalConsumption decimal.Decimal `json:"building_total_consumption"` // m3
	DynamicPercentage        decimal.Decimal `json:"dynamic_percentage"`
	CalculationMethod        string          `json:"calculation_method"`
	Warnings                 []string        `json:"warnings,omitempty"`
}

// AllocateWater computes propertyID's share of the building's water
// consumption over [periodStart, periodEnd]. readingsByProperty must cover
// every property of the building (empty slices for unmetered ones).
//
// Per property, consumption is the difference between the latest reading at
// or before periodEnd and the latest at or before periodStart. A negative
// difference signals a meter change: it is reported and counted as zero
// rather than corrupting the building total. When the building total is
// zero, the cost is split equally across properties that have any reading.
func AllocateWater(readingsByProperty map[int][]models.WaterMeterReading, propertyID int, periodStart, periodEnd time.Time) WaterAllocation {
	alloc := WaterAllocation{
		PropertyID:  propertyID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
	}

	consumption := make(map[int]decimal.Decimal, len(readingsByProperty))
	var metered []int
	total := decimal.Zero

	// Deterministic property order so warnings are stable.
	ids := make([]int, 0, len(readingsByProperty))
	for id := range readingsByProperty {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		readings := readingsByProperty[id]
		if len(readings) == 0 {
			alloc.Warnings = append(alloc.Warnings, fmt.Sprintf("property %d has no water meter readings", id))
			continue
		}
		metered = append(metered, id)

		used, warn := consumptionBetween(readings, periodStart, periodEnd)
		if warn != "" {
			alloc.Warnings = append(alloc.Warnings, fmt.Sprintf("property %d: %s", id, warn))
		}
		consumption[id] = used
		total = total.Add(used)
	}

	alloc.PropertyConsumption = consumption[propertyID]
	alloc.BuildingTotalConsumption = total

	if total.IsPositive() {
		alloc.CalculationMethod = MethodConsumption
		alloc.DynamicPercentage = alloc.PropertyConsumption.Div(total).Mul(hundred)
		return alloc
	}

	// No measurable usage anywhere: fall back to an equal split across the
	// metered properties.
	if len(metered) > 0 {
		alloc.CalculationMethod = MethodEqualSplitFallback
		alloc.Warnings = append(alloc.Warnings, "building water consumption is zero, splitting equally across metered properties")
		for _, id := range metered {
			if id == propertyID {
				alloc.DynamicPercentage = hundred.Div(decimal.NewFromInt(int64(len(metered))))
				return alloc
			}
		}
		// Target property unmetered: it takes no part of the split.
		return alloc
	}

	alloc.CalculationMethod = MethodNoData
	alloc.Warnings = append(alloc.Warnings, "no water meter readings for any property in the building")
	return alloc
}

// consumptionBetween computes the metered usage over the period from the two
// bracketing readings. Missing brackets or a meter regression yield zero
// with an explanatory warning.
func consumptionBetween(readings []models.WaterMeterReading, periodStart, periodEnd time.Time) (decimal.Decimal, string) {
	sorted := make([]models.WaterMeterReading, len(readings))
	copy(sorted, readings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ReadingDate.Before(sorted[j].ReadingDate)
	})

	start := latestAtOrBefore(sorted, periodStart)
	end := latestAtOrBefore(sorted, periodEnd)

	if start == nil || end == nil {
		return decimal.Zero, "not enough readings to bracket the period"
	}

	diff := end.MeterReading.Sub(start.MeterReading)
	if diff.IsNegative() {
		return decimal.Zero, fmt.Sprintf("meter reading decreased from %s to %s (meter change?), counted as zero", start.MeterReading, end.MeterReading)
	}
	return diff, ""
}

func latestAtOrBefore(sorted []models.WaterMeterReading, date time.Time) *models.WaterMeterReading {
	idx := sort.Search(len(sorted), func(i int) bool {
		return sorted[i].ReadingDate.After(date)
	})
	if idx == 0 {
		return nil
	}
	return &sorted[idx-1]
}
