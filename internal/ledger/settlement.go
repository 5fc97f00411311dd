package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"rental-backend/internal/models"
	"rental-backend/internal/money"
)

// SettlementInput is the point-in-time snapshot the engine settles against.
// The caller (service layer) fetches it in one read pass; the engine itself
// performs no I/O.
type SettlementInput struct {
	BuildingID  int
	PropertyID  int
	ReferenceDate time.Time

	// ProvisionalChargesPaid is what the tenant paid in monthly provisions
	// over the period, typically 12 x the lease's charges line.
	ProvisionalChargesPaid money.Money

	// BuildingPropertyIDs lists every property of the building, used for
	// the membership precondition.
	BuildingPropertyIDs []int

	Documents []models.FinancialDocument
	Shares    []models.PropertyChargeShare

	// ReadingsByProperty holds water meter readings per property of the
	// building; properties without a meter map to an empty slice.
	ReadingsByProperty map[int][]models.WaterMeterReading

	// ShareTolerance is the accepted deviation of a category's share total
	// from 100. Nil means ShareToleranceDefault; an explicit zero demands
	// exact totals.
	ShareTolerance *decimal.Decimal
}

// CategoryBreakdown is one settlement line.
type CategoryBreakdown struct {
	Category          models.ChargeCategory `json:"category"`
	DocumentCount     int                   `json:"document_count"`
	CategoryTotal     money.Money           `json:"category_total"`
	PercentageApplied decimal.Decimal       `json:"percentage_applied"`
	PropertyShare     money.Money           `json:"property_share"`
	CalculationMethod string                `json:"calculation_method"`
}

// SettlementResult is the outcome of one annual charge regularization for
// one property. Balance = provisional - actual: positive means the tenant
// overpaid provisions and is owed the difference, negative means a shortfall
// to collect. Note this is the opposite convention from the lease balance
// (paid - expected); both sides' consumers depend on their own sign.
type SettlementResult struct {
	BuildingID  int       `json:"building_id"`
	PropertyID  int       `json:"property_id"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`

	Breakdown []CategoryBreakdown `json:"breakdown"`

	TotalChargesActual      money.Money `json:"total_charges_actual"`
	TotalChargesProvisional money.Money `json:"total_charges_provisional"`
	Balance                 money.Money `json:"balance"`
	NewMonthlyCharges       money.Money `json:"new_monthly_charges"`

	Warnings []string `json:"warnings"`
}

// Settle performs the annual common-charge regularization for one property
// over the year ending at the reference date.
//
// Hard preconditions: the property must belong to the building and the
// provisional amount must not be negative. Everything else degrades
// gracefully: data-quality problems become warnings and the result is still
// returned.
func Settle(in SettlementInput) (*SettlementResult, error) {
	if in.ProvisionalChargesPaid.IsNegative() {
		return nil, fmt.Errorf("%w: provisional charges %s", ErrInvalidAmount, in.ProvisionalChargesPaid)
	}
	if !containsInt(in.BuildingPropertyIDs, in.PropertyID) {
		return nil, fmt.Errorf("%w: property %d, building %d", ErrPropertyNotInBuilding, in.PropertyID, in.BuildingID)
	}

	tolerance := ShareToleranceDefault
	if in.ShareTolerance != nil {
		tolerance = *in.ShareTolerance
	}

	periodStart := in.ReferenceDate.AddDate(-1, 0, 0)
	result := &SettlementResult{
		BuildingID:              in.BuildingID,
		PropertyID:              in.PropertyID,
		PeriodStart:             periodStart,
		PeriodEnd:               in.ReferenceDate,
		TotalChargesProvisional: in.ProvisionalChargesPaid,
		Warnings:                []string{},
	}

	// A malformed stored share row is a data-quality problem, not a reason
	// to refuse the settlement.
	shares := &ShareTable{shares: make(map[int]map[models.ChargeCategory]decimal.Decimal)}
	for _, row := range in.Shares {
		if err := shares.Set(row.PropertyID, row.Category, row.Percentage); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("share row for property %d ignored: %v", row.PropertyID, err))
		}
	}

	// Documents inside the period, flagged as included, grouped by category.
	totals := make(map[models.ChargeCategory]money.Money)
	counts := make(map[models.ChargeCategory]int)
	for _, doc := range in.Documents {
		if !doc.IsIncludedInCharges {
			continue
		}
		if doc.DocumentDate.Before(periodStart) || doc.DocumentDate.After(in.ReferenceDate) {
			continue
		}
		if !doc.Category.Valid() {
			result.Warnings = append(result.Warnings, fmt.Sprintf("document %d has unknown category %q, skipped", doc.ID, doc.Category))
			continue
		}
		totals[doc.Category] = totals[doc.Category].Add(doc.Amount)
		counts[doc.Category]++
	}

	deviations := shares.Deviations(tolerance)
	deviating := make(map[models.ChargeCategory]decimal.Decimal, len(deviations))
	for _, dev := range deviations {
		deviating[dev.Category] = dev.Total
	}

	actual := money.Zero()
	for _, category := range models.ChargeCategories {
		categoryTotal, ok := totals[category]
		if !ok {
			continue
		}

		line := CategoryBreakdown{
			Category:      category,
			DocumentCount: counts[category],
			CategoryTotal: categoryTotal,
		}

		if category == models.CategoryWater {
			alloc := AllocateWater(in.ReadingsByProperty, in.PropertyID, periodStart, in.ReferenceDate)
			line.PercentageApplied = alloc.DynamicPercentage
			line.CalculationMethod = alloc.CalculationMethod
			result.Warnings = append(result.Warnings, alloc.Warnings...)
		} else {
			pct := shares.ShareFor(in.PropertyID, category)
			if pct.IsZero() {
				result.Warnings = append(result.Warnings, fmt.Sprintf("no %s share configured for property %d, share counted as 0%%", category, in.PropertyID))
			}
			if total, bad := deviating[category]; bad {
				result.Warnings = append(result.Warnings, fmt.Sprintf("%s shares total %s%% across the building instead of 100%%", category, total))
			}
			line.PercentageApplied = pct
			line.CalculationMethod = MethodFixedPercentage
		}

		line.PropertyShare = categoryTotal.Mul(line.PercentageApplied.Div(hundred)).Round()
		actual = actual.Add(line.PropertyShare)
		result.Breakdown = append(result.Breakdown, line)
	}

	result.TotalChargesActual = actual
	result.Balance = in.ProvisionalChargesPaid.Sub(actual)
	result.NewMonthlyCharges = actual.DivRound(12)
	return result, nil
}

func containsInt(haystack []int, needle int) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}
