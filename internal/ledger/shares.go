package ledger

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"rental-backend/internal/models"
)

// ShareToleranceDefault is the accepted deviation when checking that a
// category's shares sum to 100 across a building.
var ShareToleranceDefault = decimal.NewFromFloat(0.01)

var hundred = decimal.NewFromInt(100)

// ShareTable holds the configured fixed percentage shares for the properties
// of one building, keyed by property and category. WATER never appears here.
type ShareTable struct {
	shares map[int]map[models.ChargeCategory]decimal.Decimal
}

// NewShareTable builds a table from stored rows. Rows for the WATER category
// or an unknown category are rejected; duplicate (property, category) pairs
// keep the last row, matching upsert semantics.
func NewShareTable(rows []models.PropertyChargeShare) (*ShareTable, error) {
	t := &ShareTable{shares: make(map[int]map[models.ChargeCategory]decimal.Decimal)}
	for _, row := range rows {
		if err := t.Set(row.PropertyID, row.Category, row.Percentage); err != nil {
			return nil, fmt.Errorf("share for property %d: %w", row.PropertyID, err)
		}
	}
	return t, nil
}

// ValidateShare checks that a (category, percentage) pair is storable as a
// fixed share: WATER is never configurable, the category must be known and
// the percentage must lie in [0,100].
func ValidateShare(category models.ChargeCategory, percentage decimal.Decimal) error {
	if category == models.CategoryWater {
		return ErrWaterShareNotConfigurable
	}
	if !category.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	if percentage.IsNegative() || percentage.GreaterThan(hundred) {
		return fmt.Errorf("%w: percentage %s out of [0,100]", ErrInvalidAmount, percentage)
	}
	return nil
}

// Set upserts the share of one property for one category.
func (t *ShareTable) Set(propertyID int, category models.ChargeCategory, percentage decimal.Decimal) error {
	if err := ValidateShare(category, percentage); err != nil {
		return err
	}
	if t.shares[propertyID] == nil {
		t.shares[propertyID] = make(map[models.ChargeCategory]decimal.Decimal)
	}
	t.shares[propertyID][category] = percentage
	return nil
}

// SharesFor returns the configured percentages of one property. Missing
// categories are simply absent; callers treat them as zero.
func (t *ShareTable) SharesFor(propertyID int) map[models.ChargeCategory]decimal.Decimal {
	out := make(map[models.ChargeCategory]decimal.Decimal, len(t.shares[propertyID]))
	for cat, pct := range t.shares[propertyID] {
		out[cat] = pct
	}
	return out
}

// ShareFor returns one property's percentage for one category, zero if unset.
func (t *ShareTable) ShareFor(propertyID int, category models.ChargeCategory) decimal.Decimal {
	return t.shares[propertyID][category]
}

// TotalFor sums a category's shares across every property in the table.
func (t *ShareTable) TotalFor(category models.ChargeCategory) decimal.Decimal {
	total := decimal.Zero
	for _, byCat := range t.shares {
		total = total.Add(byCat[category])
	}
	return total
}

// CategoryDeviation reports a category whose shares do not total 100.
type CategoryDeviation struct {
	Category models.ChargeCategory `json:"category"`
	Total    decimal.Decimal       `json:"total"`
}

// Deviations lists every configured category whose building-wide total
// differs from 100 by more than tolerance. The table is never
// auto-normalized; deviations surface as warnings only.
func (t *ShareTable) Deviations(tolerance decimal.Decimal) []CategoryDeviation {
	seen := make(map[models.ChargeCategory]bool)
	for _, byCat := range t.shares {
		for cat := range byCat {
			seen[cat] = true
		}
	}

	var out []CategoryDeviation
	for _, cat := range models.ChargeCategories {
		if !seen[cat] {
			continue
		}
		total := t.TotalFor(cat)
		if total.Sub(hundred).Abs().GreaterThan(tolerance) {
			out = append(out, CategoryDeviation{Category: cat, Total: total})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}
