package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-backend/internal/models"
	"rental-backend/internal/money"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testLease() models.Lease {
	return models.Lease{
		ID:            1,
		PropertyID:    10,
		TenantName:    "M. Martin",
		StartDate:     date(2024, time.January, 1),
		RentAmount:    money.MustNew("1000"),
		ChargesAmount: money.MustNew("100"),
		PaymentDueDay: 5,
	}
}

func TestTermsOnBaselineOnly(t *testing.T) {
	schedule := NewRentSchedule(testLease(), nil)

	for _, d := range []time.Time{
		date(2024, time.January, 1),
		date(2024, time.June, 15),
		date(2030, time.December, 31),
	} {
		terms, err := schedule.TermsOn(d)
		require.NoError(t, err)
		assert.True(t, terms.RentAmount.Equal(money.MustNew("1000")))
		assert.True(t, terms.ChargesAmount.Equal(money.MustNew("100")))
		assert.True(t, terms.Total().Equal(money.MustNew("1100")))
	}
}

func TestTermsOnBeforeStart(t *testing.T) {
	schedule := NewRentSchedule(testLease(), nil)

	_, err := schedule.TermsOn(date(2023, time.December, 31))
	assert.ErrorIs(t, err, ErrOutOfRangeDate)
}

func TestTermsOnWithRevisions(t *testing.T) {
	revisions := []models.RentRevision{
		{ID: 2, LeaseID: 1, EffectiveDate: date(2024, time.July, 1), RentAmount: money.MustNew("1050"), ChargesAmount: money.MustNew("100")},
		{ID: 3, LeaseID: 1, EffectiveDate: date(2025, time.January, 1), RentAmount: money.MustNew("1080"), ChargesAmount: money.MustNew("120")},
	}
	schedule := NewRentSchedule(testLease(), revisions)

	tests := []struct {
		name      string
		on        time.Time
		wantTotal string
	}{
		{name: "before first revision", on: date(2024, time.June, 15), wantTotal: "1100"},
		{name: "on revision date", on: date(2024, time.July, 1), wantTotal: "1150"},
		{name: "after first revision", on: date(2024, time.July, 15), wantTotal: "1150"},
		{name: "day before second revision", on: date(2024, time.December, 31), wantTotal: "1150"},
		{name: "after second revision", on: date(2025, time.March, 1), wantTotal: "1200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms, err := schedule.TermsOn(tt.on)
			require.NoError(t, err)
			assert.True(t, terms.Total().Equal(money.MustNew(tt.wantTotal)),
				"got %s, want %s", terms.Total(), tt.wantTotal)
		})
	}
}

func TestTermsOnRevisionOrderIndependent(t *testing.T) {
	// Revisions arrive in storage order, not date order.
	revisions := []models.RentRevision{
		{ID: 5, EffectiveDate: date(2025, time.January, 1), RentAmount: money.MustNew("1080"), ChargesAmount: money.MustNew("120")},
		{ID: 4, EffectiveDate: date(2024, time.July, 1), RentAmount: money.MustNew("1050"), ChargesAmount: money.MustNew("100")},
	}
	schedule := NewRentSchedule(testLease(), revisions)

	terms, err := schedule.TermsOn(date(2024, time.August, 1))
	require.NoError(t, err)
	assert.True(t, terms.RentAmount.Equal(money.MustNew("1050")))
}

func TestTermsOnDuplicateEffectiveDateLatestCreatedWins(t *testing.T) {
	revisions := []models.RentRevision{
		{ID: 7, EffectiveDate: date(2024, time.July, 1), RentAmount: money.MustNew("1200"), ChargesAmount: money.MustNew("100")},
		{ID: 6, EffectiveDate: date(2024, time.July, 1), RentAmount: money.MustNew("1050"), ChargesAmount: money.MustNew("100")},
	}
	schedule := NewRentSchedule(testLease(), revisions)

	terms, err := schedule.TermsOn(date(2024, time.July, 10))
	require.NoError(t, err)
	assert.True(t, terms.RentAmount.Equal(money.MustNew("1200")))
}

func TestTermsOnRevisionAtStartDateOverridesBaseline(t *testing.T) {
	revisions := []models.RentRevision{
		{ID: 2, EffectiveDate: date(2024, time.January, 1), RentAmount: money.MustNew("900"), ChargesAmount: money.MustNew("90")},
	}
	schedule := NewRentSchedule(testLease(), revisions)

	terms, err := schedule.TermsOn(date(2024, time.January, 1))
	require.NoError(t, err)
	assert.True(t, terms.RentAmount.Equal(money.MustNew("900")))
}

func TestValidateNewRevision(t *testing.T) {
	existing := []models.RentRevision{
		{ID: 2, EffectiveDate: date(2024, time.July, 1)},
	}

	assert.NoError(t, ValidateNewRevision(existing, date(2024, time.August, 1)))
	assert.ErrorIs(t, ValidateNewRevision(existing, date(2024, time.July, 1)), ErrDuplicateRevisionDate)
}
