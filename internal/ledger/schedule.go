package ledger

import (
	"sort"
	"time"

	"rental-backend/internal/models"
	"rental-backend/internal/money"
)

// RentTerms is the rent and charges amounts effective from EffectiveDate
// until superseded.
type RentTerms struct {
	EffectiveDate time.Time   `json:"effective_date"`
	RentAmount    money.Money `json:"rent_amount"`
	ChargesAmount money.Money `json:"charges_amount"`
}

// Total returns rent + charges.
func (t RentTerms) Total() money.Money {
	return t.RentAmount.Add(t.ChargesAmount)
}

// RentSchedule resolves which terms were contractually due on a given date.
// The lease's baseline amounts act as a virtual revision effective at the
// start date; later revisions supersede it from their effective date onward.
type RentSchedule struct {
	start time.Time
	terms []RentTerms // ascending by EffectiveDate
}

// NewRentSchedule builds a schedule from a lease and its revisions. Input
// order does not matter; revisions are sorted defensively. When two
// revisions share an effective date (prevented at creation, but possible in
// old data) the one created last wins.
func NewRentSchedule(lease models.Lease, revisions []models.RentRevision) RentSchedule {
	sorted := make([]models.RentRevision, len(revisions))
	copy(sorted, revisions)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].EffectiveDate.Equal(sorted[j].EffectiveDate) {
			return sorted[i].EffectiveDate.Before(sorted[j].EffectiveDate)
		}
		return sorted[i].ID < sorted[j].ID
	})

	terms := make([]RentTerms, 0, len(sorted)+1)
	terms = append(terms, RentTerms{
		EffectiveDate: lease.StartDate,
		RentAmount:    lease.RentAmount,
		ChargesAmount: lease.ChargesAmount,
	})
	for _, rev := range sorted {
		// A revision dated before the lease start is a data error; the
		// baseline already covers that range.
		if rev.EffectiveDate.Before(lease.StartDate) {
			continue
		}
		t := RentTerms{
			EffectiveDate: rev.EffectiveDate,
			RentAmount:    rev.RentAmount,
			ChargesAmount: rev.ChargesAmount,
		}
		// A revision effective exactly at an existing entry's date
		// replaces it: later-created wins.
		if last := len(terms) - 1; terms[last].EffectiveDate.Equal(t.EffectiveDate) {
			terms[last] = t
		} else {
			terms = append(terms, t)
		}
	}

	return RentSchedule{start: lease.StartDate, terms: terms}
}

// TermsOn returns the terms with the greatest effective date at or before
// onDate. Dates before the lease start fail with ErrOutOfRangeDate.
func (s RentSchedule) TermsOn(onDate time.Time) (RentTerms, error) {
	if onDate.Before(s.start) {
		return RentTerms{}, ErrOutOfRangeDate
	}
	// First entry effective strictly after onDate; its predecessor applies.
	idx := sort.Search(len(s.terms), func(i int) bool {
		return s.terms[i].EffectiveDate.After(onDate)
	})
	return s.terms[idx-1], nil
}

// ValidateNewRevision rejects a revision whose effective date collides with
// an existing revision of the same lease.
func ValidateNewRevision(existing []models.RentRevision, effectiveDate time.Time) error {
	for _, rev := range existing {
		if rev.EffectiveDate.Equal(effectiveDate) {
			return ErrDuplicateRevisionDate
		}
	}
	return nil
}
