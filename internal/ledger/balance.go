package ledger

import (
	"sort"
	"time"

	"rental-backend/internal/models"
	"rental-backend/internal/money"
)

// BalanceStatement is the paid-vs-expected position of a lease at a
// reference date. Balance = TotalPaid - TotalExpected: positive means the
// tenant is in credit, negative means the tenant owes money.
type BalanceStatement struct {
	ReferenceDate time.Time   `json:"reference_date"`
	TotalPaid     money.Money `json:"total_paid"`
	TotalExpected money.Money `json:"total_expected"`
	Balance       money.Money `json:"balance"`
}

// PaymentRecord is one payment with the lease balance at the end of the
// month preceding it and at the end of its own month. Both figures come from
// full balance computations so they stay consistent with whole-month
// accrual, rather than a running subtraction.
type PaymentRecord struct {
	Payment       models.Payment `json:"payment"`
	BalanceBefore money.Money    `json:"balance_before"`
	BalanceAfter  money.Money    `json:"balance_after"`
}

// LeaseBalance computes the statement for a lease at referenceDate.
//
// Every month from the start date's month through the reference date's month
// is fully due (no proration), each at the terms effective that month.
// Months after the lease end date's month accrue nothing. Payments dated at
// or before referenceDate count toward TotalPaid; ad hoc charges dated at or
// before referenceDate are added to TotalExpected.
func LeaseBalance(lease models.Lease, revisions []models.RentRevision, payments []models.Payment, charges []models.Charge, referenceDate time.Time) (BalanceStatement, error) {
	if referenceDate.Before(lease.StartDate) {
		return BalanceStatement{}, ErrOutOfRangeDate
	}

	schedule := NewRentSchedule(lease, revisions)

	totalExpected := money.Zero()
	lastMonth := monthOf(referenceDate)
	if lease.EndDate != nil && lease.EndDate.Before(referenceDate) {
		lastMonth = monthOf(*lease.EndDate)
	}
	for month := monthOf(lease.StartDate); !month.After(lastMonth); month = month.AddDate(0, 1, 0) {
		// The first month is sampled at the start date itself; the
		// schedule has nothing before it.
		sampleDate := month
		if sampleDate.Before(lease.StartDate) {
			sampleDate = lease.StartDate
		}
		terms, err := schedule.TermsOn(sampleDate)
		if err != nil {
			return BalanceStatement{}, err
		}
		totalExpected = totalExpected.Add(terms.Total())
	}

	for _, c := range charges {
		if !c.ChargeDate.After(referenceDate) {
			totalExpected = totalExpected.Add(c.Amount)
		}
	}

	totalPaid := money.Zero()
	for _, p := range payments {
		if !p.PaymentDate.After(referenceDate) {
			totalPaid = totalPaid.Add(p.Amount)
		}
	}

	return BalanceStatement{
		ReferenceDate: referenceDate,
		TotalPaid:     totalPaid,
		TotalExpected: totalExpected,
		Balance:       totalPaid.Sub(totalExpected),
	}, nil
}

// PaymentHistory returns every payment up to referenceDate in chronological
// order, each with its balance-before and balance-after.
func PaymentHistory(lease models.Lease, revisions []models.RentRevision, payments []models.Payment, charges []models.Charge, referenceDate time.Time) ([]PaymentRecord, error) {
	if referenceDate.Before(lease.StartDate) {
		return nil, ErrOutOfRangeDate
	}

	inRange := make([]models.Payment, 0, len(payments))
	for _, p := range payments {
		if !p.PaymentDate.After(referenceDate) {
			inRange = append(inRange, p)
		}
	}
	sort.SliceStable(inRange, func(i, j int) bool {
		return inRange[i].PaymentDate.Before(inRange[j].PaymentDate)
	})

	records := make([]PaymentRecord, 0, len(inRange))
	for _, p := range inRange {
		endOfPrev := monthOf(p.PaymentDate).AddDate(0, 0, -1)
		endOfOwn := monthOf(p.PaymentDate).AddDate(0, 1, -1)

		before := money.Zero()
		if !endOfPrev.Before(lease.StartDate) {
			stmt, err := LeaseBalance(lease, revisions, payments, charges, endOfPrev)
			if err != nil {
				return nil, err
			}
			before = stmt.Balance
		}

		after, err := LeaseBalance(lease, revisions, payments, charges, endOfOwn)
		if err != nil {
			return nil, err
		}

		records = append(records, PaymentRecord{
			Payment:       p,
			BalanceBefore: before,
			BalanceAfter:  after.Balance,
		})
	}

	return records, nil
}

// monthOf truncates a date to the first day of its month.
func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
