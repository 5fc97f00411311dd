package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"rental-backend/internal/ledger"
	"rental-backend/internal/metrics"
	"rental-backend/internal/models"
	"rental-backend/internal/money"
)

// LeaseStore is the narrow read surface the rent and balance computations
// need. Any storage backend can satisfy it.
type LeaseStore interface {
	GetLease(ctx context.Context, id int) (*models.Lease, error)
	FindRevisionsByLease(ctx context.Context, leaseID int) ([]models.RentRevision, error)
	FindPaymentsByLease(ctx context.Context, leaseID int) ([]models.Payment, error)
	FindChargesByLease(ctx context.Context, leaseID int) ([]models.Charge, error)
	CreateRevision(ctx context.Context, revision *models.RentRevision) error
}

// RentOnDate is the rent position of a lease on one date.
type RentOnDate struct {
	LeaseID       int         `json:"lease_id"`
	Date          time.Time   `json:"date"`
	RentAmount    money.Money `json:"rent_amount"`
	ChargesAmount money.Money `json:"charges_amount"`
	TotalAmount   money.Money `json:"total_amount"`
}

type RentService struct {
	store LeaseStore
	log   zerolog.Logger
}

func NewRentService(store LeaseStore, log zerolog.Logger) *RentService {
	return &RentService{store: store, log: log}
}

// GetApplicableRentForDate resolves the amounts contractually due on a date,
// honouring the lease's revision history.
func (s *RentService) GetApplicableRentForDate(ctx context.Context, leaseID int, onDate time.Time) (*RentOnDate, error) {
	lease, err := s.store.GetLease(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	revisions, err := s.store.FindRevisionsByLease(ctx, leaseID)
	if err != nil {
		return nil, err
	}

	terms, err := ledger.NewRentSchedule(*lease, revisions).TermsOn(onDate)
	if err != nil {
		return nil, err
	}

	return &RentOnDate{
		LeaseID:       leaseID,
		Date:          onDate,
		RentAmount:    terms.RentAmount,
		ChargesAmount: terms.ChargesAmount,
		TotalAmount:   terms.Total(),
	}, nil
}

// CalculateLeaseBalance computes the signed paid-vs-expected balance at a
// reference date. Ad hoc charges recorded against the lease count toward the
// expected side.
func (s *RentService) CalculateLeaseBalance(ctx context.Context, leaseID int, referenceDate time.Time) (*ledger.BalanceStatement, error) {
	lease, revisions, payments, charges, err := s.snapshot(ctx, leaseID)
	if err != nil {
		return nil, err
	}

	stmt, err := ledger.LeaseBalance(*lease, revisions, payments, charges, referenceDate)
	if err != nil {
		return nil, err
	}

	metrics.BalanceCalculationsTotal.Inc()
	s.log.Debug().
		Int("lease_id", leaseID).
		Str("balance", stmt.Balance.String()).
		Msg("lease balance calculated")

	return &stmt, nil
}

// GetPaymentHistory returns each payment up to the reference date with the
// lease balance before and after its month.
func (s *RentService) GetPaymentHistory(ctx context.Context, leaseID int, referenceDate time.Time) ([]ledger.PaymentRecord, error) {
	lease, revisions, payments, charges, err := s.snapshot(ctx, leaseID)
	if err != nil {
		return nil, err
	}

	return ledger.PaymentHistory(*lease, revisions, payments, charges, referenceDate)
}

// CreateRevision records a rent revision after checking the lease exists,
// amounts are not negative, the date is not before the lease start and no
// revision already uses the same effective date.
func (s *RentService) CreateRevision(ctx context.Context, leaseID int, effectiveDate time.Time, rent, charges money.Money, reason string) (*models.RentRevision, error) {
	lease, err := s.store.GetLease(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if rent.IsNegative() || charges.IsNegative() {
		return nil, ledger.ErrInvalidAmount
	}
	if effectiveDate.Before(lease.StartDate) {
		return nil, ledger.ErrOutOfRangeDate
	}

	existing, err := s.store.FindRevisionsByLease(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if err := ledger.ValidateNewRevision(existing, effectiveDate); err != nil {
		return nil, err
	}

	revision := &models.RentRevision{
		LeaseID:       leaseID,
		EffectiveDate: effectiveDate,
		RentAmount:    rent,
		ChargesAmount: charges,
		Reason:        reason,
	}
	if err := s.store.CreateRevision(ctx, revision); err != nil {
		return nil, err
	}

	s.log.Info().
		Int("lease_id", leaseID).
		Time("effective_date", effectiveDate).
		Msg("rent revision created")

	return revision, nil
}

func (s *RentService) snapshot(ctx context.Context, leaseID int) (*models.Lease, []models.RentRevision, []models.Payment, []models.Charge, error) {
	lease, err := s.store.GetLease(ctx, leaseID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	revisions, err := s.store.FindRevisionsByLease(ctx, leaseID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	payments, err := s.store.FindPaymentsByLease(ctx, leaseID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	charges, err := s.store.FindChargesByLease(ctx, leaseID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return lease, revisions, payments, charges, nil
}
