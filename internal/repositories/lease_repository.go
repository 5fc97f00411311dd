package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rental-backend/internal/ledger"
	"rental-backend/internal/models"
)

type LeaseRepository struct {
	DB *pgxpool.Pool
}

func NewLeaseRepository(db *pgxpool.Pool) *LeaseRepository {
	return &LeaseRepository{DB: db}
}

func (r *LeaseRepository) GetLease(ctx context.Context, id int) (*models.Lease, error) {
	query := `
		SELECT id, property_id, tenant_name, start_date, end_date,
		       rent_amount::text, charges_amount::text, payment_due_day, created_at
		FROM leases
		WHERE id = $1
	`

	lease := &models.Lease{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&lease.ID,
		&lease.PropertyID,
		&lease.TenantName,
		&lease.StartDate,
		&lease.EndDate,
		&lease.RentAmount,
		&lease.ChargesAmount,
		&lease.PaymentDueDay,
		&lease.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ledger.ErrLeaseNotFound
	}
	if err != nil {
		return nil, err
	}

	return lease, nil
}

func (r *LeaseRepository) FindRevisionsByLease(ctx context.Context, leaseID int) ([]models.RentRevision, error) {
	query := `
		SELECT id, lease_id, effective_date, rent_amount::text, charges_amount::text,
		       COALESCE(reason, ''), created_at
		FROM rent_revisions
		WHERE lease_id = $1
		ORDER BY effective_date ASC, id ASC
	`

	rows, err := r.DB.Query(ctx, query, leaseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var revisions []models.RentRevision
	for rows.Next() {
		var rev models.RentRevision
		err := rows.Scan(
			&rev.ID,
			&rev.LeaseID,
			&rev.EffectiveDate,
			&rev.RentAmount,
			&rev.ChargesAmount,
			&rev.Reason,
			&rev.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		revisions = append(revisions, rev)
	}

	return revisions, rows.Err()
}

func (r *LeaseRepository) FindPaymentsByLease(ctx context.Context, leaseID int) ([]models.Payment, error) {
	query := `
		SELECT id, lease_id, amount::text, payment_date, COALESCE(notes, ''), created_at
		FROM payments
		WHERE lease_id = $1
		ORDER BY payment_date ASC, id ASC
	`

	rows, err := r.DB.Query(ctx, query, leaseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		err := rows.Scan(&p.ID, &p.LeaseID, &p.Amount, &p.PaymentDate, &p.Notes, &p.CreatedAt)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}

func (r *LeaseRepository) FindChargesByLease(ctx context.Context, leaseID int) ([]models.Charge, error) {
	query := `
		SELECT id, lease_id, label, amount::text, charge_date, created_at
		FROM charges
		WHERE lease_id = $1
		ORDER BY charge_date ASC, id ASC
	`

	rows, err := r.DB.Query(ctx, query, leaseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var charges []models.Charge
	for rows.Next() {
		var c models.Charge
		err := rows.Scan(&c.ID, &c.LeaseID, &c.Label, &c.Amount, &c.ChargeDate, &c.CreatedAt)
		if err != nil {
			return nil, err
		}
		charges = append(charges, c)
	}

	return charges, rows.Err()
}

func (r *LeaseRepository) CreateRevision(ctx context.Context, revision *models.RentRevision) error {
	query := `
		INSERT INTO rent_revisions (lease_id, effective_date, rent_amount, charges_amount, reason)
		VALUES ($1, $2, $3::numeric, $4::numeric, $5)
		RETURNING id, created_at
	`

	err := r.DB.QueryRow(ctx, query,
		revision.LeaseID,
		revision.EffectiveDate,
		revision.RentAmount.String(),
		revision.ChargesAmount.String(),
		revision.Reason,
	).Scan(&revision.ID, &revision.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create rent revision: %w", err)
	}

	return nil
}
