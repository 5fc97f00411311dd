package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"rental-backend/internal/models"
)

type ChargeShareRepository struct {
	DB *pgxpool.Pool
}

func NewChargeShareRepository(db *pgxpool.Pool) *ChargeShareRepository {
	return &ChargeShareRepository{DB: db}
}

// UpsertShare sets a property's percentage for a category, keyed by
// (property, category). Re-running with the same values is a no-op.
func (r *ChargeShareRepository) UpsertShare(ctx context.Context, share *models.PropertyChargeShare) error {
	query := `
		INSERT INTO property_charge_shares (property_id, category, percentage, updated_at)
		VALUES ($1, $2, $3::numeric, NOW())
		ON CONFLICT (property_id, category)
		DO UPDATE SET percentage = EXCLUDED.percentage, updated_at = NOW()
		RETURNING id, updated_at
	`

	err := r.DB.QueryRow(ctx, query,
		share.PropertyID,
		share.Category,
		share.Percentage.String(),
	).Scan(&share.ID, &share.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert charge share: %w", err)
	}

	return nil
}

func (r *ChargeShareRepository) FindSharesByProperty(ctx context.Context, propertyID int) ([]models.PropertyChargeShare, error) {
	query := `
		SELECT id, property_id, category, percentage::text, updated_at
		FROM property_charge_shares
		WHERE property_id = $1
		ORDER BY category ASC
	`

	return r.queryShares(ctx, query, propertyID)
}

// FindSharesByBuilding returns the share rows of every property in the
// building, the input the settlement engine validates against 100%.
func (r *ChargeShareRepository) FindSharesByBuilding(ctx context.Context, buildingID int) ([]models.PropertyChargeShare, error) {
	query := `
		SELECT s.id, s.property_id, s.category, s.percentage::text, s.updated_at
		FROM property_charge_shares s
		JOIN properties p ON p.id = s.property_id
		WHERE p.building_id = $1
		ORDER BY s.property_id ASC, s.category ASC
	`

	return r.queryShares(ctx, query, buildingID)
}

func (r *ChargeShareRepository) queryShares(ctx context.Context, query string, arg interface{}) ([]models.PropertyChargeShare, error) {
	rows, err := r.DB.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shares []models.PropertyChargeShare
	for rows.Next() {
		var s models.PropertyChargeShare
		err := rows.Scan(&s.ID, &s.PropertyID, &s.Category, &s.Percentage, &s.UpdatedAt)
		if err != nil {
			return nil, err
		}
		shares = append(shares, s)
	}

	return shares, rows.Err()
}
