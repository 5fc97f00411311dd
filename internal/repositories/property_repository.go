package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rental-backend/internal/models"
)

// ErrPropertyNotFound is returned when a property id matches no row.
var ErrPropertyNotFound = errors.New("property not found")

type PropertyRepository struct {
	DB *pgxpool.Pool
}

func NewPropertyRepository(db *pgxpool.Pool) *PropertyRepository {
	return &PropertyRepository{DB: db}
}

func (r *PropertyRepository) GetProperty(ctx context.Context, id int) (*models.Property, error) {
	query := `
		SELECT id, building_id, label, floor_area_sqm, created_at
		FROM properties
		WHERE id = $1
	`

	property := &models.Property{}
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&property.ID,
		&property.BuildingID,
		&property.Label,
		&property.FloorArea,
		&property.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get property %d: %w", id, err)
	}

	return property, nil
}

func (r *PropertyRepository) FindPropertiesByBuilding(ctx context.Context, buildingID int) ([]models.Property, error) {
	query := `
		SELECT id, building_id, label, floor_area_sqm, created_at
		FROM properties
		WHERE building_id = $1
		ORDER BY id ASC
	`

	rows, err := r.DB.Query(ctx, query, buildingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []models.Property
	for rows.Next() {
		var p models.Property
		err := rows.Scan(&p.ID, &p.BuildingID, &p.Label, &p.FloorArea, &p.CreatedAt)
		if err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}

	return properties, rows.Err()
}
