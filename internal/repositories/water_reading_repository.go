package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rental-backend/internal/models"
)

type WaterReadingRepository struct {
	DB *pgxpool.Pool
}

func NewWaterReadingRepository(db *pgxpool.Pool) *WaterReadingRepository {
	return &WaterReadingRepository{DB: db}
}

func (r *WaterReadingRepository) CreateReading(ctx context.Context, reading *models.WaterMeterReading) error {
	query := `
		INSERT INTO water_meter_readings (property_id, reading_date, meter_reading)
		VALUES ($1, $2, $3::numeric)
		RETURNING id, created_at
	`

	err := r.DB.QueryRow(ctx, query,
		reading.PropertyID,
		reading.ReadingDate,
		reading.MeterReading.String(),
	).Scan(&reading.ID, &reading.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create water meter reading: %w", err)
	}

	return nil
}

func (r *WaterReadingRepository) FindReadingsByProperty(ctx context.Context, propertyID int) ([]models.WaterMeterReading, error) {
	query := `
		SELECT id, property_id, reading_date, meter_reading::text, created_at
		FROM water_meter_readings
		WHERE property_id = $1
		ORDER BY reading_date ASC, id ASC
	`

	rows, err := r.DB.Query(ctx, query, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReadings(rows)
}

// FindReadingsByBuilding returns readings for every property of the
// building, keyed by property id. Properties without any reading map to an
// empty slice so the allocator can flag them.
func (r *WaterReadingRepository) FindReadingsByBuilding(ctx context.Context, buildingID int) (map[int][]models.WaterMeterReading, error) {
	propQuery := `SELECT id FROM properties WHERE building_id = $1`
	rows, err := r.DB.Query(ctx, propQuery, buildingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byProperty := make(map[int][]models.WaterMeterReading)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		byProperty[id] = []models.WaterMeterReading{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	readQuery := `
		SELECT w.id, w.property_id, w.reading_date, w.meter_reading::text, w.created_at
		FROM water_meter_readings w
		JOIN properties p ON p.id = w.property_id
		WHERE p.building_id = $1
		ORDER BY w.reading_date ASC, w.id ASC
	`
	readingRows, err := r.DB.Query(ctx, readQuery, buildingID)
	if err != nil {
		return nil, err
	}
	defer readingRows.Close()

	readings, err := scanReadings(readingRows)
	if err != nil {
		return nil, err
	}
	for _, reading := range readings {
		byProperty[reading.PropertyID] = append(byProperty[reading.PropertyID], reading)
	}

	return byProperty, nil
}

func scanReadings(rows pgx.Rows) ([]models.WaterMeterReading, error) {
	var readings []models.WaterMeterReading
	for rows.Next() {
		var w models.WaterMeterReading
		err := rows.Scan(&w.ID, &w.PropertyID, &w.ReadingDate, &w.MeterReading, &w.CreatedAt)
		if err != nil {
			return nil, err
		}
		readings = append(readings, w)
	}
	return readings, rows.Err()
}
