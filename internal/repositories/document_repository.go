package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"rental-backend/internal/models"
)

type DocumentRepository struct {
	DB *pgxpool.Pool
}

func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{DB: db}
}

// FindDocumentsByBuilding returns every financial document of a building
// dated inside [from, to], included in charges or not; the settlement engine
// applies its own inclusion filter.
func (r *DocumentRepository) FindDocumentsByBuilding(ctx context.Context, buildingID int, from, to time.Time) ([]models.FinancialDocument, error) {
	query := `
		SELECT id, building_id, category, COALESCE(label, ''), document_date,
		       amount::text, is_included_in_charges, water_consumption::text, created_at
		FROM financial_documents
		WHERE building_id = $1
		  AND document_date >= $2
		  AND document_date <= $3
		ORDER BY document_date ASC, id ASC
	`

	rows, err := r.DB.Query(ctx, query, buildingID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var documents []models.FinancialDocument
	for rows.Next() {
		var d models.FinancialDocument
		err := rows.Scan(
			&d.ID,
			&d.BuildingID,
			&d.Category,
			&d.Label,
			&d.DocumentDate,
			&d.Amount,
			&d.IsIncludedInCharges,
			&d.WaterConsumption,
			&d.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		documents = append(documents, d)
	}

	return documents, rows.Err()
}
