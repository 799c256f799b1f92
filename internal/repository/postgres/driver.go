package postgres

import (
	"context"
	"database/sql"

	"greencart/internal/domain"
)

// DriverRepository is a PostgreSQL implementation of repository.DriverRepository.
type DriverRepository struct {
	q Querier
}

// NewDriverRepository creates a new PostgreSQL driver repository.
func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{q: db}
}

// Create stores a driver document.
func (r *DriverRepository) Create(ctx context.Context, id string, doc domain.RawRecord) error {
	return insertDoc(ctx, r.q, "drivers", id, doc)
}

// GetAll retrieves all driver documents in insertion order.
func (r *DriverRepository) GetAll(ctx context.Context) ([]domain.RawRecord, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, doc FROM drivers ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	return scanDocs(rows)
}
