package postgres

import (
	"context"
	"database/sql"

	"greencart/internal/domain"
)

// RouteRepository is a PostgreSQL implementation of repository.RouteRepository.
type RouteRepository struct {
	q Querier
}

// NewRouteRepository creates a new PostgreSQL route repository.
func NewRouteRepository(db *sql.DB) *RouteRepository {
	return &RouteRepository{q: db}
}

// Create stores a route document.
func (r *RouteRepository) Create(ctx context.Context, id string, doc domain.RawRecord) error {
	return insertDoc(ctx, r.q, "routes", id, doc)
}

// GetAll retrieves all route documents in insertion order.
func (r *RouteRepository) GetAll(ctx context.Context) ([]domain.RawRecord, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, doc FROM routes ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	return scanDocs(rows)
}
