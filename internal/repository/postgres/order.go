package postgres

import (
	"context"
	"database/sql"

	"greencart/internal/domain"
)

// OrderRepository is a PostgreSQL implementation of repository.OrderRepository.
type OrderRepository struct {
	q Querier
}

// NewOrderRepository creates a new PostgreSQL order repository.
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{q: db}
}

// Create stores an order document.
func (r *OrderRepository) Create(ctx context.Context, id string, doc domain.RawRecord) error {
	return insertDoc(ctx, r.q, "orders", id, doc)
}

// GetPending retrieves all orders still eligible for assignment, in
// insertion order.
func (r *OrderRepository) GetPending(ctx context.Context) ([]domain.RawRecord, error) {
	query := `SELECT id, doc FROM orders
		WHERE doc->>'status' IN ('pending', 'new', 'unassigned')
		ORDER BY seq`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return scanDocs(rows)
}
