package repository

import (
	"context"

	"greencart/internal/domain"
)

// OrderRepository defines the persistence operations for order records.
type OrderRepository interface {
	// Create stores an order document under the given id.
	Create(ctx context.Context, id string, doc domain.RawRecord) error

	// GetPending retrieves the documents of all orders still eligible for
	// assignment (status pending, new or unassigned), in persisted order.
	GetPending(ctx context.Context) ([]domain.RawRecord, error)
}
