package repository

import (
	"context"

	"greencart/internal/domain"
)

// RouteRepository defines the persistence operations for route records.
type RouteRepository interface {
	// Create stores a route document under the given id.
	Create(ctx context.Context, id string, doc domain.RawRecord) error

	// GetAll retrieves all route documents in persisted order.
	GetAll(ctx context.Context) ([]domain.RawRecord, error)
}
