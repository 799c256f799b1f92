package repository

import (
	"context"

	"greencart/internal/domain"
)

// DriverRepository defines the persistence operations for driver records.
type DriverRepository interface {
	// Create stores a driver document under the given id.
	Create(ctx context.Context, id string, doc domain.RawRecord) error

	// GetAll retrieves all driver documents in persisted order.
	GetAll(ctx context.Context) ([]domain.RawRecord, error)
}
