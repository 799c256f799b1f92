package repository

import (
	"context"

	"greencart/internal/domain"
)

// SimulationRepository defines the persistence operations for run history.
type SimulationRepository interface {
	// Save persists a {config, result} history record.
	Save(ctx context.Context, rec *domain.SimulationRecord) error

	// ListRecent retrieves up to limit history records, most recent first.
	ListRecent(ctx context.Context, limit int) ([]domain.SimulationRecord, error)
}
