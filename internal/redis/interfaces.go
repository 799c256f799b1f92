package redis

import (
	"context"

	"greencart/internal/domain"
)

// ResultCacheInterface defines the interface for simulation result caching.
type ResultCacheInterface interface {
	SetLatest(ctx context.Context, rec *domain.SimulationRecord) error
	GetLatest(ctx context.Context) (*domain.SimulationRecord, error)
	InvalidateLatest(ctx context.Context) error
}

// Ensure concrete types implement interfaces.
var _ ResultCacheInterface = (*ResultCache)(nil)
