package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"greencart/internal/domain"
)

// ResultCache keeps the most recent simulation record in Redis so the
// latest-result endpoint does not have to hit Postgres on every dashboard
// poll. The database history remains the source of truth.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

// DefaultResultTTL bounds how long a cached result can be served once runs
// stop happening.
const DefaultResultTTL = 5 * time.Minute

const latestResultKey = "cache:simulation:latest"

// NewResultCache creates a new ResultCache. A ttl of 0 uses the default.
func NewResultCache(client *redis.Client, ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = DefaultResultTTL
	}
	return &ResultCache{client: client, ttl: ttl}
}

// SetLatest stores the record as the latest run.
func (c *ResultCache) SetLatest(ctx context.Context, rec *domain.SimulationRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, latestResultKey, data, c.ttl).Err()
}

// GetLatest retrieves the latest run, or nil on a cache miss.
func (c *ResultCache) GetLatest(ctx context.Context) (*domain.SimulationRecord, error) {
	data, err := c.client.Get(ctx, latestResultKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var rec domain.SimulationRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// InvalidateLatest drops the cached record.
func (c *ResultCache) InvalidateLatest(ctx context.Context) error {
	return c.client.Del(ctx, latestResultKey).Err()
}
