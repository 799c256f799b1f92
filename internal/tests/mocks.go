package tests

import (
	"context"
	"sync"
	"sync/atomic"

	"greencart/internal/domain"
	"greencart/internal/redis"
	"greencart/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK DRIVER REPOSITORY
// ──────────────────────────────────────────────

// MockDriverRepository is a mock implementation of DriverRepository.
// Records are returned in insertion order, like the real store.
type MockDriverRepository struct {
	mu   sync.RWMutex
	docs []domain.RawRecord

	// Counters for verification
	GetAllCallCount int32

	// Error injection
	GetAllError error
}

// NewMockDriverRepository creates a new mock driver repository.
func NewMockDriverRepository() *MockDriverRepository {
	return &MockDriverRepository{}
}

// AddDriver adds a driver document to the mock repository.
func (m *MockDriverRepository) AddDriver(doc domain.RawRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = append(m.docs, doc)
}

func (m *MockDriverRepository) Create(ctx context.Context, id string, doc domain.RawRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	withID := domain.RawRecord{"id": id}
	for k, v := range doc {
		withID[k] = v
	}
	m.docs = append(m.docs, withID)
	return nil
}

func (m *MockDriverRepository) GetAll(ctx context.Context) ([]domain.RawRecord, error) {
	atomic.AddInt32(&m.GetAllCallCount, 1)
	if m.GetAllError != nil {
		return nil, m.GetAllError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.RawRecord(nil), m.docs...), nil
}

// ──────────────────────────────────────────────
// MOCK ROUTE REPOSITORY
// ──────────────────────────────────────────────

// MockRouteRepository is a mock implementation of RouteRepository.
type MockRouteRepository struct {
	mu   sync.RWMutex
	docs []domain.RawRecord

	GetAllError error
}

// NewMockRouteRepository creates a new mock route repository.
func NewMockRouteRepository() *MockRouteRepository {
	return &MockRouteRepository{}
}

// AddRoute adds a route document to the mock repository.
func (m *MockRouteRepository) AddRoute(doc domain.RawRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = append(m.docs, doc)
}

func (m *MockRouteRepository) Create(ctx context.Context, id string, doc domain.RawRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	withID := domain.RawRecord{"id": id}
	for k, v := range doc {
		withID[k] = v
	}
	m.docs = append(m.docs, withID)
	return nil
}

func (m *MockRouteRepository) GetAll(ctx context.Context) ([]domain.RawRecord, error) {
	if m.GetAllError != nil {
		return nil, m.GetAllError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.RawRecord(nil), m.docs...), nil
}

// ──────────────────────────────────────────────
// MOCK ORDER REPOSITORY
// ──────────────────────────────────────────────

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mu   sync.RWMutex
	docs []domain.RawRecord

	GetPendingError error
}

// NewMockOrderRepository creates a new mock order repository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{}
}

// AddOrder adds an order document to the mock repository.
func (m *MockOrderRepository) AddOrder(doc domain.RawRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = append(m.docs, doc)
}

func (m *MockOrderRepository) Create(ctx context.Context, id string, doc domain.RawRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	withID := domain.RawRecord{"id": id}
	for k, v := range doc {
		withID[k] = v
	}
	m.docs = append(m.docs, withID)
	return nil
}

// GetPending returns every stored document; tests seed only pending orders.
func (m *MockOrderRepository) GetPending(ctx context.Context) ([]domain.RawRecord, error) {
	if m.GetPendingError != nil {
		return nil, m.GetPendingError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.RawRecord(nil), m.docs...), nil
}

// ──────────────────────────────────────────────
// MOCK SIMULATION REPOSITORY
// ──────────────────────────────────────────────

// MockSimulationRepository is a mock implementation of SimulationRepository.
type MockSimulationRepository struct {
	mu      sync.RWMutex
	records []domain.SimulationRecord

	// Counters for verification
	SaveCallCount int32

	// Error injection
	SaveError       error
	ListRecentError error
}

// NewMockSimulationRepository creates a new mock simulation repository.
func NewMockSimulationRepository() *MockSimulationRepository {
	return &MockSimulationRepository{}
}

func (m *MockSimulationRepository) Save(ctx context.Context, rec *domain.SimulationRecord) error {
	atomic.AddInt32(&m.SaveCallCount, 1)
	if m.SaveError != nil {
		return m.SaveError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	// Most recent first, like the real ListRecent ordering.
	m.records = append([]domain.SimulationRecord{*rec}, m.records...)
	return nil
}

func (m *MockSimulationRepository) ListRecent(ctx context.Context, limit int) ([]domain.SimulationRecord, error) {
	if m.ListRecentError != nil {
		return nil, m.ListRecentError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if limit > len(m.records) {
		limit = len(m.records)
	}
	return append([]domain.SimulationRecord(nil), m.records[:limit]...), nil
}

// SavedCount returns how many records the mock holds.
func (m *MockSimulationRepository) SavedCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// ──────────────────────────────────────────────
// MOCK RESULT CACHE
// ──────────────────────────────────────────────

// MockResultCache is a mock implementation of ResultCacheInterface.
type MockResultCache struct {
	mu     sync.RWMutex
	latest *domain.SimulationRecord

	SetLatestCallCount int32

	SetLatestError error
	GetLatestError error
}

// NewMockResultCache creates a new mock result cache.
func NewMockResultCache() *MockResultCache {
	return &MockResultCache{}
}

func (m *MockResultCache) SetLatest(ctx context.Context, rec *domain.SimulationRecord) error {
	atomic.AddInt32(&m.SetLatestCallCount, 1)
	if m.SetLatestError != nil {
		return m.SetLatestError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *rec
	m.latest = &copy
	return nil
}

func (m *MockResultCache) GetLatest(ctx context.Context) (*domain.SimulationRecord, error) {
	if m.GetLatestError != nil {
		return nil, m.GetLatestError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.latest == nil {
		return nil, nil // Cache miss
	}
	copy := *m.latest
	return &copy, nil
}

func (m *MockResultCache) InvalidateLatest(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latest = nil
	return nil
}

// Interface assertions.
var (
	_ repository.DriverRepository     = (*MockDriverRepository)(nil)
	_ repository.RouteRepository      = (*MockRouteRepository)(nil)
	_ repository.OrderRepository      = (*MockOrderRepository)(nil)
	_ repository.SimulationRepository = (*MockSimulationRepository)(nil)
	_ redis.ResultCacheInterface      = (*MockResultCache)(nil)
)
