package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"greencart/internal/domain"
	"greencart/internal/redis"
	"greencart/internal/repository"
)

// DefaultHistoryLimit caps how many history records a listing returns.
const DefaultHistoryLimit = 50

// SimulationService runs fleet simulations over the persisted driver, route
// and order records.
type SimulationService struct {
	driverRepo   repository.DriverRepository
	routeRepo    repository.RouteRepository
	orderRepo    repository.OrderRepository
	simRepo      repository.SimulationRepository
	resultCache  redis.ResultCacheInterface
	historyLimit int
}

// NewSimulationService creates a new SimulationService. resultCache may be
// nil; caching is then skipped.
func NewSimulationService(
	driverRepo repository.DriverRepository,
	routeRepo repository.RouteRepository,
	orderRepo repository.OrderRepository,
	simRepo repository.SimulationRepository,
	resultCache redis.ResultCacheInterface,
) *SimulationService {
	return &SimulationService{
		driverRepo:   driverRepo,
		routeRepo:    routeRepo,
		orderRepo:    orderRepo,
		simRepo:      simRepo,
		resultCache:  resultCache,
		historyLimit: DefaultHistoryLimit,
	}
}

// SetHistoryLimit overrides how many records History returns.
func (s *SimulationService) SetHistoryLimit(n int) {
	if n > 0 {
		s.historyLimit = n
	}
}

// RunSimulation executes one full simulation run: validate, fetch, build
// driver state and the order queue, assign, aggregate. On success the
// {config, result} pair is persisted as history best-effort; a persistence
// failure never fails the run.
func (s *SimulationService) RunSimulation(ctx context.Context, cfg domain.SimulationConfig) (*domain.SimulationResult, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	// All data is fetched once up front; the engine never re-queries
	// mid-run and works on its own snapshot of driver state.
	rawDrivers, err := s.driverRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch drivers: %w", err)
	}
	if len(rawDrivers) == 0 {
		return nil, ErrNoDrivers
	}

	rawRoutes, err := s.routeRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch routes: %w", err)
	}
	rawOrders, err := s.orderRepo.GetPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}

	drivers := make([]domain.Driver, 0, len(rawDrivers))
	for _, rec := range rawDrivers {
		drivers = append(drivers, NormalizeDriver(rec))
	}

	states := BuildDriverStates(drivers, cfg.NumberOfDrivers, cfg.MaxHoursPerDriver)
	tasks := BuildOrderQueue(rawOrders, rawRoutes)

	// The pool is a separate slice over the same states: the engine
	// re-sorts it freely while the snapshot keeps persisted order.
	pool := append([]*domain.DriverState(nil), states...)
	outcomes := AssignOrders(tasks, pool, cfg)

	result := BuildResult(outcomes, states, cfg.NumberOfDrivers, len(rawDrivers))
	log.Printf("simulation run: requested=%d available=%d used=%d onTime=%d late=%d unassigned=%d unresolved=%d",
		cfg.NumberOfDrivers, len(rawDrivers), result.Meta.UsedDrivers,
		result.OnTime, result.Late, result.Meta.UnassignedOrdersCount, result.Meta.UnresolvedOrdersCount)

	rec := &domain.SimulationRecord{
		ID:        uuid.New().String(),
		Config:    cfg,
		Result:    result,
		CreatedAt: time.Now(),
	}
	if err := s.simRepo.Save(ctx, rec); err != nil {
		// The result is still valid; history is best-effort.
		log.Printf("save simulation history failed: %v", err)
	}
	if s.resultCache != nil {
		if err := s.resultCache.SetLatest(ctx, rec); err != nil {
			log.Printf("cache simulation result failed: %v", err)
		}
	}

	return &result, nil
}

// History returns recent simulation records, most recent first.
func (s *SimulationService) History(ctx context.Context) ([]domain.SimulationRecord, error) {
	return s.simRepo.ListRecent(ctx, s.historyLimit)
}

// Latest returns the most recent simulation record, preferring the cache.
// Returns repository.ErrNotFound when no run has happened yet.
func (s *SimulationService) Latest(ctx context.Context) (*domain.SimulationRecord, error) {
	if s.resultCache != nil {
		rec, err := s.resultCache.GetLatest(ctx)
		if err != nil {
			log.Printf("read cached simulation result failed: %v", err)
		} else if rec != nil {
			return rec, nil
		}
	}

	recs, err := s.simRepo.ListRecent(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, repository.ErrNotFound
	}
	return &recs[0], nil
}

// validateConfig collects every offending config field into one report.
// routeStartTime is validated but deliberately enters no computation.
func validateConfig(cfg domain.SimulationConfig) error {
	fields := make(map[string]string)
	if cfg.NumberOfDrivers <= 0 {
		fields["numberOfDrivers"] = "must be positive integer"
	}
	if _, ok := ClockToMinutes(cfg.RouteStartTime); !ok {
		fields["routeStartTime"] = "must be HH:MM"
	}
	if math.IsNaN(cfg.MaxHoursPerDriver) || cfg.MaxHoursPerDriver <= 0 {
		fields["maxHoursPerDriver"] = "must be positive number"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
