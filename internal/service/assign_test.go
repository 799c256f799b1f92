package service

import (
	"testing"

	"greencart/internal/domain"
)

func freshDriver(id, name string, remaining float64) *domain.DriverState {
	return &domain.DriverState{
		ID:              id,
		Name:            name,
		RemainingHours:  remaining,
		SpeedMultiplier: 1.0,
	}
}

func orderTask(id string, value float64, route *domain.Route, durationMin float64) *domain.OrderTask {
	return &domain.OrderTask{
		Order:       domain.Order{ID: id, ValueRs: value},
		Route:       route,
		DurationMin: durationMin,
	}
}

func lowRoute() *domain.Route {
	return &domain.Route{RouteID: "R1", DistanceKm: 10, TrafficLevel: "Low", BaseTimeMinutes: 30}
}

func TestAssignOrders_SingleDriverBaseline(t *testing.T) {
	pool := []*domain.DriverState{freshDriver("d1", "Amit", 8)}
	tasks := []*domain.OrderTask{orderTask("O1", 1000, lowRoute(), 30)}
	cfg := domain.SimulationConfig{NumberOfDrivers: 1, MaxHoursPerDriver: 8}

	out := AssignOrders(tasks, pool, cfg)

	if out.OnTime != 1 || out.Late != 0 {
		t.Fatalf("counts = onTime %d late %d, want 1/0", out.OnTime, out.Late)
	}
	if out.TotalProfit != 950 {
		t.Errorf("TotalProfit = %v, want 950", out.TotalProfit)
	}

	detail := out.Details[0]
	if detail.DeliveryTimeMinutes != 30 || detail.FuelCost != 50 || detail.Bonus != 0 || detail.Penalty != 0 {
		t.Errorf("detail = %+v", detail)
	}
	if detail.OrderProfit != 950 {
		t.Errorf("OrderProfit = %v, want 950", detail.OrderProfit)
	}

	a := out.Assignments["O1"]
	if len(a.AssignedTo) != 1 || a.AssignedTo[0].DriverID != "d1" || a.AssignedTo[0].Minutes != 30 {
		t.Errorf("assignment = %+v", a)
	}

	if pool[0].RemainingHours != 7.5 {
		t.Errorf("RemainingHours = %v, want 7.5", pool[0].RemainingHours)
	}
}

func TestAssignOrders_FatiguedDriverRunsLate(t *testing.T) {
	d := freshDriver("d1", "Amit", 8)
	d.Fatigued = true
	d.SpeedMultiplier = 0.7
	pool := []*domain.DriverState{d}
	tasks := []*domain.OrderTask{orderTask("O1", 1000, lowRoute(), 30)}
	cfg := domain.SimulationConfig{NumberOfDrivers: 1, MaxHoursPerDriver: 8}

	out := AssignOrders(tasks, pool, cfg)

	if out.Late != 1 || out.OnTime != 0 {
		t.Fatalf("counts = onTime %d late %d, want 0/1", out.OnTime, out.Late)
	}
	detail := out.Details[0]
	if !detail.IsLate {
		t.Error("expected late delivery at 0.7 speed")
	}
	if detail.DeliveryTimeMinutes != 42.86 {
		t.Errorf("DeliveryTimeMinutes = %v, want 42.86", detail.DeliveryTimeMinutes)
	}
	if detail.Penalty != 50 {
		t.Errorf("Penalty = %v, want 50", detail.Penalty)
	}
	if out.TotalProfit != 900 {
		t.Errorf("TotalProfit = %v, want 900", out.TotalProfit)
	}
}

func TestAssignOrders_HighTrafficFuelSurcharge(t *testing.T) {
	route := &domain.Route{RouteID: "R2", DistanceKm: 10, TrafficLevel: "hIgH", BaseTimeMinutes: 30}
	pool := []*domain.DriverState{freshDriver("d1", "Amit", 8)}
	tasks := []*domain.OrderTask{orderTask("O1", 2000, route, 30)}
	cfg := domain.SimulationConfig{NumberOfDrivers: 1, MaxHoursPerDriver: 8}

	out := AssignOrders(tasks, pool, cfg)

	detail := out.Details[0]
	if detail.FuelCost != 70 {
		t.Errorf("FuelCost = %v, want 70 with surcharge", detail.FuelCost)
	}
	// 2000 + 200 bonus - 70 fuel
	if detail.OrderProfit != 2130 {
		t.Errorf("OrderProfit = %v, want 2130", detail.OrderProfit)
	}
}

func TestAssignOrders_PrefersAlreadyUsedDriver(t *testing.T) {
	a := freshDriver("d1", "Amit", 8)
	b := freshDriver("d2", "Priya", 7.8)
	pool := []*domain.DriverState{a, b}
	tasks := []*domain.OrderTask{
		orderTask("O1", 500, lowRoute(), 30),
		orderTask("O2", 500, lowRoute(), 30),
	}
	cfg := domain.SimulationConfig{NumberOfDrivers: 2, MaxHoursPerDriver: 8}

	out := AssignOrders(tasks, pool, cfg)

	// After O1 drops Amit to 7.5h, Priya has more capacity, but the used
	// driver still absorbs O2.
	for _, id := range []string{"O1", "O2"} {
		got := out.Assignments[id].AssignedTo[0].DriverID
		if got != "d1" {
			t.Errorf("order %s assigned to %s, want d1", id, got)
		}
	}
	if len(b.AssignedOrderIDs) != 0 {
		t.Errorf("idle driver picked up orders: %v", b.AssignedOrderIDs)
	}
}

func TestAssignOrders_FirstTouchCapBlocksIdleDrivers(t *testing.T) {
	a := freshDriver("d1", "Amit", 0.5)
	b := freshDriver("d2", "Priya", 8)
	pool := []*domain.DriverState{a, b}
	tasks := []*domain.OrderTask{
		orderTask("O1", 500, lowRoute(), 30),
		orderTask("O2", 500, lowRoute(), 30),
	}
	cfg := domain.SimulationConfig{NumberOfDrivers: 1, MaxHoursPerDriver: 8}

	out := AssignOrders(tasks, pool, cfg)

	// Only one driver may ever be activated. Priya takes both orders and
	// Amit is never touched.
	if countUsed(pool) != 1 {
		t.Fatalf("used drivers = %d, want 1", countUsed(pool))
	}
	if len(a.AssignedOrderIDs) != 0 {
		t.Errorf("capped-out driver got orders: %v", a.AssignedOrderIDs)
	}
	if out.Unassigned != 0 {
		t.Errorf("Unassigned = %d, want 0", out.Unassigned)
	}
}

func TestAssignOrders_NoCapacityCountsLate(t *testing.T) {
	pool := []*domain.DriverState{freshDriver("d1", "Amit", 0.25)}
	tasks := []*domain.OrderTask{orderTask("O1", 800, lowRoute(), 30)}
	cfg := domain.SimulationConfig{NumberOfDrivers: 1, MaxHoursPerDriver: 8}

	out := AssignOrders(tasks, pool, cfg)

	if out.Unassigned != 1 || out.Late != 1 || out.OnTime != 0 {
		t.Fatalf("unassigned %d late %d onTime %d", out.Unassigned, out.Late, out.OnTime)
	}
	if out.Assignments["O1"].Reason != domain.ReasonNoCapacity {
		t.Errorf("reason = %q", out.Assignments["O1"].Reason)
	}

	// Zero profit, but penalty and fuel still appear in the report.
	detail := out.Details[0]
	if detail.OrderProfit != 0 || detail.Penalty != 50 || detail.FuelCost != 50 {
		t.Errorf("detail = %+v", detail)
	}
	if out.TotalProfit != 0 {
		t.Errorf("TotalProfit = %v, want 0", out.TotalProfit)
	}
}

func TestAssignOrders_UnresolvedRouteCountsLate(t *testing.T) {
	pool := []*domain.DriverState{freshDriver("d1", "Amit", 8)}
	tasks := []*domain.OrderTask{{
		Order:       domain.Order{ID: "O1", ValueRs: 800},
		Route:       nil,
		DurationMin: 0,
	}}
	cfg := domain.SimulationConfig{NumberOfDrivers: 1, MaxHoursPerDriver: 8}

	out := AssignOrders(tasks, pool, cfg)

	if out.Unresolved != 1 || out.Late != 1 {
		t.Fatalf("unresolved %d late %d", out.Unresolved, out.Late)
	}
	if out.Assignments["O1"].Reason != domain.ReasonUnresolvedRoute {
		t.Errorf("reason = %q", out.Assignments["O1"].Reason)
	}
	if out.TotalProfit != 0 {
		t.Errorf("TotalProfit = %v, want no contribution", out.TotalProfit)
	}
	if pool[0].RemainingHours != 8 {
		t.Errorf("driver capacity touched: %v", pool[0].RemainingHours)
	}
}

func TestAssignOrders_OvertimeExtendsCapacity(t *testing.T) {
	task := orderTask("O1", 500, &domain.Route{RouteID: "R1", DistanceKm: 5, TrafficLevel: "Low", BaseTimeMinutes: 66}, 66)

	pool := []*domain.DriverState{freshDriver("d1", "Amit", 1)}
	cfg := domain.SimulationConfig{NumberOfDrivers: 1, MaxHoursPerDriver: 8}
	out := AssignOrders([]*domain.OrderTask{task}, pool, cfg)
	if out.Unassigned != 1 {
		t.Fatalf("66min order fit into 60 usable minutes without overtime")
	}

	pool = []*domain.DriverState{freshDriver("d1", "Amit", 1)}
	cfg.OvertimePercent = 10
	out = AssignOrders([]*domain.OrderTask{orderTask("O1", 500, task.Route, 66)}, pool, cfg)
	if out.Unassigned != 0 || out.OnTime+out.Late != 1 {
		t.Fatalf("overtime did not extend capacity: %+v", out)
	}
}

func TestAssignOrders_SplitAcrossDrivers(t *testing.T) {
	route := &domain.Route{RouteID: "R4", DistanceKm: 25, TrafficLevel: "High", BaseTimeMinutes: 90}
	a := freshDriver("d1", "Amit", 5)
	b := freshDriver("d2", "Priya", 5)
	pool := []*domain.DriverState{a, b}
	tasks := []*domain.OrderTask{orderTask("O1", 2200, route, 600)}
	cfg := domain.SimulationConfig{NumberOfDrivers: 2, MaxHoursPerDriver: 5, AllowSplitOrders: true}

	out := AssignOrders(tasks, pool, cfg)

	if out.OnTime != 1 {
		t.Fatalf("split order not delivered: %+v", out)
	}
	shares := out.Assignments["O1"].AssignedTo
	if len(shares) != 2 {
		t.Fatalf("shares = %+v, want 2 drivers", shares)
	}
	if shares[0].Minutes+shares[1].Minutes != 600 {
		t.Errorf("share minutes = %d + %d, want 600 total", shares[0].Minutes, shares[1].Minutes)
	}

	detail := out.Details[0]
	if detail.DeliveryTimeMinutes != 90 {
		t.Errorf("DeliveryTimeMinutes = %v, want nominal route time", detail.DeliveryTimeMinutes)
	}
	if detail.Driver != "Amit, Priya" && detail.Driver != "Priya, Amit" {
		t.Errorf("Driver = %q", detail.Driver)
	}
	// 2200 + 220 bonus - 175 fuel (25km high traffic)
	if detail.OrderProfit != 2245 {
		t.Errorf("OrderProfit = %v, want 2245", detail.OrderProfit)
	}
}

func TestAssignOrders_SplitLatenessFromTimeWindow(t *testing.T) {
	pickup, deadline := 600, 500
	task := orderTask("O1", 2200, lowRoute(), 400)
	task.Order.PickupMin = &pickup
	task.Order.DeadlineMin = &deadline

	pool := []*domain.DriverState{freshDriver("d1", "Amit", 4), freshDriver("d2", "Priya", 4)}
	cfg := domain.SimulationConfig{NumberOfDrivers: 2, MaxHoursPerDriver: 4, AllowSplitOrders: true}

	out := AssignOrders([]*domain.OrderTask{task}, pool, cfg)

	if out.Late != 1 {
		t.Fatalf("expected late split delivery, got %+v", out)
	}
	detail := out.Details[0]
	if !detail.IsLate || detail.Penalty != 50 || detail.Bonus != 0 {
		t.Errorf("detail = %+v", detail)
	}
}

func TestAssignOrders_SplitShortfallKeepsDrainedCapacity(t *testing.T) {
	a := freshDriver("d1", "Amit", 5)
	b := freshDriver("d2", "Priya", 5)
	pool := []*domain.DriverState{a, b}
	tasks := []*domain.OrderTask{orderTask("O1", 900, lowRoute(), 700)}
	cfg := domain.SimulationConfig{NumberOfDrivers: 2, MaxHoursPerDriver: 5, AllowSplitOrders: true}

	out := AssignOrders(tasks, pool, cfg)

	if out.Unassigned != 1 || out.Late != 1 {
		t.Fatalf("unassigned %d late %d", out.Unassigned, out.Late)
	}

	// Partial drains stay spent and the shares stay on record.
	if a.RemainingHours != 0 || b.RemainingHours != 0 {
		t.Errorf("capacity rolled back: %v / %v", a.RemainingHours, b.RemainingHours)
	}
	assignment := out.Assignments["O1"]
	if assignment.Reason != domain.ReasonNoCapacity {
		t.Errorf("reason = %q", assignment.Reason)
	}
	if len(assignment.AssignedTo) != 2 {
		t.Errorf("partial shares = %+v, want both drivers on record", assignment.AssignedTo)
	}
}

func TestAssignOrders_RemainingHoursNeverNegative(t *testing.T) {
	pool := []*domain.DriverState{
		freshDriver("d1", "Amit", 1.2),
		freshDriver("d2", "Priya", 0.6),
	}
	route := &domain.Route{RouteID: "R1", DistanceKm: 3, TrafficLevel: "Low", BaseTimeMinutes: 35}
	tasks := []*domain.OrderTask{
		orderTask("O1", 300, route, 35),
		orderTask("O2", 300, route, 35),
		orderTask("O3", 300, route, 35),
	}
	cfg := domain.SimulationConfig{NumberOfDrivers: 2, MaxHoursPerDriver: 2, AllowSplitOrders: true}

	AssignOrders(tasks, pool, cfg)

	for _, d := range pool {
		if d.RemainingHours < 0 {
			t.Errorf("driver %s remaining hours negative: %v", d.ID, d.RemainingHours)
		}
	}
}

func TestBuildResult_Aggregates(t *testing.T) {
	states := []*domain.DriverState{
		{ID: "d1", Name: "Amit", RemainingHours: 7.504, AssignedOrderIDs: []string{"O1", "O2"}},
		{ID: "d2", Name: "Priya", RemainingHours: 8, SpeedMultiplier: 1},
	}
	out := &AssignmentOutcomes{
		TotalProfit: 1900.014,
		OnTime:      3,
		Late:        1,
		Unassigned:  1,
		Assignments: map[string]domain.Assignment{},
	}

	result := BuildResult(out, states, 5, 2)

	if result.TotalDeliveries != 4 {
		t.Errorf("TotalDeliveries = %d, want 4", result.TotalDeliveries)
	}
	if result.Efficiency != 75 {
		t.Errorf("Efficiency = %v, want 75", result.Efficiency)
	}
	if result.TotalProfit != 1900.01 {
		t.Errorf("TotalProfit = %v, want rounded once at the end", result.TotalProfit)
	}
	if result.Meta.UsedDrivers != 1 {
		t.Errorf("UsedDrivers = %d, want 1", result.Meta.UsedDrivers)
	}
	if got := result.Meta.PerDriver[0].RemainingHours; got != 7.5 {
		t.Errorf("PerDriver[0].RemainingHours = %v, want 7.5", got)
	}
	if result.Meta.PerDriver[1].AssignedCount != 0 {
		t.Error("unused driver missing from snapshot")
	}
}

func TestBuildResult_NoDeliveries(t *testing.T) {
	out := &AssignmentOutcomes{Assignments: map[string]domain.Assignment{}}
	result := BuildResult(out, nil, 3, 0)
	if result.Efficiency != 0 {
		t.Errorf("Efficiency = %v, want 0 when nothing delivered", result.Efficiency)
	}
}
