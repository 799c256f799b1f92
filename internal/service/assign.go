package service

import (
	"math"
	"sort"
	"strings"

	"greencart/internal/domain"
)

// Business constants of the simulation. Currency values are rupees.
const (
	latePenaltyRs             = 50.0
	fuelCostPerKm             = 5.0
	highTrafficSurchargePerKm = 2.0
	highValueThresholdRs      = 1000.0
	highValueBonusRate        = 0.10

	// lateGraceMinutes is the grace window over a route's base time before
	// a single-driver delivery counts as late.
	lateGraceMinutes = 10.0
)

// AssignmentOutcomes collects everything the assignment loop produces.
// TotalProfit stays unrounded here; rounding happens once in the result.
type AssignmentOutcomes struct {
	TotalProfit float64
	OnTime      int
	Late        int
	Unassigned  int
	Unresolved  int
	Details     []domain.OrderOutcome
	Assignments map[string]domain.Assignment
}

// AssignOrders runs the greedy allocator over the queue, mutating the
// driver pool it is handed. The pool must be owned exclusively by this run.
//
// The allocation is deliberately greedy, not globally optimal: orders are
// served in queue order and each takes the best driver available at that
// moment. Replacing this with an optimal matcher would change observable
// outputs.
func AssignOrders(tasks []*domain.OrderTask, pool []*domain.DriverState, cfg domain.SimulationConfig) *AssignmentOutcomes {
	out := &AssignmentOutcomes{
		Assignments: make(map[string]domain.Assignment, len(tasks)),
	}

	overtime := math.Max(0, cfg.OvertimePercent)
	maxUse := cfg.NumberOfDrivers
	if len(pool) < maxUse {
		maxUse = len(pool)
	}

	for _, task := range tasks {
		if task.Route == nil {
			out.recordUnresolved(task)
			continue
		}
		if out.assignSingle(task, pool, overtime, maxUse) {
			continue
		}
		if cfg.AllowSplitOrders && out.assignSplit(task, pool, overtime, maxUse) {
			continue
		}
		out.recordNoCapacity(task)
	}

	return out
}

// usableMinutes is a driver's capacity for this run in whole minutes,
// including the overtime allowance.
func usableMinutes(d *domain.DriverState, overtimePercent float64) float64 {
	capped := d.RemainingHours * (1 + overtimePercent/100)
	return math.Max(0, math.Floor(capped*60))
}

// assignSingle attempts to place the whole order on one driver. Reports
// whether the order was assigned.
func (out *AssignmentOutcomes) assignSingle(task *domain.OrderTask, pool []*domain.DriverState, overtime float64, maxUse int) bool {
	capable := make([]*domain.DriverState, 0, len(pool))
	for _, d := range pool {
		if usableMinutes(d, overtime) >= task.DurationMin && d.RemainingHours > 0 {
			capable = append(capable, d)
		}
	}
	// Already-committed drivers absorb load before idle ones are activated,
	// then the most rested driver wins.
	sort.SliceStable(capable, func(i, j int) bool {
		if capable[i].Used != capable[j].Used {
			return capable[i].Used
		}
		return capable[i].RemainingHours > capable[j].RemainingHours
	})

	used := countUsed(pool)
	var chosen *domain.DriverState
	for _, d := range capable {
		// First-touch cap: an idle driver may not enter once the requested
		// driver count is reached.
		if !d.Used && used >= maxUse {
			continue
		}
		chosen = d
		break
	}
	if chosen == nil {
		return false
	}

	// Fatigue slows how long the route takes this driver, independent of
	// the order's declared duration.
	deliveryMin := task.Route.BaseTimeMinutes / chosen.SpeedMultiplier
	chosen.RemainingHours = math.Max(0, chosen.RemainingHours-deliveryMin/60)
	chosen.AssignedOrderIDs = append(chosen.AssignedOrderIDs, task.Order.ID)
	chosen.Used = true

	isLate := deliveryMin > task.Route.BaseTimeMinutes+lateGraceMinutes
	penalty, fuel, bonus, profit := orderFinancials(task.Order.ValueRs, isLate, task.Route)

	out.TotalProfit += profit
	out.countDelivery(isLate)
	out.Assignments[task.Order.ID] = domain.Assignment{
		AssignedTo: []domain.AssignedShare{{
			DriverID:   chosen.ID,
			DriverName: chosen.Name,
			Minutes:    int(math.Round(deliveryMin)),
		}},
	}
	out.Details = append(out.Details, domain.OrderOutcome{
		OrderID:             task.Order.ID,
		Driver:              chosen.Name,
		RouteID:             task.Route.RouteID,
		TrafficLevel:        task.Route.TrafficLevel,
		IsLate:              isLate,
		Penalty:             round2(penalty),
		FuelCost:            round2(fuel),
		Bonus:               round2(bonus),
		OrderProfit:         round2(profit),
		DeliveryTimeMinutes: round2(deliveryMin),
	})

	sortByRemaining(pool)
	return true
}

// assignSplit greedily drains the order's duration across the pool.
// Reports whether the order was fully covered. Partial takes are not rolled
// back on failure; the drained capacity stays spent.
func (out *AssignmentOutcomes) assignSplit(task *domain.OrderTask, pool []*domain.DriverState, overtime float64, maxUse int) bool {
	candidates := make([]*domain.DriverState, 0, len(pool))
	for _, d := range pool {
		if usableMinutes(d, overtime) > 0 {
			candidates = append(candidates, d)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Used != candidates[j].Used {
			return candidates[i].Used
		}
		return candidates[i].RemainingHours > candidates[j].RemainingHours
	})

	remaining := task.DurationMin
	var shares []domain.AssignedShare
	for _, d := range candidates {
		if remaining <= 0 {
			break
		}
		avail := usableMinutes(d, overtime)
		if avail <= 0 {
			continue
		}
		if !d.Used && countUsed(pool) >= maxUse {
			continue
		}

		take := math.Min(avail, remaining)
		d.RemainingHours = math.Max(0, d.RemainingHours-take/60)
		d.AssignedOrderIDs = append(d.AssignedOrderIDs, task.Order.ID)
		d.Used = true
		shares = append(shares, domain.AssignedShare{
			DriverID:   d.ID,
			DriverName: d.Name,
			Minutes:    int(math.Round(take)),
		})
		remaining -= take

		sortByRemaining(pool)
	}

	if remaining > 0 {
		// Keep the partial shares on record; recordNoCapacity sets the reason.
		out.Assignments[task.Order.ID] = domain.Assignment{AssignedTo: shares}
		return false
	}

	// Split deliveries judge lateness from the order's own time window at
	// the route's nominal time. Different rule from the single-driver path;
	// kept as-is so outputs stay comparable with the historical system.
	isLate := task.Order.PickupMin != nil && task.Order.DeadlineMin != nil &&
		*task.Order.PickupMin > *task.Order.DeadlineMin
	penalty, fuel, bonus, profit := orderFinancials(task.Order.ValueRs, isLate, task.Route)

	out.TotalProfit += profit
	out.countDelivery(isLate)
	out.Assignments[task.Order.ID] = domain.Assignment{AssignedTo: shares}

	names := make([]string, len(shares))
	for i, sh := range shares {
		names[i] = sh.DriverName
	}
	out.Details = append(out.Details, domain.OrderOutcome{
		OrderID:             task.Order.ID,
		Driver:              strings.Join(names, ", "),
		RouteID:             task.Route.RouteID,
		TrafficLevel:        task.Route.TrafficLevel,
		IsLate:              isLate,
		Penalty:             round2(penalty),
		FuelCost:            round2(fuel),
		Bonus:               round2(bonus),
		OrderProfit:         round2(profit),
		DeliveryTimeMinutes: round2(task.Route.BaseTimeMinutes),
	})
	return true
}

// recordUnresolved records an order whose route reference cannot be
// resolved. The order never reaches assignment and counts as late.
func (out *AssignmentOutcomes) recordUnresolved(task *domain.OrderTask) {
	out.Unresolved++
	out.Late++
	out.Assignments[task.Order.ID] = domain.Assignment{Reason: domain.ReasonUnresolvedRoute}
	out.Details = append(out.Details, domain.OrderOutcome{
		OrderID: task.Order.ID,
		IsLate:  true,
	})
}

// recordNoCapacity records an order no driver combination could cover.
// The order counts as late and contributes zero profit, but its penalty and
// fuel numbers still appear in reporting.
func (out *AssignmentOutcomes) recordNoCapacity(task *domain.OrderTask) {
	out.Unassigned++
	out.Late++

	a := out.Assignments[task.Order.ID]
	a.Reason = domain.ReasonNoCapacity
	out.Assignments[task.Order.ID] = a

	_, fuel, _, _ := orderFinancials(task.Order.ValueRs, true, task.Route)
	out.Details = append(out.Details, domain.OrderOutcome{
		OrderID:             task.Order.ID,
		RouteID:             task.Route.RouteID,
		TrafficLevel:        task.Route.TrafficLevel,
		IsLate:              true,
		Penalty:             latePenaltyRs,
		FuelCost:            round2(fuel),
		Bonus:               0,
		OrderProfit:         0,
		DeliveryTimeMinutes: round2(task.Route.BaseTimeMinutes),
	})
}

func (out *AssignmentOutcomes) countDelivery(isLate bool) {
	if isLate {
		out.Late++
	} else {
		out.OnTime++
	}
}

// orderFinancials derives the money figures for one order.
func orderFinancials(valueRs float64, isLate bool, route *domain.Route) (penalty, fuel, bonus, profit float64) {
	if isLate {
		penalty = latePenaltyRs
	}
	fuel = route.DistanceKm * fuelCostPerKm
	if strings.EqualFold(route.TrafficLevel, domain.TrafficHigh) {
		fuel += route.DistanceKm * highTrafficSurchargePerKm
	}
	if valueRs > highValueThresholdRs && !isLate {
		bonus = valueRs * highValueBonusRate
	}
	profit = valueRs + bonus - penalty - fuel
	return penalty, fuel, bonus, profit
}

// sortByRemaining re-sorts the pool by descending remaining hours. Required
// after every capacity mutation so subsequent picks see updated capacity.
func sortByRemaining(pool []*domain.DriverState) {
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].RemainingHours > pool[j].RemainingHours
	})
}

func countUsed(pool []*domain.DriverState) int {
	n := 0
	for _, d := range pool {
		if d.Used {
			n++
		}
	}
	return n
}
