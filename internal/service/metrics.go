package service

import (
	"math"

	"greencart/internal/domain"
)

// round2 rounds to 2 decimal places for reporting. Accumulation upstream
// always happens on unrounded values.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// BuildResult aggregates per-order outcomes into the fleet-level result.
// states must be the considered drivers in persisted order; the snapshot
// covers all of them, used or not.
func BuildResult(out *AssignmentOutcomes, states []*domain.DriverState, requested, available int) domain.SimulationResult {
	usedDrivers := 0
	perDriver := make([]domain.DriverSummary, 0, len(states))
	for _, d := range states {
		if len(d.AssignedOrderIDs) > 0 {
			usedDrivers++
		}
		perDriver = append(perDriver, domain.DriverSummary{
			ID:             d.ID,
			Name:           d.Name,
			RemainingHours: round2(d.RemainingHours),
			AssignedCount:  len(d.AssignedOrderIDs),
		})
	}

	totalDeliveries := out.OnTime + out.Late
	efficiency := 0.0
	if totalDeliveries > 0 {
		efficiency = float64(out.OnTime) / float64(totalDeliveries) * 100
	}

	return domain.SimulationResult{
		TotalProfit:     round2(out.TotalProfit),
		Efficiency:      round2(efficiency),
		OnTime:          out.OnTime,
		Late:            out.Late,
		TotalDeliveries: totalDeliveries,
		OrderDetails:    out.Details,
		Assignments:     out.Assignments,
		Meta: domain.SimulationMeta{
			RequestedDrivers:      requested,
			AvailableDrivers:      available,
			UsedDrivers:           usedDrivers,
			UnassignedOrdersCount: out.Unassigned,
			UnresolvedOrdersCount: out.Unresolved,
			PerDriver:             perDriver,
		},
	}
}
