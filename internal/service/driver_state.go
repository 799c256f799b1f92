package service

import (
	"math"

	"greencart/internal/domain"
)

const (
	// fatigueThresholdHours: a driver who logged more than this yesterday
	// is fatigued for today's run.
	fatigueThresholdHours = 8.0

	// fatiguedSpeedMultiplier slows a fatigued driver's deliveries.
	fatiguedSpeedMultiplier = 0.7
)

// BuildDriverStates constructs per-run mutable capacity state for the
// eligible drivers. Only the first min(requested, available) drivers in
// persisted order are considered, which caps fleet size to the request.
func BuildDriverStates(drivers []domain.Driver, requested int, maxHoursPerDriver float64) []*domain.DriverState {
	eligible := drivers
	if requested < len(drivers) {
		eligible = drivers[:requested]
	}

	states := make([]*domain.DriverState, 0, len(eligible))
	for _, d := range eligible {
		states = append(states, buildDriverState(d, maxHoursPerDriver))
	}
	return states
}

func buildDriverState(d domain.Driver, maxHoursPerDriver float64) *domain.DriverState {
	// Stored remaining-hours wins when usable; otherwise derive capacity
	// from the current shift.
	remaining := d.RemainingHours
	if math.IsNaN(remaining) {
		remaining = math.Max(0, maxHoursPerDriver-d.CurrentShiftHours)
	}
	remaining = math.Max(0, math.Min(remaining, maxHoursPerDriver))
	if math.IsNaN(remaining) {
		// CurrentShiftHours was unparseable; the driver carries no capacity.
		remaining = 0
	}

	yesterday := 0.0
	if len(d.PastDailyHours) > 0 && !math.IsNaN(d.PastDailyHours[0]) {
		yesterday = d.PastDailyHours[0]
	}
	fatigued := yesterday > fatigueThresholdHours

	speed := 1.0
	if fatigued {
		speed = fatiguedSpeedMultiplier
	}

	return &domain.DriverState{
		ID:              d.ID,
		Name:            d.Name,
		RemainingHours:  remaining,
		Fatigued:        fatigued,
		SpeedMultiplier: speed,
	}
}
