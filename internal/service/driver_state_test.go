package service

import (
	"math"
	"testing"

	"greencart/internal/domain"
)

func TestBuildDriverStates_CapsToRequestedCount(t *testing.T) {
	drivers := []domain.Driver{
		{ID: "d1", RemainingHours: math.NaN()},
		{ID: "d2", RemainingHours: math.NaN()},
		{ID: "d3", RemainingHours: math.NaN()},
	}

	states := BuildDriverStates(drivers, 2, 8)
	if len(states) != 2 {
		t.Fatalf("states = %d, want 2", len(states))
	}
	if states[0].ID != "d1" || states[1].ID != "d2" {
		t.Errorf("eligible drivers not taken in persisted order: %v, %v", states[0].ID, states[1].ID)
	}

	// Requesting more than available uses everyone.
	if got := len(BuildDriverStates(drivers, 10, 8)); got != 3 {
		t.Errorf("states = %d, want 3", got)
	}
}

func TestBuildDriverState_RemainingHoursPrecedence(t *testing.T) {
	cases := []struct {
		name     string
		driver   domain.Driver
		maxHours float64
		want     float64
	}{
		{"stored value wins", domain.Driver{RemainingHours: 3, CurrentShiftHours: 1}, 8, 3},
		{"derived from shift", domain.Driver{RemainingHours: math.NaN(), CurrentShiftHours: 6}, 8, 2},
		{"overworked shift clamps to zero", domain.Driver{RemainingHours: math.NaN(), CurrentShiftHours: 10}, 8, 0},
		{"stored value clamped to max", domain.Driver{RemainingHours: 12}, 8, 8},
		{"negative stored value clamped", domain.Driver{RemainingHours: -2}, 8, 0},
		{"unparseable shift yields zero", domain.Driver{RemainingHours: math.NaN(), CurrentShiftHours: math.NaN()}, 8, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := buildDriverState(c.driver, c.maxHours)
			if s.RemainingHours != c.want {
				t.Errorf("RemainingHours = %v, want %v", s.RemainingHours, c.want)
			}
		})
	}
}

func TestBuildDriverState_Fatigue(t *testing.T) {
	fresh := buildDriverState(domain.Driver{RemainingHours: 8, PastDailyHours: []float64{8}}, 8)
	if fresh.Fatigued || fresh.SpeedMultiplier != 1.0 {
		t.Errorf("8h yesterday should not fatigue: %+v", fresh)
	}

	tired := buildDriverState(domain.Driver{RemainingHours: 8, PastDailyHours: []float64{9}}, 8)
	if !tired.Fatigued || tired.SpeedMultiplier != 0.7 {
		t.Errorf("9h yesterday should fatigue: %+v", tired)
	}

	noHistory := buildDriverState(domain.Driver{RemainingHours: 8}, 8)
	if noHistory.Fatigued {
		t.Error("no history should not fatigue")
	}
}
