package service

import (
	"math"
	"reflect"
	"testing"

	"greencart/internal/domain"
)

func TestClockToMinutes(t *testing.T) {
	cases := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"09:30", 570, true},
		{"9:5", 545, true},
		{"00:00", 0, true},
		{"24:00", 1440, true},
		{"", 0, false},
		{"9", 0, false},
		{"9:3:2", 0, false},
		{"a:b", 0, false},
		{"9:", 0, false},
	}
	for _, c := range cases {
		got, ok := ClockToMinutes(c.in)
		if ok != c.wantOK || got != c.want {
			t.Errorf("ClockToMinutes(%q) = (%d, %v), want (%d, %v)", c.in, got, ok, c.want, c.wantOK)
		}
	}
}

func TestNormalizeDriver_AlternateSpellings(t *testing.T) {
	rec := domain.RawRecord{
		"id":              "d1",
		"name":            "Amit",
		"shift_hours":     "6.5",
		"remaining_hours": 3.0,
		"past_week_hours": "9|8|7",
	}

	d := NormalizeDriver(rec)

	if d.ID != "d1" || d.Name != "Amit" {
		t.Errorf("identity fields: got %q/%q", d.ID, d.Name)
	}
	if d.CurrentShiftHours != 6.5 {
		t.Errorf("CurrentShiftHours = %v, want 6.5", d.CurrentShiftHours)
	}
	if d.RemainingHours != 3.0 {
		t.Errorf("RemainingHours = %v, want 3", d.RemainingHours)
	}
	if !reflect.DeepEqual(d.PastDailyHours, []float64{9, 8, 7}) {
		t.Errorf("PastDailyHours = %v, want [9 8 7]", d.PastDailyHours)
	}
}

func TestNormalizeDriver_RemainingHoursAbsent(t *testing.T) {
	d := NormalizeDriver(domain.RawRecord{"id": "d1", "currentShiftHours": 2.0})
	if !math.IsNaN(d.RemainingHours) {
		t.Errorf("RemainingHours = %v, want NaN sentinel", d.RemainingHours)
	}
}

func TestNormalizeDriver_ArrayWinsOverDelimitedString(t *testing.T) {
	rec := domain.RawRecord{
		"id":              "d1",
		"past7DaysHours":  []any{9.0, 6.0},
		"past_week_hours": "1|2",
	}
	d := NormalizeDriver(rec)
	if !reflect.DeepEqual(d.PastDailyHours, []float64{9, 6}) {
		t.Errorf("PastDailyHours = %v, want [9 6]", d.PastDailyHours)
	}
}

func TestNormalizeRoute_ZeroFallbacks(t *testing.T) {
	r := NormalizeRoute(domain.RawRecord{
		"id":            "doc-9",
		"route_id":      "R7",
		"distance_km":   "garbage",
		"traffic_level": "High",
		"base_time_min": 45.0,
	})

	if r.RouteID != "R7" {
		t.Errorf("RouteID = %q, want R7", r.RouteID)
	}
	if r.DistanceKm != 0 {
		t.Errorf("DistanceKm = %v, want 0 for unparseable input", r.DistanceKm)
	}
	if r.BaseTimeMinutes != 45 {
		t.Errorf("BaseTimeMinutes = %v, want 45", r.BaseTimeMinutes)
	}
}

func TestNormalizeRoute_DocIDFallback(t *testing.T) {
	r := NormalizeRoute(domain.RawRecord{"id": "doc-3", "distanceKm": 5.0})
	if r.RouteID != "doc-3" {
		t.Errorf("RouteID = %q, want document id fallback", r.RouteID)
	}
}

func TestNormalizeOrder_DurationChain(t *testing.T) {
	cases := []struct {
		name string
		rec  domain.RawRecord
		want float64
	}{
		{"minutes win", domain.RawRecord{"durationMinutes": 90.0, "durationHours": 5.0}, 90},
		{"hours converted", domain.RawRecord{"durationHours": 2.0}, 120},
		{"estimated minutes", domain.RawRecord{"estimatedMinutes": 25.0}, 25},
		{"zero minutes fall through", domain.RawRecord{"durationMinutes": 0.0, "durationHours": 2.0}, 120},
		{"nothing set", domain.RawRecord{}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			o := NormalizeOrder(c.rec)
			if o.DurationMin != c.want {
				t.Errorf("DurationMin = %v, want %v", o.DurationMin, c.want)
			}
		})
	}
}

func TestNormalizeOrder_TimeWindows(t *testing.T) {
	o := NormalizeOrder(domain.RawRecord{
		"pickupTime":   "10:00",
		"deadlineTime": "11:30",
	})
	if o.PickupMin == nil || *o.PickupMin != 600 {
		t.Fatalf("PickupMin = %v, want 600", o.PickupMin)
	}
	if o.DeadlineMin == nil || *o.DeadlineMin != 690 {
		t.Fatalf("DeadlineMin = %v, want 690", o.DeadlineMin)
	}

	// An empty pickupTime does not block the startTime fallback.
	o = NormalizeOrder(domain.RawRecord{"pickupTime": "", "startTime": "08:15"})
	if o.PickupMin == nil || *o.PickupMin != 495 {
		t.Fatalf("PickupMin = %v, want 495 from startTime fallback", o.PickupMin)
	}
}

func TestNormalizeOrder_RouteReferences(t *testing.T) {
	o := NormalizeOrder(domain.RawRecord{"orderId": "O1", "assignedRoute": "R1"})
	if o.RouteRef != "R1" || o.EmbeddedRoute != nil {
		t.Errorf("string reference: RouteRef = %q, EmbeddedRoute = %v", o.RouteRef, o.EmbeddedRoute)
	}

	o = NormalizeOrder(domain.RawRecord{
		"orderId":       "O2",
		"assignedRoute": map[string]any{"routeId": "R2", "distanceKm": 4.0},
	})
	if o.EmbeddedRoute == nil {
		t.Fatal("embedded route not captured")
	}

	// An embedded object with no identifying key is not a usable route.
	o = NormalizeOrder(domain.RawRecord{
		"orderId":       "O3",
		"assignedRoute": map[string]any{"distanceKm": 4.0},
	})
	if o.EmbeddedRoute != nil {
		t.Error("embedded route without identifier should be dropped")
	}
}

func TestNormalizeDriver_Idempotent(t *testing.T) {
	canonical := domain.RawRecord{
		"id":                "d1",
		"name":              "Priya",
		"currentShiftHours": 4.0,
		"remainingHours":    2.5,
		"past7DaysHours":    []any{6.0, 7.0},
	}

	first := NormalizeDriver(canonical)
	second := NormalizeDriver(domain.RawRecord{
		"id":                first.ID,
		"name":              first.Name,
		"currentShiftHours": first.CurrentShiftHours,
		"remainingHours":    first.RemainingHours,
		"past7DaysHours":    []any{first.PastDailyHours[0], first.PastDailyHours[1]},
	})

	if !reflect.DeepEqual(first, second) {
		t.Errorf("normalization not idempotent: %+v vs %+v", first, second)
	}
}
