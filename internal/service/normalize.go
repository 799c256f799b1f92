package service

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"greencart/internal/domain"
)

// The input normalizer is the only place allowed to deal with the alternate
// field spellings and loose value types found in stored records. Everything
// downstream sees canonical domain types only.

// num coerces a loosely-typed value to float64. Unparseable values become
// NaN, which downstream validation rejects.
func num(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsInf(f, 0) {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

// ClockToMinutes parses an "HH:MM" clock string into minutes since midnight.
// Hours and minutes may be zero-padded and of arbitrary magnitude; anything
// that is not two integer fields separated by a colon fails.
func ClockToMinutes(s string) (int, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, false
	}
	hh, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, false
	}
	mm, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, false
	}
	return hh*60 + mm, true
}

// first returns the value of the first key present in rec.
func first(rec domain.RawRecord, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := rec[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// firstNum coerces the first present key, or returns absent when no key is
// set. A present-but-unparseable value yields NaN, not a fallthrough.
func firstNum(rec domain.RawRecord, keys ...string) (float64, bool) {
	v, ok := first(rec, keys...)
	if !ok {
		return 0, false
	}
	return num(v), true
}

// str renders a stored value as a string the way dynamic upstreams did.
func str(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// truthy mirrors the loose presence checks used by the legacy record
// producers: nil, false, zero and "" all count as absent.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	default:
		return true
	}
}

// clockField parses a clock field into minutes. A present but unparseable
// value is treated as absent without consulting any fallback key.
func clockField(v any, ok bool) *int {
	if !ok {
		return nil
	}
	m, valid := ClockToMinutes(str(v))
	if !valid {
		return nil
	}
	return &m
}

// NormalizeDriver coerces a raw driver record into its canonical form.
// RemainingHours stays NaN when the record has no usable stored value.
func NormalizeDriver(rec domain.RawRecord) domain.Driver {
	d := domain.Driver{
		ID:             rec.ID(),
		RemainingHours: math.NaN(),
	}
	if v, ok := rec["name"]; ok {
		d.Name = str(v)
	}

	if v, ok := firstNum(rec, "currentShiftHours", "current_shift_hours", "shift_hours"); ok {
		d.CurrentShiftHours = v
	}
	if v, ok := firstNum(rec, "remainingHours", "remaining_hours"); ok {
		d.RemainingHours = v
	}

	d.PastDailyHours = pastDailyHours(rec)
	return d
}

// pastDailyHours extracts the prior-day hours history: the first non-empty
// array wins, else a "|"-delimited string is split.
func pastDailyHours(rec domain.RawRecord) []float64 {
	for _, key := range []string{"past7DayHours", "past7DaysHours"} {
		arr, ok := rec[key].([]any)
		if !ok || len(arr) == 0 {
			continue
		}
		out := make([]float64, len(arr))
		for i, v := range arr {
			out[i] = num(v)
		}
		return out
	}
	if s, ok := rec["past_week_hours"].(string); ok && s != "" {
		parts := strings.Split(s, "|")
		out := make([]float64, len(parts))
		for i, p := range parts {
			out[i] = num(p)
		}
		return out
	}
	return nil
}

// NormalizeRoute coerces a raw route record into its canonical form.
// Unparseable numerics collapse to 0, matching how the legacy consumers
// guarded every route numeric with a zero fallback.
func NormalizeRoute(rec domain.RawRecord) domain.Route {
	r := domain.Route{}
	if v, ok := first(rec, "routeId", "route_id"); ok {
		r.RouteID = str(v)
	} else {
		r.RouteID = rec.ID()
	}
	if v, ok := first(rec, "trafficLevel", "traffic_level"); ok {
		r.TrafficLevel = str(v)
	}
	r.DistanceKm = zeroIfNaN(numOrZero(rec, "distanceKm", "distance_km"))
	r.BaseTimeMinutes = zeroIfNaN(numOrZero(rec, "baseTimeMinutes", "base_time_min", "base_time_minutes"))
	return r
}

// NormalizeOrder coerces a raw order record into its canonical form.
func NormalizeOrder(rec domain.RawRecord) domain.Order {
	o := domain.Order{ID: rec.ID()}
	if v, ok := first(rec, "orderId", "order_id"); ok {
		o.ID = str(v)
	}
	if v, ok := rec["status"]; ok {
		o.Status = str(v)
	}
	o.ValueRs = zeroIfNaN(numOrZero(rec, "valueRs", "value_rs"))

	switch ref := rec["assignedRoute"].(type) {
	case map[string]any:
		if _, ok := first(domain.RawRecord(ref), "routeId", "route_id", "id"); ok {
			o.EmbeddedRoute = domain.RawRecord(ref)
		}
	case domain.RawRecord:
		if _, ok := first(ref, "routeId", "route_id", "id"); ok {
			o.EmbeddedRoute = ref
		}
	case string:
		o.RouteRef = ref
	}

	if v, ok := rec["pickupTime"]; ok && truthy(v) {
		o.PickupMin = clockField(v, true)
	} else if v, ok := rec["startTime"]; ok && truthy(v) {
		o.PickupMin = clockField(v, true)
	}
	if v, ok := rec["deadlineTime"]; ok && truthy(v) {
		o.DeadlineMin = clockField(v, true)
	}

	var dur float64
	if v, ok := rec["durationMinutes"]; ok && truthy(v) {
		dur = zeroIfNaN(num(v))
	} else if v, ok := rec["durationHours"]; ok && truthy(v) {
		dur = zeroIfNaN(num(v)) * 60
	} else if v, ok := rec["estimatedMinutes"]; ok && truthy(v) {
		dur = zeroIfNaN(num(v))
	}
	o.DurationMin = math.Max(0, dur)
	return o
}

func numOrZero(rec domain.RawRecord, keys ...string) float64 {
	v, ok := firstNum(rec, keys...)
	if !ok {
		return 0
	}
	return v
}

func zeroIfNaN(f float64) float64 {
	if math.IsNaN(f) {
		return 0
	}
	return f
}
