package service

import (
	"sort"

	"greencart/internal/domain"
)

// routeIndex resolves order route references against the fetched routes,
// by declared routeId first and by document id second.
type routeIndex struct {
	byRouteID map[string]domain.RawRecord
	byDocID   map[string]domain.RawRecord
}

func buildRouteIndex(routes []domain.RawRecord) routeIndex {
	idx := routeIndex{
		byRouteID: make(map[string]domain.RawRecord, len(routes)),
		byDocID:   make(map[string]domain.RawRecord, len(routes)),
	}
	for _, r := range routes {
		if v, ok := r["routeId"]; ok && v != nil {
			idx.byRouteID[str(v)] = r
		}
		if id := r.ID(); id != "" {
			idx.byDocID[id] = r
		}
	}
	return idx
}

// resolve returns the route bound to an order, or nil when the reference
// cannot be resolved.
func (idx routeIndex) resolve(o domain.Order) *domain.Route {
	if o.EmbeddedRoute != nil {
		r := NormalizeRoute(o.EmbeddedRoute)
		return &r
	}
	if o.RouteRef == "" {
		return nil
	}
	rec, ok := idx.byRouteID[o.RouteRef]
	if !ok {
		rec, ok = idx.byDocID[o.RouteRef]
	}
	if !ok {
		return nil
	}
	r := NormalizeRoute(rec)
	return &r
}

// BuildOrderQueue normalizes pending orders, resolves their routes and
// sorts them into deterministic processing order: pickup time ascending when
// both orders have one, else deadline ascending when both have one, else
// lexicographic order id. This ordering decides which orders get scarce
// driver capacity first, so it must stay stable across runs.
func BuildOrderQueue(orders []domain.RawRecord, routes []domain.RawRecord) []*domain.OrderTask {
	idx := buildRouteIndex(routes)

	tasks := make([]*domain.OrderTask, 0, len(orders))
	for _, rec := range orders {
		o := NormalizeOrder(rec)
		task := &domain.OrderTask{
			Order: o,
			Route: idx.resolve(o),
		}
		task.DurationMin = o.DurationMin
		if task.DurationMin <= 0 && task.Route != nil {
			task.DurationMin = task.Route.BaseTimeMinutes
		}
		tasks = append(tasks, task)
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i].Order, tasks[j].Order
		if a.PickupMin != nil && b.PickupMin != nil {
			return *a.PickupMin < *b.PickupMin
		}
		if a.DeadlineMin != nil && b.DeadlineMin != nil {
			return *a.DeadlineMin < *b.DeadlineMin
		}
		return a.ID < b.ID
	})

	return tasks
}
