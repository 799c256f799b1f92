package domain

import "time"

// Unassignment reason codes recorded on outcomes.
const (
	ReasonUnresolvedRoute = "unresolved_route"
	ReasonNoCapacity      = "no_capacity"
)

// SimulationConfig is the caller-supplied input for one simulation run.
type SimulationConfig struct {
	NumberOfDrivers   int     `json:"numberOfDrivers"`
	RouteStartTime    string  `json:"routeStartTime"`
	MaxHoursPerDriver float64 `json:"maxHoursPerDriver"`
	OvertimePercent   float64 `json:"overtimePercent,omitempty"`
	AllowSplitOrders  bool    `json:"allowSplitOrders,omitempty"`
}

// DriverState is one driver's mutable capacity state for the duration of a
// single run. It is built fresh per run and never shared between runs.
type DriverState struct {
	ID   string
	Name string

	// RemainingHours is the capacity left; deducted as orders are assigned
	// and never negative.
	RemainingHours float64

	// Fatigued is derived once at build time from the most recent prior-day
	// logged hours and stays fixed for the run.
	Fatigued        bool
	SpeedMultiplier float64

	// Used flips to true on the driver's first assignment in this run.
	Used bool

	AssignedOrderIDs []string
}

// OrderTask is one pending order prepared for the assignment queue.
type OrderTask struct {
	Order Order

	// Route is the resolved route, nil when the order's reference could not
	// be resolved.
	Route *Route

	// DurationMin is the effective duration used for capacity checks: the
	// order's declared duration when positive, else the route base time.
	DurationMin float64
}

// AssignedShare is one driver's contribution to an order.
type AssignedShare struct {
	DriverID   string `json:"driverId"`
	DriverName string `json:"driverName"`
	Minutes    int    `json:"minutes"`
}

// Assignment records which drivers covered an order, or why none did.
type Assignment struct {
	AssignedTo []AssignedShare `json:"assignedTo"`
	Reason     string          `json:"reason,omitempty"`
}

// OrderOutcome is the per-order reporting row: who delivered it and the
// derived financial figures. Monetary/time fields are rounded to 2 decimals.
type OrderOutcome struct {
	OrderID             string  `json:"orderId"`
	Driver              string  `json:"driver,omitempty"`
	RouteID             string  `json:"routeId,omitempty"`
	TrafficLevel        string  `json:"trafficLevel,omitempty"`
	IsLate              bool    `json:"isLate"`
	Penalty             float64 `json:"penalty"`
	FuelCost            float64 `json:"fuelCost"`
	Bonus               float64 `json:"bonus"`
	OrderProfit         float64 `json:"orderProfit"`
	DeliveryTimeMinutes float64 `json:"deliveryTimeMinutes"`
}

// DriverSummary is the per-driver snapshot in the result meta, covering
// every driver considered in the run.
type DriverSummary struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	RemainingHours float64 `json:"remainingHours"`
	AssignedCount  int     `json:"assignedCount"`
}

// SimulationMeta carries fleet-level statistics for a run.
type SimulationMeta struct {
	RequestedDrivers      int             `json:"requestedDrivers"`
	AvailableDrivers      int             `json:"availableDrivers"`
	UsedDrivers           int             `json:"usedDrivers"`
	UnassignedOrdersCount int             `json:"unassignedOrdersCount"`
	UnresolvedOrdersCount int             `json:"unresolvedOrdersCount"`
	PerDriver             []DriverSummary `json:"perDriver"`
}

// SimulationResult is the aggregate output of one run and the only value
// that outlives it (persisted as history).
type SimulationResult struct {
	TotalProfit     float64               `json:"totalProfit"`
	Efficiency      float64               `json:"efficiency"`
	OnTime          int                   `json:"onTime"`
	Late            int                   `json:"late"`
	TotalDeliveries int                   `json:"totalDeliveries"`
	OrderDetails    []OrderOutcome        `json:"orderDetails"`
	Assignments     map[string]Assignment `json:"assignments"`
	Meta            SimulationMeta        `json:"meta"`
}

// SimulationRecord is a persisted {config, result} history entry.
type SimulationRecord struct {
	ID        string           `json:"id"`
	Config    SimulationConfig `json:"input"`
	Result    SimulationResult `json:"result"`
	CreatedAt time.Time        `json:"createdAt"`
}
