package domain

// Order statuses that make an order eligible for assignment.
const (
	OrderStatusPending    = "pending"
	OrderStatusNew        = "new"
	OrderStatusUnassigned = "unassigned"
)

// Order is the canonical form of an order record after normalization.
type Order struct {
	ID      string
	ValueRs float64
	Status  string

	// RouteRef is the identifier of the bound route when the stored record
	// references it by id. Empty when the route document is embedded.
	RouteRef string

	// EmbeddedRoute is the bound route when the stored record embeds the
	// route document directly. Nil when the order references by id.
	EmbeddedRoute RawRecord

	// PickupMin and DeadlineMin are minutes since midnight. Nil when the
	// stored record has no parseable value.
	PickupMin   *int
	DeadlineMin *int

	// DurationMin is the declared order duration in minutes, never negative.
	// Zero means "use the route's base time".
	DurationMin float64
}
