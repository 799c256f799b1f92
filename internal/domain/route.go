package domain

// Traffic levels as stored on routes. Comparisons elsewhere are
// case-insensitive.
const (
	TrafficLow    = "Low"
	TrafficMedium = "Medium"
	TrafficHigh   = "High"
)

// Route is the canonical form of a route record after normalization.
// Immutable reference data for a simulation run.
type Route struct {
	RouteID         string
	DistanceKm      float64
	TrafficLevel    string
	BaseTimeMinutes float64
}
