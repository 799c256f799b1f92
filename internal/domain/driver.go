package domain

// Driver is the canonical form of a driver record after normalization.
type Driver struct {
	ID   string
	Name string

	// CurrentShiftHours is the hours already worked in the current shift.
	CurrentShiftHours float64

	// RemainingHours is the explicitly stored remaining-hours value.
	// NaN when the stored record has no usable value; the driver state
	// builder then derives capacity from CurrentShiftHours instead.
	RemainingHours float64

	// PastDailyHours holds logged hours per prior day, most recent first.
	PastDailyHours []float64
}
