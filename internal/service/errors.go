package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNoDrivers is returned when the fleet has no drivers at all.
	ErrNoDrivers = errors.New("no drivers available")
)

// ValidationError reports every offending simulation config field at once,
// one message per field. The run never starts when it is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "invalid simulation input: " + strings.Join(keys, ", ")
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
