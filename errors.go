package patternlock

import (
	"errors"
	"fmt"
)

// Configuration errors. Returned (wrapped in a *ConfigError) from New,
// NewGrid and Config.Validate.
var (
	ErrEmptyGrid     = errors.New("grid has no points")
	ErrDuplicateID   = errors.New("duplicate point id")
	ErrInvalidPoint  = errors.New("point coordinates must be finite")
	ErrInvalidRadius = errors.New("radius must be positive and finite")
)

// Input errors. A Lock never surfaces these to the host: the offending event
// is dropped and the gesture state is left untouched.
var (
	ErrNoCoordinates      = errors.New("event has no usable coordinates")
	ErrSurfaceUnavailable = errors.New("surface bounds unavailable")
)

// ErrAlreadyAttached is returned by Lock.Attach when the lock is already
// bound to a surface.
var ErrAlreadyAttached = errors.New("lock already attached")

// ConfigError reports an invalid construction parameter.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("patternlock: invalid %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
