package actuator

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
var (
	// ErrInvalidCalibration is returned when pulse bounds are not ordered.
	ErrInvalidCalibration = errors.New("actuator: pulse_min must be less than pulse_max")

	// ErrAngleOutOfRange is returned for angles outside [0, 180] degrees.
	// Out-of-range angles would command pulses outside calibrated bounds,
	// so they are rejected instead of silently interpolated.
	ErrAngleOutOfRange = errors.New("actuator: angle outside [0, 180]")

	// ErrInvalidStep is returned when an incremental move step is not positive.
	ErrInvalidStep = errors.New("actuator: step must be positive")

	// ErrObstacleDetected is returned when a safe move is cancelled because
	// something blocks the actuator's path. It is a cancellation signal,
	// not a hardware fault.
	ErrObstacleDetected = errors.New("actuator: obstacle detected, move cancelled")
)

// ActuationError represents a failed hardware write.
type ActuationError struct {
	// Output identifies which hardware output failed (e.g. "servo").
	Output string

	// Err is the underlying driver error.
	Err error
}

// Error implements the error interface.
func (e *ActuationError) Error() string {
	return fmt.Sprintf("actuator [%s]: %v", e.Output, e.Err)
}

// Unwrap returns the underlying error.
func (e *ActuationError) Unwrap() error {
	return e.Err
}

// WrapActuation wraps a driver error with output context.
func WrapActuation(output string, err error) error {
	if err == nil {
		return nil
	}
	return &ActuationError{Output: output, Err: err}
}
