// Package sensor wraps the robot's current and detection sensors behind a
// uniform read contract: every call produces a fresh value or a failure,
// never a cached reading.
package sensor

import (
	"fmt"

	"github.com/jmcarrillo/go-cablebot/internal/log"
)

// ReadError represents a failed sensor read.
type ReadError struct {
	// Sensor identifies which sensor failed (e.g. "current", "vision").
	Sensor string

	// Err is the underlying read error.
	Err error
}

// Error implements the error interface.
func (e *ReadError) Error() string {
	return fmt.Sprintf("sensor [%s]: %v", e.Sensor, e.Err)
}

// Unwrap returns the underlying error.
func (e *ReadError) Unwrap() error {
	return e.Err
}

// Condition classifies the physical state of a detected cable.
type Condition int

const (
	ConditionGood Condition = iota
	ConditionBad
)

// String returns the condition name.
func (c Condition) String() string {
	switch c {
	case ConditionGood:
		return "good"
	case ConditionBad:
		return "bad"
	default:
		return fmt.Sprintf("Condition(%d)", int(c))
	}
}

// CurrentSensor reads the current flowing through the cable in amperes.
type CurrentSensor interface {
	ReadCurrent() (float64, error)
}

// CableDetector reports whether a cable is present in the work area.
type CableDetector interface {
	DetectCable() (bool, error)
}

// ConditionEvaluator classifies a detected cable's physical condition.
// The reference implementation used unseeded randomness here; any
// implementation must be substitutable by a deterministic double.
type ConditionEvaluator interface {
	EvaluateCondition() (Condition, error)
}

// DefaultCurrentThreshold is the current above which a cable is
// considered live and must not be cut.
const DefaultCurrentThreshold = 0.1

// Gateway bundles the robot's sensors behind one value. Reads pass
// through unchanged apart from error wrapping, so callers see a uniform
// value-or-failure contract regardless of the underlying hardware.
type Gateway struct {
	current   CurrentSensor
	detector  CableDetector
	evaluator ConditionEvaluator

	// Threshold is the live-current cutoff used by the decision cycle.
	Threshold float64
}

// NewGateway creates a sensor gateway with the given backends.
// A non-positive threshold falls back to DefaultCurrentThreshold.
func NewGateway(current CurrentSensor, detector CableDetector, evaluator ConditionEvaluator, threshold float64) *Gateway {
	if threshold <= 0 {
		threshold = DefaultCurrentThreshold
	}
	return &Gateway{
		current:   current,
		detector:  detector,
		evaluator: evaluator,
		Threshold: threshold,
	}
}

// ReadCurrent reads the cable current in amperes.
func (g *Gateway) ReadCurrent() (float64, error) {
	value, err := g.current.ReadCurrent()
	if err != nil {
		return 0, &ReadError{Sensor: "current", Err: err}
	}
	log.Debug("current sensor reading", "amps", value)
	return value, nil
}

// DetectCable reports whether a cable is present.
func (g *Gateway) DetectCable() (bool, error) {
	detected, err := g.detector.DetectCable()
	if err != nil {
		return false, &ReadError{Sensor: "vision", Err: err}
	}
	log.Debug("cable detection reading", "detected", detected)
	return detected, nil
}

// EvaluateCondition classifies the detected cable's condition.
func (g *Gateway) EvaluateCondition() (Condition, error) {
	condition, err := g.evaluator.EvaluateCondition()
	if err != nil {
		return ConditionGood, &ReadError{Sensor: "condition", Err: err}
	}
	log.Debug("cable condition reading", "condition", condition.String())
	return condition, nil
}
