// Package cutter models the physical cutting mechanism as a strictly
// single-use-at-a-time actuation with an explicit busy state.
package cutter

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jmcarrillo/go-cablebot/internal/log"
)

// ErrBusy is returned when a cut is requested while one is in progress.
// The request is rejected, not queued.
var ErrBusy = errors.New("cutter: already cutting")

// ActuationError represents a failed hardware write during a cut.
type ActuationError struct {
	Err error
}

// Error implements the error interface.
func (e *ActuationError) Error() string {
	return fmt.Sprintf("cutter: actuation failed: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *ActuationError) Unwrap() error {
	return e.Err
}

// State is the cutter's actuation state.
type State int32

const (
	Idle State = iota
	Cutting
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case Cutting:
		return "CUTTING"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Output is the hardware cutting output. Fire energizes the mechanism for
// the given duration and returns once it is de-energized.
type Output interface {
	Fire(d time.Duration) error
}

// Cutter guards the cutting output with a single-use interlock. The
// idle-to-cutting transition is an atomic compare-and-swap, so the
// interlock holds even when the cutter sits behind a concurrent server.
type Cutter struct {
	out      Output
	duration time.Duration

	state atomic.Int32
}

// DefaultCutDuration matches the reference mechanism's actuation time.
const DefaultCutDuration = 2 * time.Second

// New creates a cutter firing the output for the given duration per cut.
func New(out Output, duration time.Duration) *Cutter {
	if duration <= 0 {
		duration = DefaultCutDuration
	}
	return &Cutter{out: out, duration: duration}
}

// Cut actuates the cutting mechanism once. A request while a cut is in
// progress is rejected with ErrBusy and has no side effect. A hardware
// failure mid-cut surfaces as an *ActuationError; the state is forced
// back to Idle either way.
func (c *Cutter) Cut() error {
	if !c.state.CompareAndSwap(int32(Idle), int32(Cutting)) {
		log.Warn("cutter busy, cut request rejected")
		return ErrBusy
	}
	defer c.state.Store(int32(Idle))

	log.Info("cutting cable", "duration", c.duration)
	if err := c.out.Fire(c.duration); err != nil {
		return &ActuationError{Err: err}
	}
	log.Info("cable cut complete")
	return nil
}

// State returns the cutter's current actuation state.
func (c *Cutter) State() State {
	return State(c.state.Load())
}
