// Package robot implements the cable-cutting state machine: one decision
// cycle from detection through the cut/no-cut verdict, plus the periodic
// poll loop that drives it.
package robot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jmcarrillo/go-cablebot/internal/log"
	"github.com/jmcarrillo/go-cablebot/pkg/cutter"
	"github.com/jmcarrillo/go-cablebot/pkg/sensor"
)

// ErrHalted is returned when a decision cycle is requested after the
// machine entered Error. Recovery requires an external restart.
var ErrHalted = errors.New("robot: state machine halted, restart required")

// CableCutter is the actuation the decision cycle triggers on a dead
// cable. It must enforce its own single-use interlock.
type CableCutter interface {
	Cut() error
}

// Notifier receives state transitions, e.g. for a dashboard stream.
// Implementations must not block.
type Notifier interface {
	NotifyState(cycleID string, s State)
}

// DefaultPollInterval is the pause between decision cycles in Run.
const DefaultPollInterval = 10 * time.Second

// Robot orchestrates the sensor gateway and the cutter into the
// detect, evaluate, cut decision cycle. It owns its State exclusively;
// collaborators are injected at construction.
type Robot struct {
	sensors *sensor.Gateway
	cutter  CableCutter

	interval time.Duration
	notifier Notifier

	mu    sync.RWMutex
	state State
}

// New creates a robot in the Idle state.
// A non-positive interval falls back to DefaultPollInterval.
func New(sensors *sensor.Gateway, cut CableCutter, interval time.Duration) *Robot {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Robot{
		sensors:  sensors,
		cutter:   cut,
		interval: interval,
	}
}

// SetNotifier installs the state-transition observer.
func (r *Robot) SetNotifier(n Notifier) {
	r.notifier = n
}

// State returns the machine's current state.
func (r *Robot) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

func (r *Robot) setState(cycleID string, s State) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()

	if r.notifier != nil {
		r.notifier.NotifyState(cycleID, s)
	}
}

// DetectAndCut runs one decision cycle. The ordering is strict: cable
// presence, then condition, then the live-current safety check, then the
// cut. Later checks are never reached unless all earlier verdicts allow
// it, and sensor failures downgrade to the conservative verdict for
// their step. A cutter actuation failure forces the machine into Error
// and propagates; a busy cutter is only a warning.
func (r *Robot) DetectAndCut(ctx context.Context) error {
	if r.State() == Error {
		return ErrHalted
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	cycleID := uuid.NewString()
	logger := log.With("cycle_id", cycleID)
	logger.Info("starting cable detection")
	r.setState(cycleID, Detecting)

	detected, err := r.sensors.DetectCable()
	if err != nil {
		logger.Warn("cable detection failed, treating as no cable", log.Err(err))
		r.setState(cycleID, Idle)
		return nil
	}
	if !detected {
		logger.Info("no cable detected")
		r.setState(cycleID, Idle)
		return nil
	}
	logger.Info("cable detected")

	condition, err := r.sensors.EvaluateCondition()
	if err != nil {
		logger.Warn("condition evaluation failed, treating as good", log.Err(err))
		r.setState(cycleID, Idle)
		return nil
	}
	if condition == sensor.ConditionGood {
		logger.Info("cable in good condition, leaving it")
		r.setState(cycleID, Idle)
		return nil
	}

	logger.Info("cable in bad condition, proceeding to cut")
	r.setState(cycleID, Cutting)

	current, err := r.sensors.ReadCurrent()
	if err != nil {
		logger.Warn("current read failed, refusing to cut", log.Err(err))
		r.setState(cycleID, Idle)
		return nil
	}
	if current > r.sensors.Threshold {
		logger.Info("cable is conducting current, aborting cut",
			"amps", current, "threshold", r.sensors.Threshold)
		r.setState(cycleID, Idle)
		return nil
	}

	err = r.cutter.Cut()
	switch {
	case errors.Is(err, cutter.ErrBusy):
		logger.Warn("cutter busy, cut skipped")
	case err != nil:
		logger.Error("cut actuation failed", log.Err(err))
		r.setState(cycleID, Error)
		return fmt.Errorf("robot: cut failed: %w", err)
	default:
		logger.Info("cable cut")
	}

	r.setState(cycleID, Idle)
	return nil
}

// Run drives decision cycles at the configured interval until the
// context is cancelled or a cycle ends in Error. There is no automatic
// recovery: once Run returns a non-context error the machine must be
// restarted externally.
func (r *Robot) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	log.Info("detection loop started", "interval", r.interval)
	for {
		if err := r.DetectAndCut(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			log.Error("decision cycle failed, stopping detection loop", log.Err(err))
			return err
		}

		select {
		case <-ctx.Done():
			log.Info("detection loop stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
