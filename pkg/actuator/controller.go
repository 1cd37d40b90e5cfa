// Package actuator converts target angles into safe, smooth physical
// motion on a calibrated PWM servo channel.
//
// The package defines small, focused collaborator interfaces (PulseWriter,
// ObstacleDetector, AngleFeedback, MovementLog) so the controller can be
// driven against real hardware or test doubles without changes.
package actuator

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jmcarrillo/go-cablebot/internal/log"
)

// PulseWriter issues a normalized pulse command to the hardware-actuation
// capability. Implementations must not retry on failure.
type PulseWriter interface {
	SetPulse(channel, pulse int) error
}

// ObstacleDetector reports whether something blocks the actuator's path.
type ObstacleDetector interface {
	DetectObstacle() (bool, error)
}

// AngleFeedback reports the actuator's current shaft angle in degrees.
type AngleFeedback interface {
	CurrentAngle() (float64, error)
}

// FixedFeedback is an AngleFeedback that always reports the same angle.
// The reference hardware carries no position sensor, so the control loop
// runs open-loop from an assumed starting angle.
type FixedFeedback struct {
	Angle float64
}

// CurrentAngle implements AngleFeedback.
func (f FixedFeedback) CurrentAngle() (float64, error) { return f.Angle, nil }

// DefaultSettleDelay is the wait after a single pulse command, allowing
// the physical actuator to reach position before the next command.
const DefaultSettleDelay = 1 * time.Second

// Controller converts angles to pulse commands and performs single-step,
// incremental and smooth moves on one servo channel. Apart from the PID
// accumulator every call is stateless.
type Controller struct {
	cal    Calibration
	driver PulseWriter

	obstacles ObstacleDetector // nil means path assumed clear
	feedback  AngleFeedback
	movelog   MovementLog
	pid       *PID

	settle time.Duration
	sleep  func(time.Duration)
}

// NewController creates a controller for the given calibration and driver.
// Defaults: no obstacle detector, fixed zero-angle feedback, discarded
// movement log, reference PID gains, one second settle delay.
func NewController(cal Calibration, driver PulseWriter) *Controller {
	return &Controller{
		cal:      cal,
		driver:   driver,
		feedback: FixedFeedback{},
		movelog:  NopLog{},
		pid:      NewPID(1, 0.1, 0.05),
		settle:   DefaultSettleDelay,
		sleep:    time.Sleep,
	}
}

// SetObstacleDetector installs the collaborator consulted by MoveSafely.
func (c *Controller) SetObstacleDetector(d ObstacleDetector) { c.obstacles = d }

// SetFeedback installs the angle feedback used by ApplyControlLoop.
func (c *Controller) SetFeedback(f AngleFeedback) { c.feedback = f }

// SetMovementLog installs the movement log written by MoveSmoothly.
func (c *Controller) SetMovementLog(l MovementLog) { c.movelog = l }

// SetPID replaces the PID used by ApplyControlLoop.
func (c *Controller) SetPID(p *PID) { c.pid = p }

// SetSettleDelay overrides the wait after each single pulse command.
func (c *Controller) SetSettleDelay(d time.Duration) { c.settle = d }

// PulseForAngle converts an angle in degrees to a pulse command by linear
// interpolation between the calibrated bounds. Pure and deterministic for
// identical calibration and angle.
func (c *Controller) PulseForAngle(angle float64) (int, error) {
	if angle < 0 || angle > 180 {
		return 0, fmt.Errorf("%w: %.2f", ErrAngleOutOfRange, angle)
	}
	pulse := float64(c.cal.PulseMin) + (angle/180.0)*float64(c.cal.PulseRange())
	return int(math.Round(pulse)), nil
}

// MoveTo issues one pulse command for the angle, then blocks for the
// settle delay. A hardware failure surfaces as an *ActuationError and is
// not retried.
func (c *Controller) MoveTo(angle float64) error {
	pulse, err := c.PulseForAngle(angle)
	if err != nil {
		return err
	}
	if err := c.driver.SetPulse(c.cal.Channel, pulse); err != nil {
		return WrapActuation("servo", err)
	}
	c.sleep(c.settle)
	return nil
}

// MoveIncremental issues MoveTo calls every step degrees from start toward
// end, in either direction. The sequence stops at the last waypoint that
// does not overshoot end; the first failure aborts the remainder.
func (c *Controller) MoveIncremental(startAngle, endAngle, step float64) error {
	if step <= 0 {
		return fmt.Errorf("%w: %.2f", ErrInvalidStep, step)
	}

	if startAngle <= endAngle {
		for a := startAngle; a <= endAngle+1e-9; a += step {
			if err := c.MoveTo(a); err != nil {
				return err
			}
		}
		return nil
	}
	for a := startAngle; a >= endAngle-1e-9; a -= step {
		if err := c.MoveTo(a); err != nil {
			return err
		}
	}
	return nil
}

// MoveSmoothly interpolates floor(|end-start|) steps (minimum 1) between
// the angles, writing a pulse, recording a movement log entry and sleeping
// stepDuration at each waypoint. The final waypoint is assigned endAngle
// exactly so rounding drift cannot accumulate into the target.
//
// The context is checked at every waypoint boundary; cancellation stops
// the sequence between waypoints, never mid-write.
func (c *Controller) MoveSmoothly(ctx context.Context, startAngle, endAngle float64, stepDuration time.Duration) error {
	steps := int(math.Floor(math.Abs(endAngle - startAngle)))
	if steps < 1 {
		steps = 1
	}

	for i := 0; i <= steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		angle := startAngle + float64(i)*(endAngle-startAngle)/float64(steps)
		if i == steps {
			angle = endAngle
		}

		pulse, err := c.PulseForAngle(angle)
		if err != nil {
			return err
		}
		if err := c.driver.SetPulse(c.cal.Channel, pulse); err != nil {
			return WrapActuation("servo", err)
		}
		if err := c.movelog.Record(startAngle, angle); err != nil {
			log.Warn("movement log write failed", log.Err(err))
		}
		c.sleep(stepDuration)
	}
	return nil
}

// MoveSafely gates MoveTo behind the obstacle detector. A detected
// obstacle (or a failed detector read, treated conservatively) skips the
// move and returns ErrObstacleDetected rather than a hardware fault.
func (c *Controller) MoveSafely(angle float64) error {
	if c.obstacles != nil {
		blocked, err := c.obstacles.DetectObstacle()
		if err != nil {
			log.Warn("obstacle detector read failed, cancelling move", log.Err(err))
			return ErrObstacleDetected
		}
		if blocked {
			log.Warn("obstacle detected, move cancelled", "angle", angle)
			return ErrObstacleDetected
		}
	}
	return c.MoveTo(angle)
}

// ApplyControlLoop reads the current angle from the feedback collaborator,
// computes a PID correction toward targetAngle and issues a single MoveTo
// with the corrected value, clamped to the valid range.
func (c *Controller) ApplyControlLoop(targetAngle float64) error {
	if targetAngle < 0 || targetAngle > 180 {
		return fmt.Errorf("%w: %.2f", ErrAngleOutOfRange, targetAngle)
	}

	current, err := c.feedback.CurrentAngle()
	if err != nil {
		return fmt.Errorf("actuator: read angle feedback: %w", err)
	}

	// One control invocation per settle period.
	output := c.pid.Update(targetAngle-current, c.settle.Seconds())
	corrected := clamp(current+output, 0, 180)
	return c.MoveTo(corrected)
}

// Calibrate sweeps the actuator to both extremes of the given range,
// verifying the mechanics track the calibrated bounds.
func (c *Controller) Calibrate(startAngle, endAngle float64) error {
	if err := c.MoveTo(startAngle); err != nil {
		return err
	}
	return c.MoveTo(endAngle)
}

// OptimizeSpeed issues one pulse command with a caller-chosen settle time
// instead of the default delay.
func (c *Controller) OptimizeSpeed(angle float64, settle time.Duration) error {
	pulse, err := c.PulseForAngle(angle)
	if err != nil {
		return err
	}
	if err := c.driver.SetPulse(c.cal.Channel, pulse); err != nil {
		return WrapActuation("servo", err)
	}
	c.sleep(settle)
	return nil
}

// clamp restricts v to the range [min, max].
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
