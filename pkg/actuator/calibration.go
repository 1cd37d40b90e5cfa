package actuator

import "fmt"

// Calibration holds a servo's PWM channel and the pulse values that
// correspond to its 0 and 180 degree mechanical limits. It is immutable
// after construction.
type Calibration struct {
	Channel  int
	PulseMin int
	PulseMax int
}

// NewCalibration validates and builds a servo calibration.
// PulseMin must be strictly less than PulseMax; anything else is a fatal
// configuration problem and must prevent startup.
func NewCalibration(channel, pulseMin, pulseMax int) (Calibration, error) {
	if pulseMin >= pulseMax {
		return Calibration{}, fmt.Errorf("%w (min=%d, max=%d)", ErrInvalidCalibration, pulseMin, pulseMax)
	}
	return Calibration{Channel: channel, PulseMin: pulseMin, PulseMax: pulseMax}, nil
}

// PulseRange returns the span between the calibrated pulse bounds.
func (c Calibration) PulseRange() int {
	return c.PulseMax - c.PulseMin
}
