package actuator

// PID implements proportional-integral-derivative correction for the
// closed-loop positioning path.
type PID struct {
	// Gains
	Kp float64 // Proportional gain
	Ki float64 // Integral gain
	Kd float64 // Derivative gain

	// State, mutated once per control invocation
	integral  float64
	lastError float64
}

// NewPID creates a PID controller with the given gains.
func NewPID(kp, ki, kd float64) *PID {
	return &PID{Kp: kp, Ki: ki, Kd: kd}
}

// Update calculates the control output for the current error.
// dt is the time since the previous invocation in seconds.
func (p *PID) Update(err, dt float64) float64 {
	if dt <= 0 {
		dt = 1
	}

	pTerm := p.Kp * err

	p.integral += err * dt
	iTerm := p.Ki * p.integral

	dTerm := p.Kd * (err - p.lastError) / dt
	p.lastError = err

	return pTerm + iTerm + dTerm
}
