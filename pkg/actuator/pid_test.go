package actuator

import (
	"math"
	"testing"
)

func TestPID_ProportionalOnly(t *testing.T) {
	p := NewPID(2, 0, 0)

	out := p.Update(10, 1)
	if out != 20 {
		t.Errorf("Update(10) = %v, want 20", out)
	}

	out = p.Update(-5, 1)
	if out != -10 {
		t.Errorf("Update(-5) = %v, want -10", out)
	}
}

func TestPID_IntegralAccumulates(t *testing.T) {
	p := NewPID(0, 1, 0)

	first := p.Update(1, 1)
	second := p.Update(1, 1)
	if second <= first {
		t.Errorf("integral term did not accumulate: %v then %v", first, second)
	}
	if second != 2 {
		t.Errorf("Update after two unit errors = %v, want 2", second)
	}
}

func TestPID_DerivativeDampens(t *testing.T) {
	p := NewPID(0, 0, 1)

	// First call sees the full error change, second call sees none.
	first := p.Update(4, 1)
	if first != 4 {
		t.Errorf("first derivative output = %v, want 4", first)
	}
	second := p.Update(4, 1)
	if second != 0 {
		t.Errorf("derivative output with constant error = %v, want 0", second)
	}
}

func TestPID_ConvergesTowardSetpoint(t *testing.T) {
	p := NewPID(0.4, 0.05, 0.1)

	// Simulate a plant that simply adds the control output each step.
	position := 0.0
	target := 90.0
	for i := 0; i < 200; i++ {
		position += p.Update(target-position, 1)
	}

	if math.Abs(target-position) > 1 {
		t.Errorf("position after 200 steps = %v, want within 1 of %v", position, target)
	}
}

func TestPID_ZeroDtGuard(t *testing.T) {
	p := NewPID(1, 1, 1)

	out := p.Update(1, 0)
	if math.IsInf(out, 0) || math.IsNaN(out) {
		t.Errorf("Update with dt=0 produced %v", out)
	}
}
