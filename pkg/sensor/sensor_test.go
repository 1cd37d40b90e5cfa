package sensor

import (
	"errors"
	"testing"
)

func TestGateway_WrapsReadFailures(t *testing.T) {
	boom := errors.New("wire noise")
	m := &Mock{
		ReadCurrentFunc: func() (float64, error) { return 0, boom },
		DetectCableFunc: func() (bool, error) { return false, boom },
	}
	g := NewGateway(m, m, m, 0.1)

	_, err := g.ReadCurrent()
	var readErr *ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("ReadCurrent error = %v, want *ReadError", err)
	}
	if readErr.Sensor != "current" {
		t.Errorf("ReadError.Sensor = %q, want current", readErr.Sensor)
	}
	if !errors.Is(err, boom) {
		t.Errorf("ReadError does not wrap the underlying failure: %v", err)
	}

	if _, err := g.DetectCable(); !errors.As(err, &readErr) || readErr.Sensor != "vision" {
		t.Errorf("DetectCable error = %v, want *ReadError for vision", err)
	}
}

func TestGateway_PassesValuesThrough(t *testing.T) {
	m := &Mock{
		ReadCurrentFunc:       func() (float64, error) { return 0.42, nil },
		DetectCableFunc:       func() (bool, error) { return true, nil },
		EvaluateConditionFunc: func() (Condition, error) { return ConditionBad, nil },
	}
	g := NewGateway(m, m, m, 0.1)

	if v, err := g.ReadCurrent(); err != nil || v != 0.42 {
		t.Errorf("ReadCurrent = (%v, %v), want (0.42, nil)", v, err)
	}
	if d, err := g.DetectCable(); err != nil || !d {
		t.Errorf("DetectCable = (%v, %v), want (true, nil)", d, err)
	}
	if c, err := g.EvaluateCondition(); err != nil || c != ConditionBad {
		t.Errorf("EvaluateCondition = (%v, %v), want (bad, nil)", c, err)
	}
}

func TestNewGateway_ThresholdFallback(t *testing.T) {
	g := NewGateway(&Mock{}, &Mock{}, &Mock{}, 0)
	if g.Threshold != DefaultCurrentThreshold {
		t.Errorf("Threshold = %v, want default %v", g.Threshold, DefaultCurrentThreshold)
	}
}

func TestRandomEvaluator_Deterministic(t *testing.T) {
	a := NewRandomEvaluator(7)
	b := NewRandomEvaluator(7)

	for i := 0; i < 50; i++ {
		ca, _ := a.EvaluateCondition()
		cb, _ := b.EvaluateCondition()
		if ca != cb {
			t.Fatalf("same seed diverged at draw %d: %v vs %v", i, ca, cb)
		}
	}
}
