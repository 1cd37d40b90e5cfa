package sensor

import "sync"

// Mock implements CurrentSensor, CableDetector and ConditionEvaluator for
// testing. All methods can be customized via function fields; every
// invocation is recorded for verification.
type Mock struct {
	// ReadCurrentFunc is called when ReadCurrent is invoked.
	// If nil, returns 0.
	ReadCurrentFunc func() (float64, error)

	// DetectCableFunc is called when DetectCable is invoked.
	// If nil, returns false.
	DetectCableFunc func() (bool, error)

	// EvaluateConditionFunc is called when EvaluateCondition is invoked.
	// If nil, returns ConditionGood.
	EvaluateConditionFunc func() (Condition, error)

	mu    sync.Mutex
	calls []string
}

// ReadCurrent calls ReadCurrentFunc and records the call.
func (m *Mock) ReadCurrent() (float64, error) {
	m.recordCall("ReadCurrent")
	if m.ReadCurrentFunc != nil {
		return m.ReadCurrentFunc()
	}
	return 0, nil
}

// DetectCable calls DetectCableFunc and records the call.
func (m *Mock) DetectCable() (bool, error) {
	m.recordCall("DetectCable")
	if m.DetectCableFunc != nil {
		return m.DetectCableFunc()
	}
	return false, nil
}

// EvaluateCondition calls EvaluateConditionFunc and records the call.
func (m *Mock) EvaluateCondition() (Condition, error) {
	m.recordCall("EvaluateCondition")
	if m.EvaluateConditionFunc != nil {
		return m.EvaluateConditionFunc()
	}
	return ConditionGood, nil
}

// Calls returns the method names invoked so far, in order.
func (m *Mock) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many times the named method was invoked.
func (m *Mock) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c == method {
			n++
		}
	}
	return n
}

func (m *Mock) recordCall(method string) {
	m.mu.Lock()
	m.calls = append(m.calls, method)
	m.mu.Unlock()
}

// Compile-time interface checks.
var (
	_ CurrentSensor      = (*Mock)(nil)
	_ CableDetector      = (*Mock)(nil)
	_ ConditionEvaluator = (*Mock)(nil)
)
