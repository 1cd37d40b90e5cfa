package sensor

import (
	"math/rand"
	"sync"
)

// RandomEvaluator is a stand-in condition evaluator that classifies
// cables by coin flip, mirroring the behavior of the reference sensor
// layer before a real classifier is attached. Unlike the reference it is
// explicitly seeded, so a run can be reproduced.
type RandomEvaluator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomEvaluator creates an evaluator with the given seed.
func NewRandomEvaluator(seed int64) *RandomEvaluator {
	return &RandomEvaluator{rng: rand.New(rand.NewSource(seed))}
}

// EvaluateCondition implements ConditionEvaluator.
func (e *RandomEvaluator) EvaluateCondition() (Condition, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.rng.Intn(2) == 0 {
		return ConditionGood, nil
	}
	return ConditionBad, nil
}
