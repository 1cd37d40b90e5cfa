package robot

import "fmt"

// State is the state machine's lifecycle state. It is created Idle at
// startup and transitions are driven solely by the decision cycle.
type State int

const (
	Idle State = iota
	Detecting
	Cutting
	Error
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case Detecting:
		return "DETECTING"
	case Cutting:
		return "CUTTING"
	case Error:
		return "ERROR"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
