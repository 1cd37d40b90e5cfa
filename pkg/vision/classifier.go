// Package vision implements the cable classification service boundary:
// a pluggable classifier, the HTTP service exposing it, and the relay
// client the orchestration layer uses to reach it.
package vision

// Status is the classification verdict for a cable.
type Status string

const (
	StatusDead  Status = "dead"
	StatusAlive Status = "alive"
)

// Classifier maps an opaque command to a cable status. The rule is a
// pluggable boundary, never hard-coded into the consumers.
type Classifier interface {
	Classify(command string) Status
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(command string) Status

// Classify implements Classifier.
func (f ClassifierFunc) Classify(command string) Status { return f(command) }

// DefaultCutCommand is the command the reference service recognized.
const DefaultCutCommand = "cut_cable"

// CommandClassifier classifies by equality against a known cut command,
// replicating the reference service's rule as one implementation among
// possible others.
type CommandClassifier struct {
	CutCommand string
}

// NewCommandClassifier creates a classifier recognizing DefaultCutCommand.
func NewCommandClassifier() CommandClassifier {
	return CommandClassifier{CutCommand: DefaultCutCommand}
}

// Classify implements Classifier.
func (c CommandClassifier) Classify(command string) Status {
	if command == c.CutCommand {
		return StatusDead
	}
	return StatusAlive
}
