package actuator

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// MovementLog records completed actuator waypoints.
type MovementLog interface {
	Record(startAngle, endAngle float64) error
}

// NopLog discards movement records.
type NopLog struct{}

// Record implements MovementLog.
func (NopLog) Record(startAngle, endAngle float64) error { return nil }

// FileLog appends movement records to a plain text file, one line per
// waypoint:
//
//	Movimiento de <start> a <end> en <timestamp>
//
// The line format is kept compatible with log files written by the
// original controller.
type FileLog struct {
	path string

	mu  sync.Mutex
	now func() time.Time
}

// NewFileLog creates a movement log appending to the given path.
// The file is created on first write.
func NewFileLog(path string) *FileLog {
	return &FileLog{path: path, now: time.Now}
}

// Record implements MovementLog.
func (l *FileLog) Record(startAngle, endAngle float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("actuator: open movement log: %w", err)
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "Movimiento de %g a %g en %s\n",
		startAngle, endAngle, l.now().Format(time.ANSIC))
	if err != nil {
		return fmt.Errorf("actuator: write movement log: %w", err)
	}
	return nil
}
