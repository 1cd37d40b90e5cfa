package actuator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFileLog_LineFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actuator_log.txt")
	l := NewFileLog(path)
	fixed := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	l.now = func() time.Time { return fixed }

	if err := l.Record(0, 45); err != nil {
		t.Fatalf("Record error = %v", err)
	}
	if err := l.Record(45, 90); err != nil {
		t.Fatalf("Record error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	want := "Movimiento de 0 a 45 en " + fixed.Format(time.ANSIC)
	if lines[0] != want {
		t.Errorf("line = %q, want %q", lines[0], want)
	}
	if !strings.HasPrefix(lines[1], "Movimiento de 45 a 90 en ") {
		t.Errorf("line = %q, want Movimiento de 45 a 90 prefix", lines[1])
	}
}
