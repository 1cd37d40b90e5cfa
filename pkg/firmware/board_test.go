package firmware

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

// scriptedPort replays canned responses and records written commands.
type scriptedPort struct {
	responses *strings.Reader
	written   bytes.Buffer
	closed    bool
}

func newScriptedPort(responses ...string) *scriptedPort {
	return &scriptedPort{responses: strings.NewReader(strings.Join(responses, "\n") + "\n")}
}

func (p *scriptedPort) Read(b []byte) (int, error)  { return p.responses.Read(b) }
func (p *scriptedPort) Write(b []byte) (int, error) { return p.written.Write(b) }
func (p *scriptedPort) Close() error                { p.closed = true; return nil }

func TestBoard_SetPulse(t *testing.T) {
	port := newScriptedPort("OK")
	b := newBoard(port)

	if err := b.SetPulse(0, 375); err != nil {
		t.Fatalf("SetPulse error = %v", err)
	}
	if got := strings.TrimSpace(port.written.String()); got != "PWM 0 375" {
		t.Errorf("wrote %q, want PWM 0 375", got)
	}
}

func TestBoard_Fire(t *testing.T) {
	port := newScriptedPort("OK")
	b := newBoard(port)

	if err := b.Fire(2 * time.Second); err != nil {
		t.Fatalf("Fire error = %v", err)
	}
	if got := strings.TrimSpace(port.written.String()); got != "CUT 2000" {
		t.Errorf("wrote %q, want CUT 2000", got)
	}
}

func TestBoard_ReadCurrent(t *testing.T) {
	port := newScriptedPort("0.05")
	b := newBoard(port)

	amps, err := b.ReadCurrent()
	if err != nil {
		t.Fatalf("ReadCurrent error = %v", err)
	}
	if amps != 0.05 {
		t.Errorf("ReadCurrent = %v, want 0.05", amps)
	}
}

func TestBoard_DetectCable(t *testing.T) {
	port := newScriptedPort("1", "0")
	b := newBoard(port)

	detected, err := b.DetectCable()
	if err != nil || !detected {
		t.Errorf("DetectCable = (%v, %v), want (true, nil)", detected, err)
	}
	detected, err = b.DetectCable()
	if err != nil || detected {
		t.Errorf("DetectCable = (%v, %v), want (false, nil)", detected, err)
	}
}

func TestBoard_BoardError(t *testing.T) {
	port := newScriptedPort("ERR pwm channel out of range")
	b := newBoard(port)

	err := b.SetPulse(99, 375)
	if err == nil || !strings.Contains(err.Error(), "pwm channel out of range") {
		t.Errorf("SetPulse error = %v, want board error message", err)
	}
}

func TestBoard_ProtocolViolation(t *testing.T) {
	port := newScriptedPort("MAYBE")
	b := newBoard(port)

	if err := b.SetPulse(0, 375); !errors.Is(err, ErrProtocol) {
		t.Errorf("SetPulse error = %v, want ErrProtocol", err)
	}
}
