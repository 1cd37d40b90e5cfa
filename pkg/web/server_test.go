package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jmcarrillo/go-cablebot/pkg/cutter"
	"github.com/jmcarrillo/go-cablebot/pkg/robot"
)

// fakeCutter counts cuts and can return a configured error.
type fakeCutter struct {
	cuts int
	err  error
}

func (f *fakeCutter) Cut() error {
	f.cuts++
	return f.err
}

// fakeActuator records smooth moves.
type fakeActuator struct {
	moves [][2]float64
	err   error
}

func (f *fakeActuator) MoveSmoothly(ctx context.Context, start, end float64, step time.Duration) error {
	f.moves = append(f.moves, [2]float64{start, end})
	return f.err
}

// fakeRelay returns a canned vision response.
type fakeRelay struct {
	body     string
	code     int
	err      error
	commands []string
}

func (f *fakeRelay) Send(command string) ([]byte, int, error) {
	f.commands = append(f.commands, command)
	return []byte(f.body), f.code, f.err
}

// fakeStatus reports a fixed state.
type fakeStatus struct{ state robot.State }

func (f fakeStatus) State() robot.State { return f.state }

func postJSON(t *testing.T, s *Server, path, body string) (int, map[string]string) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.App().Test(req)
	if err != nil {
		t.Fatalf("Test error = %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	var out map[string]string
	json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func TestReceiveData_DeadCableRunsCutSequence(t *testing.T) {
	cut := &fakeCutter{}
	act := &fakeActuator{}
	s := NewServer(cut, act, &fakeRelay{}, fakeStatus{})

	code, out := postJSON(t, s, "/receive_data", `{"cable_status":"dead"}`)
	if code != 200 {
		t.Fatalf("status = %d, want 200", code)
	}
	if out["status"] != "success" {
		t.Errorf("response status = %q, want success", out["status"])
	}
	if cut.cuts != 1 {
		t.Errorf("cutter invoked %d times, want exactly 1", cut.cuts)
	}
	if len(act.moves) != 1 || act.moves[0] != [2]float64{0, 90} {
		t.Errorf("smooth moves = %v, want one 0-90 move", act.moves)
	}
}

func TestReceiveData_AliveCableNoActuation(t *testing.T) {
	cut := &fakeCutter{}
	act := &fakeActuator{}
	s := NewServer(cut, act, &fakeRelay{}, fakeStatus{})

	code, out := postJSON(t, s, "/receive_data", `{"cable_status":"alive"}`)
	if code != 200 || out["status"] != "success" {
		t.Fatalf("response = (%d, %v), want 200 success", code, out)
	}
	if cut.cuts != 0 || len(act.moves) != 0 {
		t.Errorf("actuation on alive cable: cuts=%d moves=%v, want none", cut.cuts, act.moves)
	}
}

func TestReceiveData_UnknownStatusNoActuation(t *testing.T) {
	cut := &fakeCutter{}
	act := &fakeActuator{}
	s := NewServer(cut, act, &fakeRelay{}, fakeStatus{})

	code, _ := postJSON(t, s, "/receive_data", `{"cable_status":"sparking"}`)
	if code != 200 {
		t.Fatalf("status = %d, want 200", code)
	}
	if cut.cuts != 0 || len(act.moves) != 0 {
		t.Errorf("actuation on unknown status: cuts=%d moves=%v, want none", cut.cuts, act.moves)
	}
}

func TestReceiveData_BusyCutterIsSoft(t *testing.T) {
	cut := &fakeCutter{err: cutter.ErrBusy}
	act := &fakeActuator{}
	s := NewServer(cut, act, &fakeRelay{}, fakeStatus{})

	code, out := postJSON(t, s, "/receive_data", `{"cable_status":"dead"}`)
	if code != 200 || out["status"] != "success" {
		t.Fatalf("response = (%d, %v), want 200 success on busy", code, out)
	}
	// The interlock held: no motion either.
	if len(act.moves) != 0 {
		t.Errorf("moves = %v, want none while cutter busy", act.moves)
	}
}

func TestReceiveData_ActuationFailureIsErrorRecord(t *testing.T) {
	cut := &fakeCutter{err: &cutter.ActuationError{Err: errors.New("solenoid fault")}}
	s := NewServer(cut, &fakeActuator{}, &fakeRelay{}, fakeStatus{})

	code, out := postJSON(t, s, "/receive_data", `{"cable_status":"dead"}`)
	if code != 500 {
		t.Fatalf("status = %d, want 500", code)
	}
	if out["status"] != "error" || out["message"] == "" {
		t.Errorf("error record = %v, want status=error with message", out)
	}
}

func TestSendCommand_RelaysVerbatim(t *testing.T) {
	relay := &fakeRelay{body: `{"cable_status":"dead"}`, code: 200}
	s := NewServer(&fakeCutter{}, &fakeActuator{}, relay, fakeStatus{})

	req := httptest.NewRequest("POST", "/send_command", strings.NewReader(`{"command":"cut_cable"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App().Test(req)
	if err != nil {
		t.Fatalf("Test error = %v", err)
	}
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != 200 {
		t.Errorf("status = %d, want relayed 200", resp.StatusCode)
	}
	if string(body) != relay.body {
		t.Errorf("body = %q, want relayed %q", body, relay.body)
	}
	if len(relay.commands) != 1 || relay.commands[0] != "cut_cable" {
		t.Errorf("relayed commands = %v, want [cut_cable]", relay.commands)
	}
}

func TestSendCommand_TransportFailure(t *testing.T) {
	relay := &fakeRelay{err: errors.New("connection refused")}
	s := NewServer(&fakeCutter{}, &fakeActuator{}, relay, fakeStatus{})

	code, out := postJSON(t, s, "/send_command", `{"command":"cut_cable"}`)
	if code != 500 || out["status"] != "error" {
		t.Errorf("response = (%d, %v), want 500 error record", code, out)
	}
}

func TestStatus(t *testing.T) {
	s := NewServer(&fakeCutter{}, &fakeActuator{}, &fakeRelay{}, fakeStatus{state: robot.Detecting})

	req := httptest.NewRequest("GET", "/api/status", nil)
	resp, err := s.App().Test(req)
	if err != nil {
		t.Fatalf("Test error = %v", err)
	}
	var out map[string]string
	json.NewDecoder(resp.Body).Decode(&out)
	if out["state"] != "DETECTING" {
		t.Errorf("state = %q, want DETECTING", out["state"])
	}
}
