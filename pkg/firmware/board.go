// Package firmware talks to the actuator board over a serial line
// protocol. The board multiplexes the servo PWM output, the cutting
// output and the detection sensors behind newline-delimited text
// commands:
//
//	PWM <channel> <pulse>  -> OK
//	CUT <millis>           -> OK (after the output is de-energized)
//	GET CURRENT            -> <float amps>
//	GET CABLE              -> 0 | 1
//	GET OBSTACLE           -> 0 | 1
//
// Any command may answer "ERR <message>" instead.
package firmware

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.bug.st/serial"

	"github.com/jmcarrillo/go-cablebot/pkg/actuator"
	"github.com/jmcarrillo/go-cablebot/pkg/cutter"
	"github.com/jmcarrillo/go-cablebot/pkg/sensor"
)

// ErrProtocol is returned when the board answers something unparseable.
var ErrProtocol = errors.New("firmware: unexpected response")

// DefaultReadTimeout bounds how long a command waits for its response.
// CUT responses arrive only after the actuation window, so this must
// exceed the longest configured cut duration.
const DefaultReadTimeout = 5 * time.Second

// Board is a serial bridge to the actuator hardware. One request/response
// exchange is in flight at a time; the mutex serializes callers.
type Board struct {
	mu   sync.Mutex
	port io.ReadWriteCloser
	r    *bufio.Reader
}

// Open connects to the actuator board on the given serial device.
func Open(device string, baud int) (*Board, error) {
	mode := &serial.Mode{BaudRate: baud}
	port, err := serial.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("firmware: open %s: %w", device, err)
	}
	if err := port.SetReadTimeout(DefaultReadTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("firmware: set read timeout: %w", err)
	}
	return newBoard(port), nil
}

func newBoard(port io.ReadWriteCloser) *Board {
	return &Board{port: port, r: bufio.NewReader(port)}
}

// Close releases the serial port.
func (b *Board) Close() error {
	return b.port.Close()
}

// command writes one line and reads the one-line response.
func (b *Board) command(cmd string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.port.Write([]byte(cmd + "\n")); err != nil {
		return "", fmt.Errorf("firmware: write %q: %w", cmd, err)
	}
	line, err := b.r.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("firmware: read response to %q: %w", cmd, err)
	}

	resp := strings.TrimSpace(line)
	if msg, failed := strings.CutPrefix(resp, "ERR "); failed {
		return "", fmt.Errorf("firmware: board error for %q: %s", cmd, msg)
	}
	return resp, nil
}

// commandOK runs a command that must answer "OK".
func (b *Board) commandOK(cmd string) error {
	resp, err := b.command(cmd)
	if err != nil {
		return err
	}
	if resp != "OK" {
		return fmt.Errorf("%w to %q: %q", ErrProtocol, cmd, resp)
	}
	return nil
}

// SetPulse implements actuator.PulseWriter.
func (b *Board) SetPulse(channel, pulse int) error {
	return b.commandOK(fmt.Sprintf("PWM %d %d", channel, pulse))
}

// Fire implements cutter.Output. The board holds the cutting output
// energized for the duration and answers once it is released.
func (b *Board) Fire(d time.Duration) error {
	return b.commandOK(fmt.Sprintf("CUT %d", d.Milliseconds()))
}

// ReadCurrent implements sensor.CurrentSensor.
func (b *Board) ReadCurrent() (float64, error) {
	resp, err := b.command("GET CURRENT")
	if err != nil {
		return 0, err
	}
	amps, err := strconv.ParseFloat(resp, 64)
	if err != nil {
		return 0, fmt.Errorf("%w to GET CURRENT: %q", ErrProtocol, resp)
	}
	return amps, nil
}

// DetectCable implements sensor.CableDetector.
func (b *Board) DetectCable() (bool, error) {
	return b.readBool("GET CABLE")
}

// DetectObstacle implements actuator.ObstacleDetector.
func (b *Board) DetectObstacle() (bool, error) {
	return b.readBool("GET OBSTACLE")
}

func (b *Board) readBool(cmd string) (bool, error) {
	resp, err := b.command(cmd)
	if err != nil {
		return false, err
	}
	switch resp {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, fmt.Errorf("%w to %q: %q", ErrProtocol, cmd, resp)
	}
}

// Compile-time interface checks.
var (
	_ actuator.PulseWriter      = (*Board)(nil)
	_ actuator.ObstacleDetector = (*Board)(nil)
	_ cutter.Output             = (*Board)(nil)
	_ sensor.CurrentSensor      = (*Board)(nil)
	_ sensor.CableDetector      = (*Board)(nil)
)
