// Package config provides configuration helpers for go-cablebot commands.
// Everything is read from environment variables with defaults that match
// the reference deployment (single robot, vision service on the same host).
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Default runtime settings.
const (
	DefaultAddr       = ":5000"
	DefaultVisionAddr = ":5001"
	DefaultVisionURL  = "http://localhost:5001"

	DefaultSerialPort = "/dev/ttyUSB0"
	DefaultSerialBaud = 9600

	DefaultServoChannel = 0
	DefaultPulseMin     = 150
	DefaultPulseMax     = 600

	DefaultCurrentThreshold = 0.1
	DefaultPollInterval     = 10 * time.Second
	DefaultSettleDelay      = 1 * time.Second
	DefaultCutDuration      = 2 * time.Second

	DefaultMovementLog = "actuator_log.txt"
)

// Default PID gains for the closed-loop correction path.
const (
	DefaultKp = 1.0
	DefaultKi = 0.1
	DefaultKd = 0.05
)

// Config holds the runtime settings for the controller service.
type Config struct {
	Addr       string // HTTP listen address for the controller API
	VisionAddr string // HTTP listen address for the vision service
	VisionURL  string // Base URL of the vision classification service

	SerialPort string // Serial device of the actuator board, empty disables hardware
	SerialBaud int

	ServoChannel int
	PulseMin     int
	PulseMax     int

	CurrentThreshold float64
	PollInterval     time.Duration
	SettleDelay      time.Duration
	CutDuration      time.Duration

	Kp, Ki, Kd float64

	MovementLog string
	LogLevel    string
}

// Load builds a Config from environment variables, falling back to defaults.
func Load() Config {
	return Config{
		Addr:       envStr("CABLEBOT_ADDR", DefaultAddr),
		VisionAddr: envStr("VISION_ADDR", DefaultVisionAddr),
		VisionURL:  envStr("VISION_URL", DefaultVisionURL),

		SerialPort: envStr("SERIAL_PORT", DefaultSerialPort),
		SerialBaud: envInt("SERIAL_BAUD", DefaultSerialBaud),

		ServoChannel: envInt("SERVO_CHANNEL", DefaultServoChannel),
		PulseMin:     envInt("SERVO_PULSE_MIN", DefaultPulseMin),
		PulseMax:     envInt("SERVO_PULSE_MAX", DefaultPulseMax),

		CurrentThreshold: envFloat("CURRENT_THRESHOLD", DefaultCurrentThreshold),
		PollInterval:     envDuration("POLL_INTERVAL", DefaultPollInterval),
		SettleDelay:      envDuration("SETTLE_DELAY", DefaultSettleDelay),
		CutDuration:      envDuration("CUT_DURATION", DefaultCutDuration),

		Kp: envFloat("PID_KP", DefaultKp),
		Ki: envFloat("PID_KI", DefaultKi),
		Kd: envFloat("PID_KD", DefaultKd),

		MovementLog: envStr("MOVEMENT_LOG", DefaultMovementLog),
		LogLevel:    envStr("LOG_LEVEL", "info"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: invalid %s=%q, using %d\n", key, v, fallback)
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: invalid %s=%q, using %g\n", key, v, fallback)
		return fallback
	}
	return f
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: invalid %s=%q, using %s\n", key, v, fallback)
		return fallback
	}
	return d
}
