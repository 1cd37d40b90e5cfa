// Command cablebot runs the actuator controller service: the periodic
// cable detection loop plus the orchestration HTTP API.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmcarrillo/go-cablebot/internal/config"
	"github.com/jmcarrillo/go-cablebot/internal/log"
	"github.com/jmcarrillo/go-cablebot/pkg/actuator"
	"github.com/jmcarrillo/go-cablebot/pkg/cutter"
	"github.com/jmcarrillo/go-cablebot/pkg/firmware"
	"github.com/jmcarrillo/go-cablebot/pkg/robot"
	"github.com/jmcarrillo/go-cablebot/pkg/sensor"
	"github.com/jmcarrillo/go-cablebot/pkg/vision"
	"github.com/jmcarrillo/go-cablebot/pkg/web"
)

func main() {
	cfg := config.Load()

	addr := flag.String("addr", cfg.Addr, "HTTP listen address")
	serialPort := flag.String("serial", cfg.SerialPort, "serial device of the actuator board (empty runs without hardware)")
	flag.Parse()

	log.Init(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("shutting down")
		cancel()
	}()

	cal, err := actuator.NewCalibration(cfg.ServoChannel, cfg.PulseMin, cfg.PulseMax)
	if err != nil {
		log.Error("invalid servo calibration", log.Err(err))
		os.Exit(1)
	}

	var (
		driver    actuator.PulseWriter
		obstacles actuator.ObstacleDetector
		cutOut    cutter.Output
		current   sensor.CurrentSensor
		detector  sensor.CableDetector
	)
	if *serialPort != "" {
		board, err := firmware.Open(*serialPort, cfg.SerialBaud)
		if err != nil {
			log.Error("actuator board unavailable", log.Err(err))
			os.Exit(1)
		}
		defer board.Close()
		driver, obstacles, cutOut, current, detector = board, board, board, board, board
		log.Info("actuator board connected", "device", *serialPort, "baud", cfg.SerialBaud)
	} else {
		sim := &simBoard{}
		driver, obstacles, cutOut, current, detector = sim, sim, sim, sim, sim
		log.Warn("no serial device configured, running with simulated hardware")
	}

	ctrl := actuator.NewController(cal, driver)
	ctrl.SetSettleDelay(cfg.SettleDelay)
	ctrl.SetPID(actuator.NewPID(cfg.Kp, cfg.Ki, cfg.Kd))
	ctrl.SetMovementLog(actuator.NewFileLog(cfg.MovementLog))
	ctrl.SetObstacleDetector(obstacles)

	cut := cutter.New(cutOut, cfg.CutDuration)
	gateway := sensor.NewGateway(current, detector,
		sensor.NewRandomEvaluator(time.Now().UnixNano()), cfg.CurrentThreshold)
	bot := robot.New(gateway, cut, cfg.PollInterval)

	srv := web.NewServer(cut, ctrl, vision.NewClient(cfg.VisionURL), bot)
	bot.SetNotifier(srv)

	go func() {
		if err := srv.Start(*addr); err != nil {
			log.Error("HTTP server stopped", log.Err(err))
			cancel()
		}
	}()

	err = bot.Run(ctx)
	srv.Shutdown()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("state machine halted, restart required", log.Err(err))
		os.Exit(1)
	}
}

// simBoard stands in for the actuator board when no serial device is
// configured: pulses are logged, sensors report an empty work area.
type simBoard struct{}

func (s *simBoard) SetPulse(channel, pulse int) error {
	log.Debug("simulated pulse", "channel", channel, "pulse", pulse)
	return nil
}

func (s *simBoard) Fire(d time.Duration) error {
	log.Debug("simulated cut", "duration", d)
	time.Sleep(d)
	return nil
}

func (s *simBoard) ReadCurrent() (float64, error) { return 0, nil }

func (s *simBoard) DetectCable() (bool, error) { return false, nil }

func (s *simBoard) DetectObstacle() (bool, error) { return false, nil }
