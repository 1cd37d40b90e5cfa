// Command vision runs the cable classification service consumed by the
// controller's orchestration layer. It is deliberately separate from the
// controller binary so each service has its own lifecycle.
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmcarrillo/go-cablebot/internal/config"
	"github.com/jmcarrillo/go-cablebot/internal/log"
	"github.com/jmcarrillo/go-cablebot/pkg/vision"
)

func main() {
	cfg := config.Load()

	addr := flag.String("addr", cfg.VisionAddr, "HTTP listen address")
	cutCommand := flag.String("cut-command", vision.DefaultCutCommand, "command classified as a dead cable")
	flag.Parse()

	log.Init(cfg.LogLevel)

	srv := vision.NewServer(vision.CommandClassifier{CutCommand: *cutCommand})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("shutting down")
		srv.Shutdown()
	}()

	if err := srv.Listen(*addr); err != nil {
		log.Error("vision service stopped", log.Err(err))
		os.Exit(1)
	}
}
