// Package web provides the orchestration HTTP API for the controller
// service: it receives cable-status events, relays commands to the
// vision service and streams state transitions to dashboard clients.
//
// The server takes all collaborators by injection; there is no hidden
// process-wide instance.
package web

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/jmcarrillo/go-cablebot/internal/log"
	"github.com/jmcarrillo/go-cablebot/pkg/hub"
	"github.com/jmcarrillo/go-cablebot/pkg/robot"
)

// CableCutter triggers the single-use cutting mechanism.
type CableCutter interface {
	Cut() error
}

// Actuator performs the post-cut motion.
type Actuator interface {
	MoveSmoothly(ctx context.Context, startAngle, endAngle float64, stepDuration time.Duration) error
}

// VisionRelay forwards opaque commands to the vision service and returns
// its response verbatim.
type VisionRelay interface {
	Send(command string) (body []byte, statusCode int, err error)
}

// StateReporter exposes the state machine's current state.
type StateReporter interface {
	State() robot.State
}

// CutSequenceStep is the per-waypoint duration of the post-cut motion,
// matching the reference sequence move_smoothly(0, 90, 0.1).
const CutSequenceStep = 100 * time.Millisecond

// Server is the orchestration HTTP server.
type Server struct {
	app *fiber.App

	cutter   CableCutter
	actuator Actuator
	relay    VisionRelay
	status   StateReporter

	statusHub *hub.Hub
}

// NewServer creates the orchestration server around the injected
// collaborators.
func NewServer(cut CableCutter, act Actuator, relay VisionRelay, status StateReporter) *Server {
	s := &Server{
		cutter:    cut,
		actuator:  act,
		relay:     relay,
		status:    status,
		statusHub: hub.New("status"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "cablebot controller",
		DisableStartupMessage: true,
	})

	app.Post("/receive_data", s.handleReceiveData)
	app.Post("/send_command", s.handleSendCommand)
	app.Get("/api/status", s.handleStatus)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/status", websocket.New(s.handleStatusWS))

	s.app = app
	return s
}

// StatusEvent is broadcast to dashboard clients on every state
// transition of the state machine.
type StatusEvent struct {
	Time    string `json:"time"`
	CycleID string `json:"cycle_id"`
	State   string `json:"state"`
}

// NotifyState implements robot.Notifier by broadcasting the transition.
func (s *Server) NotifyState(cycleID string, st robot.State) {
	s.statusHub.BroadcastJSON(StatusEvent{
		Time:    time.Now().Format(time.RFC3339),
		CycleID: cycleID,
		State:   st.String(),
	})
}

// App returns the underlying fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start runs the status hub and listens on addr. Blocks.
func (s *Server) Start(addr string) error {
	go s.statusHub.Run()
	log.Info("controller API listening", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
