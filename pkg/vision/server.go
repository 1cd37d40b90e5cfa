package vision

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmcarrillo/go-cablebot/internal/log"
)

// Server exposes a Classifier as the vision classification service.
// It is its own deployable, independent of the controller service.
type Server struct {
	app        *fiber.App
	classifier Classifier
}

// NewServer creates the vision service around the injected classifier.
func NewServer(classifier Classifier) *Server {
	s := &Server{classifier: classifier}

	app := fiber.New(fiber.Config{
		AppName:               "cablebot vision",
		DisableStartupMessage: true,
	})
	app.Post("/detect", s.handleDetect)

	s.app = app
	return s
}

type detectRequest struct {
	Command string `json:"command"`
}

// handleDetect classifies the received command and answers with the
// cable status.
func (s *Server) handleDetect(c *fiber.Ctx) error {
	var req detectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": err.Error(),
		})
	}

	status := s.classifier.Classify(req.Command)
	log.Info("command classified", "command", req.Command, "cable_status", string(status))

	return c.JSON(fiber.Map{
		"cable_status": status,
	})
}

// App returns the underlying fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen starts the service on the given address. Blocks.
func (s *Server) Listen(addr string) error {
	log.Info("vision service listening", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the service.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
