package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/jmcarrillo/go-cablebot/internal/log"
	"github.com/jmcarrillo/go-cablebot/pkg/cutter"
	"github.com/jmcarrillo/go-cablebot/pkg/hub"
	"github.com/jmcarrillo/go-cablebot/pkg/vision"
)

type receiveDataRequest struct {
	CableStatus string `json:"cable_status"`
}

type sendCommandRequest struct {
	Command string `json:"command"`
}

// handleReceiveData receives a cable-status classification. "dead"
// triggers the cut sequence: Cutter.Cut followed by the smooth 0-90
// degree motion. Any other value is acknowledged without action.
func (s *Server) handleReceiveData(c *fiber.Ctx) error {
	var req receiveDataRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, err)
	}

	if req.CableStatus != string(vision.StatusDead) {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "no action required",
		})
	}

	log.Info("dead cable reported, running cut sequence")

	if err := s.cutter.Cut(); err != nil {
		if errors.Is(err, cutter.ErrBusy) {
			// Soft rejection: the interlock held, nothing actuated.
			return c.JSON(fiber.Map{
				"status":  "success",
				"message": "cutter busy, request ignored",
			})
		}
		return errorResponse(c, err)
	}

	if err := s.actuator.MoveSmoothly(c.Context(), 0, 90, CutSequenceStep); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "cutting mechanism activated and actuator moved",
	})
}

// handleSendCommand relays an opaque command to the vision service and
// mirrors its response and status code verbatim.
func (s *Server) handleSendCommand(c *fiber.Ctx) error {
	var req sendCommandRequest
	if err := c.BodyParser(&req); err != nil {
		return errorResponse(c, err)
	}

	body, code, err := s.relay.Send(req.Command)
	if err != nil {
		return errorResponse(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(code).Send(body)
}

// handleStatus returns the state machine's current state.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	state := "unknown"
	if s.status != nil {
		state = s.status.State().String()
	}
	return c.JSON(fiber.Map{
		"state": state,
	})
}

// handleStatusWS streams state transitions to a dashboard client.
func (s *Server) handleStatusWS(c *websocket.Conn) {
	client := hub.NewClient(s.statusHub, c)
	client.Run()
}

// errorResponse converts an internal failure into the structured error
// record the boundary promises; the request path never crashes.
func errorResponse(c *fiber.Ctx, err error) error {
	log.Error("request failed", log.Err(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"status":  "error",
		"message": err.Error(),
	})
}
