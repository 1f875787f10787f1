package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ai-interviewer/internal/models"
	"alfredoptarigan/ai-interviewer/internal/services"
)

type InterviewHandler struct {
	interviewer services.InterviewerService
}

func NewInterviewHandler(interviewer services.InterviewerService) *InterviewHandler {
	return &InterviewHandler{
		interviewer: interviewer,
	}
}

// HandleStart handles POST /start
func (h *InterviewHandler) HandleStart(c *fiber.Ctx) error {
	role := c.FormValue("role")
	name := c.FormValue("name")

	if role == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "role is required",
		})
	}

	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name is required",
		})
	}

	// Accepted for wire compatibility; pacing is driven by seconds_left on
	// each chat call.
	if _, err := strconv.Atoi(c.FormValue("duration_minutes")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "duration_minutes must be an integer",
		})
	}

	resume, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume file is required",
		})
	}

	sessionID, opening, err := h.interviewer.Start(c.Context(), role, name, resume)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRole) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("'%s' does not appear to be a valid job role. Please enter a real job title.", role),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("AI Error: %v", err),
		})
	}

	return c.JSON(models.StartResponse{
		SessionID: sessionID,
		Message:   opening,
	})
}

// HandleChat handles POST /chat
func (h *InterviewHandler) HandleChat(c *fiber.Ctx) error {
	var req models.ChatRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.SessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "session_id is required",
		})
	}

	reply, err := h.interviewer.Turn(c.Context(), req.SessionID, translateMessage(req))
	if err != nil {
		return mapInterviewError(c, err)
	}

	return c.JSON(models.ChatResponse{Message: reply})
}

// HandleFeedback handles POST /feedback
func (h *InterviewHandler) HandleFeedback(c *fiber.Ctx) error {
	var req models.FeedbackRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.SessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "session_id is required",
		})
	}

	feedback, err := h.interviewer.Finish(c.Context(), req.SessionID)
	if err != nil {
		return mapInterviewError(c, err)
	}

	return c.JSON(models.FeedbackResponse{Feedback: feedback})
}

// translateMessage converts the reserved wire sentinels into tagged turn
// messages. The sentinel strings are part of the wire contract; nothing past
// this point compares message text against them.
func translateMessage(req models.ChatRequest) models.TurnMessage {
	switch req.Message {
	case models.SentinelSilence:
		return models.SilenceDetected()
	case models.SentinelTimeUp:
		return models.TimeExpired()
	default:
		return models.CandidateText(req.Message, req.SecondsLeft)
	}
}

func mapInterviewError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrSessionNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}
