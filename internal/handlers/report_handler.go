package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ai-interviewer/internal/repositories"
)

type ReportHandler struct {
	reportRepo repositories.ReportRepository
}

func NewReportHandler(reportRepo repositories.ReportRepository) *ReportHandler {
	return &ReportHandler{
		reportRepo: reportRepo,
	}
}

// HandleGetReport handles GET /report/:session_id (archive enabled only).
func (h *ReportHandler) HandleGetReport(c *fiber.Ctx) error {
	sessionID := c.Params("session_id")

	report, err := h.reportRepo.FindBySessionID(sessionID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Report not found",
		})
	}

	return c.JSON(report)
}
