package handlers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"github.com/chakertay/ai-gen/internal/models"
	"github.com/chakertay/ai-gen/internal/services"
)

type ReportHandler struct {
	assessment services.AssessmentService
}

func NewReportHandler(assessment services.AssessmentService) *ReportHandler {
	return &ReportHandler{assessment: assessment}
}

// HandleGenerateReport handles POST /assessments/:id/report. Generation is
// idempotent: an already rendered report is returned as-is.
func (h *ReportHandler) HandleGenerateReport(c *fiber.Ctx) error {
	id, ok, err := parseSessionID(c)
	if !ok {
		return err
	}

	session, reportPath, err := h.assessment.GenerateReport(c.Context(), id)
	if err != nil {
		return statusForError(c, err)
	}

	return c.JSON(models.ReportResponse{
		ID:         session.ID.String(),
		ReportPath: reportPath,
		Filename:   filepath.Base(reportPath),
	})
}

// HandleDownloadReport handles GET /assessments/:id/report.
func (h *ReportHandler) HandleDownloadReport(c *fiber.Ctx) error {
	id, ok, err := parseSessionID(c)
	if !ok {
		return err
	}

	session, err := h.assessment.GetSession(id)
	if err != nil {
		return statusForError(c, err)
	}

	if session.ReportPath == "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "report has not been generated yet",
		})
	}
	if _, err := os.Stat(session.ReportPath); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "report file not found",
		})
	}

	return c.Download(session.ReportPath, fmt.Sprintf("assessment_report_%s.pdf", session.ID))
}
