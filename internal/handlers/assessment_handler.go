package handlers

import (
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/chakertay/ai-gen/internal/models"
	"github.com/chakertay/ai-gen/internal/repositories"
	"github.com/chakertay/ai-gen/internal/services"
)

type AssessmentHandler struct {
	assessment   services.AssessmentService
	storage      services.StorageService
	maxFileSize  int64
	maxQuestions int
}

func NewAssessmentHandler(
	assessment services.AssessmentService,
	storage services.StorageService,
	maxFileSize int64,
	maxQuestions int,
) *AssessmentHandler {
	return &AssessmentHandler{
		assessment:   assessment,
		storage:      storage,
		maxFileSize:  maxFileSize,
		maxQuestions: maxQuestions,
	}
}

// HandleUpload handles POST /assessments. The uploaded CV is extracted and a
// new session is created; a rejected upload creates nothing.
func (h *AssessmentHandler) HandleUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("cv")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing 'cv' file in multipart form",
		})
	}

	if fileHeader.Size == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "uploaded file is empty",
		})
	}
	if fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to read uploaded file",
		})
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to read uploaded file",
		})
	}

	// Keep the original upload on disk for audit before anything else runs.
	if _, _, err := h.storage.SaveUpload(fileHeader.Filename, data); err != nil {
		return statusForError(c, err)
	}

	session, err := h.assessment.StartAssessment(c.Context(), fileHeader.Filename, data)
	if err != nil {
		return statusForError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.NewSessionResponse(session))
}

// HandleAnalyze handles POST /assessments/:id/analyze.
func (h *AssessmentHandler) HandleAnalyze(c *fiber.Ctx) error {
	id, ok, err := parseSessionID(c)
	if !ok {
		return err
	}

	session, err := h.assessment.Analyze(c.Context(), id)
	if err != nil {
		return statusForError(c, err)
	}

	return c.JSON(models.AnalyzeResponse{
		ID:       session.ID.String(),
		Status:   session.Status,
		Analysis: session.Analysis,
	})
}

// HandleNextQuestion handles POST /assessments/:id/questions. The interview
// driver only knows how to produce the next question; the stop decision
// lives here, bounded by the configured question limit.
func (h *AssessmentHandler) HandleNextQuestion(c *fiber.Ctx) error {
	id, ok, err := parseSessionID(c)
	if !ok {
		return err
	}

	current, err := h.assessment.GetSession(id)
	if err != nil {
		return statusForError(c, err)
	}
	if h.maxQuestions > 0 && len(current.Transcript) >= h.maxQuestions {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "question limit reached; request the final summary",
		})
	}

	session, question, err := h.assessment.NextQuestion(c.Context(), id)
	if err != nil {
		return statusForError(c, err)
	}

	return c.JSON(models.QuestionResponse{
		ID:       session.ID.String(),
		Status:   session.Status,
		Question: question,
		Sequence: len(session.Transcript) + 1,
	})
}

// HandleSubmitAnswer handles POST /assessments/:id/answers.
func (h *AssessmentHandler) HandleSubmitAnswer(c *fiber.Ctx) error {
	id, ok, err := parseSessionID(c)
	if !ok {
		return err
	}

	var req models.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request payload",
		})
	}
	if req.Answer == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "answer is required",
		})
	}

	session, err := h.assessment.SubmitAnswer(c.Context(), id, req.Answer)
	if err != nil {
		return statusForError(c, err)
	}

	return c.JSON(models.NewSessionResponse(session))
}

// HandleComplete handles POST /assessments/:id/summary. Completing an
// already completed session returns the cached summary.
func (h *AssessmentHandler) HandleComplete(c *fiber.Ctx) error {
	id, ok, err := parseSessionID(c)
	if !ok {
		return err
	}

	session, summary, err := h.assessment.Complete(c.Context(), id)
	if err != nil {
		return statusForError(c, err)
	}

	return c.JSON(models.SummaryResponse{
		ID:      session.ID.String(),
		Status:  session.Status,
		Summary: summary,
	})
}

// HandleGetSession handles GET /assessments/:id.
func (h *AssessmentHandler) HandleGetSession(c *fiber.Ctx) error {
	id, ok, err := parseSessionID(c)
	if !ok {
		return err
	}

	session, err := h.assessment.GetSession(id)
	if err != nil {
		return statusForError(c, err)
	}

	return c.JSON(models.NewSessionResponse(session))
}

// parseSessionID validates the :id route parameter. ok is false when the
// response has already been written.
func parseSessionID(c *fiber.Ctx) (uuid.UUID, bool, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid session ID format",
		})
	}
	return id, true, nil
}

// statusForError maps the service error taxonomy onto HTTP statuses.
func statusForError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repositories.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "assessment session not found"})
	case errors.Is(err, services.ErrUnsupportedFormat):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "invalid file type. Please upload a PDF or DOCX file"})
	case errors.Is(err, services.ErrExtraction):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "could not extract text from the document"})
	case errors.Is(err, services.ErrInvalidState), errors.Is(err, services.ErrPendingAnswer):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrAnalysis):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "CV analysis failed. Please start a new assessment"})
	case errors.Is(err, services.ErrRender):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "report unavailable"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}
