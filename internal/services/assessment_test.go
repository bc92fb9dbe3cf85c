package services

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chakertay/ai-gen/internal/models"
	"github.com/chakertay/ai-gen/internal/repositories"
)

func newTestAssessmentService(t *testing.T, stub *stubGemini) (AssessmentService, *repositories.MemorySessionRepository) {
	t.Helper()

	repo := repositories.NewMemorySessionRepository()
	storage := NewStorageService(t.TempDir(), t.TempDir())
	require.NoError(t, storage.EnsureDirs())

	svc := NewAssessmentService(
		repo,
		NewExtractorService(),
		NewAnalyzerService(stub, "a-model"),
		NewInterviewerService(stub, "q-model", "s-model", 3),
		NewReportService(),
		storage,
	)
	return svc, repo
}

func startSession(t *testing.T, svc AssessmentService) *models.AssessmentSession {
	t.Helper()

	cv := makeDocx(t, "Jane Doe", "Senior engineer, 12 years of experience", "Skills: Go, Postgres")
	session, err := svc.StartAssessment(context.Background(), "cv.docx", cv)
	require.NoError(t, err)
	return session
}

func TestFullAssessmentLifecycle(t *testing.T) {
	stub := &stubGemini{
		jsonResponse: analysisJSON,
		textResponse: "What motivates you in your work?",
	}
	svc, _ := newTestAssessmentService(t, stub)
	ctx := context.Background()

	// Upload: session exists with the extracted text.
	session := startSession(t, svc)
	assert.Equal(t, models.StatusCreated, session.Status)
	assert.NotEqual(t, uuid.Nil, session.ID)
	assert.Contains(t, session.CVText, "Jane Doe")

	// Analysis: created -> analyzed.
	session, err := svc.Analyze(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAnalyzed, session.Status)
	assert.Equal(t, "senior", session.Analysis.CareerStage)

	// First question: analyzed -> in_progress, transcript still empty.
	session, question, err := svc.NextQuestion(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, session.Status)
	assert.Equal(t, "What motivates you in your work?", question)
	assert.Len(t, session.Transcript, 0)

	// Answer: one full turn recorded.
	session, err = svc.SubmitAnswer(ctx, session.ID, "Solving hard problems with good people.")
	require.NoError(t, err)
	require.Len(t, session.Transcript, 1)
	assert.Equal(t, 1, session.Transcript[0].Sequence)
	assert.Equal(t, "What motivates you in your work?", session.Transcript[0].Question)
	assert.False(t, session.HasPendingQuestion())

	// Final summary: in_progress -> completed.
	session, summary, err := svc.Complete(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, session.Status)
	assert.NotEmpty(t, summary)

	// Report: file exists and is non-empty.
	session, reportPath, err := svc.GenerateReport(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, reportPath, session.ReportPath)

	info, err := os.Stat(reportPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestNextQuestionFallsBackWhenBackendDown(t *testing.T) {
	stub := &stubGemini{jsonResponse: analysisJSON}
	svc, _ := newTestAssessmentService(t, stub)
	ctx := context.Background()

	session := startSession(t, svc)
	_, err := svc.Analyze(ctx, session.ID)
	require.NoError(t, err)

	// Backend dies after analysis; questions degrade to the fallback.
	stub.textErr = errBackendDown

	updated, question, err := svc.NextQuestion(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, FallbackFirstQuestion, question)
	assert.Equal(t, models.StatusInProgress, updated.Status)
}

func TestAnalyzeFailureMarksSessionFailed(t *testing.T) {
	stub := &stubGemini{jsonErr: errBackendDown}
	svc, repo := newTestAssessmentService(t, stub)

	session := startSession(t, svc)

	_, err := svc.Analyze(context.Background(), session.ID)
	require.ErrorIs(t, err, ErrAnalysis)

	stored, err := repo.FindByID(session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, stored.Status)
}

func TestStartAssessmentRejectsBadUpload(t *testing.T) {
	stub := &stubGemini{}
	svc, _ := newTestAssessmentService(t, stub)
	ctx := context.Background()

	_, err := svc.StartAssessment(ctx, "cv.txt", []byte("plain text"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = svc.StartAssessment(ctx, "cv.pdf", []byte("garbage"))
	require.ErrorIs(t, err, ErrExtraction)
}

func TestNextQuestionRequiresAnalyzedSession(t *testing.T) {
	stub := &stubGemini{textResponse: "q"}
	svc, _ := newTestAssessmentService(t, stub)

	session := startSession(t, svc)

	_, _, err := svc.NextQuestion(context.Background(), session.ID)
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestNextQuestionBlockedByPendingAnswer(t *testing.T) {
	stub := &stubGemini{jsonResponse: analysisJSON, textResponse: "q1"}
	svc, _ := newTestAssessmentService(t, stub)
	ctx := context.Background()

	session := startSession(t, svc)
	_, err := svc.Analyze(ctx, session.ID)
	require.NoError(t, err)

	_, _, err = svc.NextQuestion(ctx, session.ID)
	require.NoError(t, err)

	// Second question without an answer must be refused.
	_, _, err = svc.NextQuestion(ctx, session.ID)
	require.ErrorIs(t, err, ErrPendingAnswer)
}

func TestSubmitAnswerRequiresPendingQuestion(t *testing.T) {
	stub := &stubGemini{jsonResponse: analysisJSON, textResponse: "q1"}
	svc, _ := newTestAssessmentService(t, stub)
	ctx := context.Background()

	session := startSession(t, svc)
	_, err := svc.Analyze(ctx, session.ID)
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(ctx, session.ID, "an answer with no question")
	require.ErrorIs(t, err, ErrInvalidState)

	_, err = svc.SubmitAnswer(ctx, session.ID, "   ")
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestTranscriptPreservesInsertionOrder(t *testing.T) {
	stub := &stubGemini{jsonResponse: analysisJSON, textResponse: "next?"}
	svc, _ := newTestAssessmentService(t, stub)
	ctx := context.Background()

	session := startSession(t, svc)
	_, err := svc.Analyze(ctx, session.ID)
	require.NoError(t, err)

	answers := []string{"first answer", "second answer", "third answer"}
	for _, answer := range answers {
		_, _, err := svc.NextQuestion(ctx, session.ID)
		require.NoError(t, err)
		_, err = svc.SubmitAnswer(ctx, session.ID, answer)
		require.NoError(t, err)
	}

	stored, err := svc.GetSession(session.ID)
	require.NoError(t, err)
	require.Len(t, stored.Transcript, 3)
	for i, answer := range answers {
		assert.Equal(t, i+1, stored.Transcript[i].Sequence)
		assert.Equal(t, answer, stored.Transcript[i].Answer)
	}
}

func TestCompleteIsIdempotent(t *testing.T) {
	stub := &stubGemini{jsonResponse: analysisJSON, textResponse: "q1"}
	svc, _ := newTestAssessmentService(t, stub)
	ctx := context.Background()

	session := startSession(t, svc)
	_, err := svc.Analyze(ctx, session.ID)
	require.NoError(t, err)
	_, _, err = svc.NextQuestion(ctx, session.ID)
	require.NoError(t, err)
	_, err = svc.SubmitAnswer(ctx, session.ID, "done")
	require.NoError(t, err)

	stub.textResponse = "the final summary"
	_, first, err := svc.Complete(ctx, session.ID)
	require.NoError(t, err)

	callsAfterFirst := len(stub.textPrompts)

	// A second completion returns the cached summary without regenerating.
	stub.textResponse = "a different summary"
	_, second, err := svc.Complete(ctx, session.ID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, callsAfterFirst, len(stub.textPrompts))
}

func TestCompletedSessionRefusesNewQuestions(t *testing.T) {
	stub := &stubGemini{jsonResponse: analysisJSON, textResponse: "q1"}
	svc, _ := newTestAssessmentService(t, stub)
	ctx := context.Background()

	session := startSession(t, svc)
	_, err := svc.Analyze(ctx, session.ID)
	require.NoError(t, err)
	_, _, err = svc.NextQuestion(ctx, session.ID)
	require.NoError(t, err)
	_, err = svc.SubmitAnswer(ctx, session.ID, "done")
	require.NoError(t, err)
	_, _, err = svc.Complete(ctx, session.ID)
	require.NoError(t, err)

	_, _, err = svc.NextQuestion(ctx, session.ID)
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestGenerateReportRequiresCompletedSession(t *testing.T) {
	stub := &stubGemini{jsonResponse: analysisJSON}
	svc, _ := newTestAssessmentService(t, stub)

	session := startSession(t, svc)

	_, _, err := svc.GenerateReport(context.Background(), session.ID)
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestGenerateReportReusesExistingReport(t *testing.T) {
	stub := &stubGemini{jsonResponse: analysisJSON, textResponse: "q1"}
	svc, _ := newTestAssessmentService(t, stub)
	ctx := context.Background()

	session := startSession(t, svc)
	_, err := svc.Analyze(ctx, session.ID)
	require.NoError(t, err)
	_, _, err = svc.NextQuestion(ctx, session.ID)
	require.NoError(t, err)
	_, err = svc.SubmitAnswer(ctx, session.ID, "done")
	require.NoError(t, err)
	_, _, err = svc.Complete(ctx, session.ID)
	require.NoError(t, err)

	_, firstPath, err := svc.GenerateReport(ctx, session.ID)
	require.NoError(t, err)

	_, secondPath, err := svc.GenerateReport(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, firstPath, secondPath)
}

func TestOperationsOnUnknownSession(t *testing.T) {
	stub := &stubGemini{}
	svc, _ := newTestAssessmentService(t, stub)
	ctx := context.Background()

	unknown := uuid.New()

	_, err := svc.Analyze(ctx, unknown)
	require.ErrorIs(t, err, repositories.ErrSessionNotFound)

	_, _, err = svc.NextQuestion(ctx, unknown)
	require.ErrorIs(t, err, repositories.ErrSessionNotFound)

	_, err = svc.SubmitAnswer(ctx, unknown, "hello")
	require.ErrorIs(t, err, repositories.ErrSessionNotFound)
}
