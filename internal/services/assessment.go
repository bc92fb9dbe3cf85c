package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/chakertay/ai-gen/internal/models"
	"github.com/chakertay/ai-gen/internal/repositories"
)

// AssessmentService drives a session through its lifecycle:
// created -> analyzed -> in_progress -> completed, with failed absorbing.
// Each operation is one load-mutate-save against the repository.
type AssessmentService interface {
	StartAssessment(ctx context.Context, filename string, data []byte) (*models.AssessmentSession, error)
	Analyze(ctx context.Context, id uuid.UUID) (*models.AssessmentSession, error)
	NextQuestion(ctx context.Context, id uuid.UUID) (*models.AssessmentSession, string, error)
	SubmitAnswer(ctx context.Context, id uuid.UUID, answer string) (*models.AssessmentSession, error)
	Complete(ctx context.Context, id uuid.UUID) (*models.AssessmentSession, string, error)
	GenerateReport(ctx context.Context, id uuid.UUID) (*models.AssessmentSession, string, error)
	GetSession(id uuid.UUID) (*models.AssessmentSession, error)
}

type assessmentService struct {
	sessionRepo repositories.SessionRepository
	extractor   ExtractorService
	analyzer    AnalyzerService
	interviewer InterviewerService
	report      ReportService
	storage     StorageService
}

func NewAssessmentService(
	sessionRepo repositories.SessionRepository,
	extractor ExtractorService,
	analyzer AnalyzerService,
	interviewer InterviewerService,
	report ReportService,
	storage StorageService,
) AssessmentService {
	return &assessmentService{
		sessionRepo: sessionRepo,
		extractor:   extractor,
		analyzer:    analyzer,
		interviewer: interviewer,
		report:      report,
		storage:     storage,
	}
}

// StartAssessment implements AssessmentService. Extraction failures happen
// before any session exists, so a bad upload leaves nothing behind.
func (s *assessmentService) StartAssessment(ctx context.Context, filename string, data []byte) (*models.AssessmentSession, error) {
	cvText, err := s.extractor.ExtractText(filename, data)
	if err != nil {
		return nil, err
	}

	session := &models.AssessmentSession{
		ID:         uuid.New(),
		CVFilename: filename,
		CVText:     cvText,
		Status:     models.StatusCreated,
	}

	if err := s.sessionRepo.Create(session); err != nil {
		return nil, err
	}

	log.Printf("✅ Assessment session created: %s (%s)", session.ID, filename)
	return session, nil
}

// Analyze implements AssessmentService. Re-analyzing an already analyzed
// session returns the stored analysis; the analysis is immutable once set.
// An analysis failure moves the session to the absorbing failed state, since
// the interview cannot proceed without one.
func (s *assessmentService) Analyze(ctx context.Context, id uuid.UUID) (*models.AssessmentSession, error) {
	session, err := s.sessionRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if !session.Analysis.IsZero() {
		return session, nil
	}
	if session.Status != models.StatusCreated {
		return nil, fmt.Errorf("%w: cannot analyze session in status %q", ErrInvalidState, session.Status)
	}

	log.Printf("🤖 Analyzing CV for session %s", session.ID)

	analysis, err := s.analyzer.AnalyzeCV(ctx, session.CVText)
	if err != nil {
		if ferr := s.sessionRepo.UpdateStatus(id, models.StatusFailed); ferr != nil {
			log.Printf("⚠️  Failed to mark session %s as failed: %v", id, ferr)
		}
		return nil, err
	}

	if err := s.sessionRepo.UpdateAnalysis(id, analysis); err != nil {
		return nil, err
	}

	session.Analysis = analysis
	session.Status = models.StatusAnalyzed
	return session, nil
}

// NextQuestion implements AssessmentService. The first question moves the
// session to in_progress; follow-ups require the pending question to have
// been answered first. Generation failures inside the interviewer degrade
// to fixed fallback questions and never surface here.
func (s *assessmentService) NextQuestion(ctx context.Context, id uuid.UUID) (*models.AssessmentSession, string, error) {
	session, err := s.sessionRepo.FindByID(id)
	if err != nil {
		return nil, "", err
	}

	if session.Status != models.StatusAnalyzed && session.Status != models.StatusInProgress {
		return nil, "", fmt.Errorf("%w: cannot generate question in status %q", ErrInvalidState, session.Status)
	}
	if session.HasPendingQuestion() {
		return nil, "", ErrPendingAnswer
	}

	question := s.interviewer.NextQuestion(ctx, session.Analysis, session.Transcript)

	if err := s.sessionRepo.UpdateQuestion(id, question, models.StatusInProgress); err != nil {
		return nil, "", err
	}

	session.CurrentQuestion = question
	session.Status = models.StatusInProgress
	return session, question, nil
}

// SubmitAnswer implements AssessmentService. The pending question and the
// answer become one transcript turn, appended in strict insertion order.
func (s *assessmentService) SubmitAnswer(ctx context.Context, id uuid.UUID, answer string) (*models.AssessmentSession, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, fmt.Errorf("%w: answer must not be empty", ErrInvalidState)
	}

	session, err := s.sessionRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if session.Status != models.StatusInProgress {
		return nil, fmt.Errorf("%w: cannot submit answer in status %q", ErrInvalidState, session.Status)
	}
	if !session.HasPendingQuestion() {
		return nil, fmt.Errorf("%w: no question awaiting an answer", ErrInvalidState)
	}

	turn := models.Turn{
		Sequence: len(session.Transcript) + 1,
		Question: session.CurrentQuestion,
		Answer:   answer,
	}

	if err := s.sessionRepo.AppendTurn(id, turn); err != nil {
		return nil, err
	}

	session.Transcript = append(session.Transcript, turn)
	session.CurrentQuestion = ""
	return session, nil
}

// Complete implements AssessmentService. Completing is a terminal, one-time
// transition: calling it again returns the cached summary without invoking
// generation a second time.
func (s *assessmentService) Complete(ctx context.Context, id uuid.UUID) (*models.AssessmentSession, string, error) {
	session, err := s.sessionRepo.FindByID(id)
	if err != nil {
		return nil, "", err
	}

	if session.Status == models.StatusCompleted {
		return session, session.FinalSummary, nil
	}
	if session.Status != models.StatusInProgress {
		return nil, "", fmt.Errorf("%w: cannot complete session in status %q", ErrInvalidState, session.Status)
	}

	log.Printf("🤖 Generating final summary for session %s (%d turns)", session.ID, len(session.Transcript))

	summary := s.interviewer.FinalSummary(ctx, session.Analysis, session.Transcript)

	if err := s.sessionRepo.UpdateSummary(id, summary); err != nil {
		return nil, "", err
	}

	session.FinalSummary = summary
	session.CurrentQuestion = ""
	session.Status = models.StatusCompleted
	return session, summary, nil
}

// GenerateReport implements AssessmentService. Only completed sessions can
// be rendered; a previously generated report is reused when still on disk.
func (s *assessmentService) GenerateReport(ctx context.Context, id uuid.UUID) (*models.AssessmentSession, string, error) {
	session, err := s.sessionRepo.FindByID(id)
	if err != nil {
		return nil, "", err
	}

	if session.Status != models.StatusCompleted {
		return nil, "", fmt.Errorf("%w: cannot generate report in status %q", ErrInvalidState, session.Status)
	}

	if session.ReportPath != "" {
		return session, session.ReportPath, nil
	}

	outputPath := s.storage.ReportFilePath(session.ID)
	if err := s.report.Generate(session.Analysis, session.Transcript, session.FinalSummary, outputPath); err != nil {
		return nil, "", err
	}

	if err := s.sessionRepo.UpdateReportPath(id, outputPath); err != nil {
		return nil, "", err
	}

	session.ReportPath = outputPath
	return session, outputPath, nil
}

// GetSession implements AssessmentService.
func (s *assessmentService) GetSession(id uuid.UUID) (*models.AssessmentSession, error) {
	return s.sessionRepo.FindByID(id)
}
