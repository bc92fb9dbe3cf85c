package repositories

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chakertay/ai-gen/internal/models"
)

// MemorySessionRepository is an in-memory SessionRepository used by tests
// and local development without a database.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]models.AssessmentSession
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[uuid.UUID]models.AssessmentSession)}
}

// Create implements SessionRepository.
func (r *MemorySessionRepository) Create(session *models.AssessmentSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now
	r.sessions[session.ID] = *session
	return nil
}

// FindByID implements SessionRepository.
func (r *MemorySessionRepository) FindByID(id uuid.UUID) (*models.AssessmentSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}

	// Copy the transcript so callers cannot mutate the stored slice.
	copied := session
	copied.Transcript = append([]models.Turn(nil), session.Transcript...)
	return &copied, nil
}

// UpdateAnalysis implements SessionRepository.
func (r *MemorySessionRepository) UpdateAnalysis(id uuid.UUID, analysis models.CVAnalysis) error {
	return r.mutate(id, func(s *models.AssessmentSession) {
		s.Analysis = analysis
		s.Status = models.StatusAnalyzed
	})
}

// UpdateQuestion implements SessionRepository.
func (r *MemorySessionRepository) UpdateQuestion(id uuid.UUID, question string, status models.SessionStatus) error {
	return r.mutate(id, func(s *models.AssessmentSession) {
		s.CurrentQuestion = question
		s.Status = status
	})
}

// AppendTurn implements SessionRepository.
func (r *MemorySessionRepository) AppendTurn(id uuid.UUID, turn models.Turn) error {
	return r.mutate(id, func(s *models.AssessmentSession) {
		s.Transcript = append(s.Transcript, turn)
		s.CurrentQuestion = ""
	})
}

// UpdateSummary implements SessionRepository.
func (r *MemorySessionRepository) UpdateSummary(id uuid.UUID, summary string) error {
	return r.mutate(id, func(s *models.AssessmentSession) {
		s.FinalSummary = summary
		s.CurrentQuestion = ""
		s.Status = models.StatusCompleted
	})
}

// UpdateReportPath implements SessionRepository.
func (r *MemorySessionRepository) UpdateReportPath(id uuid.UUID, path string) error {
	return r.mutate(id, func(s *models.AssessmentSession) {
		s.ReportPath = path
	})
}

// UpdateStatus implements SessionRepository.
func (r *MemorySessionRepository) UpdateStatus(id uuid.UUID, status models.SessionStatus) error {
	return r.mutate(id, func(s *models.AssessmentSession) {
		s.Status = status
	})
}

func (r *MemorySessionRepository) mutate(id uuid.UUID, fn func(*models.AssessmentSession)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}

	fn(&session)
	session.UpdatedAt = time.Now()
	r.sessions[id] = session
	return nil
}
