package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chakertay/ai-gen/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository interface {
	Create(session *models.AssessmentSession) error
	FindByID(id uuid.UUID) (*models.AssessmentSession, error)
	UpdateAnalysis(id uuid.UUID, analysis models.CVAnalysis) error
	UpdateQuestion(id uuid.UUID, question string, status models.SessionStatus) error
	AppendTurn(id uuid.UUID, turn models.Turn) error
	UpdateSummary(id uuid.UUID, summary string) error
	UpdateReportPath(id uuid.UUID, path string) error
	UpdateStatus(id uuid.UUID, status models.SessionStatus) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// Create implements SessionRepository.
func (r *sessionRepository) Create(session *models.AssessmentSession) error {
	if err := r.db.Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// FindByID implements SessionRepository.
func (r *sessionRepository) FindByID(id uuid.UUID) (*models.AssessmentSession, error) {
	var session models.AssessmentSession
	if err := r.db.Where("id = ?", id).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return &session, nil
}

// UpdateAnalysis implements SessionRepository.
func (r *sessionRepository) UpdateAnalysis(id uuid.UUID, analysis models.CVAnalysis) error {
	return r.update(id, map[string]interface{}{
		"analysis": analysis,
		"status":   models.StatusAnalyzed,
	})
}

// UpdateQuestion implements SessionRepository.
func (r *sessionRepository) UpdateQuestion(id uuid.UUID, question string, status models.SessionStatus) error {
	return r.update(id, map[string]interface{}{
		"current_question": question,
		"status":           status,
	})
}

// AppendTurn implements SessionRepository. The read-modify-write runs in a
// transaction so a concurrent writer cannot interleave between the load and
// the save.
func (r *sessionRepository) AppendTurn(id uuid.UUID, turn models.Turn) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var session models.AssessmentSession
		if err := tx.Where("id = ?", id).First(&session).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSessionNotFound
			}
			return err
		}

		session.Transcript = append(session.Transcript, turn)
		return tx.Model(&models.AssessmentSession{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"transcript":       session.Transcript,
				"current_question": "",
				"updated_at":       time.Now(),
			}).Error
	})
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return err
		}
		return fmt.Errorf("failed to append turn: %w", err)
	}
	return nil
}

// UpdateSummary implements SessionRepository.
func (r *sessionRepository) UpdateSummary(id uuid.UUID, summary string) error {
	return r.update(id, map[string]interface{}{
		"final_summary":    summary,
		"current_question": "",
		"status":           models.StatusCompleted,
	})
}

// UpdateReportPath implements SessionRepository.
func (r *sessionRepository) UpdateReportPath(id uuid.UUID, path string) error {
	return r.update(id, map[string]interface{}{"report_path": path})
}

// UpdateStatus implements SessionRepository.
func (r *sessionRepository) UpdateStatus(id uuid.UUID, status models.SessionStatus) error {
	return r.update(id, map[string]interface{}{"status": status})
}

func (r *sessionRepository) update(id uuid.UUID, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()

	result := r.db.Model(&models.AssessmentSession{}).
		Where("id = ?", id).
		Updates(fields)

	if result.Error != nil {
		return fmt.Errorf("failed to update session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}
