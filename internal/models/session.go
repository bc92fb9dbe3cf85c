package models

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	StatusCreated    SessionStatus = "created"
	StatusAnalyzed   SessionStatus = "analyzed"
	StatusInProgress SessionStatus = "in_progress"
	StatusCompleted  SessionStatus = "completed"
	StatusFailed     SessionStatus = "failed"
)

// CVAnalysis is the structured result of the Gemini CV analysis. It is
// produced once per session and never mutated afterwards. Fields the model
// omits stay at their zero value; rendering substitutes fallbacks instead
// of failing.
type CVAnalysis struct {
	Summary                 string   `json:"summary"`
	KeySkills               []string `json:"key_skills"`
	ExperienceYears         int      `json:"experience_years"`
	CareerStage             string   `json:"career_stage"`
	NotableAchievements     []string `json:"notable_achievements"`
	PotentialAreasForGrowth []string `json:"potential_areas_for_growth"`
}

// IsZero reports whether the analysis carries no content at all.
func (a CVAnalysis) IsZero() bool {
	return a.Summary == "" && len(a.KeySkills) == 0 && a.ExperienceYears == 0 &&
		a.CareerStage == "" && len(a.NotableAchievements) == 0 && len(a.PotentialAreasForGrowth) == 0
}

// Turn is one question/answer exchange. Sequence is the 1-based position in
// the transcript; insertion order is the only ordering.
type Turn struct {
	Sequence int    `json:"sequence"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// AssessmentSession is the aggregate root for one candidate run. The
// transcript is append-only while the session is in progress and frozen
// once completed.
type AssessmentSession struct {
	ID              uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CVFilename      string        `gorm:"type:text" json:"cv_filename"`
	CVText          string        `gorm:"type:text" json:"-"`
	Analysis        CVAnalysis    `gorm:"serializer:json;type:jsonb" json:"analysis"`
	Transcript      []Turn        `gorm:"serializer:json;type:jsonb" json:"transcript"`
	CurrentQuestion string        `gorm:"type:text" json:"current_question,omitempty"`
	FinalSummary    string        `gorm:"type:text" json:"final_summary,omitempty"`
	Status          SessionStatus `gorm:"not null;default:'created'" json:"status"`
	ReportPath      string        `gorm:"type:text" json:"report_path,omitempty"`
	CreatedAt       time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (AssessmentSession) TableName() string {
	return "assessment_sessions"
}

// HasPendingQuestion reports whether a question has been asked but not yet
// answered. Generating another question first would lose the pending one.
func (s *AssessmentSession) HasPendingQuestion() bool {
	return s.CurrentQuestion != ""
}
