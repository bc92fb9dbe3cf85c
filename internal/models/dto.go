package models

type SessionResponse struct {
	ID              string        `json:"id"`
	CVFilename      string        `json:"cv_filename"`
	Status          SessionStatus `json:"status"`
	TranscriptSize  int           `json:"transcript_size"`
	CurrentQuestion string        `json:"current_question,omitempty"`
	ReportAvailable bool          `json:"report_available"`
}

func NewSessionResponse(s *AssessmentSession) SessionResponse {
	return SessionResponse{
		ID:              s.ID.String(),
		CVFilename:      s.CVFilename,
		Status:          s.Status,
		TranscriptSize:  len(s.Transcript),
		CurrentQuestion: s.CurrentQuestion,
		ReportAvailable: s.ReportPath != "",
	}
}

type AnalyzeResponse struct {
	ID       string        `json:"id"`
	Status   SessionStatus `json:"status"`
	Analysis CVAnalysis    `json:"analysis"`
}

type QuestionResponse struct {
	ID       string        `json:"id"`
	Status   SessionStatus `json:"status"`
	Question string        `json:"question"`
	Sequence int           `json:"sequence"`
}

type AnswerRequest struct {
	Answer string `json:"answer" validate:"required"`
}

type SummaryResponse struct {
	ID      string        `json:"id"`
	Status  SessionStatus `json:"status"`
	Summary string        `json:"summary"`
}

type ReportResponse struct {
	ID         string `json:"id"`
	ReportPath string `json:"report_path"`
	Filename   string `json:"filename"`
}
