package services

import "errors"

// Error taxonomy for the assessment workflow. Errors with a safe fallback
// (question text, summary text, a report section) are absorbed at the
// component boundary; these sentinels mark the ones that propagate.
var (
	// ErrUnsupportedFormat means the upload is not a PDF or DOCX. Rejected
	// before any extraction is attempted.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrExtraction means the document could not be read or yielded no text.
	ErrExtraction = errors.New("failed to extract document text")

	// ErrAnalysis means the CV analysis could not be produced. There is no
	// safe fallback for it: an assessment cannot proceed without an analysis.
	ErrAnalysis = errors.New("failed to analyze CV")

	// ErrInvalidState means the requested operation is not legal for the
	// session's current lifecycle status.
	ErrInvalidState = errors.New("operation not allowed in current session state")

	// ErrPendingAnswer means a question was asked and not yet answered.
	ErrPendingAnswer = errors.New("previous question has not been answered")

	// ErrRender means the final report document could not be assembled.
	ErrRender = errors.New("failed to generate report")
)
