package services

import (
	"context"
	"log"
	"strings"

	"github.com/chakertay/ai-gen/internal/models"
)

// Fixed fallback texts used when generation fails. The interview must keep
// moving even with the backend down, so these are returned instead of errors.
const (
	FallbackFirstQuestion = "I'd like to understand your professional background better. What are your current career goals, and what motivates you in your work?"

	FallbackFollowUpQuestion = "What challenges have you faced in your career, and how did you overcome them?"

	FallbackSummary = "The professional assessment has been completed. A detailed AI-generated summary could not be produced at this time; the interview transcript below reflects the full exchange."
)

type InterviewerService interface {
	FirstQuestion(ctx context.Context, analysis models.CVAnalysis) string
	NextQuestion(ctx context.Context, analysis models.CVAnalysis, transcript []models.Turn) string
	FinalSummary(ctx context.Context, analysis models.CVAnalysis, transcript []models.Turn) string
}

type interviewerService struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	questionModel string
	summaryModel  string
	contextWindow int
}

// NewInterviewerService builds the interview driver. contextWindow is the
// number of most recent turns included in follow-up prompts; zero or
// negative means the full transcript.
func NewInterviewerService(gemini GeminiService, questionModel, summaryModel string, contextWindow int) InterviewerService {
	return &interviewerService{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		questionModel: questionModel,
		summaryModel:  summaryModel,
		contextWindow: contextWindow,
	}
}

// FirstQuestion implements InterviewerService. The opening question is a
// function of the analysis alone.
func (i *interviewerService) FirstQuestion(ctx context.Context, analysis models.CVAnalysis) string {
	if i.gemini == nil {
		return FallbackFirstQuestion
	}

	prompt := i.promptBuilder.BuildFirstQuestionPrompt(analysis)

	question, err := i.gemini.GenerateText(ctx, i.questionModel, prompt, 0.7)
	if err != nil || strings.TrimSpace(question) == "" {
		log.Printf("⚠️  First question generation failed, using fallback: %v", err)
		return FallbackFirstQuestion
	}

	return strings.TrimSpace(question)
}

// NextQuestion implements InterviewerService.
func (i *interviewerService) NextQuestion(ctx context.Context, analysis models.CVAnalysis, transcript []models.Turn) string {
	if len(transcript) == 0 {
		return i.FirstQuestion(ctx, analysis)
	}
	if i.gemini == nil {
		return FallbackFollowUpQuestion
	}

	prompt := i.promptBuilder.BuildFollowUpPrompt(analysis, transcript, i.contextWindow)

	question, err := i.gemini.GenerateText(ctx, i.questionModel, prompt, 0.7)
	if err != nil || strings.TrimSpace(question) == "" {
		log.Printf("⚠️  Follow-up question generation failed, using fallback: %v", err)
		return FallbackFollowUpQuestion
	}

	return strings.TrimSpace(question)
}

// FinalSummary implements InterviewerService. The full transcript goes into
// the closing prompt regardless of the follow-up window.
func (i *interviewerService) FinalSummary(ctx context.Context, analysis models.CVAnalysis, transcript []models.Turn) string {
	if i.gemini == nil {
		return FallbackSummary
	}

	prompt := i.promptBuilder.BuildFinalSummaryPrompt(analysis, transcript)

	summary, err := i.gemini.GenerateText(ctx, i.summaryModel, prompt, 0.5)
	if err != nil || strings.TrimSpace(summary) == "" {
		log.Printf("⚠️  Final summary generation failed, using fallback: %v", err)
		return FallbackSummary
	}

	return strings.TrimSpace(summary)
}
