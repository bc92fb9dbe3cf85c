package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/chakertay/ai-gen/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// AnalysisSystemInstruction is the fixed system instruction for CV analysis.
const AnalysisSystemInstruction = `You are an expert career assessment consultant. Analyze the provided CV content and produce a complete professional analysis.

Extract and assess:
1. Professional summary
2. Key skills and competencies
3. Years of experience (estimate if not explicit)
4. Career stage (entry, mid, senior, executive)
5. Notable achievements and accomplishments
6. Potential areas for professional growth

Return your analysis as JSON with the following fields:
- summary: a concise professional summary
- key_skills: list of core skills, most relevant first
- experience_years: estimated years of experience
- career_stage: career level assessment
- notable_achievements: key accomplishments
- potential_areas_for_growth: areas to develop`

// BuildAnalysisPrompt wraps the raw CV text for the analysis call.
func (pb *PromptBuilder) BuildAnalysisPrompt(cvText string) string {
	return fmt.Sprintf("CV content:\n\n%s", cvText)
}

// BuildFirstQuestionPrompt creates the opening interview question prompt
// from the analysis alone; no transcript exists yet.
func (pb *PromptBuilder) BuildFirstQuestionPrompt(analysis models.CVAnalysis) string {
	return fmt.Sprintf(`Based on this CV analysis, generate an engaging opening question for a career assessment interview.

CV analysis:
Summary: %s
Career stage: %s
Key skills: %s

Generate a thoughtful, personalized question that:
1. Acknowledges their current professional situation
2. Explores their career aspirations or motivations
3. Is conversational and engaging in tone
4. Encourages a detailed, reflective answer

Return only the question text, with no extra formatting.`,
		analysis.Summary,
		analysis.CareerStage,
		strings.Join(analysis.KeySkills, ", "))
}

// BuildFollowUpPrompt creates the next-question prompt. Only the last
// `window` turns are included so the prompt stays bounded as the interview
// grows.
func (pb *PromptBuilder) BuildFollowUpPrompt(analysis models.CVAnalysis, transcript []models.Turn, window int) string {
	recent := transcript
	if window > 0 && len(recent) > window {
		recent = recent[len(recent)-window:]
	}

	var qa strings.Builder
	for _, turn := range recent {
		fmt.Fprintf(&qa, "Q: %s\nA: %s\n", turn.Question, turn.Answer)
	}

	return fmt.Sprintf(`You are conducting a career assessment interview. Based on the CV analysis and the conversation so far, generate the next relevant question.

CV analysis:
Summary: %s
Career stage: %s
Key skills: %s
Areas for growth: %s

Previous conversation:
%s
Generate a follow-up question that:
1. Builds on their previous answers
2. Explores other aspects of their professional development
3. May cover: skill development, challenges faced, leadership experience, career transitions, learning preferences, work environment, or future aspirations
4. Keeps a conversational, supportive tone
5. Encourages concrete examples and deeper reflection

Return only the question text, with no extra formatting.`,
		analysis.Summary,
		analysis.CareerStage,
		strings.Join(analysis.KeySkills, ", "),
		strings.Join(analysis.PotentialAreasForGrowth, ", "),
		qa.String())
}

// BuildFinalSummaryPrompt creates the closing assessment prompt. The full
// transcript is included; the final report should reflect every exchange.
func (pb *PromptBuilder) BuildFinalSummaryPrompt(analysis models.CVAnalysis, transcript []models.Turn) string {
	analysisJSON, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		analysisJSON = []byte("{}")
	}

	var qa strings.Builder
	for _, turn := range transcript {
		fmt.Fprintf(&qa, "Q: %s\nA: %s\n", turn.Question, turn.Answer)
	}

	return fmt.Sprintf(`As a professional career consultant, create a comprehensive assessment report based on the following:

Initial CV analysis:
%s

Interview questions and answers:
%s
Generate a detailed professional assessment report as JSON with this structure:
{
  "executive_summary": "Overview of the candidate profile and key takeaways",
  "strengths": ["Identified strengths"],
  "areas_for_improvement": ["Areas to improve"],
  "career_recommendations": ["Specific recommendations for professional development"],
  "skill_gaps": ["Missing skills identified"],
  "next_steps": ["Concrete actions for professional growth"],
  "overall_assessment": "Overall evaluation of the professional profile"
}

Base the report on the answers given and the CV content. Be specific and provide actionable recommendations.`,
		analysisJSON, qa.String())
}
