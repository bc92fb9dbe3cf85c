package models

import (
	"encoding/json"
	"strings"
)

// StructuredSummary is the JSON report shape the final-summary prompt asks
// for. The model does not always honor it; freeform markup text is the
// accepted alternative and goes through the markup renderer instead.
type StructuredSummary struct {
	ExecutiveSummary      string   `json:"executive_summary"`
	Strengths             []string `json:"strengths"`
	AreasForImprovement   []string `json:"areas_for_improvement"`
	CareerRecommendations []string `json:"career_recommendations"`
	SkillGaps             []string `json:"skill_gaps"`
	NextSteps             []string `json:"next_steps"`
	OverallAssessment     string   `json:"overall_assessment"`
}

// ParseStructuredSummary tries to decode a final summary as the structured
// report shape. It returns false when the text is not a JSON object or
// decodes to an empty report, in which case the caller should treat the
// text as freeform markup.
func ParseStructuredSummary(text string) (StructuredSummary, bool) {
	trimmed := strings.TrimSpace(text)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	if !strings.HasPrefix(trimmed, "{") {
		return StructuredSummary{}, false
	}

	var summary StructuredSummary
	if err := json.Unmarshal([]byte(trimmed), &summary); err != nil {
		return StructuredSummary{}, false
	}

	if summary.ExecutiveSummary == "" && len(summary.Strengths) == 0 &&
		len(summary.AreasForImprovement) == 0 && summary.OverallAssessment == "" {
		return StructuredSummary{}, false
	}

	return summary, true
}
