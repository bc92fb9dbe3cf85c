package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"google.golang.org/genai"

	"github.com/chakertay/ai-gen/internal/models"
)

type AnalyzerService interface {
	AnalyzeCV(ctx context.Context, cvText string) (models.CVAnalysis, error)
}

type analyzerService struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	model         string
}

func NewAnalyzerService(gemini GeminiService, model string) AnalyzerService {
	return &analyzerService{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		model:         model,
	}
}

// cvAnalysisSchema constrains the analysis response to the CVAnalysis shape.
var cvAnalysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"summary":          {Type: genai.TypeString},
		"key_skills":       {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"experience_years": {Type: genai.TypeInteger},
		"career_stage":     {Type: genai.TypeString},
		"notable_achievements": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
		"potential_areas_for_growth": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	},
	Required: []string{
		"summary", "key_skills", "experience_years",
		"career_stage", "notable_achievements", "potential_areas_for_growth",
	},
}

// AnalyzeCV implements AnalyzerService. There is no fallback here: a failed
// analysis is fatal to the request because the interview cannot start
// without one.
func (a *analyzerService) AnalyzeCV(ctx context.Context, cvText string) (models.CVAnalysis, error) {
	if a.gemini == nil {
		return models.CVAnalysis{}, fmt.Errorf("%w: gemini client not configured", ErrAnalysis)
	}

	prompt := a.promptBuilder.BuildAnalysisPrompt(cvText)

	response, err := a.gemini.GenerateJSON(ctx, a.model, AnalysisSystemInstruction, prompt, cvAnalysisSchema)
	if err != nil {
		log.Printf("❌ CV analysis failed: %v", err)
		return models.CVAnalysis{}, fmt.Errorf("%w: %v", ErrAnalysis, err)
	}

	var analysis models.CVAnalysis
	if err := json.Unmarshal([]byte(extractJSON(response)), &analysis); err != nil {
		log.Printf("❌ Failed to parse CV analysis response: %v", err)
		return models.CVAnalysis{}, fmt.Errorf("%w: malformed analysis response: %v", ErrAnalysis, err)
	}

	if analysis.ExperienceYears < 0 {
		analysis.ExperienceYears = 0
	}

	log.Printf("✅ CV analysis completed: %d skills, stage %q", len(analysis.KeySkills), analysis.CareerStage)
	return analysis, nil
}
