package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const analysisJSON = `{
	"summary": "Seasoned data engineer",
	"key_skills": ["Python", "Spark", "Airflow"],
	"experience_years": 9,
	"career_stage": "senior",
	"notable_achievements": ["Built the company data platform"],
	"potential_areas_for_growth": ["Cloud cost management"]
}`

func TestAnalyzeCVParsesResponse(t *testing.T) {
	stub := &stubGemini{jsonResponse: analysisJSON}
	analyzer := NewAnalyzerService(stub, "a-model")

	analysis, err := analyzer.AnalyzeCV(context.Background(), "cv body text")
	require.NoError(t, err)

	assert.Equal(t, "Seasoned data engineer", analysis.Summary)
	assert.Equal(t, []string{"Python", "Spark", "Airflow"}, analysis.KeySkills)
	assert.Equal(t, 9, analysis.ExperienceYears)
	assert.Equal(t, "senior", analysis.CareerStage)

	require.Len(t, stub.jsonPrompts, 1)
	assert.Contains(t, stub.jsonPrompts[0], "cv body text")
}

func TestAnalyzeCVStripsMarkdownFences(t *testing.T) {
	stub := &stubGemini{jsonResponse: "```json\n" + analysisJSON + "\n```"}
	analyzer := NewAnalyzerService(stub, "a-model")

	analysis, err := analyzer.AnalyzeCV(context.Background(), "cv body text")
	require.NoError(t, err)
	assert.Equal(t, "senior", analysis.CareerStage)
}

func TestAnalyzeCVBackendFailure(t *testing.T) {
	stub := &stubGemini{jsonErr: errBackendDown}
	analyzer := NewAnalyzerService(stub, "a-model")

	_, err := analyzer.AnalyzeCV(context.Background(), "cv body text")
	require.ErrorIs(t, err, ErrAnalysis)
}

func TestAnalyzeCVMalformedJSON(t *testing.T) {
	stub := &stubGemini{jsonResponse: "{not valid json at all"}
	analyzer := NewAnalyzerService(stub, "a-model")

	_, err := analyzer.AnalyzeCV(context.Background(), "cv body text")
	require.ErrorIs(t, err, ErrAnalysis)
}

func TestAnalyzeCVWithoutClient(t *testing.T) {
	analyzer := NewAnalyzerService(nil, "a-model")

	_, err := analyzer.AnalyzeCV(context.Background(), "cv body text")
	require.ErrorIs(t, err, ErrAnalysis)
}

func TestAnalyzeCVMissingFieldsDegradeToZero(t *testing.T) {
	stub := &stubGemini{jsonResponse: `{"summary": "Short profile"}`}
	analyzer := NewAnalyzerService(stub, "a-model")

	analysis, err := analyzer.AnalyzeCV(context.Background(), "cv body text")
	require.NoError(t, err)

	assert.Equal(t, "Short profile", analysis.Summary)
	assert.Empty(t, analysis.KeySkills)
	assert.Zero(t, analysis.ExperienceYears)
	assert.Empty(t, analysis.CareerStage)
}

func TestAnalyzeCVClampsNegativeExperience(t *testing.T) {
	stub := &stubGemini{jsonResponse: `{"summary": "x", "experience_years": -4}`}
	analyzer := NewAnalyzerService(stub, "a-model")

	analysis, err := analyzer.AnalyzeCV(context.Background(), "cv body text")
	require.NoError(t, err)
	assert.Zero(t, analysis.ExperienceYears)
}

func TestExtractJSONFromNarration(t *testing.T) {
	got := extractJSON("Here is the result:\n```json\n{\"a\": 1}\n```\nHope that helps!")
	assert.Equal(t, `{"a": 1}`, got)
}
