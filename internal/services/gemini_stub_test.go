package services

import (
	"context"
	"errors"

	"google.golang.org/genai"
)

// stubGemini is an in-memory GeminiService for tests. It records prompts and
// serves canned responses or a fixed error.
type stubGemini struct {
	textResponse string
	textErr      error
	jsonResponse string
	jsonErr      error

	textPrompts []string
	jsonPrompts []string
}

func (s *stubGemini) GenerateText(ctx context.Context, model string, prompt string, temperature float32) (string, error) {
	s.textPrompts = append(s.textPrompts, prompt)
	if s.textErr != nil {
		return "", s.textErr
	}
	return s.textResponse, nil
}

func (s *stubGemini) GenerateJSON(ctx context.Context, model string, systemInstruction string, prompt string, schema *genai.Schema) (string, error) {
	s.jsonPrompts = append(s.jsonPrompts, prompt)
	if s.jsonErr != nil {
		return "", s.jsonErr
	}
	return s.jsonResponse, nil
}

var errBackendDown = errors.New("backend unreachable")
