package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"alfredoptarigan/personality-assessment/internal/config"
)

// ScoringService sends a candidate's free-text response to the AI endpoint
// and returns the raw completion text. An empty string with a nil error means
// the upstream answered but produced no usable content; the trait extractor
// turns that into a full default record downstream.
type ScoringService interface {
	Score(ctx context.Context, responseText string) (string, error)
}

type openRouterScorer struct {
	client        *resty.Client
	apiKey        string
	url           string
	model         string
	promptBuilder *PromptBuilder
}

// NewOpenRouterScorer builds the default scoring backend: a chat-completion
// call against an OpenRouter-compatible endpoint with a bounded timeout.
func NewOpenRouterScorer(cfg config.OpenRouterConfig, scoring config.ScoringConfig) ScoringService {
	client := resty.New().SetTimeout(scoring.Timeout)

	return &openRouterScorer{
		client:        client,
		apiKey:        cfg.APIKey,
		url:           cfg.URL,
		model:         cfg.Model,
		promptBuilder: NewPromptBuilder(),
	}
}

// Score implements ScoringService. No retry: failures surface to the
// orchestrator immediately.
func (s *openRouterScorer) Score(ctx context.Context, responseText string) (string, error) {
	payload := map[string]any{
		"model": s.model,
		"messages": []map[string]string{
			{"role": "system", "content": s.promptBuilder.BuildSystemInstruction()},
			{"role": "user", "content": s.promptBuilder.BuildAssessmentPrompt(responseText)},
		},
		"temperature": 0.5,
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(s.url)
	if err != nil {
		return "", fmt.Errorf("%w: request failed: %v", ErrUpstream, err)
	}

	if resp.IsError() {
		return "", fmt.Errorf("%w: unexpected status %d: %s",
			ErrUpstream, resp.StatusCode(), resp.String())
	}

	// A response without choices or with empty content is not an error;
	// the extractor falls back to defaults.
	content := gjson.Get(resp.String(), "choices.0.message.content").String()
	return strings.TrimSpace(content), nil
}
