package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"alfredoptarigan/personality-assessment/internal/config"
)

// geminiScorer is the alternative scoring backend, talking to the Gemini API
// directly instead of an OpenRouter-compatible endpoint.
type geminiScorer struct {
	client        *genai.Client
	modelName     string
	timeout       time.Duration
	promptBuilder *PromptBuilder
}

func NewGeminiScorer(cfg config.GeminiConfig, scoring config.ScoringConfig) (ScoringService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiScorer{
		client:        client,
		modelName:     cfg.Model,
		timeout:       scoring.Timeout,
		promptBuilder: NewPromptBuilder(),
	}, nil
}

// Score implements ScoringService.
func (g *geminiScorer) Score(ctx context.Context, responseText string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	temperature := float32(0.5)
	generationConfig := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 1024,
	}

	prompt := g.promptBuilder.BuildSystemInstruction() + "\n\n" +
		g.promptBuilder.BuildAssessmentPrompt(responseText)

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), generationConfig)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if resp == nil {
		return "", fmt.Errorf("%w: no response generated", ErrUpstream)
	}

	// Empty text is passed through; the extractor defaults every trait.
	return strings.TrimSpace(resp.Text()), nil
}
