// Package llm - Gemini client backed by langchaingo's googleai binding.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// GoogleAIClient implements Client on top of langchaingo's GoogleAI model.
type GoogleAIClient struct {
	model *googleai.GoogleAI
}

// NewGoogleAI creates a Gemini-backed client.
func NewGoogleAI(ctx context.Context, apiKey, model string) (*GoogleAIClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrLLMDisabled
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}

	m, err := googleai.New(
		ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("googleai init: %w", err)
	}
	return &GoogleAIClient{model: m}, nil
}

// Chat folds the system instruction into the prompt; the googleai binding
// has no dedicated system role on the Call path.
func (c *GoogleAIClient) Chat(ctx context.Context, system, user string) (string, error) {
	prompt := user
	if strings.TrimSpace(system) != "" {
		prompt = system + "\n\n" + user
	}

	out, err := c.model.Call(ctx, prompt, llms.WithTemperature(0))
	if err != nil {
		return "", fmt.Errorf("googleai call: %w", err)
	}
	return strings.TrimSpace(out), nil
}
