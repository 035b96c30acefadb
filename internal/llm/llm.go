// Package llm talks to an OpenAI-compatible text completion endpoint.
// It issues exactly one attempt per prompt; the caller's fallback path
// is the retry strategy.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Client wraps an OpenAI-compatible API client.
type Client struct {
	api   *openai.Client
	model string
}

// New creates a new LLM client.
func New(baseURL, apiKey, modelName string) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Client{
		api:   openai.NewClientWithConfig(config),
		model: modelName,
	}
}

// Ping verifies the endpoint is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.api.ListModels(ctx); err != nil {
		return fmt.Errorf("LLM health check: %w", err)
	}
	return nil
}

// Complete sends a single prompt and returns the raw candidate text.
// All failures match ErrGenerationFailed; see errors.go for the
// specific modes.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrEmptyResponse)
	}

	choice := resp.Choices[0]
	if choice.FinishReason == openai.FinishReasonContentFilter {
		slog.Warn("completion blocked by provider", "reason", choice.FinishReason)
		return "", fmt.Errorf("%w: %s", ErrContentBlocked, choice.FinishReason)
	}
	if choice.Message.Refusal != "" {
		slog.Warn("completion refused by provider", "reason", choice.Message.Refusal)
		return "", fmt.Errorf("%w: %s", ErrContentBlocked, choice.Message.Refusal)
	}

	raw := choice.Message.Content
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("%w: blank candidate text", ErrEmptyResponse)
	}

	slog.Debug("LLM response", "model", resp.Model, "chars", len(raw))
	return raw, nil
}
