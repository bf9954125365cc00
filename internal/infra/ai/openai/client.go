package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"

	domai "github.com/bryanwahyu/automaton-seo/internal/domain/ai"
	"github.com/bryanwahyu/automaton-seo/internal/infra/ai/prompt"
)

const (
	defaultModel = "gpt-4o-mini"

	// fixed sampling temperatures per pipeline stage
	analyzeTemperature float32 = 0.4
	summaryTemperature float32 = 0.5
)

type Client struct {
	*openai.Client
	Model string
}

func NewClient(apiKey, model string) *Client {
	return &Client{Client: openai.NewClient(apiKey), Model: model}
}

// Analyze reviews one category report. The payload is embedded in the prompt
// as-is, fetch-error payloads included.
func (c *Client) Analyze(ctx context.Context, category, payload string) (string, error) {
	return c.complete(ctx, prompt.Analyze(category, payload), analyzeTemperature)
}

// Summarize produces the 3-part executive summary over the full results set.
func (c *Client) Summarize(ctx context.Context, resultsPayload string) (string, error) {
	return c.complete(ctx, prompt.Summary(resultsPayload), summaryTemperature)
}

func (c *Client) complete(ctx context.Context, user string, temperature float32) (string, error) {
	model := c.Model
	if model == "" {
		model = defaultModel
	}
	resp, err := c.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.System()},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return "", domai.ErrQuotaExceeded
		}
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}
