package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	openAIBase  = "https://api.openai.com/v1"
	openAIModel = "gpt-4o-mini"
)

// Provider is a thin completion client. Every call is best effort: callers
// fall back to local heuristics when Complete returns an empty string.
type Provider struct {
	client *resty.Client
}

func NewProvider(apiKey string) *Provider {
	client := resty.New().
		SetBaseURL(openAIBase).
		SetTimeout(15 * time.Second).
		SetAuthToken(apiKey)
	return &Provider{client: client}
}

type completionRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
}

// Complete asks the provider for a completion. Failures are logged and
// reported as an empty string.
func (p *Provider) Complete(ctx context.Context, prompt string, maxTokens int) string {
	var result completionResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(completionRequest{
			Model:       openAIModel,
			Prompt:      prompt,
			MaxTokens:   maxTokens,
			Temperature: 0.8,
		}).
		SetResult(&result).
		Post("/completions")
	if err != nil {
		slog.Info(err.Error())
		return ""
	}
	if resp.IsError() {
		slog.Info(fmt.Sprintf("completion request failed with status %d", resp.StatusCode()))
		return ""
	}
	if len(result.Choices) == 0 {
		return ""
	}
	return strings.TrimSpace(result.Choices[0].Text)
}
