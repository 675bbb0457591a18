// Package claude implements the ai.TextGenerator boundary against the
// Anthropic Messages API.
package claude

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"tune_outbound_backend/platform/apperr"
)

const defaultTimeout = 60 * time.Second

// Config holds client settings.
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client calls the Anthropic Messages API.
type Client struct {
	client  anthropic.Client
	model   anthropic.Model
	timeout time.Duration
}

// New creates a Claude client.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, apperr.Configuration("anthropic API key is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		client:  anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:   anthropic.Model(cfg.Model),
		timeout: timeout,
	}, nil
}

// Complete sends a single user prompt and returns the concatenated text
// blocks of the response. The call carries an explicit timeout; a timeout or
// transport error surfaces as an upstream failure.
func (c *Client) Complete(ctx context.Context, prompt string, maxTokens int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", apperr.Upstream("claude completion failed", err)
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", apperr.Upstream("claude returned no text content", fmt.Errorf("stop reason %q", message.StopReason))
	}
	return sb.String(), nil
}
