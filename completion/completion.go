// Package completion generates free-form assistant replies with the
// Anthropic API.
package completion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sirupsen/logrus"

	"github.com/fridaylabs/friday-go/core"
)

const (
	// DefaultModel is the completion model used when none is configured.
	DefaultModel = "claude-3-5-haiku-latest"

	// DefaultMaxTokens bounds reply length. Replies are spoken aloud,
	// so they stay short.
	DefaultMaxTokens = 512

	// DefaultTimeout bounds a single completion call.
	DefaultTimeout = 8 * time.Second
)

// Config configures the completion client.
type Config struct {
	APIKey    string
	Model     string
	MaxTokens int64
	Timeout   time.Duration
}

// Client wraps the Anthropic messages API behind a single-prompt,
// single-reply interface.
type Client struct {
	client    *anthropic.Client
	model     string
	maxTokens int64
	timeout   time.Duration
	log       *logrus.Entry
}

// New creates a completion client.
func New(cfg Config, log *logrus.Logger) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	client := anthropic.NewClient(option.WithAPIKey(cfg.APIKey))
	return &Client{
		client:    &client,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		timeout:   cfg.Timeout,
		log:       log.WithField("component", "completion"),
	}
}

// Complete sends the prompt and returns the model's text reply. The
// call is bounded by the configured timeout; failures map to
// core.ErrCollaboratorUnavailable.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		c.log.WithError(err).Warn("completion call failed")
		return "", fmt.Errorf("%w: completion: %v", core.ErrCollaboratorUnavailable, err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	reply := strings.TrimSpace(text.String())
	if reply == "" {
		return "", fmt.Errorf("%w: completion returned no text", core.ErrCollaboratorUnavailable)
	}

	c.log.WithFields(logrus.Fields{
		"duration_ms": time.Since(start).Milliseconds(),
		"tokens_out":  resp.Usage.OutputTokens,
	}).Debug("completion succeeded")

	return reply, nil
}
