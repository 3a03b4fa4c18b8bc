// Package chat is the chat-completion client behind the minimal
// /generate-questions endpoint. It has no fallback path.
package chat

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// ErrUnavailable wraps every failed completion.
var ErrUnavailable = errors.New("chat completion unavailable")

const (
	DefaultModel   = openai.GPT3Dot5Turbo
	DefaultTimeout = 30 * time.Second
)

// Options configures a Client. An empty BaseURL uses the OpenAI API.
type Options struct {
	BaseURL string
	Model   string
	APIKey  string
	Timeout time.Duration
}

// Client wraps an OpenAI-compatible chat-completion API.
type Client struct {
	api   *openai.Client
	model string
}

// New creates a Client from opts.
func New(opts Options) *Client {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	cfg.HTTPClient = &http.Client{Timeout: opts.Timeout}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	return &Client{api: openai.NewClientWithConfig(cfg), model: opts.Model}
}

// BuildPrompt renders the chat prompt for a role, level and skill list.
func BuildPrompt(role string, skills []string, level string) string {
	return fmt.Sprintf("Generate 5 %s interview questions for a %s\nfocusing on the following skills: %s.",
		level, role, strings.Join(skills, ", "))
}

// Questions sends one user message and returns the content of the first
// choice.
func (c *Client) Questions(ctx context.Context, role string, skills []string, level string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(role, skills, level)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", ErrUnavailable)
	}
	return resp.Choices[0].Message.Content, nil
}
