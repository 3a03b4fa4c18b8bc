// Package inference talks to a hosted text-generation endpoint in the
// Hugging Face inference API format.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrUnavailable wraps every failure of a generation call. Callers are
// expected to treat all of them the same way.
var ErrUnavailable = errors.New("inference unavailable")

const (
	DefaultBaseURL = "https://api-inference.huggingface.co/models"
	DefaultModel   = "google/flan-t5-small"
	DefaultTimeout = 30 * time.Second
)

// Params are the sampling parameters sent with every request.
type Params struct {
	MaxNewTokens int     `json:"max_new_tokens"`
	Temperature  float64 `json:"temperature"`
	DoSample     bool    `json:"do_sample"`
	TopK         int     `json:"top_k,omitempty"`
	TopP         float64 `json:"top_p,omitempty"`
}

// DefaultParams returns the parameters used when none are configured.
func DefaultParams() Params {
	return Params{
		MaxNewTokens: 300,
		Temperature:  0.8,
		DoSample:     true,
		TopK:         50,
		TopP:         0.95,
	}
}

// Options configures a Client. Zero fields take their defaults.
type Options struct {
	BaseURL string
	Model   string
	Token   string
	Timeout time.Duration
	Params  Params
}

// Client issues single-shot generation calls.
type Client struct {
	endpoint   string
	token      string
	params     Params
	httpClient *http.Client
}

// New creates a Client from opts.
func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Params == (Params{}) {
		opts.Params = DefaultParams()
	}
	return &Client{
		endpoint: strings.TrimRight(opts.BaseURL, "/") + "/" + strings.TrimLeft(opts.Model, "/"),
		token:    opts.Token,
		params:   opts.Params,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
	}
}

// Endpoint returns the URL requests are posted to.
func (c *Client) Endpoint() string { return c.endpoint }

type generateRequest struct {
	Inputs     string `json:"inputs"`
	Parameters Params `json:"parameters"`
}

type generation struct {
	GeneratedText *string `json:"generated_text"`
}

// Generate posts prompt and returns the trimmed generated text. It makes
// exactly one attempt; any failure is wrapped in ErrUnavailable.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{Inputs: prompt, Parameters: c.params})
	if err != nil {
		return "", fmt.Errorf("%w: encoding request: %v", ErrUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: creating request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: unexpected status %d: %s", ErrUnavailable, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out []generation
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}
	if len(out) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrUnavailable)
	}
	if out[0].GeneratedText == nil {
		return "", fmt.Errorf("%w: response has no generated_text", ErrUnavailable)
	}
	text := strings.TrimSpace(*out[0].GeneratedText)
	if text == "" {
		return "", fmt.Errorf("%w: empty generated_text", ErrUnavailable)
	}
	return text, nil
}
