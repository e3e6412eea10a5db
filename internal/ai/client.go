// Package ai defines the language-model interface the remote estimators use
// and provides Anthropic, DeepSeek, Gemini and AWS Bedrock implementations.
package ai

import (
	"context"
	"net/http"
	"time"
)

// defaultMaxTokens applies when a Request leaves MaxTokens at zero.
const defaultMaxTokens = 2048

// Request is one single-turn completion.
type Request struct {
	// System is an optional system prompt. Providers without a separate system
	// slot prepend it to the user prompt.
	System string

	// Prompt is the user message.
	Prompt string

	// MaxTokens caps the response length. Zero means defaultMaxTokens.
	MaxTokens int

	// Temperature is passed through as-is. Zero is a valid value.
	Temperature float64
}

func (r Request) maxTokens() int {
	if r.MaxTokens <= 0 {
		return defaultMaxTokens
	}
	return r.MaxTokens
}

// Completer is the interface the remote estimators use to get narrative text
// from a model. Tests inject a stub that returns canned responses.
type Completer interface {
	// Complete sends req and returns the model's text. A non-nil error means
	// the call failed as a whole; callers fall back to deterministic output.
	//
	// Implementations must be safe to call concurrently.
	Complete(ctx context.Context, req Request) (string, error)

	// Name identifies the provider in logs and metrics, e.g. "anthropic".
	Name() string
}

// ─── HTTP CLIENT OPTIONS ──────────────────────────────────────────────────────

// Option adjusts the raw-HTTP clients (Anthropic and DeepSeek).
type Option func(*httpOptions)

type httpOptions struct {
	endpoint   string
	httpClient *http.Client
}

// WithEndpoint overrides the API URL. Used to point a client at a proxy or a
// test server.
func WithEndpoint(url string) Option {
	return func(o *httpOptions) { o.endpoint = url }
}

// WithHTTPClient replaces the default 90-second client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *httpOptions) { o.httpClient = c }
}

func buildHTTPOptions(endpoint string, opts []Option) httpOptions {
	o := httpOptions{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 90 * time.Second,
		},
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
