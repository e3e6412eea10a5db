package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const anthropicEndpoint = "https://api.anthropic.com/v1/messages"

// anthropicClient is the Completer backed by the Anthropic Messages API.
type anthropicClient struct {
	apiKey string
	model  string
	opts   httpOptions
}

// NewAnthropicClient returns a Completer that calls the Anthropic API.
//   - apiKey: your ANTHROPIC_API_KEY
//   - model:  e.g. "claude-sonnet-4-5"
func NewAnthropicClient(apiKey, model string, opts ...Option) Completer {
	return &anthropicClient{
		apiKey: apiKey,
		model:  model,
		opts:   buildHTTPOptions(anthropicEndpoint, opts),
	}
}

// ─── ANTHROPIC API SHAPES ─────────────────────────────────────────────────────
// Bedrock's Anthropic models accept the same message shape, so bedrock.go
// reuses these types.

type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version,omitempty"` // Bedrock only
	Model            string             `json:"model,omitempty"`             // direct API only
	MaxTokens        int                `json:"max_tokens"`
	Temperature      *float64           `json:"temperature,omitempty"`
	System           string             `json:"system,omitempty"`
	Messages         []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// firstText returns the first text block of the response.
func (r anthropicResponse) firstText() (string, bool) {
	for _, block := range r.Content {
		if block.Type == "text" {
			return block.Text, true
		}
	}
	return "", false
}

func newAnthropicRequest(req Request) anthropicRequest {
	temp := req.Temperature
	return anthropicRequest{
		MaxTokens:   req.maxTokens(),
		Temperature: &temp,
		System:      req.System,
		Messages: []anthropicMessage{
			{Role: "user", Content: req.Prompt},
		},
	}
}

// ─── IMPLEMENTATION ───────────────────────────────────────────────────────────

func (c *anthropicClient) Name() string { return "anthropic" }

// Complete sends one Messages API request and returns the text of the first
// text block.
func (c *anthropicClient) Complete(ctx context.Context, r Request) (string, error) {
	reqBody := newAnthropicRequest(r)
	reqBody.Model = c.model

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("ai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("ai: build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.opts.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai: http request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB cap
	if err != nil {
		return "", fmt.Errorf("ai: read response body: %w", err)
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return "", fmt.Errorf("ai: unmarshal response: %w", err)
	}

	if parsed.Error != nil {
		return "", fmt.Errorf("ai: API error %s: %s", parsed.Error.Type, parsed.Error.Message)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ai: unexpected status %d: %.200s", resp.StatusCode, string(respBytes))
	}

	text, ok := parsed.firstText()
	if !ok {
		return "", fmt.Errorf("ai: no text content in response")
	}
	return text, nil
}
