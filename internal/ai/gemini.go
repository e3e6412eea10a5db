package ai

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

var errNoCandidates = errors.New("gemini: no text in response")

// geminiModels is the slice of *genai.Models this client calls.
type geminiModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// geminiClient is the Completer backed by the Gemini API.
type geminiClient struct {
	models geminiModels
	model  string
}

// NewGeminiClient returns a Completer that calls the Gemini API.
//   - apiKey: your GEMINI_API_KEY
//   - model:  e.g. "gemini-2.5-flash"
func NewGeminiClient(ctx context.Context, apiKey, model string) (Completer, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	return newGeminiClient(cli.Models, model), nil
}

func newGeminiClient(models geminiModels, model string) *geminiClient {
	return &geminiClient{models: models, model: model}
}

func (c *geminiClient) Name() string { return "gemini" }

// Complete sends one GenerateContent call and returns the first candidate's
// text.
func (c *geminiClient) Complete(ctx context.Context, r Request) (string, error) {
	temp := float32(r.Temperature)
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: int32(r.maxTokens()),
	}
	if r.System != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: r.System}}}
	}

	resp, err := c.models.GenerateContent(ctx, c.model,
		[]*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: r.Prompt}}}},
		cfg,
	)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errNoCandidates
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
