package estimate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nyashahama/market-entry-advisor/internal/ai"
)

// ErrUnparseable is returned when a model reply cannot be turned into an
// analysis. The Fallback decorator treats it like any other remote failure.
var ErrUnparseable = errors.New("estimate: unparseable model response")

// Parser turns model text into an analysis. The baseline is the
// deterministic analysis for the same inputs; a Parser may keep any of its
// fields but must leave the result satisfying the same invariants.
type Parser interface {
	ParseMarket(text string, baseline MarketAnalysis) (MarketAnalysis, error)
	ParseRisk(text string, baseline RiskAnalysis) (RiskAnalysis, error)
}

// NarrativeParser keeps the model's prose as the narrative and takes every
// number from the baseline. Scores therefore stay in range and the overall
// score and level stay consistent no matter what the model wrote.
type NarrativeParser struct{}

func (NarrativeParser) ParseMarket(text string, baseline MarketAnalysis) (MarketAnalysis, error) {
	narrative, err := cleanNarrative(text)
	if err != nil {
		return MarketAnalysis{}, err
	}
	baseline.Analysis = narrative
	baseline.Source = SourceLLM
	return baseline, nil
}

func (NarrativeParser) ParseRisk(text string, baseline RiskAnalysis) (RiskAnalysis, error) {
	narrative, err := cleanNarrative(text)
	if err != nil {
		return RiskAnalysis{}, err
	}
	baseline.Analysis = narrative
	baseline.Source = SourceLLM
	return baseline, nil
}

// cleanNarrative strips whitespace and any markdown fence the model wrapped
// its answer in.
func cleanNarrative(text string) (string, error) {
	raw := strings.TrimSpace(text)
	raw = strings.TrimPrefix(raw, "```markdown")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrUnparseable
	}
	return raw, nil
}

// ─── REMOTE ESTIMATOR ─────────────────────────────────────────────────────────

// RemoteConfig tunes the model calls made by Remote.
type RemoteConfig struct {
	MaxTokens   int
	Temperature float64

	// Parser defaults to NarrativeParser.
	Parser Parser

	// Baseline supplies the numbers the parser starts from. Defaults to
	// Deterministic.
	Baseline Estimator
}

// Remote asks a language model for the narrative half of each analysis.
// Any model failure is returned as an error; wrap Remote in a Fallback to
// keep the service answering.
type Remote struct {
	llm ai.Completer
	cfg RemoteConfig
}

// NewRemote returns a Remote backed by llm.
func NewRemote(llm ai.Completer, cfg RemoteConfig) *Remote {
	if cfg.Parser == nil {
		cfg.Parser = NarrativeParser{}
	}
	if cfg.Baseline == nil {
		cfg.Baseline = Deterministic{}
	}
	return &Remote{llm: llm, cfg: cfg}
}

func (r *Remote) EstimateMarket(ctx context.Context, country, industry string) (MarketAnalysis, error) {
	baseline, err := r.cfg.Baseline.EstimateMarket(ctx, country, industry)
	if err != nil {
		return MarketAnalysis{}, fmt.Errorf("estimate: market baseline: %w", err)
	}
	text, err := r.complete(ctx, marketPrompt(country, industry))
	if err != nil {
		return MarketAnalysis{}, fmt.Errorf("estimate: remote market: %w", err)
	}
	return r.cfg.Parser.ParseMarket(text, baseline)
}

func (r *Remote) EstimateRisk(ctx context.Context, country, industry string) (RiskAnalysis, error) {
	baseline, err := r.cfg.Baseline.EstimateRisk(ctx, country, industry)
	if err != nil {
		return RiskAnalysis{}, fmt.Errorf("estimate: risk baseline: %w", err)
	}
	text, err := r.complete(ctx, riskPrompt(country, industry))
	if err != nil {
		return RiskAnalysis{}, fmt.Errorf("estimate: remote risk: %w", err)
	}
	return r.cfg.Parser.ParseRisk(text, baseline)
}

func (r *Remote) complete(ctx context.Context, prompt string) (string, error) {
	return r.llm.Complete(ctx, ai.Request{
		System:      systemPrompt,
		Prompt:      prompt,
		MaxTokens:   r.cfg.MaxTokens,
		Temperature: r.cfg.Temperature,
	})
}
