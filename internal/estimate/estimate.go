// Package estimate produces the two analyses every market-entry verdict is
// built from: a market sizing and a six-category risk assessment.
//
// Each capability has one interface and several variants:
//
//	Deterministic  table-driven, never fails, always available
//	Remote         narrative from a language model, numbers from a baseline
//	Cached         memoises a wrapped estimator for a TTL
//	Fallback       tries a primary under a timeout, else a secondary
//
// main.go composes them as Fallback(Cached(Remote), Deterministic) when a
// model is configured and uses Deterministic alone otherwise.
package estimate

import (
	"context"

	"github.com/nyashahama/market-entry-advisor/internal/scoring"
)

// Source records which path produced an analysis.
type Source string

const (
	SourceDeterministic Source = "deterministic"
	SourceLLM           Source = "llm"
)

// MarketAnalysis is the market-sizing half of an entry analysis.
type MarketAnalysis struct {
	Country       string   `json:"country"`
	Industry      string   `json:"industry"`
	Analysis      string   `json:"analysis"`
	MarketSize    float64  `json:"market_size"`
	GrowthRate    float64  `json:"growth_rate"`
	KeyPlayers    []string `json:"key_players"`
	Opportunities []string `json:"opportunities"`
	Challenges    []string `json:"challenges"`
	Source        Source   `json:"source"`
}

// RiskScores holds the six category scores, each in [0, 10] with one decimal.
type RiskScores struct {
	Political   float64 `json:"political_risk"`
	Economic    float64 `json:"economic_risk"`
	Legal       float64 `json:"legal_risk"`
	Operational float64 `json:"operational_risk"`
	Market      float64 `json:"market_risk"`
	Technology  float64 `json:"technology_risk"`
}

// Values returns the scores in their canonical category order.
func (s RiskScores) Values() []float64 {
	return []float64{s.Political, s.Economic, s.Legal, s.Operational, s.Market, s.Technology}
}

// Overall is the mean of the six categories rounded to one decimal.
func (s RiskScores) Overall() float64 {
	var sum float64
	vals := s.Values()
	for _, v := range vals {
		sum += v
	}
	return scoring.Round1(sum / float64(len(vals)))
}

// RiskAnalysis is the risk half of an entry analysis. OverallRiskScore and
// RiskLevel are always derived from RiskScores.
type RiskAnalysis struct {
	Country              string            `json:"country"`
	Industry             string            `json:"industry"`
	OverallRiskScore     float64           `json:"overall_risk_score"`
	RiskLevel            scoring.RiskLevel `json:"risk_level"`
	RiskScores           RiskScores        `json:"risk_scores"`
	Analysis             string            `json:"analysis"`
	MitigationStrategies []string          `json:"mitigation_strategies"`
	Source               Source            `json:"source"`
}

// MarketEstimator sizes a market. Implementations must be safe to call
// concurrently.
type MarketEstimator interface {
	EstimateMarket(ctx context.Context, country, industry string) (MarketAnalysis, error)
}

// RiskEstimator scores entry risk. Implementations must be safe to call
// concurrently.
type RiskEstimator interface {
	EstimateRisk(ctx context.Context, country, industry string) (RiskAnalysis, error)
}

// Estimator provides both analyses. Every variant in this package
// implements it.
type Estimator interface {
	MarketEstimator
	RiskEstimator
}

// Observer receives estimator events. *metrics.Metrics satisfies it.
type Observer interface {
	EstimateServed(kind string, source Source, fellBack bool)
	CacheLookup(kind string, hit bool)
}

type nopObserver struct{}

func (nopObserver) EstimateServed(string, Source, bool) {}
func (nopObserver) CacheLookup(string, bool)            {}

const (
	kindMarket = "market"
	kindRisk   = "risk"
)
