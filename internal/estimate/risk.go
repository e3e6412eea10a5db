package estimate

import (
	"context"
	"fmt"
	"strings"

	"github.com/nyashahama/market-entry-advisor/internal/scoring"
)

// ─── RISK TABLES ──────────────────────────────────────────────────────────────

type riskProfile struct {
	base      float64
	political float64
	economic  float64
	legal     float64
}

// riskProfiles is keyed by lower-case country name.
var riskProfiles = map[string]riskProfile{
	"germany":        {base: 2.5, political: 2.0, economic: 3.0, legal: 2.0},
	"japan":          {base: 3.0, political: 2.5, economic: 3.5, legal: 2.5},
	"rwanda":         {base: 5.5, political: 6.0, economic: 6.5, legal: 5.0},
	"bangladesh":     {base: 6.2, political: 6.5, economic: 7.0, legal: 6.0},
	"estonia":        {base: 3.2, political: 3.0, economic: 3.5, legal: 2.8},
	"mongolia":       {base: 7.1, political: 7.5, economic: 8.0, legal: 6.5},
	"latvia":         {base: 3.4, political: 3.2, economic: 3.8, legal: 3.0},
	"singapore":      {base: 2.0, political: 1.5, economic: 2.5, legal: 1.5},
	"united kingdom": {base: 2.8, political: 2.8, economic: 3.2, legal: 2.0},
	"uk":             {base: 2.8, political: 2.8, economic: 3.2, legal: 2.0},
	"united states":  {base: 2.7, political: 3.0, economic: 2.8, legal: 2.4},
	"usa":            {base: 2.7, political: 3.0, economic: 2.8, legal: 2.4},
	"kenya":          {base: 5.2, political: 5.5, economic: 6.0, legal: 5.0},
}

var defaultRiskProfile = riskProfile{base: 5.0, political: 5.0, economic: 5.0, legal: 5.0}

// industryRiskMultipliers is keyed by lower-case industry.
var industryRiskMultipliers = map[string]float64{
	"fintech":       1.2,
	"healthcare":    1.1,
	"technology":    0.9,
	"energy":        1.3,
	"manufacturing": 1.0,
	"agriculture":   0.8,
}

const defaultRiskMultiplier = 1.0

var mitigationStrategies = []string{
	"Establish local partnerships to navigate regulatory environment",
	"Implement comprehensive compliance framework",
	"Develop contingency plans for political/economic volatility",
	"Invest in local talent and infrastructure development",
}

// ─── DETERMINISTIC RISK ───────────────────────────────────────────────────────

// EstimateRisk scores the six categories from the country profile and the
// industry multiplier. Unknown countries and industries use neutral defaults;
// it never returns an error.
func (Deterministic) EstimateRisk(_ context.Context, country, industry string) (RiskAnalysis, error) {
	p, ok := riskProfiles[strings.ToLower(country)]
	if !ok {
		p = defaultRiskProfile
	}
	m, ok := industryRiskMultipliers[strings.ToLower(industry)]
	if !ok {
		m = defaultRiskMultiplier
	}

	scores := RiskScores{
		Political:   categoryScore(p.political * m),
		Economic:    categoryScore(p.economic * m),
		Legal:       categoryScore(p.legal * m),
		Operational: categoryScore((p.base + 1.0) * m),
		Market:      categoryScore(p.base * m),
		Technology:  categoryScore((p.base - 0.5) * m),
	}
	overall := scores.Overall()
	level := scoring.LevelFor(overall)

	return RiskAnalysis{
		Country:              country,
		Industry:             industry,
		OverallRiskScore:     overall,
		RiskLevel:            level,
		RiskScores:           scores,
		Analysis:             riskNarrative(country, industry, overall, level, scores),
		MitigationStrategies: append([]string(nil), mitigationStrategies...),
		Source:               SourceDeterministic,
	}, nil
}

func categoryScore(v float64) float64 {
	return scoring.Round1(scoring.Clamp(v, 0, 10))
}

func riskNarrative(country, industry string, overall float64, level scoring.RiskLevel, s RiskScores) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Risk Assessment for %s in %s:\n\n", industry, country)
	fmt.Fprintf(&sb, "Overall Risk Score: %.1f/10 (%s Risk)\n\n", overall, level)
	sb.WriteString("Key Risk Factors:\n")
	fmt.Fprintf(&sb, "• Political Risk (%.1f/10): Government stability and policy environment\n", s.Political)
	fmt.Fprintf(&sb, "• Economic Risk (%.1f/10): Currency, inflation, and economic growth factors\n", s.Economic)
	fmt.Fprintf(&sb, "• Legal Risk (%.1f/10): Regulatory framework and legal protection\n", s.Legal)
	fmt.Fprintf(&sb, "• Operational Risk (%.1f/10): Infrastructure and operational challenges\n", s.Operational)
	fmt.Fprintf(&sb, "• Market Risk (%.1f/10): Competition and market dynamics\n", s.Market)
	fmt.Fprintf(&sb, "• Technology Risk (%.1f/10): Digital infrastructure and innovation capacity\n\n", s.Technology)
	fmt.Fprintf(&sb, "Recommendation: %s", levelAdvice(level))
	return sb.String()
}

func levelAdvice(level scoring.RiskLevel) string {
	switch level {
	case scoring.LevelLow:
		return "Proceed with confidence"
	case scoring.LevelMedium:
		return "Proceed with caution"
	case scoring.LevelHigh:
		return "Proceed with extensive mitigation"
	default:
		return "Reconsider market entry"
	}
}
