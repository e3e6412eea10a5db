// Package advisor turns a market analysis and a risk analysis into a
// market-entry recommendation. The numbers come from the scoring package;
// this package adds the prose and the action plan for each decision.
package advisor

import (
	"fmt"

	"github.com/nyashahama/market-entry-advisor/internal/estimate"
	"github.com/nyashahama/market-entry-advisor/internal/scoring"
)

// Recommendation is the verdict for one (country, industry) pair. It is
// derived afresh on every call and never stored.
type Recommendation struct {
	Decision         scoring.Decision   `json:"decision"`
	Priority         scoring.Priority   `json:"priority"`
	Confidence       scoring.Confidence `json:"confidence"`
	RiskScore        float64            `json:"risk_score"`
	OpportunityScore float64            `json:"opportunity_score"`
	Reasoning        string             `json:"reasoning"`
	NextSteps        []string           `json:"next_steps"`
	Timeline         string             `json:"timeline"`
}

// Recommend scores the opportunity, applies the decision matrix and attaches
// the playbook for the resulting decision. Country and industry for the
// reasoning text are taken from the market analysis.
func Recommend(market estimate.MarketAnalysis, risk estimate.RiskAnalysis) Recommendation {
	opportunity := scoring.OpportunityScore(market.MarketSize, market.GrowthRate)
	verdict := scoring.Decide(risk.OverallRiskScore, opportunity)
	pb := playbookFor(verdict.Decision)

	return Recommendation{
		Decision:         verdict.Decision,
		Priority:         verdict.Priority,
		Confidence:       verdict.Confidence,
		RiskScore:        risk.OverallRiskScore,
		OpportunityScore: opportunity,
		Reasoning:        fmt.Sprintf(pb.reasoning, risk.OverallRiskScore, opportunity, market.Country, market.Industry),
		NextSteps:        append([]string(nil), pb.nextSteps...),
		Timeline:         pb.timeline,
	}
}
