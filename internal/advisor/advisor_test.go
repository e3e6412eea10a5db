package advisor_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyashahama/market-entry-advisor/internal/advisor"
	"github.com/nyashahama/market-entry-advisor/internal/estimate"
	"github.com/nyashahama/market-entry-advisor/internal/scoring"
)

func analyses(t *testing.T, country, industry string) (estimate.MarketAnalysis, estimate.RiskAnalysis) {
	t.Helper()
	d := estimate.NewDeterministic()
	m, err := d.EstimateMarket(context.Background(), country, industry)
	require.NoError(t, err)
	r, err := d.EstimateRisk(context.Background(), country, industry)
	require.NoError(t, err)
	return m, r
}

func TestRecommend_GermanyFintechProceedsWithConfidence(t *testing.T) {
	m, r := analyses(t, "Germany", "fintech")
	rec := advisor.Recommend(m, r)

	assert.Equal(t, scoring.ProceedWithConfidence, rec.Decision)
	assert.Equal(t, scoring.PriorityHigh, rec.Priority)
	assert.Equal(t, scoring.ConfidenceHigh, rec.Confidence)
	assert.Equal(t, 3.0, rec.RiskScore)
	assert.Equal(t, 9.6, rec.OpportunityScore)
	assert.Equal(t,
		"Low risk (3.0/10) and high opportunity (9.6/10) make Germany an excellent market for fintech expansion.",
		rec.Reasoning)
	assert.Equal(t, "3-6 months", rec.Timeline)
	assert.Len(t, rec.NextSteps, 5)
}

func TestRecommend_MatrixRows(t *testing.T) {
	tests := []struct {
		name     string
		size     float64
		growth   float64
		risk     float64
		want     scoring.Decision
		timeline string
		snippet  string
	}{
		// size 3e9 → 6, growth 12 → 6: opportunity 6.0
		{"caution", 3e9, 12, 5, scoring.ProceedWithCaution, "6-12 months", "careful market entry planning for tech in Narnia"},
		// size 2.5e9 → 5, growth 10 → 5: opportunity 5.0
		{"mitigation", 2.5e9, 10, 7, scoring.ProceedWithMitigation, "12-18 months", "justifies consideration for tech in Narnia"},
		// size 0.5e9 → 1, growth 2 → 1: opportunity 1.0
		{"reconsider", 0.5e9, 2, 9, scoring.ReconsiderEntry, "Reassess in 6-12 months", "reconsidering tech market entry in Narnia"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := estimate.MarketAnalysis{Country: "Narnia", Industry: "tech", MarketSize: tt.size, GrowthRate: tt.growth}
			r := estimate.RiskAnalysis{OverallRiskScore: tt.risk}

			rec := advisor.Recommend(m, r)
			assert.Equal(t, tt.want, rec.Decision)
			assert.Equal(t, tt.timeline, rec.Timeline)
			assert.Contains(t, rec.Reasoning, tt.snippet)
			assert.Len(t, rec.NextSteps, 5)
		})
	}
}

func TestRecommend_NextStepsNotShared(t *testing.T) {
	m, r := analyses(t, "Germany", "fintech")
	first := advisor.Recommend(m, r)
	first.NextSteps[0] = "mutated"

	second := advisor.Recommend(m, r)
	assert.Equal(t, "Develop detailed market entry strategy", second.NextSteps[0])
}
