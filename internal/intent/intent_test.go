package intent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nyashahama/market-entry-advisor/internal/intent"
)

func TestParse_Queries(t *testing.T) {
	tests := []struct {
		query      string
		intent     intent.Intent
		countries  []string
		industries []string
	}{
		{
			query:      "What are the risks of entering the German fintech market?",
			intent:     intent.RiskAssessment,
			countries:  []string{"Germany"},
			industries: []string{"fintech"},
		},
		{
			query:      "Compare technology markets in Estonia vs Latvia",
			intent:     intent.Comparison,
			countries:  []string{"Estonia", "Latvia"},
			industries: []string{"technology"},
		},
		{
			query:      "How big is the healthcare market size in Japan?",
			intent:     intent.MarketResearch,
			countries:  []string{"Japan"},
			industries: []string{"healthcare"},
		},
		{
			query:      "Should we expand our logistics business into Kenya?",
			intent:     intent.Recommendation,
			countries:  []string{"Kenya"},
			industries: []string{"logistics"},
		},
		{
			query:     "Tell me everything about Rwanda",
			intent:    intent.General,
			countries: []string{"Rwanda"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := intent.Parse(tt.query)
			assert.Equal(t, tt.intent, got.Intent)
			assert.Equal(t, tt.countries, got.Countries)
			assert.Equal(t, tt.industries, got.Industries)
			assert.Equal(t, tt.query, got.OriginalQuery)
		})
	}
}

func TestParse_IntentPriority(t *testing.T) {
	// Risk outranks every other rule.
	assert.Equal(t, intent.RiskAssessment, intent.Parse("compare the risk versus the market").Intent)
	// Market outranks comparison.
	assert.Equal(t, intent.MarketResearch, intent.Parse("compare the market in France vs Spain").Intent)
	// Comparison outranks recommendation.
	assert.Equal(t, intent.Comparison, intent.Parse("should we enter France or is Spain better").Intent)
}

func TestParse_IntentKeywordsAreWholeWords(t *testing.T) {
	// "safeguards" contains "safe", "marketing" contains "market".
	assert.Equal(t, intent.General, intent.Parse("safeguards for marketing teams").Intent)
	// Punctuation does not glue words together.
	assert.Equal(t, intent.Comparison, intent.Parse("France vs. Italy").Intent)
}

func TestParse_CaseInsensitive(t *testing.T) {
	got := intent.Parse("RISK OF FINTECH IN JAPAN")
	assert.Equal(t, intent.RiskAssessment, got.Intent)
	assert.Equal(t, []string{"Japan"}, got.Countries)
	assert.Equal(t, []string{"fintech"}, got.Industries)
}

func TestParse_TruncatesInReferenceOrder(t *testing.T) {
	// Japan precedes France and Germany precedes both in the reference list,
	// regardless of the order in the query.
	got := intent.Parse("Brazil, France, Japan and Germany for energy, fintech and healthcare")
	assert.Equal(t, []string{"Germany", "Japan", "France"}, got.Countries)
	assert.Equal(t, []string{"fintech", "healthcare"}, got.Industries)
}

func TestParse_AliasesSelectCountry(t *testing.T) {
	got := intent.Parse("swiss and dutch banking")
	assert.Equal(t, []string{"Netherlands", "Switzerland"}, got.Countries)
	assert.Equal(t, []string{"banking"}, got.Industries)
}

func TestParse_NoMatches(t *testing.T) {
	got := intent.Parse("hello there")
	assert.Equal(t, intent.General, got.Intent)
	assert.Empty(t, got.Countries)
	assert.Empty(t, got.Industries)
}

// Country names are matched as substrings, so a name that contains another
// selects both, in reference order.
func TestParse_ContainedCountryNames(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"nigeria", []string{"Nigeria", "Niger"}},
		{"somalia", []string{"Mali", "Somalia"}},
		{"romania", []string{"Romania", "Oman"}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, intent.Parse(tt.query).Countries)
		})
	}
}
