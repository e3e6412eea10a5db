// Package intent turns a free-text business question into a ParsedQuery:
// the countries and industries it mentions and what kind of analysis it
// asks for. Matching is plain keyword work over the reference vocabularies;
// there is no language model involved and Parse never fails.
package intent

import (
	"strings"
	"unicode"

	"github.com/nyashahama/market-entry-advisor/internal/reference"
)

// Intent is the kind of analysis a query asks for.
type Intent string

const (
	General        Intent = "general"
	RiskAssessment Intent = "risk_assessment"
	MarketResearch Intent = "market_research"
	Comparison     Intent = "comparison"
	Recommendation Intent = "recommendation"
)

const (
	maxCountries  = 3
	maxIndustries = 2
)

// ParsedQuery is the structured reading of one query. Countries and
// Industries hold canonical reference names in reference order.
type ParsedQuery struct {
	Intent        Intent   `json:"intent"`
	Countries     []string `json:"countries"`
	Industries    []string `json:"industries"`
	OriginalQuery string   `json:"original_query"`
}

// intentRules are checked in order; the first rule with a keyword present in
// the query wins.
var intentRules = []struct {
	intent   Intent
	keywords []string
}{
	{RiskAssessment, []string{"risk", "risks", "dangerous", "safe", "safety"}},
	{MarketResearch, []string{"market", "size", "opportunity", "competition", "competitors"}},
	{Comparison, []string{"compare", "comparison", "vs", "versus", "better"}},
	{Recommendation, []string{"should", "recommend", "advice", "enter", "expand"}},
}

type countryTerms struct {
	name  string
	terms []string // lower-case name followed by aliases
}

// Lower-cased vocabularies, built once.
var (
	countryVocab  = buildCountryVocab()
	industryVocab = buildIndustryVocab()
)

func buildCountryVocab() []countryTerms {
	all := reference.Countries()
	out := make([]countryTerms, len(all))
	for i, c := range all {
		out[i] = countryTerms{
			name:  c.Name,
			terms: append([]string{strings.ToLower(c.Name)}, c.Aliases...),
		}
	}
	return out
}

func buildIndustryVocab() [][2]string {
	all := reference.Industries()
	out := make([][2]string, len(all))
	for i, name := range all {
		out[i] = [2]string{name, strings.ToLower(name)}
	}
	return out
}

// Parse reads query. Countries and industries match as case-insensitive
// substrings; intent keywords must match whole words so that "markets" or
// "compared" do not trip a higher-priority rule by accident.
func Parse(query string) ParsedQuery {
	lower := strings.ToLower(query)

	return ParsedQuery{
		Intent:        classify(lower),
		Countries:     matchCountries(lower),
		Industries:    matchIndustries(lower),
		OriginalQuery: query,
	}
}

func matchCountries(lower string) []string {
	var out []string
	for _, c := range countryVocab {
		for _, term := range c.terms {
			if strings.Contains(lower, term) {
				out = append(out, c.name)
				break
			}
		}
		if len(out) == maxCountries {
			break
		}
	}
	return out
}

func matchIndustries(lower string) []string {
	var out []string
	for _, ind := range industryVocab {
		if strings.Contains(lower, ind[1]) {
			out = append(out, ind[0])
		}
		if len(out) == maxIndustries {
			break
		}
	}
	return out
}

func classify(lower string) Intent {
	words := make(map[string]struct{})
	for _, w := range strings.FieldsFunc(lower, func(r rune) bool { return !unicode.IsLetter(r) }) {
		words[w] = struct{}{}
	}
	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if _, ok := words[kw]; ok {
				return rule.intent
			}
		}
	}
	return General
}
