package orchestrator

import (
	"time"

	"github.com/nyashahama/market-entry-advisor/internal/advisor"
	"github.com/nyashahama/market-entry-advisor/internal/estimate"
	"github.com/nyashahama/market-entry-advisor/internal/scoring"
)

// ResponseType tags every reply body so clients can switch on it.
type ResponseType string

const (
	TypeRiskAssessment ResponseType = "risk_assessment"
	TypeMarketResearch ResponseType = "market_research"
	TypeComparison     ResponseType = "comparison"
	TypeRecommendation ResponseType = "recommendation"
	TypeComprehensive  ResponseType = "comprehensive"
	TypeError          ResponseType = "error"
)

// Reply is any body the orchestrator hands back to a handler.
type Reply interface {
	Type() ResponseType
}

// EntryAnalysis is the full pipeline result for one country.
type EntryAnalysis struct {
	Country           string                  `json:"country"`
	Industry          string                  `json:"industry"`
	MarketResearch    estimate.MarketAnalysis `json:"market_research"`
	RiskAssessment    estimate.RiskAnalysis   `json:"risk_assessment"`
	Recommendation    advisor.Recommendation  `json:"recommendation"`
	AnalysisTimestamp time.Time               `json:"analysis_timestamp"`
}

// ─── CHAT REPLIES ─────────────────────────────────────────────────────────────

type RiskReply struct {
	ResponseType     ResponseType        `json:"response_type"`
	Country          string              `json:"country"`
	Industry         string              `json:"industry"`
	RiskScore        float64             `json:"risk_score"`
	RiskLevel        scoring.RiskLevel   `json:"risk_level"`
	RiskBreakdown    estimate.RiskScores `json:"risk_breakdown"`
	DetailedAnalysis string              `json:"detailed_analysis"`
	Message          string              `json:"message"`
}

type MarketReply struct {
	ResponseType  ResponseType `json:"response_type"`
	Country       string       `json:"country"`
	Industry      string       `json:"industry"`
	Analysis      string       `json:"analysis"`
	MarketSize    float64      `json:"market_size"`
	GrowthRate    float64      `json:"growth_rate"`
	KeyPlayers    []string     `json:"key_players"`
	Opportunities []string     `json:"opportunities"`
	Message       string       `json:"message"`
}

// Comparison is one row of a ComparisonReply.
type Comparison struct {
	Country          string            `json:"country"`
	Decision         scoring.Decision  `json:"decision"`
	Priority         scoring.Priority  `json:"priority"`
	RiskScore        float64           `json:"risk_score"`
	RiskLevel        scoring.RiskLevel `json:"risk_level"`
	MarketSize       float64           `json:"market_size"`
	GrowthRate       float64           `json:"growth_rate"`
	OpportunityScore float64           `json:"opportunity_score"`
}

// ComparisonReply lists countries from lowest to highest risk.
// RecommendedCountry is the first row.
type ComparisonReply struct {
	ResponseType       ResponseType `json:"response_type"`
	Industry           string       `json:"industry"`
	CountriesAnalyzed  int          `json:"countries_analyzed"`
	Comparisons        []Comparison `json:"comparisons"`
	RecommendedCountry string       `json:"recommended_country"`
	Message            string       `json:"message"`
}

type RecommendationReply struct {
	ResponseType   ResponseType            `json:"response_type"`
	Country        string                  `json:"country"`
	Industry       string                  `json:"industry"`
	Decision       scoring.Decision        `json:"decision"`
	Priority       scoring.Priority        `json:"priority"`
	Confidence     scoring.Confidence      `json:"confidence"`
	Recommendation advisor.Recommendation  `json:"recommendation"`
	RiskAssessment estimate.RiskAnalysis   `json:"risk_assessment"`
	MarketAnalysis estimate.MarketAnalysis `json:"market_analysis"`
	Message        string                  `json:"message"`
}

type ComprehensiveReply struct {
	ResponseType ResponseType  `json:"response_type"`
	Country      string        `json:"country"`
	Industry     string        `json:"industry"`
	FullAnalysis EntryAnalysis `json:"full_analysis"`
	Message      string        `json:"message"`
}

// ErrorReply is what a chat caller sees when the pipeline failed. It never
// carries the underlying error.
type ErrorReply struct {
	ResponseType ResponseType `json:"response_type"`
	Message      string       `json:"message"`
	Suggestions  []string     `json:"suggestions"`
}

// ─── ANALYZE REPLIES ──────────────────────────────────────────────────────────

// MarketAnalysisReply is the full market analysis with its type tag.
type MarketAnalysisReply struct {
	ResponseType ResponseType `json:"response_type"`
	estimate.MarketAnalysis
}

// RiskAnalysisReply is the full risk analysis with its type tag.
type RiskAnalysisReply struct {
	ResponseType ResponseType `json:"response_type"`
	estimate.RiskAnalysis
}

type EntryReply struct {
	ResponseType ResponseType  `json:"response_type"`
	Country      string        `json:"country"`
	Industry     string        `json:"industry"`
	Analysis     EntryAnalysis `json:"analysis"`
}

func (r RiskReply) Type() ResponseType           { return r.ResponseType }
func (r MarketReply) Type() ResponseType         { return r.ResponseType }
func (r ComparisonReply) Type() ResponseType     { return r.ResponseType }
func (r RecommendationReply) Type() ResponseType { return r.ResponseType }
func (r ComprehensiveReply) Type() ResponseType  { return r.ResponseType }
func (r ErrorReply) Type() ResponseType          { return r.ResponseType }
func (r MarketAnalysisReply) Type() ResponseType { return r.ResponseType }
func (r RiskAnalysisReply) Type() ResponseType   { return r.ResponseType }
func (r EntryReply) Type() ResponseType          { return r.ResponseType }

var errorSuggestions = []string{
	"Try asking about a specific country and industry",
	"Check if the country/industry names are spelled correctly",
	"Ask a simpler question to start",
}

func newErrorReply() ErrorReply {
	return ErrorReply{
		ResponseType: TypeError,
		Message:      "I encountered an error processing your request. Please try again.",
		Suggestions:  append([]string(nil), errorSuggestions...),
	}
}
