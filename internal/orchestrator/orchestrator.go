// Package orchestrator routes a request to the smallest set of estimators
// that answers it and assembles the reply. It depends on the estimator
// capability only through estimate.Estimator and owns no state of its own
// beyond a reference to the session store.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nyashahama/market-entry-advisor/internal/advisor"
	"github.com/nyashahama/market-entry-advisor/internal/estimate"
	"github.com/nyashahama/market-entry-advisor/internal/intent"
	"github.com/nyashahama/market-entry-advisor/internal/reference"
	"github.com/nyashahama/market-entry-advisor/internal/store"
)

// Defaults used when a chat query names no country or industry.
const (
	DefaultCountry  = "Germany"
	DefaultIndustry = reference.Technology
)

// defaultComparison is substituted when a comparison query names fewer than
// two countries.
var defaultComparison = []string{"Germany", "Japan"}

// maxChatComparison caps how many parsed countries a chat comparison covers.
const maxChatComparison = 3

const defaultConcurrency = 3

// AnalysisType selects what Analyze computes.
type AnalysisType string

const (
	AnalysisMarket        AnalysisType = "market"
	AnalysisRisk          AnalysisType = "risk"
	AnalysisComprehensive AnalysisType = "comprehensive"
)

// ErrUnknownAnalysisType is returned by ParseAnalysisType and Analyze.
var ErrUnknownAnalysisType = errors.New("orchestrator: unknown analysis type")

// ErrNoCountries is returned by Compare for an empty country list.
var ErrNoCountries = errors.New("orchestrator: no countries to compare")

// ParseAnalysisType maps the wire value to an AnalysisType. The empty string
// means comprehensive.
func ParseAnalysisType(s string) (AnalysisType, error) {
	switch t := AnalysisType(s); t {
	case "":
		return AnalysisComprehensive, nil
	case AnalysisMarket, AnalysisRisk, AnalysisComprehensive:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAnalysisType, s)
	}
}

// Orchestrator is safe for concurrent use.
type Orchestrator struct {
	est         estimate.Estimator
	sessions    *store.Store
	logger      *slog.Logger
	concurrency int
	now         func() time.Time
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithConcurrency bounds how many countries Compare analyses at once.
func WithConcurrency(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithClock replaces time.Now for analysis timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// New returns an Orchestrator over est that records chat turns in sessions.
func New(est estimate.Estimator, sessions *store.Store, logger *slog.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		est:         est,
		sessions:    sessions,
		logger:      logger,
		concurrency: defaultConcurrency,
		now:         time.Now,
	}
	for _, fn := range opts {
		fn(o)
	}
	return o
}

// ─── CHAT ─────────────────────────────────────────────────────────────────────

// Chat interprets query, records it under sessionID when one is given and
// answers according to the detected intent. Estimator failures become an
// ErrorReply; the returned error is reserved for session store failures.
func (o *Orchestrator) Chat(ctx context.Context, query, sessionID string) (Reply, error) {
	parsed := intent.Parse(query)

	if sessionID != "" {
		if _, err := o.sessions.Append(sessionID, query, parsed); err != nil {
			return nil, fmt.Errorf("orchestrator: record chat turn: %w", err)
		}
	}

	country, industry := DefaultCountry, DefaultIndustry
	if len(parsed.Countries) > 0 {
		country = parsed.Countries[0]
	}
	if len(parsed.Industries) > 0 {
		industry = parsed.Industries[0]
	}

	o.logger.Debug("orchestrator: routing chat query",
		"intent", parsed.Intent,
		"country", country,
		"industry", industry,
		"session_id", sessionID,
	)

	reply, err := o.route(ctx, parsed, country, industry)
	if err != nil {
		o.logger.Error("orchestrator: chat pipeline failed",
			"intent", parsed.Intent,
			"country", country,
			"industry", industry,
			"error", err,
		)
		return newErrorReply(), nil
	}
	return reply, nil
}

func (o *Orchestrator) route(ctx context.Context, parsed intent.ParsedQuery, country, industry string) (Reply, error) {
	switch parsed.Intent {
	case intent.RiskAssessment:
		risk, err := o.est.EstimateRisk(ctx, country, industry)
		if err != nil {
			return nil, err
		}
		return RiskReply{
			ResponseType:     TypeRiskAssessment,
			Country:          country,
			Industry:         industry,
			RiskScore:        risk.OverallRiskScore,
			RiskLevel:        risk.RiskLevel,
			RiskBreakdown:    risk.RiskScores,
			DetailedAnalysis: risk.Analysis,
			Message:          fmt.Sprintf("Risk assessment for %s in %s", industry, country),
		}, nil

	case intent.MarketResearch:
		market, err := o.est.EstimateMarket(ctx, country, industry)
		if err != nil {
			return nil, err
		}
		return MarketReply{
			ResponseType:  TypeMarketResearch,
			Country:       country,
			Industry:      industry,
			Analysis:      market.Analysis,
			MarketSize:    market.MarketSize,
			GrowthRate:    market.GrowthRate,
			KeyPlayers:    market.KeyPlayers,
			Opportunities: market.Opportunities,
			Message:       fmt.Sprintf("Market analysis for %s in %s", industry, country),
		}, nil

	case intent.Comparison:
		countries := parsed.Countries
		if len(countries) < 2 {
			countries = defaultComparison
		}
		if len(countries) > maxChatComparison {
			countries = countries[:maxChatComparison]
		}
		return o.Compare(ctx, countries, industry)

	case intent.Recommendation:
		entry, err := o.Entry(ctx, country, industry)
		if err != nil {
			return nil, err
		}
		return RecommendationReply{
			ResponseType:   TypeRecommendation,
			Country:        country,
			Industry:       industry,
			Decision:       entry.Recommendation.Decision,
			Priority:       entry.Recommendation.Priority,
			Confidence:     entry.Recommendation.Confidence,
			Recommendation: entry.Recommendation,
			RiskAssessment: entry.RiskAssessment,
			MarketAnalysis: entry.MarketResearch,
			Message:        fmt.Sprintf("Market entry recommendation for %s in %s", industry, country),
		}, nil

	default:
		entry, err := o.Entry(ctx, country, industry)
		if err != nil {
			return nil, err
		}
		return ComprehensiveReply{
			ResponseType: TypeComprehensive,
			Country:      country,
			Industry:     industry,
			FullAnalysis: entry,
			Message:      fmt.Sprintf("Comprehensive analysis for %s in %s", industry, country),
		}, nil
	}
}

// ─── STRUCTURED OPERATIONS ────────────────────────────────────────────────────

// Analyze runs the estimators selected by typ for one country.
func (o *Orchestrator) Analyze(ctx context.Context, country, industry string, typ AnalysisType) (Reply, error) {
	switch typ {
	case AnalysisMarket:
		market, err := o.est.EstimateMarket(ctx, country, industry)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: analyze market: %w", err)
		}
		return MarketAnalysisReply{ResponseType: TypeMarketResearch, MarketAnalysis: market}, nil

	case AnalysisRisk:
		risk, err := o.est.EstimateRisk(ctx, country, industry)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: analyze risk: %w", err)
		}
		return RiskAnalysisReply{ResponseType: TypeRiskAssessment, RiskAnalysis: risk}, nil

	case AnalysisComprehensive:
		entry, err := o.Entry(ctx, country, industry)
		if err != nil {
			return nil, err
		}
		return EntryReply{
			ResponseType: TypeComprehensive,
			Country:      country,
			Industry:     industry,
			Analysis:     entry,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAnalysisType, typ)
	}
}

// Entry runs the market and risk estimators concurrently and derives the
// recommendation from both.
func (o *Orchestrator) Entry(ctx context.Context, country, industry string) (EntryAnalysis, error) {
	var (
		market estimate.MarketAnalysis
		risk   estimate.RiskAnalysis
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		market, err = o.est.EstimateMarket(gctx, country, industry)
		return err
	})
	g.Go(func() error {
		var err error
		risk, err = o.est.EstimateRisk(gctx, country, industry)
		return err
	})
	if err := g.Wait(); err != nil {
		return EntryAnalysis{}, fmt.Errorf("orchestrator: entry analysis %s/%s: %w", country, industry, err)
	}

	return EntryAnalysis{
		Country:           country,
		Industry:          industry,
		MarketResearch:    market,
		RiskAssessment:    risk,
		Recommendation:    advisor.Recommend(market, risk),
		AnalysisTimestamp: o.now().UTC(),
	}, nil
}

// Compare runs the full pipeline for every country, at most concurrency at
// a time, and orders the rows by ascending risk. Rows with equal risk keep
// their input order.
func (o *Orchestrator) Compare(ctx context.Context, countries []string, industry string) (ComparisonReply, error) {
	if len(countries) == 0 {
		return ComparisonReply{}, ErrNoCountries
	}

	rows := make([]Comparison, len(countries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, country := range countries {
		g.Go(func() error {
			entry, err := o.Entry(gctx, country, industry)
			if err != nil {
				return err
			}
			rows[i] = Comparison{
				Country:          country,
				Decision:         entry.Recommendation.Decision,
				Priority:         entry.Recommendation.Priority,
				RiskScore:        entry.Recommendation.RiskScore,
				RiskLevel:        entry.RiskAssessment.RiskLevel,
				MarketSize:       entry.MarketResearch.MarketSize,
				GrowthRate:       entry.MarketResearch.GrowthRate,
				OpportunityScore: entry.Recommendation.OpportunityScore,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ComparisonReply{}, fmt.Errorf("orchestrator: compare: %w", err)
	}

	sort.SliceStable(rows, func(a, b int) bool { return rows[a].RiskScore < rows[b].RiskScore })

	return ComparisonReply{
		ResponseType:       TypeComparison,
		Industry:           industry,
		CountriesAnalyzed:  len(rows),
		Comparisons:        rows,
		RecommendedCountry: rows[0].Country,
		Message:            fmt.Sprintf("Market comparison for %s across %d countries", industry, len(rows)),
	}, nil
}

// History returns the recorded turns for sessionID. Unknown sessions yield
// an error wrapping store.ErrSessionNotFound.
func (o *Orchestrator) History(sessionID string) ([]store.Entry, error) {
	entries, err := o.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: history: %w", err)
	}
	return entries, nil
}
