package estimate

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// estimateFunc is the shape shared by EstimateMarket and EstimateRisk.
type estimateFunc[T any] func(ctx context.Context, country, industry string) (T, error)

// sourced lets the generic helpers read which path produced an analysis.
type sourced interface {
	origin() Source
}

func (m MarketAnalysis) origin() Source { return m.Source }
func (r RiskAnalysis) origin() Source   { return r.Source }

// Fallback runs the primary estimator under a timeout and, on any error,
// answers from the secondary instead. The failure is logged and counted but
// never returned to the caller.
type Fallback struct {
	primary   Estimator
	secondary Estimator
	timeout   time.Duration
	logger    *slog.Logger
	obs       Observer
}

// NewFallback returns a Fallback. primary may be nil, in which case every
// call goes to secondary. A timeout of zero or less disables the deadline.
// obs may be nil.
func NewFallback(primary, secondary Estimator, timeout time.Duration, logger *slog.Logger, obs Observer) *Fallback {
	if obs == nil {
		obs = nopObserver{}
	}
	return &Fallback{
		primary:   primary,
		secondary: secondary,
		timeout:   timeout,
		logger:    logger,
		obs:       obs,
	}
}

func (f *Fallback) EstimateMarket(ctx context.Context, country, industry string) (MarketAnalysis, error) {
	var primary estimateFunc[MarketAnalysis]
	if f.primary != nil {
		primary = f.primary.EstimateMarket
	}
	return withFallback(ctx, f, kindMarket, country, industry, primary, f.secondary.EstimateMarket)
}

func (f *Fallback) EstimateRisk(ctx context.Context, country, industry string) (RiskAnalysis, error) {
	var primary estimateFunc[RiskAnalysis]
	if f.primary != nil {
		primary = f.primary.EstimateRisk
	}
	return withFallback(ctx, f, kindRisk, country, industry, primary, f.secondary.EstimateRisk)
}

func withFallback[T sourced](
	ctx context.Context,
	f *Fallback,
	kind, country, industry string,
	primary, secondary estimateFunc[T],
) (T, error) {
	if primary != nil {
		pctx, cancel := ctx, context.CancelFunc(func() {})
		if f.timeout > 0 {
			pctx, cancel = context.WithTimeout(ctx, f.timeout)
		}
		res, err := primary(pctx, country, industry)
		cancel()
		if err == nil {
			f.obs.EstimateServed(kind, res.origin(), false)
			return res, nil
		}
		f.logger.Warn("estimate: primary estimator failed, using fallback",
			"kind", kind,
			"country", country,
			"industry", industry,
			"error", err,
		)
	}

	res, err := secondary(ctx, country, industry)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("estimate: fallback %s: %w", kind, err)
	}
	f.obs.EstimateServed(kind, res.origin(), primary != nil)
	return res, nil
}
