package estimate

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cached memoises successful results of the wrapped estimator for a TTL.
// Errors are never cached. Keys are case-sensitive so each result echoes
// the exact country and industry it was asked for.
type Cached struct {
	next    Estimator
	markets *expirable.LRU[string, MarketAnalysis]
	risks   *expirable.LRU[string, RiskAnalysis]
	obs     Observer
}

// NewCached wraps next with two LRU caches of size entries each. obs may be
// nil.
func NewCached(next Estimator, size int, ttl time.Duration, obs Observer) *Cached {
	if obs == nil {
		obs = nopObserver{}
	}
	return &Cached{
		next:    next,
		markets: expirable.NewLRU[string, MarketAnalysis](size, nil, ttl),
		risks:   expirable.NewLRU[string, RiskAnalysis](size, nil, ttl),
		obs:     obs,
	}
}

func (c *Cached) EstimateMarket(ctx context.Context, country, industry string) (MarketAnalysis, error) {
	return memoize(ctx, c.markets, c.obs, kindMarket, country, industry, c.next.EstimateMarket)
}

func (c *Cached) EstimateRisk(ctx context.Context, country, industry string) (RiskAnalysis, error) {
	return memoize(ctx, c.risks, c.obs, kindRisk, country, industry, c.next.EstimateRisk)
}

func memoize[T any](
	ctx context.Context,
	cache *expirable.LRU[string, T],
	obs Observer,
	kind, country, industry string,
	fn estimateFunc[T],
) (T, error) {
	key := country + "\x00" + industry
	if v, ok := cache.Get(key); ok {
		obs.CacheLookup(kind, true)
		return v, nil
	}
	obs.CacheLookup(kind, false)

	v, err := fn(ctx, country, industry)
	if err != nil {
		return v, err
	}
	cache.Add(key, v)
	return v, nil
}
