package metrics_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyashahama/market-entry-advisor/internal/ai"
	"github.com/nyashahama/market-entry-advisor/internal/estimate"
	"github.com/nyashahama/market-entry-advisor/internal/metrics"
	"github.com/nyashahama/market-entry-advisor/internal/store"
)

// Compile-time checks that one *Metrics serves every observer interface.
var (
	_ estimate.Observer = (*metrics.Metrics)(nil)
	_ ai.Observer       = (*metrics.Metrics)(nil)
	_ store.Observer    = (*metrics.Metrics)(nil)
)

func TestEstimateAndCacheCounters(t *testing.T) {
	m := metrics.New()

	m.EstimateServed("risk", estimate.SourceLLM, false)
	m.EstimateServed("risk", estimate.SourceDeterministic, true)
	m.EstimateServed("risk", estimate.SourceDeterministic, true)
	m.CacheLookup("market", true)
	m.CacheLookup("market", false)

	expected := `
# HELP market_entry_estimates_total Analyses served, by kind, source and whether the fallback answered.
# TYPE market_entry_estimates_total counter
market_entry_estimates_total{fallback="false",kind="risk",source="llm"} 1
market_entry_estimates_total{fallback="true",kind="risk",source="deterministic"} 2
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "market_entry_estimates_total"))
	assert.Equal(t, 2, testutil.CollectAndCount(m.Registry(), "market_entry_estimate_cache_lookups_total"))
}

func TestCompletionCounters(t *testing.T) {
	m := metrics.New()

	m.ObserveCompletion("gemini", 1200*time.Millisecond, nil)
	m.ObserveCompletion("gemini", 300*time.Millisecond, errors.New("quota"))

	expected := `
# HELP market_entry_llm_completions_total Language model calls by provider and status.
# TYPE market_entry_llm_completions_total counter
market_entry_llm_completions_total{provider="gemini",status="error"} 1
market_entry_llm_completions_total{provider="gemini",status="ok"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "market_entry_llm_completions_total"))
}

func TestSessionAndGateCounters(t *testing.T) {
	m := metrics.New()

	m.SessionStarted()
	m.EntryAppended()
	m.EntryAppended()
	m.AuthRejected()
	m.RateLimited()
	m.RateLimited()

	expected := `
# HELP market_entry_session_entries_total Chat turns recorded across all sessions.
# TYPE market_entry_session_entries_total counter
market_entry_session_entries_total 2
# HELP market_entry_rate_limited_total Requests rejected by the per-token rate limiter.
# TYPE market_entry_rate_limited_total counter
market_entry_rate_limited_total 2
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"market_entry_session_entries_total", "market_entry_rate_limited_total"))
}

func TestHandler_ServesExposition(t *testing.T) {
	m := metrics.New()
	m.ObserveHTTP("/api/v1/chat", http.MethodPost, http.StatusOK, 15*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `market_entry_http_requests_total{method="POST",route="/api/v1/chat",status="200"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
