package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyashahama/market-entry-advisor/internal/api"
	"github.com/nyashahama/market-entry-advisor/internal/auth"
	"github.com/nyashahama/market-entry-advisor/internal/estimate"
	"github.com/nyashahama/market-entry-advisor/internal/metrics"
	"github.com/nyashahama/market-entry-advisor/internal/orchestrator"
	"github.com/nyashahama/market-entry-advisor/internal/store"
)

// ─── STUBS ────────────────────────────────────────────────────────────────────

// brokenAdvisor fails every call with an error that must never reach a
// client.
type brokenAdvisor struct{}

var errLeaky = errors.New("dial tcp 10.1.2.3:5432: connection refused")

func (brokenAdvisor) Chat(context.Context, string, string) (orchestrator.Reply, error) {
	return nil, errLeaky
}

func (brokenAdvisor) Analyze(context.Context, string, string, orchestrator.AnalysisType) (orchestrator.Reply, error) {
	return nil, errLeaky
}

func (brokenAdvisor) Compare(context.Context, []string, string) (orchestrator.ComparisonReply, error) {
	return orchestrator.ComparisonReply{}, errLeaky
}

func (brokenAdvisor) History(string) ([]store.Entry, error) {
	return nil, errLeaky
}

// ─── HELPERS ─────────────────────────────────────────────────────────────────

const validToken = "demo_test"

type testDeps struct {
	store   *store.Store
	metrics *metrics.Metrics
	handler http.Handler
}

func testConfig() api.Config {
	return api.Config{
		Env:               "development",
		Version:           "test",
		AllowedOrigins:    []string{"*"},
		RequestTimeout:    5 * time.Second,
		RateLimitRequests: 1000,
		RateLimitWindow:   time.Hour,
	}
}

func newTestServer(t *testing.T, cfgOverrides ...func(*api.Config)) *testDeps {
	t.Helper()

	cfg := testConfig()
	for _, fn := range cfgOverrides {
		fn(&cfg)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New()
	st := store.New(store.WithObserver(m))
	t.Cleanup(st.Close)

	orch := orchestrator.New(estimate.NewDeterministic(), st, logger)
	handler := api.NewServer(orch, auth.PrefixVerifier{Prefix: "demo_"}, m, cfg, logger)

	return &testDeps{store: st, metrics: m, handler: handler}
}

func newBrokenServer(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return api.NewServer(brokenAdvisor{}, auth.PrefixVerifier{Prefix: "demo_"}, metrics.New(), testConfig(), logger)
}

func authHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func doRequest(t *testing.T, handler http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		bodyReader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, bodyReader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rr.Body).Decode(dst), "raw: %s", rr.Body.String())
}

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	SessionID string          `json:"session_id"`
}

type errorBody struct {
	Success   bool     `json:"success"`
	Error     string   `json:"error"`
	ErrorCode string   `json:"error_code"`
	Details   []string `json:"details"`
}

func assertErrorCode(t *testing.T, rr *httptest.ResponseRecorder, status int, code string) errorBody {
	t.Helper()
	require.Equal(t, status, rr.Code, rr.Body.String())
	var body errorBody
	decodeJSON(t, rr, &body)
	assert.False(t, body.Success)
	assert.Equal(t, code, body.ErrorCode)
	return body
}

// ─── Unauthenticated routes ───────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	deps := newTestServer(t)
	rr := doRequest(t, deps.handler, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Status             string `json:"status"`
		AgentsStatus       string `json:"agents_status"`
		SupportedCountries int    `json:"supported_countries"`
	}
	decodeJSON(t, rr, &body)
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "operational", body.AgentsStatus)
	assert.GreaterOrEqual(t, body.SupportedCountries, 190)
}

func TestRoot_ServiceMetadata(t *testing.T) {
	deps := newTestServer(t)
	rr := doRequest(t, deps.handler, http.MethodGet, "/", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Version             string            `json:"version"`
		Endpoints           map[string]string `json:"endpoints"`
		SupportedIndustries int               `json:"supported_industries"`
	}
	decodeJSON(t, rr, &body)
	assert.Equal(t, "test", body.Version)
	assert.Equal(t, "/api/v1/chat", body.Endpoints["chat"])
	assert.Equal(t, 29, body.SupportedIndustries)
}

func TestMetrics_NoAuthAndCountsRequests(t *testing.T) {
	deps := newTestServer(t)
	doRequest(t, deps.handler, http.MethodGet, "/health", nil, nil)

	rr := doRequest(t, deps.handler, http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `route="/health"`)
}

func TestUnknownRoute_JSON404(t *testing.T) {
	deps := newTestServer(t)
	rr := doRequest(t, deps.handler, http.MethodGet, "/nope", nil, nil)
	assertErrorCode(t, rr, http.StatusNotFound, "NOT_FOUND")
}

// ─── Auth ─────────────────────────────────────────────────────────────────────

func TestAuth_MissingTokenReturns401(t *testing.T) {
	deps := newTestServer(t)
	rr := doRequest(t, deps.handler, http.MethodGet, "/api/v1/countries", nil, nil)

	assertErrorCode(t, rr, http.StatusUnauthorized, "UNAUTHORIZED")
	assert.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))
}

func TestAuth_InvalidTokenReturns401BeforeValidation(t *testing.T) {
	deps := newTestServer(t)
	// The body is invalid too; auth must fail first.
	rr := doRequest(t, deps.handler, http.MethodPost, "/api/v1/chat",
		map[string]string{"query": "x"}, authHeader("prod_123"))

	assertErrorCode(t, rr, http.StatusUnauthorized, "UNAUTHORIZED")
}

func TestAuth_WrongScheme(t *testing.T) {
	deps := newTestServer(t)
	rr := doRequest(t, deps.handler, http.MethodGet, "/api/v1/countries", nil,
		map[string]string{"Authorization": "Basic " + validToken})

	assertErrorCode(t, rr, http.StatusUnauthorized, "UNAUTHORIZED")
}

// ─── Rate limiting ────────────────────────────────────────────────────────────

func TestRateLimit_PerToken(t *testing.T) {
	deps := newTestServer(t, func(c *api.Config) {
		c.RateLimitRequests = 2
		c.RateLimitWindow = time.Hour
	})

	for range 2 {
		rr := doRequest(t, deps.handler, http.MethodGet, "/api/v1/industries", nil, authHeader(validToken))
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := doRequest(t, deps.handler, http.MethodGet, "/api/v1/industries", nil, authHeader(validToken))
	assertErrorCode(t, rr, http.StatusTooManyRequests, "RATE_LIMITED")
	assert.Equal(t, "1800", rr.Header().Get("Retry-After"))

	// A different token has its own bucket.
	rr = doRequest(t, deps.handler, http.MethodGet, "/api/v1/industries", nil, authHeader("demo_other"))
	assert.Equal(t, http.StatusOK, rr.Code)
}

// ─── POST /api/v1/chat ────────────────────────────────────────────────────────

func TestChat_GeneratesSessionID(t *testing.T) {
	deps := newTestServer(t)
	rr := doRequest(t, deps.handler, http.MethodPost, "/api/v1/chat",
		map[string]string{"query": "What are the risks of entering the German fintech market?"},
		authHeader(validToken))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var env envelope
	decodeJSON(t, rr, &env)
	assert.True(t, env.Success)
	assert.Equal(t, "Query processed successfully", env.Message)
	_, err := uuid.Parse(env.SessionID)
	assert.NoError(t, err)

	var data struct {
		ResponseType string  `json:"response_type"`
		Country      string  `json:"country"`
		RiskScore    float64 `json:"risk_score"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "risk_assessment", data.ResponseType)
	assert.Equal(t, "Germany", data.Country)
	assert.Equal(t, 3.0, data.RiskScore)

	// The generated session now holds the turn.
	assert.Equal(t, 1, deps.store.Len())
}

func TestChat_SessionHistoryRoundTrip(t *testing.T) {
	deps := newTestServer(t)
	for _, q := range []string{"risks of fintech in Japan", "Should we enter Kenya?"} {
		rr := doRequest(t, deps.handler, http.MethodPost, "/api/v1/chat",
			map[string]string{"query": q, "session_id": "abc-123"}, authHeader(validToken))
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	}

	rr := doRequest(t, deps.handler, http.MethodGet, "/api/v1/session/abc-123", nil, authHeader(validToken))
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		SessionID         string `json:"session_id"`
		ConversationCount int    `json:"conversation_count"`
		History           []struct {
			UserQuery string `json:"user_query"`
			Parsed    struct {
				Intent string `json:"intent"`
			} `json:"parsed"`
		} `json:"history"`
	}
	decodeJSON(t, rr, &body)
	assert.Equal(t, "abc-123", body.SessionID)
	assert.Equal(t, 2, body.ConversationCount)
	require.Len(t, body.History, 2)
	assert.Equal(t, "risks of fintech in Japan", body.History[0].UserQuery)
	assert.Equal(t, "recommendation", body.History[1].Parsed.Intent)
}

func TestChat_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{"query too short", map[string]string{"query": "hey"}},
		{"query too long", map[string]string{"query": strings.Repeat("a", 1001)}},
		{"missing query", map[string]string{"session_id": "s"}},
		{"unknown field", map[string]string{"query": "valid query", "mode": "fast"}},
		{"wrong type", map[string]any{"query": 42}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newTestServer(t)
			rr := doRequest(t, deps.handler, http.MethodPost, "/api/v1/chat", tt.body, authHeader(validToken))
			body := assertErrorCode(t, rr, http.StatusBadRequest, "VALIDATION_ERROR")
			assert.NotEmpty(t, body.Details)
			assert.Equal(t, 0, deps.store.Len())
		})
	}
}

func TestChat_InvalidJSONReturns400(t *testing.T) {
	deps := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewBufferString(`{bad json`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+validToken)
	rr := httptest.NewRecorder()
	deps.handler.ServeHTTP(rr, req)

	assertErrorCode(t, rr, http.StatusBadRequest, "INVALID_JSON")
}

func TestChat_InternalErrorDoesNotLeak(t *testing.T) {
	rr := doRequest(t, newBrokenServer(t), http.MethodPost, "/api/v1/chat",
		map[string]string{"query": "tell me about Japan"}, authHeader(validToken))

	body := assertErrorCode(t, rr, http.StatusInternalServerError, "INTERNAL_ERROR")
	assert.NotContains(t, body.Error, "10.1.2.3")
}

// ─── POST /api/v1/analyze ─────────────────────────────────────────────────────

func TestAnalyze_DefaultsToComprehensive(t *testing.T) {
	deps := newTestServer(t)
	rr := doRequest(t, deps.handler, http.MethodPost, "/api/v1/analyze",
		map[string]string{"country": "Germany", "industry": "fintech"}, authHeader(validToken))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var env envelope
	decodeJSON(t, rr, &env)
	assert.Equal(t, "Comprehensive analysis completed", env.Message)

	var data struct {
		ResponseType string `json:"response_type"`
		Analysis     struct {
			Recommendation struct {
				Decision string `json:"decision"`
			} `json:"recommendation"`
		} `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "comprehensive", data.ResponseType)
	assert.Equal(t, "PROCEED_WITH_CONFIDENCE", data.Analysis.Recommendation.Decision)
}

func TestAnalyze_RiskFlattensAnalysis(t *testing.T) {
	deps := newTestServer(t)
	rr := doRequest(t, deps.handler, http.MethodPost, "/api/v1/analyze",
		map[string]string{"country": "Germany", "industry": "fintech", "analysis_type": "risk"},
		authHeader(validToken))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var env envelope
	decodeJSON(t, rr, &env)
	assert.Equal(t, "Risk analysis completed", env.Message)

	var data map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "risk_assessment", data["response_type"])
	assert.Equal(t, 3.0, data["overall_risk_score"])
	assert.Equal(t, "Low", data["risk_level"])
	assert.Contains(t, data, "risk_scores")
}

func TestAnalyze_RejectsUnknownType(t *testing.T) {
	deps := newTestServer(t)
	rr := doRequest(t, deps.handler, http.MethodPost, "/api/v1/analyze",
		map[string]string{"country": "Germany", "industry": "fintech", "analysis_type": "sentiment"},
		authHeader(validToken))
	assertErrorCode(t, rr, http.StatusBadRequest, "VALIDATION_ERROR")
}

func TestAnalyze_RejectsShortCountry(t *testing.T) {
	deps := newTestServer(t)
	rr := doRequest(t, deps.handler, http.MethodPost, "/api/v1/analyze",
		map[string]string{"country": "G", "industry": "fintech"}, authHeader(validToken))
	assertErrorCode(t, rr, http.StatusBadRequest, "VALIDATION_ERROR")
}

// ─── POST /api/v1/compare ─────────────────────────────────────────────────────

func TestCompare_SortedWithRecommendation(t *testing.T) {
	deps := newTestServer(t)
	rr := doRequest(t, deps.handler, http.MethodPost, "/api/v1/compare",
		map[string]any{"countries": []string{"Mongolia", "Japan", "Germany"}, "industry": "fintech"},
		authHeader(validToken))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var env envelope
	decodeJSON(t, rr, &env)
	assert.Equal(t, "Comparison completed for 3 countries", env.Message)

	var data struct {
		ResponseType       string `json:"response_type"`
		CountriesAnalyzed  int    `json:"countries_analyzed"`
		RecommendedCountry string `json:"recommended_country"`
		Comparisons        []struct {
			Country   string  `json:"country"`
			RiskScore float64 `json:"risk_score"`
		} `json:"comparisons"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "comparison", data.ResponseType)
	assert.Equal(t, 3, data.CountriesAnalyzed)
	require.Len(t, data.Comparisons, 3)
	assert.Equal(t, data.Comparisons[0].Country, data.RecommendedCountry)
	assert.Equal(t, "Germany", data.RecommendedCountry)
	for i := 1; i < len(data.Comparisons); i++ {
		assert.LessOrEqual(t, data.Comparisons[i-1].RiskScore, data.Comparisons[i].RiskScore)
	}
}

func TestCompare_CountryBounds(t *testing.T) {
	deps := newTestServer(t)
	for _, countries := range [][]string{
		{"Germany"},
		{"Germany", "Japan", "Kenya", "Latvia", "Estonia", "Rwanda"},
	} {
		rr := doRequest(t, deps.handler, http.MethodPost, "/api/v1/compare",
			map[string]any{"countries": countries, "industry": "fintech"}, authHeader(validToken))
		assertErrorCode(t, rr, http.StatusBadRequest, "VALIDATION_ERROR")
	}
}

// ─── Reference lists ──────────────────────────────────────────────────────────

func TestListCountries(t *testing.T) {
	deps := newTestServer(t)
	rr := doRequest(t, deps.handler, http.MethodGet, "/api/v1/countries", nil, authHeader(validToken))
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		TotalCountries int                 `json:"total_countries"`
		Countries      []string            `json:"countries"`
		Regions        map[string][]string `json:"regions"`
	}
	decodeJSON(t, rr, &body)
	assert.Equal(t, len(body.Countries), body.TotalCountries)
	assert.True(t, slices.IsSorted(body.Countries))
	assert.Contains(t, body.Regions["europe"], "Germany")
	assert.Contains(t, body.Regions["africa"], "Rwanda")
	assert.Len(t, body.Regions, 5)
}

func TestListIndustries(t *testing.T) {
	deps := newTestServer(t)
	rr := doRequest(t, deps.handler, http.MethodGet, "/api/v1/industries", nil, authHeader(validToken))
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		TotalIndustries int      `json:"total_industries"`
		Industries      []string `json:"industries"`
	}
	decodeJSON(t, rr, &body)
	assert.Equal(t, 29, body.TotalIndustries)
	assert.True(t, slices.IsSorted(body.Industries))
}

// ─── GET /api/v1/session/:sessionID ───────────────────────────────────────────

func TestGetSession_UnknownReturns404(t *testing.T) {
	deps := newTestServer(t)
	rr := doRequest(t, deps.handler, http.MethodGet, "/api/v1/session/missing", nil, authHeader(validToken))
	assertErrorCode(t, rr, http.StatusNotFound, "SESSION_NOT_FOUND")
}

func TestGetSession_StoreFailureIs500(t *testing.T) {
	rr := doRequest(t, newBrokenServer(t), http.MethodGet, "/api/v1/session/x", nil, authHeader(validToken))
	assertErrorCode(t, rr, http.StatusInternalServerError, "INTERNAL_ERROR")
}

// ─── CORS ─────────────────────────────────────────────────────────────────────

func TestCORS_PreflightAllowedOrigin(t *testing.T) {
	deps := newTestServer(t, func(c *api.Config) {
		c.AllowedOrigins = []string{"https://app.example"}
	})

	rr := doRequest(t, deps.handler, http.MethodOptions, "/api/v1/chat", nil,
		map[string]string{"Origin": "https://app.example"})
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "https://app.example", rr.Header().Get("Access-Control-Allow-Origin"))

	rr = doRequest(t, deps.handler, http.MethodGet, "/health", nil,
		map[string]string{"Origin": "https://evil.example"})
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}
