// Package api implements the HTTP layer for the market entry advisor.
// Handlers are methods on *Server. Each handler file is responsible for one
// resource group and only imports the dependencies it actually uses.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nyashahama/market-entry-advisor/internal/auth"
	"github.com/nyashahama/market-entry-advisor/internal/metrics"
	"github.com/nyashahama/market-entry-advisor/internal/orchestrator"
	"github.com/nyashahama/market-entry-advisor/internal/store"
)

// Config holds values read from environment variables at startup.
type Config struct {
	// Env is "production", "staging", or "development".
	Env string

	// Version is reported by GET /.
	Version string

	// AllowedOrigins lists CORS origins. A single "*" allows any origin.
	AllowedOrigins []string

	// RequestTimeout bounds every /api/v1 request.
	RequestTimeout time.Duration

	// RateLimitRequests is how many requests one token may make per
	// RateLimitWindow.
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// Advisor is the core the handlers drive. *orchestrator.Orchestrator
// satisfies it.
type Advisor interface {
	Chat(ctx context.Context, query, sessionID string) (orchestrator.Reply, error)
	Analyze(ctx context.Context, country, industry string, typ orchestrator.AnalysisType) (orchestrator.Reply, error)
	Compare(ctx context.Context, countries []string, industry string) (orchestrator.ComparisonReply, error)
	History(sessionID string) ([]store.Entry, error)
}

// Server holds all shared dependencies. Each handler file attaches methods to
// this type and uses only the fields it needs.
type Server struct {
	advisor Advisor

	// verifier decides whether a bearer token may use /api/v1.
	verifier auth.Verifier

	// limiter throttles each token independently.
	limiter *rateLimiter

	metrics *metrics.Metrics

	cfg    Config
	logger *slog.Logger
}

// NewServer constructs the Server and wires the chi router. The returned
// http.Handler is ready to pass to an http.Server.
func NewServer(
	adv Advisor,
	verifier auth.Verifier,
	m *metrics.Metrics,
	cfg Config,
	logger *slog.Logger,
) http.Handler {
	s := &Server{
		advisor:  adv,
		verifier: verifier,
		limiter:  newRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
		metrics:  m,
		cfg:      cfg,
		logger:   logger,
	}

	return s.routes()
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	// ── Global middleware ─────────────────────────────────────────────────────
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggerMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(s.corsMiddleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondErr(w, http.StatusNotFound, codeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondErr(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	})

	// ── Unauthenticated ───────────────────────────────────────────────────────
	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	// ── API v1 ────────────────────────────────────────────────────────────────
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(s.cfg.RequestTimeout))
		r.Use(s.requireBearer)
		r.Use(s.rateLimit)

		r.Post("/chat", s.handleChat)
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/compare", s.handleCompare)

		r.Get("/countries", s.handleListCountries)
		r.Get("/industries", s.handleListIndustries)

		r.Get("/session/{sessionID}", s.handleGetSession)
	})

	return r
}
