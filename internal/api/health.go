package api

import (
	"net/http"
	"time"

	"github.com/nyashahama/market-entry-advisor/internal/reference"
)

// ─── GET / ────────────────────────────────────────────────────────────────────

type rootResponse struct {
	Service             string            `json:"service"`
	Version             string            `json:"version"`
	Description         string            `json:"description"`
	Endpoints           map[string]string `json:"endpoints"`
	SupportedCountries  int               `json:"supported_countries"`
	SupportedIndustries int               `json:"supported_industries"`
	Status              string            `json:"status"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, rootResponse{
		Service:     "Market Entry Advisor API",
		Version:     s.cfg.Version,
		Description: "Market sizing, risk scoring and entry recommendations by country and industry",
		Endpoints: map[string]string{
			"chat":       "/api/v1/chat",
			"analyze":    "/api/v1/analyze",
			"compare":    "/api/v1/compare",
			"countries":  "/api/v1/countries",
			"industries": "/api/v1/industries",
			"session":    "/api/v1/session/{id}",
			"health":     "/health",
			"metrics":    "/metrics",
		},
		SupportedCountries:  len(reference.CountryNames()),
		SupportedIndustries: len(reference.Industries()),
		Status:              "operational",
	})
}

// ─── GET /health ──────────────────────────────────────────────────────────────

type healthResponse struct {
	Status             string    `json:"status"`
	Timestamp          time.Time `json:"timestamp"`
	AgentsStatus       string    `json:"agents_status"`
	SupportedCountries int       `json:"supported_countries"`
}

// handleHealth is a liveness probe. The deterministic estimators are always
// available, so there is nothing downstream to check.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, healthResponse{
		Status:             "healthy",
		Timestamp:          time.Now().UTC(),
		AgentsStatus:       "operational",
		SupportedCountries: len(reference.CountryNames()),
	})
}
