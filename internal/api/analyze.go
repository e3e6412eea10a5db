package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/nyashahama/market-entry-advisor/internal/orchestrator"
)

// ─── POST /api/v1/analyze ─────────────────────────────────────────────────────

type analyzeRequest struct {
	Country      string `json:"country"`
	Industry     string `json:"industry"`
	AnalysisType string `json:"analysis_type"`
}

// handleAnalyze runs a structured analysis for one country. analysis_type
// defaults to comprehensive.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !decode(w, r, analyzeSchema, &req) {
		return
	}

	typ, err := orchestrator.ParseAnalysisType(req.AnalysisType)
	if err != nil {
		// The schema enum should have caught this.
		respondErr(w, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	s.logger.Info("analyze: processing",
		"country", req.Country,
		"industry", req.Industry,
		"analysis_type", typ,
		logField(r),
	)

	reply, err := s.advisor.Analyze(r.Context(), req.Country, req.Industry, typ)
	if err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("analyze: %w", err))
		return
	}

	respondOK(w, capitalize(string(typ))+" analysis completed", reply, "")
}

// ─── POST /api/v1/compare ─────────────────────────────────────────────────────

type compareRequest struct {
	Countries []string `json:"countries"`
	Industry  string   `json:"industry"`
}

// handleCompare ranks 2 to 5 countries for one industry, lowest risk first.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if !decode(w, r, compareSchema, &req) {
		return
	}

	s.logger.Info("compare: processing",
		"countries", req.Countries,
		"industry", req.Industry,
		logField(r),
	)

	reply, err := s.advisor.Compare(r.Context(), req.Countries, req.Industry)
	if err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("compare: %w", err))
		return
	}

	respondOK(w, fmt.Sprintf("Comparison completed for %d countries", len(req.Countries)), reply, "")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
