package api

import (
	"net/http"
	"slices"

	"github.com/nyashahama/market-entry-advisor/internal/reference"
)

// ─── GET /api/v1/countries ────────────────────────────────────────────────────

type countriesResponse struct {
	TotalCountries int                           `json:"total_countries"`
	Countries      []string                      `json:"countries"`
	Regions        map[reference.Region][]string `json:"regions"`
}

func (s *Server) handleListCountries(w http.ResponseWriter, r *http.Request) {
	names := reference.CountryNames()
	slices.Sort(names)

	respond(w, http.StatusOK, countriesResponse{
		TotalCountries: len(names),
		Countries:      names,
		Regions:        reference.CountriesByRegion(),
	})
}

// ─── GET /api/v1/industries ───────────────────────────────────────────────────

type industriesResponse struct {
	TotalIndustries int      `json:"total_industries"`
	Industries      []string `json:"industries"`
}

func (s *Server) handleListIndustries(w http.ResponseWriter, r *http.Request) {
	names := reference.Industries()
	slices.Sort(names)

	respond(w, http.StatusOK, industriesResponse{
		TotalIndustries: len(names),
		Industries:      names,
	})
}
