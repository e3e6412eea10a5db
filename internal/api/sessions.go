package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nyashahama/market-entry-advisor/internal/store"
)

// ─── GET /api/v1/session/:sessionID ───────────────────────────────────────────

type sessionResponse struct {
	SessionID         string        `json:"session_id"`
	ConversationCount int           `json:"conversation_count"`
	History           []store.Entry `json:"history"`
}

// handleGetSession returns every recorded turn of a chat session, oldest
// first. Session ids are not tied to tokens: anyone holding the id can read
// the history.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	entries, err := s.advisor.History(sessionID)
	if errors.Is(err, store.ErrSessionNotFound) {
		respondErr(w, http.StatusNotFound, codeSessionNotFound, "session not found")
		return
	}
	if err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("get session: %w", err))
		return
	}

	respond(w, http.StatusOK, sessionResponse{
		SessionID:         sessionID,
		ConversationCount: len(entries),
		History:           entries,
	})
}
