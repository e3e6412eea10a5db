package api

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ─── POST /api/v1/chat ────────────────────────────────────────────────────────

type chatRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id"`
	// UserID is accepted for client bookkeeping and only logged.
	UserID string `json:"user_id"`
}

// handleChat answers a free-text question. When the caller sends no
// session_id a fresh one is generated and returned, so the next turn can be
// tied to this one.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !decode(w, r, chatSchema, &req) {
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	s.logger.Info("chat: processing query",
		"query", truncate(req.Query, 100),
		"session_id", sessionID,
		"user_id", req.UserID,
		logField(r),
	)

	reply, err := s.advisor.Chat(r.Context(), req.Query, sessionID)
	if err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("chat: %w", err))
		return
	}

	respondOK(w, "Query processed successfully", reply, sessionID)
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
