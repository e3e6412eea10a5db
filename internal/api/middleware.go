package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/xeipuuv/gojsonschema"
)

// ─── CONTEXT KEYS ─────────────────────────────────────────────────────────────

type contextKey string

const ctxKeyToken contextKey = "bearer_token"

// ─── ERROR CODES ──────────────────────────────────────────────────────────────

const (
	codeValidation       = "VALIDATION_ERROR"
	codeInvalidJSON      = "INVALID_JSON"
	codeUnauthorized     = "UNAUTHORIZED"
	codeRateLimited      = "RATE_LIMITED"
	codeSessionNotFound  = "SESSION_NOT_FOUND"
	codeNotFound         = "NOT_FOUND"
	codeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	codeInternal         = "INTERNAL_ERROR"
)

// ─── BEARER AUTH ──────────────────────────────────────────────────────────────

// requireBearer is chi middleware that validates the Authorization header
// before any handler runs. On success the token is stored in the request
// context for the rate limiter.
func (s *Server) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			s.rejectAuth(w, "missing bearer token")
			return
		}
		if err := s.verifier.Verify(token); err != nil {
			s.rejectAuth(w, "invalid authentication token")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyToken, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) rejectAuth(w http.ResponseWriter, message string) {
	s.metrics.AuthRejected()
	w.Header().Set("WWW-Authenticate", "Bearer")
	respondErr(w, http.StatusUnauthorized, codeUnauthorized, message)
}

// bearerToken extracts the credential from "Authorization: Bearer <token>".
// The scheme is case-insensitive.
func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// ─── RATE LIMIT ───────────────────────────────────────────────────────────────

// rateLimit must run after requireBearer; it keys on the verified token.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _ := r.Context().Value(ctxKeyToken).(string)
		if !s.limiter.Allow(token) {
			s.metrics.RateLimited()
			w.Header().Set("Retry-After", strconv.Itoa(s.limiter.retryAfterSeconds()))
			respondErr(w, http.StatusTooManyRequests, codeRateLimited, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ─── CORS ─────────────────────────────────────────────────────────────────────

// corsMiddleware handles preflight OPTIONS requests and sets CORS headers for
// origins listed in ALLOWED_ORIGINS.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	anyOrigin := slices.Contains(s.cfg.AllowedOrigins, "*")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}

		switch {
		case anyOrigin:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case slices.Contains(s.cfg.AllowedOrigins, origin):
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		default:
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ─── LOGGER MIDDLEWARE ────────────────────────────────────────────────────────

// loggerMiddleware logs each request with method, path, status, and duration,
// and records it in the HTTP metrics under its route pattern.
func (s *Server) loggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			took := time.Since(start)
			s.logger.Info("http",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", took.Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
			s.metrics.ObserveHTTP(routePattern(r), r.Method, ww.Status(), took)
		}()

		next.ServeHTTP(ww, r)
	})
}

// routePattern returns the matched chi pattern, e.g. /api/v1/session/{sessionID}.
func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// ─── RESPONSE HELPERS ─────────────────────────────────────────────────────────

// envelope wraps every successful API payload.
type envelope struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      any       `json:"data,omitempty"`
	SessionID string    `json:"session_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Success   bool      `json:"success"`
	Error     string    `json:"error"`
	ErrorCode string    `json:"error_code"`
	Details   []string  `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// respond writes a JSON body with the given status code.
func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// respondOK writes a success envelope.
func respondOK(w http.ResponseWriter, message string, data any, sessionID string) {
	respond(w, http.StatusOK, envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		SessionID: sessionID,
		Timestamp: time.Now().UTC(),
	})
}

// respondErr writes a standard JSON error envelope.
func respondErr(w http.ResponseWriter, status int, code, message string, details ...string) {
	respond(w, status, errorResponse{
		Error:     message,
		ErrorCode: code,
		Details:   details,
		Timestamp: time.Now().UTC(),
	})
}

// respondInternalErr logs an unexpected error and returns a 500 to the client
// without leaking internal details.
func (s *Server) respondInternalErr(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("internal error",
		"error", err,
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
	)
	respondErr(w, http.StatusInternalServerError, codeInternal, "internal server error")
}

// ─── REQUEST PARSING HELPERS ─────────────────────────────────────────────────

const maxBodyBytes = 1 << 20 // 1 MB

// decode reads r.Body, validates it against schema and unmarshals it into
// dst. Returns false and writes 400 if the body is missing, malformed, too
// large or fails validation. Callers should return immediately on false.
func decode(w http.ResponseWriter, r *http.Request, schema *gojsonschema.Schema, dst any) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondErr(w, http.StatusRequestEntityTooLarge, codeValidation, "request body too large")
			return false
		}
		respondErr(w, http.StatusBadRequest, codeInvalidJSON, "could not read request body")
		return false
	}
	if !json.Valid(body) {
		respondErr(w, http.StatusBadRequest, codeInvalidJSON, "request body is not valid JSON")
		return false
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		respondErr(w, http.StatusBadRequest, codeInvalidJSON, "request body is not valid JSON")
		return false
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		respondErr(w, http.StatusBadRequest, codeValidation, "request validation failed", details...)
		return false
	}

	if err := json.Unmarshal(body, dst); err != nil {
		respondErr(w, http.StatusBadRequest, codeInvalidJSON, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// logField returns a slog.Attr using the request ID for correlation.
func logField(r *http.Request) slog.Attr {
	return slog.String("request_id", middleware.GetReqID(r.Context()))
}
