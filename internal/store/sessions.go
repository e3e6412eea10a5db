package store

import (
	"errors"
	"time"

	"github.com/nyashahama/market-entry-advisor/internal/intent"
)

// ─── TYPES ───────────────────────────────────────────────────────────────────

// Entry is one recorded chat turn.
type Entry struct {
	Timestamp time.Time          `json:"timestamp"`
	UserQuery string             `json:"user_query"`
	Parsed    intent.ParsedQuery `json:"parsed"`
}

// ─── ERRORS ──────────────────────────────────────────────────────────────────

// ErrSessionNotFound is returned by Get for a session id that has never had
// an entry appended. Handlers map it to 404.
var ErrSessionNotFound = errors.New("store: session not found")

// ErrStoreClosed is returned by every operation after Close.
var ErrStoreClosed = errors.New("store: closed")

// ErrEmptySessionID is returned by Append when sessionID is blank.
var ErrEmptySessionID = errors.New("store: empty session id")

// ─── METHODS ─────────────────────────────────────────────────────────────────

// Append records a turn for sessionID, creating the session on first use.
// Concurrent appends to the same session are serialized; their relative
// order is the order in which they acquire the record lock.
func (s *Store) Append(sessionID, query string, parsed intent.ParsedQuery) (Entry, error) {
	if sessionID == "" {
		return Entry{}, ErrEmptySessionID
	}

	rec, err := s.recordFor(sessionID)
	if err != nil {
		return Entry{}, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	e := Entry{
		Timestamp: s.now().UTC(),
		UserQuery: query,
		Parsed:    parsed,
	}
	rec.entries = append(rec.entries, e)
	s.obs.EntryAppended()
	return e, nil
}

// Get returns a copy of the session's entries in insertion order.
func (s *Store) Get(sessionID string) ([]Entry, error) {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return nil, ErrStoreClosed
	}
	rec, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]Entry(nil), rec.entries...), nil
}

// recordFor returns the record for sessionID, creating it if needed. The
// fast path takes only the read lock.
func (s *Store) recordFor(sessionID string) (*record, error) {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return nil, ErrStoreClosed
	}
	rec, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		return rec, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrStoreClosed
	}
	// Another goroutine may have created it between the two locks.
	if rec, ok = s.sessions[sessionID]; ok {
		return rec, nil
	}
	rec = &record{}
	s.sessions[sessionID] = rec
	s.obs.SessionStarted()
	return rec, nil
}
