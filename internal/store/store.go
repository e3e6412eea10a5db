// Package store owns the only shared mutable state in the service: the
// per-session conversation history. It lives in memory for the lifetime of
// the process and is handed to the orchestrator explicitly; nothing reaches
// it through a global.
//
// Locking is two-level. The RWMutex on Store guards the session map; each
// record carries its own mutex so appends to different sessions never wait
// on each other.
//
// Dependency rule: store imports intent only. It never imports api,
// orchestrator, estimate or ai.
package store

import (
	"sync"
	"time"
)

// Observer receives store events. *metrics.Metrics satisfies it.
type Observer interface {
	SessionStarted()
	EntryAppended()
}

type nopObserver struct{}

func (nopObserver) SessionStarted() {}
func (nopObserver) EntryAppended()  {}

// Store is the in-memory session store. The zero value is not usable; call
// New.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*record
	closed   bool

	now func() time.Time
	obs Observer
}

// record is one session's history. Entries are only ever appended.
type record struct {
	mu      sync.Mutex
	entries []Entry
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now for entry timestamps. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithObserver reports session and entry counts to obs.
func WithObserver(obs Observer) Option {
	return func(s *Store) {
		if obs != nil {
			s.obs = obs
		}
	}
}

// New returns an open, empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		sessions: make(map[string]*record),
		now:      time.Now,
		obs:      nopObserver{},
	}
	for _, fn := range opts {
		fn(s)
	}
	return s
}

// Len reports how many sessions exist.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close ends the store's lifecycle and drops every session. Later calls to
// Append or Get return ErrStoreClosed. Close is idempotent.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.sessions = nil
}
