package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"property-dashboard/pkg/logger"
	"property-dashboard/pkg/metrics"
)

var ErrSessionNotFound = errors.New("session not found")

type session struct {
	view     *View
	lastSeen time.Time
}

// Store keeps dashboard sessions in memory and evicts idle ones.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create registers a fresh idle view under a new session id.
func (s *Store) Create() (string, *View) {
	id := uuid.NewString()
	view := NewView()

	s.mu.Lock()
	s.sessions[id] = &session{view: view, lastSeen: s.now()}
	n := len(s.sessions)
	s.mu.Unlock()

	metrics.ActiveSessions.Set(float64(n))
	return id, view
}

// Get returns the session's view and marks it as recently used.
func (s *Store) Get(id string) (*View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.lastSeen = s.now()
	return sess.view, nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	n := len(s.sessions)
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	metrics.ActiveSessions.Set(float64(n))
	return nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Cleanup evicts sessions idle for longer than the TTL and reports how many
// were removed.
func (s *Store) Cleanup() int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	removed := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	n := len(s.sessions)
	s.mu.Unlock()

	metrics.ActiveSessions.Set(float64(n))
	return removed
}

// RunCleanup calls Cleanup every interval until ctx is done.
func (s *Store) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Cleanup(); removed > 0 {
				logger.GlobalLogger.Debugf("Evicted %d idle dashboard sessions", removed)
			}
		}
	}
}
