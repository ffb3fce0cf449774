package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Apurer/purchase-order-exercise/internal/domains/exercise/domain"
	"github.com/Apurer/purchase-order-exercise/internal/domains/exercise/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// DefaultSessionTTL is used when no TTL is configured.
const DefaultSessionTTL = 24 * time.Hour

type sessionEntry struct {
	exercise  *domain.Exercise
	expiresAt time.Time
}

// SessionStore is an in-memory SessionStore implementation. Every save
// extends the session by the TTL.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]sessionEntry
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{sessions: map[string]sessionEntry{}, ttl: ttl, now: time.Now}
}

// WithClock swaps the time source, for tests.
func (s *SessionStore) WithClock(now func() time.Time) *SessionStore {
	s.now = now
	return s
}

func (s *SessionStore) Save(_ context.Context, exercise *domain.Exercise) error {
	if exercise == nil || exercise.ID == "" {
		return errors.New("exercise with an id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[exercise.ID] = sessionEntry{exercise: exercise.Clone(), expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *SessionStore) Get(_ context.Context, id string) (*domain.Exercise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.sessions[id]
	if !ok || !s.now().Before(entry.expiresAt) {
		return nil, ports.ErrNotFound
	}
	return entry.exercise.Clone(), nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *SessionStore) PurgeExpired(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	var purged int64
	for id, entry := range s.sessions {
		if !now.Before(entry.expiresAt) {
			delete(s.sessions, id)
			purged++
		}
	}
	return purged, nil
}

// Len reports the number of stored sessions, expired ones included.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
