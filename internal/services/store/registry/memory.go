package registry

import (
	"context"
	"sync"
	"time"

	"selfservice/internal/services/models"
	id "selfservice/pkg/domain"
	"selfservice/pkg/platform/sentinel"
)

// InMemory keeps one registry per session in process memory. Registries are
// cloned on the way in and out so callers never share stored state.
//
// Each registry lives for ttl after its last Load or Update, matching the
// session cookie lifetime. A zero ttl keeps registries until the process
// exits.
type InMemory struct {
	mu         sync.Mutex
	ttl        time.Duration
	registries map[id.SessionID]*entry
}

type entry struct {
	registry  *models.Registry
	expiresAt time.Time
}

func NewInMemory(ttl time.Duration) *InMemory {
	return &InMemory{ttl: ttl, registries: make(map[id.SessionID]*entry)}
}

// Load returns a copy of the session's registry, or sentinel.ErrNotFound if
// the session has never stored one or its registry has expired.
func (s *InMemory) Load(_ context.Context, sessionID id.SessionID) (*models.Registry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	e, ok := s.live(sessionID, now)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	s.touch(e, now)
	return e.registry.Clone(), nil
}

// Update applies fn to the session's registry under the store lock. A fresh
// registry is passed when none exists. If fn fails nothing is written.
func (s *InMemory) Update(_ context.Context, sessionID id.SessionID, fn func(*models.Registry) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()

	working := models.NewRegistry()
	if existing, ok := s.live(sessionID, now); ok {
		working = existing.registry.Clone()
	}
	if err := fn(working); err != nil {
		return err
	}
	e := &entry{registry: working}
	s.touch(e, now)
	s.registries[sessionID] = e
	return nil
}

// DeleteExpired removes every registry whose session expired before now and
// returns how many were removed.
func (s *InMemory) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := 0
	for key, e := range s.registries {
		if e.expired(now) {
			delete(s.registries, key)
			deleted++
		}
	}
	return deleted, nil
}

// live returns the entry for sessionID, dropping it when already expired.
// Callers hold s.mu.
func (s *InMemory) live(sessionID id.SessionID, now time.Time) (*entry, bool) {
	e, ok := s.registries[sessionID]
	if !ok {
		return nil, false
	}
	if e.expired(now) {
		delete(s.registries, sessionID)
		return nil, false
	}
	return e, true
}

func (s *InMemory) touch(e *entry, now time.Time) {
	if s.ttl > 0 {
		e.expiresAt = now.Add(s.ttl)
	}
}

func (e *entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && e.expiresAt.Before(now)
}
