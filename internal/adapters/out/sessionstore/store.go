// Package sessionstore keeps live packing sessions in process memory. Sessions
// are deliberately not persisted: the billing backend is the source of truth
// for submitted work, and an interrupted run is restarted from the backend's
// order state.
package sessionstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"packing/internal/core/domain/model/kernel"
	"packing/internal/core/domain/model/session"
	"packing/internal/pkg/errs"
)

// InMemorySessionStore is a mutex-guarded map of live sessions keyed by
// session id. Safe for concurrent use by HTTP handlers, the sync stream
// applier, and the cleanup job.
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session.PackingSession
}

// NewInMemorySessionStore creates an empty session store.
func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{
		sessions: make(map[string]*session.PackingSession),
	}
}

// Add registers a new session. Fails when the id is already registered.
func (s *InMemorySessionStore) Add(_ context.Context, packingSession *session.PackingSession) error {
	if err := packingSession.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := packingSession.ID().String()
	if _, ok := s.sessions[key]; ok {
		return errs.NewValueIsInvalidErrorWithCause("sessionID",
			fmt.Errorf("session %s is already registered", key))
	}

	s.sessions[key] = packingSession
	return nil
}

// Get retrieves a session by id.
func (s *InMemorySessionStore) Get(_ context.Context, id kernel.UUID) (*session.PackingSession, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	packingSession, ok := s.sessions[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("sessionID", id.String())
	}

	return packingSession, nil
}

// GetAll returns all live sessions in no particular order.
func (s *InMemorySessionStore) GetAll(_ context.Context) ([]*session.PackingSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*session.PackingSession, 0, len(s.sessions))
	for _, packingSession := range s.sessions {
		all = append(all, packingSession)
	}

	return all, nil
}

// Remove discards a session. Removing an unknown id is a no-op.
func (s *InMemorySessionStore) Remove(_ context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id.String())
	return nil
}

// RemoveIdleSince discards every session whose last activity is older than the
// cutoff and returns the removed ids.
func (s *InMemorySessionStore) RemoveIdleSince(_ context.Context, cutoff time.Time) ([]kernel.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := make([]kernel.UUID, 0)
	for key, packingSession := range s.sessions {
		if packingSession.LastActivity().Before(cutoff) {
			removed = append(removed, packingSession.ID())
			delete(s.sessions, key)
		}
	}

	return removed, nil
}
