package ports

import (
	"context"
	"time"

	"packing/internal/core/domain/model/kernel"
	"packing/internal/core/domain/model/session"
)

// SessionStore holds the live packing sessions of this process. Sessions exist
// only for the duration of a packing run and are never persisted; losing the
// process loses the sessions, and the billing backend remains the source of
// truth for everything already submitted.
type SessionStore interface {
	// Add registers a new session.
	// Fails when a session with the same id is already registered.
	Add(ctx context.Context, s *session.PackingSession) error

	// Get retrieves a session by id.
	// Returns errs.ErrObjectNotFound when no such session exists.
	Get(ctx context.Context, id kernel.UUID) (*session.PackingSession, error)

	// GetAll returns all live sessions in no particular order.
	GetAll(ctx context.Context) ([]*session.PackingSession, error)

	// Remove discards a session. Removing an unknown id is a no-op.
	Remove(ctx context.Context, id kernel.UUID) error

	// RemoveIdleSince discards every session whose last activity is older than
	// the cutoff and returns the ids that were removed.
	RemoveIdleSince(ctx context.Context, cutoff time.Time) ([]kernel.UUID, error)
}
