package commands

import (
	"context"

	"packing/internal/core/ports"
)

// AbandonSessionCommandHandler discards live sessions on operator request.
type AbandonSessionCommandHandler struct {
	sessions ports.SessionStore
}

// NewAbandonSessionCommandHandler creates a handler for session abandonment.
func NewAbandonSessionCommandHandler(sessions ports.SessionStore) AbandonSessionCommandHandler {
	return AbandonSessionCommandHandler{sessions: sessions}
}

// Handle removes the session. Abandoning an unknown session is an error so the
// caller learns about stale session ids.
func (h *AbandonSessionCommandHandler) Handle(ctx context.Context, cmd AbandonSessionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if _, err := h.sessions.Get(ctx, cmd.SessionID()); err != nil {
		return err
	}

	return h.sessions.Remove(ctx, cmd.SessionID())
}
