package commands

import (
	"context"

	"packing/internal/core/ports"
)

// CreateContainerCommandHandler opens the next container in a session.
// The previous container must be completed first; the session enforces this.
type CreateContainerCommandHandler struct {
	sessions ports.SessionStore
}

// NewCreateContainerCommandHandler creates a handler for container creation.
func NewCreateContainerCommandHandler(sessions ports.SessionStore) CreateContainerCommandHandler {
	return CreateContainerCommandHandler{sessions: sessions}
}

// Handle opens a new container in the target session.
func (h *CreateContainerCommandHandler) Handle(ctx context.Context, cmd CreateContainerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	packingSession, err := h.sessions.Get(ctx, cmd.SessionID())
	if err != nil {
		return err
	}

	if _, err = packingSession.CreateContainer(); err != nil {
		return err
	}

	packingSession.Touch()
	return nil
}
