package commands

import (
	"context"

	"packing/internal/core/ports"
)

// RemoveContainerCommandHandler discards open containers. Removed items return
// to the pool as unassigned quantity; completed containers cannot be removed.
type RemoveContainerCommandHandler struct {
	sessions ports.SessionStore
}

// NewRemoveContainerCommandHandler creates a handler for container removal.
func NewRemoveContainerCommandHandler(sessions ports.SessionStore) RemoveContainerCommandHandler {
	return RemoveContainerCommandHandler{sessions: sessions}
}

// Handle removes the target container from its session.
func (h *RemoveContainerCommandHandler) Handle(ctx context.Context, cmd RemoveContainerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	packingSession, err := h.sessions.Get(ctx, cmd.SessionID())
	if err != nil {
		return err
	}

	if err = packingSession.RemoveContainer(cmd.ContainerID(), cmd.Confirmed()); err != nil {
		return err
	}

	packingSession.Touch()
	return nil
}
