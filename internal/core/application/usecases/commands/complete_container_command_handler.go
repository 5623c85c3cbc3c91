package commands

import (
	"context"

	"packing/internal/core/ports"
)

// CompleteContainerCommandHandler freezes container contents. A completed
// container can no longer receive or give up items, only be labeled.
type CompleteContainerCommandHandler struct {
	sessions ports.SessionStore
}

// NewCompleteContainerCommandHandler creates a handler for container completion.
func NewCompleteContainerCommandHandler(sessions ports.SessionStore) CompleteContainerCommandHandler {
	return CompleteContainerCommandHandler{sessions: sessions}
}

// Handle completes the target container.
func (h *CompleteContainerCommandHandler) Handle(ctx context.Context, cmd CompleteContainerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	packingSession, err := h.sessions.Get(ctx, cmd.SessionID())
	if err != nil {
		return err
	}

	if err = packingSession.CompleteContainer(cmd.ContainerID()); err != nil {
		return err
	}

	packingSession.Touch()
	return nil
}
