package commands

import (
	"context"

	"packing/internal/core/ports"
)

// MarkContainerLabeledCommandHandler records label acknowledgment on completed
// containers.
type MarkContainerLabeledCommandHandler struct {
	sessions ports.SessionStore
}

// NewMarkContainerLabeledCommandHandler creates a handler for label acknowledgment.
func NewMarkContainerLabeledCommandHandler(sessions ports.SessionStore) MarkContainerLabeledCommandHandler {
	return MarkContainerLabeledCommandHandler{sessions: sessions}
}

// Handle marks the target container as labeled.
func (h *MarkContainerLabeledCommandHandler) Handle(ctx context.Context, cmd MarkContainerLabeledCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	packingSession, err := h.sessions.Get(ctx, cmd.SessionID())
	if err != nil {
		return err
	}

	if err = packingSession.MarkContainerLabeled(cmd.ContainerID()); err != nil {
		return err
	}

	packingSession.Touch()
	return nil
}
