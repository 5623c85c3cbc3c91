package commands

import (
	"context"

	"packing/internal/core/ports"
)

// AssignItemCommandHandler allocates explicit quantities into containers.
// The session rejects anything that would break quantity conservation.
type AssignItemCommandHandler struct {
	sessions ports.SessionStore
}

// NewAssignItemCommandHandler creates a handler for explicit item assignment.
func NewAssignItemCommandHandler(sessions ports.SessionStore) AssignItemCommandHandler {
	return AssignItemCommandHandler{sessions: sessions}
}

// Handle assigns the requested quantity to the target container.
func (h *AssignItemCommandHandler) Handle(ctx context.Context, cmd AssignItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	packingSession, err := h.sessions.Get(ctx, cmd.SessionID())
	if err != nil {
		return err
	}

	if err = packingSession.AssignItem(cmd.ContainerID(), cmd.ItemKey(), cmd.Qty()); err != nil {
		return err
	}

	packingSession.Touch()
	return nil
}
