package commands

import (
	"context"

	"packing/internal/core/ports"
)

// UnassignItemCommandHandler removes item lines from open containers, crediting
// the quantity back to the pool.
type UnassignItemCommandHandler struct {
	sessions ports.SessionStore
}

// NewUnassignItemCommandHandler creates a handler for item unassignment.
func NewUnassignItemCommandHandler(sessions ports.SessionStore) UnassignItemCommandHandler {
	return UnassignItemCommandHandler{sessions: sessions}
}

// Handle removes the item's line from the target container.
func (h *UnassignItemCommandHandler) Handle(ctx context.Context, cmd UnassignItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	packingSession, err := h.sessions.Get(ctx, cmd.SessionID())
	if err != nil {
		return err
	}

	if err = packingSession.UnassignItem(cmd.ContainerID(), cmd.ItemKey()); err != nil {
		return err
	}

	packingSession.Touch()
	return nil
}
