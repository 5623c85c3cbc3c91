package commands

import (
	"context"

	"packing/internal/core/ports"
)

// FillRemainderCommandHandler performs the bulk "fill remainder" allocation.
type FillRemainderCommandHandler struct {
	sessions ports.SessionStore
}

// NewFillRemainderCommandHandler creates a handler for remainder fills.
func NewFillRemainderCommandHandler(sessions ports.SessionStore) FillRemainderCommandHandler {
	return FillRemainderCommandHandler{sessions: sessions}
}

// Handle fills the remaining quantity of each listed item into the container.
func (h *FillRemainderCommandHandler) Handle(ctx context.Context, cmd FillRemainderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	packingSession, err := h.sessions.Get(ctx, cmd.SessionID())
	if err != nil {
		return err
	}

	if err = packingSession.FillRemainder(cmd.ContainerID(), cmd.ItemKeys()); err != nil {
		return err
	}

	packingSession.Touch()
	return nil
}
