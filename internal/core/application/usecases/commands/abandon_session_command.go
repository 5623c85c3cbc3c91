package commands

import (
	"errors"

	"packing/internal/core/domain/model/kernel"
	"packing/internal/pkg/guard"
)

var ErrAbandonSessionCommandIsNotConstructed = errors.New(
	"AbandonSessionCommand must be created via NewAbandonSessionCommand constructor",
)

// AbandonSessionCommand represents a request to discard a packing session
// without submitting anything. Nothing was sent to the backend yet, so there
// is nothing to undo remotely.
type AbandonSessionCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAbandonSessionCommand creates a command to abandon a session.
func NewAbandonSessionCommand(sessionID kernel.UUID) (AbandonSessionCommand, error) {
	command := AbandonSessionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setSessionID(sessionID); err != nil {
		return AbandonSessionCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AbandonSessionCommand) Validate() error {
	return c.guard.Validate(ErrAbandonSessionCommandIsNotConstructed)
}

// SessionID returns the target session identifier.
func (c AbandonSessionCommand) SessionID() kernel.UUID {
	return c.sessionID
}

func (c *AbandonSessionCommand) setSessionID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.sessionID = id
	return nil
}
