package commands

import (
	"errors"

	"packing/internal/core/domain/model/kernel"
	"packing/internal/pkg/guard"
)

var ErrCompleteSessionCommandIsNotConstructed = errors.New(
	"CompleteSessionCommand must be created via NewCompleteSessionCommand constructor",
)

// CompleteSessionCommand represents a request to submit a finished packing
// session to the billing backend and discard it locally.
type CompleteSessionCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteSessionCommand creates a command to complete a session.
func NewCompleteSessionCommand(sessionID kernel.UUID) (CompleteSessionCommand, error) {
	command := CompleteSessionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setSessionID(sessionID); err != nil {
		return CompleteSessionCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteSessionCommand) Validate() error {
	return c.guard.Validate(ErrCompleteSessionCommandIsNotConstructed)
}

// SessionID returns the target session identifier.
func (c CompleteSessionCommand) SessionID() kernel.UUID {
	return c.sessionID
}

func (c *CompleteSessionCommand) setSessionID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.sessionID = id
	return nil
}
