package commands

import (
	"errors"

	"packing/internal/core/domain/model/kernel"
	"packing/internal/pkg/guard"
)

var ErrCreateContainerCommandIsNotConstructed = errors.New(
	"CreateContainerCommand must be created via NewCreateContainerCommand constructor",
)

// CreateContainerCommand represents a request to open the next container in a
// packing session.
type CreateContainerCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateContainerCommand creates a command to open a container.
func NewCreateContainerCommand(sessionID kernel.UUID) (CreateContainerCommand, error) {
	command := CreateContainerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setSessionID(sessionID); err != nil {
		return CreateContainerCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateContainerCommand) Validate() error {
	return c.guard.Validate(ErrCreateContainerCommandIsNotConstructed)
}

// SessionID returns the target session identifier.
func (c CreateContainerCommand) SessionID() kernel.UUID {
	return c.sessionID
}

func (c *CreateContainerCommand) setSessionID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.sessionID = id
	return nil
}
