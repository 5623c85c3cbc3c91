package commands

import (
	"errors"

	"packing/internal/core/domain/model/kernel"
	"packing/internal/pkg/errs"
	"packing/internal/pkg/guard"
)

var ErrCompleteContainerCommandIsNotConstructed = errors.New(
	"CompleteContainerCommand must be created via NewCompleteContainerCommand constructor",
)

// CompleteContainerCommand represents a request to freeze a container's contents.
type CompleteContainerCommand struct { //nolint:recvcheck //using for validation
	sessionID   kernel.UUID
	containerID string

	guard guard.ConstructorGuard
}

// NewCompleteContainerCommand creates a command to complete a container.
func NewCompleteContainerCommand(sessionID kernel.UUID, containerID string) (CompleteContainerCommand, error) {
	command := CompleteContainerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setSessionID(sessionID),
		command.setContainerID(containerID),
	); err != nil {
		return CompleteContainerCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteContainerCommand) Validate() error {
	return c.guard.Validate(ErrCompleteContainerCommandIsNotConstructed)
}

// SessionID returns the target session identifier.
func (c CompleteContainerCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// ContainerID returns the target container identifier.
func (c CompleteContainerCommand) ContainerID() string {
	return c.containerID
}

func (c *CompleteContainerCommand) setSessionID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.sessionID = id
	return nil
}

func (c *CompleteContainerCommand) setContainerID(containerID string) error {
	if containerID == "" {
		return errs.NewValueIsRequiredError("containerID")
	}

	c.containerID = containerID
	return nil
}
