package commands

import (
	"errors"

	"packing/internal/core/domain/model/kernel"
	"packing/internal/pkg/errs"
	"packing/internal/pkg/guard"
)

var ErrRemoveContainerCommandIsNotConstructed = errors.New(
	"RemoveContainerCommand must be created via NewRemoveContainerCommand constructor",
)

// RemoveContainerCommand represents a request to discard an open container.
// Confirmed must be true to remove a container that already holds items.
type RemoveContainerCommand struct { //nolint:recvcheck //using for validation
	sessionID   kernel.UUID
	containerID string
	confirmed   bool

	guard guard.ConstructorGuard
}

// NewRemoveContainerCommand creates a command to remove a container.
func NewRemoveContainerCommand(
	sessionID kernel.UUID,
	containerID string,
	confirmed bool,
) (RemoveContainerCommand, error) {
	command := RemoveContainerCommand{
		confirmed: confirmed,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setSessionID(sessionID),
		command.setContainerID(containerID),
	); err != nil {
		return RemoveContainerCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveContainerCommand) Validate() error {
	return c.guard.Validate(ErrRemoveContainerCommandIsNotConstructed)
}

// SessionID returns the target session identifier.
func (c RemoveContainerCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// ContainerID returns the target container identifier.
func (c RemoveContainerCommand) ContainerID() string {
	return c.containerID
}

// Confirmed reports whether the operator acknowledged discarding a non-empty container.
func (c RemoveContainerCommand) Confirmed() bool {
	return c.confirmed
}

func (c *RemoveContainerCommand) setSessionID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.sessionID = id
	return nil
}

func (c *RemoveContainerCommand) setContainerID(containerID string) error {
	if containerID == "" {
		return errs.NewValueIsRequiredError("containerID")
	}

	c.containerID = containerID
	return nil
}
