package commands

import (
	"errors"

	"packing/internal/core/domain/model/kernel"
	"packing/internal/pkg/errs"
	"packing/internal/pkg/guard"
)

var ErrMarkContainerLabeledCommandIsNotConstructed = errors.New(
	"MarkContainerLabeledCommand must be created via NewMarkContainerLabeledCommand constructor",
)

// MarkContainerLabeledCommand represents a label acknowledgment for a completed
// container. The operation is idempotent so label reprints are safe.
type MarkContainerLabeledCommand struct { //nolint:recvcheck //using for validation
	sessionID   kernel.UUID
	containerID string

	guard guard.ConstructorGuard
}

// NewMarkContainerLabeledCommand creates a command to mark a container labeled.
func NewMarkContainerLabeledCommand(
	sessionID kernel.UUID,
	containerID string,
) (MarkContainerLabeledCommand, error) {
	command := MarkContainerLabeledCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setSessionID(sessionID),
		command.setContainerID(containerID),
	); err != nil {
		return MarkContainerLabeledCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkContainerLabeledCommand) Validate() error {
	return c.guard.Validate(ErrMarkContainerLabeledCommandIsNotConstructed)
}

// SessionID returns the target session identifier.
func (c MarkContainerLabeledCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// ContainerID returns the target container identifier.
func (c MarkContainerLabeledCommand) ContainerID() string {
	return c.containerID
}

func (c *MarkContainerLabeledCommand) setSessionID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.sessionID = id
	return nil
}

func (c *MarkContainerLabeledCommand) setContainerID(containerID string) error {
	if containerID == "" {
		return errs.NewValueIsRequiredError("containerID")
	}

	c.containerID = containerID
	return nil
}
