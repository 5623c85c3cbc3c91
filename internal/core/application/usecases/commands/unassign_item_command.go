package commands

import (
	"errors"

	"packing/internal/core/domain/model/kernel"
	"packing/internal/pkg/errs"
	"packing/internal/pkg/guard"
)

var ErrUnassignItemCommandIsNotConstructed = errors.New(
	"UnassignItemCommand must be created via NewUnassignItemCommand constructor",
)

// UnassignItemCommand represents a request to take an item's whole line out of
// an open container and return it to the pool.
type UnassignItemCommand struct { //nolint:recvcheck //using for validation
	sessionID   kernel.UUID
	containerID string
	itemKey     string

	guard guard.ConstructorGuard
}

// NewUnassignItemCommand creates a command to unassign one item line.
func NewUnassignItemCommand(
	sessionID kernel.UUID,
	containerID, itemKey string,
) (UnassignItemCommand, error) {
	command := UnassignItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setSessionID(sessionID),
		command.setContainerID(containerID),
		command.setItemKey(itemKey),
	); err != nil {
		return UnassignItemCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UnassignItemCommand) Validate() error {
	return c.guard.Validate(ErrUnassignItemCommandIsNotConstructed)
}

// SessionID returns the target session identifier.
func (c UnassignItemCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// ContainerID returns the target container identifier.
func (c UnassignItemCommand) ContainerID() string {
	return c.containerID
}

// ItemKey returns the item whose line is removed.
func (c UnassignItemCommand) ItemKey() string {
	return c.itemKey
}

func (c *UnassignItemCommand) setSessionID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.sessionID = id
	return nil
}

func (c *UnassignItemCommand) setContainerID(containerID string) error {
	if containerID == "" {
		return errs.NewValueIsRequiredError("containerID")
	}

	c.containerID = containerID
	return nil
}

func (c *UnassignItemCommand) setItemKey(itemKey string) error {
	if itemKey == "" {
		return errs.NewValueIsRequiredError("itemKey")
	}

	c.itemKey = itemKey
	return nil
}
