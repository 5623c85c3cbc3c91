package commands

import (
	"errors"
	"fmt"

	"packing/internal/core/domain/model/kernel"
	"packing/internal/pkg/errs"
	"packing/internal/pkg/guard"
)

var ErrAssignItemCommandIsNotConstructed = errors.New(
	"AssignItemCommand must be created via NewAssignItemCommand constructor",
)

// AssignItemCommand represents a request to allocate an explicit quantity of a
// pooled item into a container. Quantities are never clamped: asking for more
// than remains is an error, not a partial assignment.
type AssignItemCommand struct { //nolint:recvcheck //using for validation
	sessionID   kernel.UUID
	containerID string
	itemKey     string
	qty         int

	guard guard.ConstructorGuard
}

// NewAssignItemCommand creates a command to assign a quantity of one item.
// Validates that the quantity is positive; the session validates it against
// the remaining amount.
func NewAssignItemCommand(
	sessionID kernel.UUID,
	containerID, itemKey string,
	qty int,
) (AssignItemCommand, error) {
	command := AssignItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setSessionID(sessionID),
		command.setContainerID(containerID),
		command.setItemKey(itemKey),
		command.setQty(qty),
	); err != nil {
		return AssignItemCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignItemCommand) Validate() error {
	return c.guard.Validate(ErrAssignItemCommandIsNotConstructed)
}

// SessionID returns the target session identifier.
func (c AssignItemCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// ContainerID returns the target container identifier.
func (c AssignItemCommand) ContainerID() string {
	return c.containerID
}

// ItemKey returns the pooled item key to assign.
func (c AssignItemCommand) ItemKey() string {
	return c.itemKey
}

// Qty returns the quantity to assign, always positive.
func (c AssignItemCommand) Qty() int {
	return c.qty
}

func (c *AssignItemCommand) setSessionID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.sessionID = id
	return nil
}

func (c *AssignItemCommand) setContainerID(containerID string) error {
	if containerID == "" {
		return errs.NewValueIsRequiredError("containerID")
	}

	c.containerID = containerID
	return nil
}

func (c *AssignItemCommand) setItemKey(itemKey string) error {
	if itemKey == "" {
		return errs.NewValueIsRequiredError("itemKey")
	}

	c.itemKey = itemKey
	return nil
}

func (c *AssignItemCommand) setQty(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("qty", fmt.Errorf("%d is not greater than 0", qty))
	}

	c.qty = qty
	return nil
}
