package commands

import (
	"errors"

	"packing/internal/core/domain/model/kernel"
	"packing/internal/pkg/errs"
	"packing/internal/pkg/guard"
)

var (
	ErrFillRemainderCommandIsNotConstructed = errors.New(
		"FillRemainderCommand must be created via NewFillRemainderCommand constructor",
	)
	ErrItemKeysAreRequired = errors.New("at least one item key is required")
)

// FillRemainderCommand represents a request to assign, for each listed item,
// its whole remaining quantity into one container. A single-item drop is the
// one-key case.
type FillRemainderCommand struct { //nolint:recvcheck //using for validation
	sessionID   kernel.UUID
	containerID string
	itemKeys    []string

	guard guard.ConstructorGuard
}

// NewFillRemainderCommand creates a command to fill the remainder of the listed items.
func NewFillRemainderCommand(
	sessionID kernel.UUID,
	containerID string,
	itemKeys []string,
) (FillRemainderCommand, error) {
	command := FillRemainderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setSessionID(sessionID),
		command.setContainerID(containerID),
		command.setItemKeys(itemKeys),
	); err != nil {
		return FillRemainderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c FillRemainderCommand) Validate() error {
	return c.guard.Validate(ErrFillRemainderCommandIsNotConstructed)
}

// SessionID returns the target session identifier.
func (c FillRemainderCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// ContainerID returns the target container identifier.
func (c FillRemainderCommand) ContainerID() string {
	return c.containerID
}

// ItemKeys returns the item keys to fill. The slice is a copy.
func (c FillRemainderCommand) ItemKeys() []string {
	keys := make([]string, len(c.itemKeys))
	copy(keys, c.itemKeys)
	return keys
}

func (c *FillRemainderCommand) setSessionID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.sessionID = id
	return nil
}

func (c *FillRemainderCommand) setContainerID(containerID string) error {
	if containerID == "" {
		return errs.NewValueIsRequiredError("containerID")
	}

	c.containerID = containerID
	return nil
}

func (c *FillRemainderCommand) setItemKeys(itemKeys []string) error {
	if len(itemKeys) == 0 {
		return ErrItemKeysAreRequired
	}

	for _, key := range itemKeys {
		if key == "" {
			return errs.NewValueIsRequiredError("itemKey")
		}
	}

	c.itemKeys = make([]string, len(itemKeys))
	copy(c.itemKeys, itemKeys)
	return nil
}
