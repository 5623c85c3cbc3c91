package commands

import (
	"errors"
	"fmt"

	"packing/internal/core/domain/model/kernel"
	"packing/internal/pkg/guard"
)

var (
	ErrStartSessionCommandIsNotConstructed = errors.New(
		"StartSessionCommand must be created via NewStartSessionCommand constructor",
	)
	ErrOrderIDsAreRequired = errors.New("at least one order id is required")
	ErrOrderIDIsEmpty      = errors.New("order id must not be empty")
	ErrOrderIDIsDuplicated = errors.New("order id appears more than once")
)

// StartSessionCommand represents a request to open a packing session over a set
// of source orders. The session id is generated here so the caller can address
// the session immediately after the handler succeeds.
//
// Example:
//
//	cmd, err := NewStartSessionCommand([]string{"100", "101"})
//	if err != nil {
//	    return fmt.Errorf("invalid session request: %w", err)
//	}
//
//	handler := NewStartSessionCommandHandler(sessions, orders, holdUoWFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to start session: %w", err)
//	}
//	fmt.Printf("Started session %s", cmd.SessionID())
type StartSessionCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	orderIDs  []string

	guard guard.ConstructorGuard
}

// NewStartSessionCommand creates a command to start a packing session.
// Automatically generates a unique session id.
// Validates that at least one order id is given and that ids are non-empty
// and unique.
func NewStartSessionCommand(orderIDs []string) (StartSessionCommand, error) {
	command := StartSessionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setSessionID(kernel.NewUUID()),
		command.setOrderIDs(orderIDs),
	); err != nil {
		return StartSessionCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c StartSessionCommand) Validate() error {
	return c.guard.Validate(ErrStartSessionCommandIsNotConstructed)
}

// SessionID returns the generated session identifier.
func (c StartSessionCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// OrderIDs returns the requested order identifiers. The slice is a copy.
func (c StartSessionCommand) OrderIDs() []string {
	ids := make([]string, len(c.orderIDs))
	copy(ids, c.orderIDs)
	return ids
}

func (c *StartSessionCommand) setSessionID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.sessionID = id
	return nil
}

func (c *StartSessionCommand) setOrderIDs(orderIDs []string) error {
	if len(orderIDs) == 0 {
		return ErrOrderIDsAreRequired
	}

	seen := make(map[string]struct{}, len(orderIDs))
	for _, id := range orderIDs {
		if id == "" {
			return ErrOrderIDIsEmpty
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: %s", ErrOrderIDIsDuplicated, id)
		}
		seen[id] = struct{}{}
	}

	c.orderIDs = make([]string, len(orderIDs))
	copy(c.orderIDs, orderIDs)
	return nil
}
