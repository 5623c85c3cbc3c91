package commands

import (
	"errors"

	"packing/internal/core/domain/model/kernel"
	"packing/internal/pkg/errs"
	"packing/internal/pkg/guard"
)

var ErrProceedWithGroupCommandIsNotConstructed = errors.New(
	"ProceedWithGroupCommand must be created via NewProceedWithGroupCommand constructor",
)

// ProceedWithGroupCommand represents a request to pack a whole consolidation
// group: every order held under the customer name starts one packing session
// and the holds are released.
type ProceedWithGroupCommand struct { //nolint:recvcheck //using for validation
	sessionID    kernel.UUID
	customerName string

	guard guard.ConstructorGuard
}

// NewProceedWithGroupCommand creates a command to proceed with a held group.
// Automatically generates the session id for the resulting packing session.
func NewProceedWithGroupCommand(customerName string) (ProceedWithGroupCommand, error) {
	command := ProceedWithGroupCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setSessionID(kernel.NewUUID()),
		command.setCustomerName(customerName),
	); err != nil {
		return ProceedWithGroupCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ProceedWithGroupCommand) Validate() error {
	return c.guard.Validate(ErrProceedWithGroupCommandIsNotConstructed)
}

// SessionID returns the generated session identifier.
func (c ProceedWithGroupCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// CustomerName returns the exact grouping key of the held group.
func (c ProceedWithGroupCommand) CustomerName() string {
	return c.customerName
}

func (c *ProceedWithGroupCommand) setSessionID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.sessionID = id
	return nil
}

func (c *ProceedWithGroupCommand) setCustomerName(customerName string) error {
	if customerName == "" {
		return errs.NewValueIsRequiredError("customerName")
	}

	c.customerName = customerName
	return nil
}
