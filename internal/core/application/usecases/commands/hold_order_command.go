package commands

import (
	"errors"

	"packing/internal/core/domain/model/kernel"
	"packing/internal/pkg/errs"
	"packing/internal/pkg/guard"
)

var ErrHoldOrderCommandIsNotConstructed = errors.New(
	"HoldOrderCommand must be created via NewHoldOrderCommand constructor",
)

// HoldOrderCommand represents a request to park a source order until sibling
// orders from the same customer arrive. The customer name is the grouping key,
// matched verbatim. An optional assignee delegates the group to another
// operator so one person accumulates all siblings.
//
// Example:
//
//	cmd, err := NewHoldOrderCommand("100", "ACME Pharmacy", "packer@wh.example", "")
//	if err != nil {
//	    return fmt.Errorf("invalid hold request: %w", err)
//	}
//
//	handler := NewHoldOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to hold order: %w", err)
//	}
type HoldOrderCommand struct { //nolint:recvcheck //using for validation
	holdID        kernel.UUID
	orderID       string
	customerName  string
	holderEmail   string
	assigneeEmail string

	guard guard.ConstructorGuard
}

// NewHoldOrderCommand creates a command to hold an order.
// Automatically generates a unique id for the hold record.
// The assignee email may be empty; the holder then owns the group.
func NewHoldOrderCommand(
	orderID, customerName, holderEmail, assigneeEmail string,
) (HoldOrderCommand, error) {
	command := HoldOrderCommand{
		assigneeEmail: assigneeEmail,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setHoldID(kernel.NewUUID()),
		command.setOrderID(orderID),
		command.setCustomerName(customerName),
		command.setHolderEmail(holderEmail),
	); err != nil {
		return HoldOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c HoldOrderCommand) Validate() error {
	return c.guard.Validate(ErrHoldOrderCommandIsNotConstructed)
}

// HoldID returns the generated hold record identifier.
func (c HoldOrderCommand) HoldID() kernel.UUID {
	return c.holdID
}

// OrderID returns the order to park.
func (c HoldOrderCommand) OrderID() string {
	return c.orderID
}

// CustomerName returns the exact customer name used as grouping key.
func (c HoldOrderCommand) CustomerName() string {
	return c.customerName
}

// HolderEmail returns the operator placing the hold.
func (c HoldOrderCommand) HolderEmail() string {
	return c.holderEmail
}

// AssigneeEmail returns the delegated operator, empty when the holder keeps the group.
func (c HoldOrderCommand) AssigneeEmail() string {
	return c.assigneeEmail
}

func (c *HoldOrderCommand) setHoldID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.holdID = id
	return nil
}

func (c *HoldOrderCommand) setOrderID(orderID string) error {
	if orderID == "" {
		return errs.NewValueIsRequiredError("orderID")
	}

	c.orderID = orderID
	return nil
}

func (c *HoldOrderCommand) setCustomerName(customerName string) error {
	if customerName == "" {
		return errs.NewValueIsRequiredError("customerName")
	}

	c.customerName = customerName
	return nil
}

func (c *HoldOrderCommand) setHolderEmail(holderEmail string) error {
	if holderEmail == "" {
		return errs.NewValueIsRequiredError("holderEmail")
	}

	c.holderEmail = holderEmail
	return nil
}
