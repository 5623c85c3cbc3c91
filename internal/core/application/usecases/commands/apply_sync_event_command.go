package commands

import (
	"errors"
	"fmt"

	"packing/internal/core/domain/model/order"
	"packing/internal/pkg/errs"
	"packing/internal/pkg/guard"
)

var ErrApplySyncEventCommandIsNotConstructed = errors.New(
	"ApplySyncEventCommand must be created via NewApplySyncEventCommand constructor",
)

// SyncEventKind discriminates the push events the billing backend emits.
type SyncEventKind int

const (
	// SyncEventUnknown is the zero value and never valid.
	SyncEventUnknown SyncEventKind = iota

	// SyncEventStatusChanged carries a new order status.
	SyncEventStatusChanged

	// SyncEventOrderCorrected signals the order's content changed and every
	// session containing it must refetch and rebuild its pool.
	SyncEventOrderCorrected
)

// ApplySyncEventCommand represents one event from the live sync stream to be
// reconciled into the live sessions.
type ApplySyncEventCommand struct { //nolint:recvcheck //using for validation
	kind    SyncEventKind
	orderID string
	status  order.Status

	guard guard.ConstructorGuard
}

// NewStatusChangedSyncEvent creates a command for an order status change.
func NewStatusChangedSyncEvent(orderID string, status order.Status) (ApplySyncEventCommand, error) {
	command := ApplySyncEventCommand{
		kind:  SyncEventStatusChanged,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setStatus(status),
	); err != nil {
		return ApplySyncEventCommand{}, err
	}

	return command, nil
}

// NewOrderCorrectedSyncEvent creates a command for an order content correction.
func NewOrderCorrectedSyncEvent(orderID string) (ApplySyncEventCommand, error) {
	command := ApplySyncEventCommand{
		kind:  SyncEventOrderCorrected,
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setOrderID(orderID); err != nil {
		return ApplySyncEventCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through a constructor.
func (c ApplySyncEventCommand) Validate() error {
	return c.guard.Validate(ErrApplySyncEventCommandIsNotConstructed)
}

// Kind returns the event discriminator.
func (c ApplySyncEventCommand) Kind() SyncEventKind {
	return c.kind
}

// OrderID returns the affected order's billing identifier.
func (c ApplySyncEventCommand) OrderID() string {
	return c.orderID
}

// Status returns the new status for status-changed events.
func (c ApplySyncEventCommand) Status() order.Status {
	return c.status
}

func (c *ApplySyncEventCommand) setOrderID(orderID string) error {
	if orderID == "" {
		return errs.NewValueIsRequiredError("orderID")
	}

	c.orderID = orderID
	return nil
}

func (c *ApplySyncEventCommand) setStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return fmt.Errorf("invalid sync status: %w", err)
	}

	c.status = status
	return nil
}
