package commands

import (
	"context"
	"errors"
	"fmt"

	"packing/internal/core/domain/model/hold"
	"packing/internal/core/ports"
	"packing/internal/pkg/errs"
)

// ErrOrderIsAlreadyHeld is returned when a hold is placed on an order that is
// already parked, possibly by another operator.
var ErrOrderIsAlreadyHeld = errors.New("order is already held")

// HoldOrderCommandHandler parks orders for consolidation. When a sibling group
// for the same customer already exists, the new record joins it and ownership
// follows the group's existing owner. An explicit assignee instead delegates
// the whole group, existing records included, to that operator.
type HoldOrderCommandHandler struct {
	uowFactory HoldUoWFactory
}

// NewHoldOrderCommandHandler creates a handler for hold placement.
func NewHoldOrderCommandHandler(uowFactory HoldUoWFactory) HoldOrderCommandHandler {
	return HoldOrderCommandHandler{uowFactory: uowFactory}
}

// Handle persists a new hold record within a transaction.
func (h *HoldOrderCommandHandler) Handle(ctx context.Context, cmd HoldOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.HoldRepository()

	existing, err := repo.GetByOrderID(ctx, cmd.OrderID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: %s held by %s", ErrOrderIsAlreadyHeld, cmd.OrderID(), existing.Owner())
	}

	assignee := cmd.AssigneeEmail()
	if assignee == "" {
		assignee, err = groupOwnerFor(ctx, repo, cmd.CustomerName(), cmd.HolderEmail())
		if err != nil {
			return err
		}
	} else if err = delegateGroup(ctx, repo, cmd.CustomerName(), assignee); err != nil {
		return err
	}

	record, err := hold.NewHoldRecord(
		cmd.HoldID(),
		cmd.OrderID(),
		cmd.CustomerName(),
		cmd.HolderEmail(),
		assignee,
	)
	if err != nil {
		return err
	}

	if err = repo.Add(ctx, record); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// groupOwnerFor returns the owner of an existing consolidation group as the
// assignee for a new record, empty when the holder starts a fresh group or
// already owns it.
func groupOwnerFor(
	ctx context.Context,
	repo ports.HoldRepository,
	groupingKey, holderEmail string,
) (string, error) {
	siblings, err := repo.GetByGroupingKey(ctx, groupingKey)
	if err != nil {
		return "", err
	}
	if len(siblings) == 0 {
		return "", nil
	}

	owner := siblings[0].Owner()
	if owner == holderEmail {
		return "", nil
	}
	return owner, nil
}

// delegateGroup re-attributes every existing record of the consolidation group
// to the given assignee, so one person accumulates the whole group from this
// hold onward.
func delegateGroup(
	ctx context.Context,
	repo ports.HoldRepository,
	groupingKey, assigneeEmail string,
) error {
	siblings, err := repo.GetByGroupingKey(ctx, groupingKey)
	if err != nil {
		return err
	}

	for _, sibling := range siblings {
		if sibling.Owner() == assigneeEmail {
			continue
		}
		if err = sibling.Delegate(assigneeEmail); err != nil {
			return err
		}
		if err = repo.Update(ctx, sibling); err != nil {
			return err
		}
	}
	return nil
}
