package commands

import (
	"context"
	"errors"
	"fmt"

	"packing/internal/core/domain/model/order"
	"packing/internal/core/domain/model/session"
	"packing/internal/core/domain/services"
	"packing/internal/core/ports"
)

// ErrNoHeldOrdersForGroup is returned when the grouping key has no held orders.
var ErrNoHeldOrdersForGroup = errors.New("no held orders for customer")

// ProceedWithGroupCommandHandler converts a consolidation group into a packing
// session. The group's orders are fetched fresh from the billing backend; the
// hold records only carry identifiers, never order content.
type ProceedWithGroupCommandHandler struct {
	sessions   ports.SessionStore
	orders     ports.OrderClient
	pooler     services.ItemPooler
	uowFactory HoldUoWFactory
}

// NewProceedWithGroupCommandHandler creates a handler for group proceed.
func NewProceedWithGroupCommandHandler(
	sessions ports.SessionStore,
	orders ports.OrderClient,
	pooler services.ItemPooler,
	uowFactory HoldUoWFactory,
) ProceedWithGroupCommandHandler {
	return ProceedWithGroupCommandHandler{
		sessions:   sessions,
		orders:     orders,
		pooler:     pooler,
		uowFactory: uowFactory,
	}
}

// Handle collects the group's held orders, starts a session over them and
// releases the holds. Hold release and session registration share a
// transaction so a failure restores the group.
func (h *ProceedWithGroupCommandHandler) Handle(ctx context.Context, cmd ProceedWithGroupCommand) error {
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

	records, err := repo.GetByGroupingKey(ctx, cmd.CustomerName())
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("%w: %q", ErrNoHeldOrdersForGroup, cmd.CustomerName())
	}

	fetched := make([]*order.SourceOrder, 0, len(records))
	for _, record := range records {
		o, fetchErr := h.orders.GetOrder(ctx, record.OrderID())
		if fetchErr != nil {
			return fetchErr
		}
		// Each order keeps the provenance of its hold, so the session view
		// shows who parked it and who accumulated the group.
		if fetchErr = o.MarkHeld(record.HolderEmail(), record.AssigneeEmail()); fetchErr != nil {
			return fetchErr
		}
		fetched = append(fetched, o)
	}

	pooled, err := h.pooler.Build(fetched)
	if err != nil {
		return err
	}

	packingSession, err := session.NewPackingSession(cmd.SessionID(), cmd.CustomerName(), fetched, pooled)
	if err != nil {
		return err
	}

	for _, record := range records {
		if err = repo.Remove(ctx, record.ID()); err != nil {
			return err
		}
	}

	if err = h.sessions.Add(ctx, packingSession); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
