package commands

import (
	"context"
	"errors"
	"fmt"

	"packing/internal/core/domain/model/order"
	"packing/internal/core/domain/model/session"
	"packing/internal/core/domain/services"
	"packing/internal/core/ports"
	"packing/internal/pkg/errs"
)

// ErrMixedCustomerOrders is returned when the requested orders belong to more
// than one customer. Pooling across customers is never allowed.
var ErrMixedCustomerOrders = errors.New("orders belong to different customers")

// StartSessionCommandHandler opens packing sessions. The start is atomic: every
// order is fetched and pooled before the session exists, so a failed fetch
// leaves no half-initialized session behind.
//
// Orders that were parked by the consolidation coordinator are released from
// their holds when the session that packs them starts.
type StartSessionCommandHandler struct {
	sessions   ports.SessionStore
	orders     ports.OrderClient
	pooler     services.ItemPooler
	uowFactory HoldUoWFactory
}

// NewStartSessionCommandHandler creates a handler for session starts.
func NewStartSessionCommandHandler(
	sessions ports.SessionStore,
	orders ports.OrderClient,
	pooler services.ItemPooler,
	uowFactory HoldUoWFactory,
) StartSessionCommandHandler {
	return StartSessionCommandHandler{
		sessions:   sessions,
		orders:     orders,
		pooler:     pooler,
		uowFactory: uowFactory,
	}
}

// Handle fetches the requested orders, pools their items, registers the new
// session and releases any holds parking the included orders. Hold release and
// session registration share a transaction so a failure restores the holds.
func (h *StartSessionCommandHandler) Handle(ctx context.Context, cmd StartSessionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	fetched, customerName, err := h.fetchOrders(ctx, cmd.OrderIDs())
	if err != nil {
		return err
	}

	pooled, err := h.pooler.Build(fetched)
	if err != nil {
		return err
	}

	packingSession, err := session.NewPackingSession(cmd.SessionID(), customerName, fetched, pooled)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = releaseHolds(ctx, uow.HoldRepository(), cmd.OrderIDs()); err != nil {
		return err
	}

	if err = h.sessions.Add(ctx, packingSession); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// fetchOrders loads every order and verifies they share one exact customer name.
func (h *StartSessionCommandHandler) fetchOrders(
	ctx context.Context,
	orderIDs []string,
) ([]*order.SourceOrder, string, error) {
	fetched := make([]*order.SourceOrder, 0, len(orderIDs))
	customerName := ""

	for _, orderID := range orderIDs {
		o, err := h.orders.GetOrder(ctx, orderID)
		if err != nil {
			return nil, "", err
		}

		if customerName == "" {
			customerName = o.CustomerName()
		} else if o.CustomerName() != customerName {
			return nil, "", fmt.Errorf("%w: %q and %q", ErrMixedCustomerOrders, customerName, o.CustomerName())
		}

		fetched = append(fetched, o)
	}

	return fetched, customerName, nil
}

// releaseHolds removes hold records parking any of the given orders.
// Orders that are not held are skipped.
func releaseHolds(ctx context.Context, repo ports.HoldRepository, orderIDs []string) error {
	for _, orderID := range orderIDs {
		record, err := repo.GetByOrderID(ctx, orderID)
		if err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				continue
			}
			return err
		}

		if err = repo.Remove(ctx, record.ID()); err != nil {
			return err
		}
	}
	return nil
}
