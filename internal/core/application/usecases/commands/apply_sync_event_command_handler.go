package commands

import (
	"context"
	"log/slog"

	"packing/internal/core/domain/model/order"
	"packing/internal/core/domain/model/session"
	"packing/internal/core/domain/services"
	"packing/internal/core/ports"
)

// ApplySyncEventCommandHandler reconciles push events from the billing backend
// into the live sessions. Reconciliation only replaces whole derived views:
// a status change updates the order's status, a correction refetches the
// session's orders and rebuilds the pool. The allocation ledger and containers
// are never touched, so an event cannot corrupt an in-progress edit.
//
// Events for orders no session contains are dropped; the backend broadcasts
// for all operators.
type ApplySyncEventCommandHandler struct {
	sessions ports.SessionStore
	orders   ports.OrderClient
	pooler   services.ItemPooler
	logger   *slog.Logger
}

// NewApplySyncEventCommandHandler creates a handler for sync stream events.
func NewApplySyncEventCommandHandler(
	sessions ports.SessionStore,
	orders ports.OrderClient,
	pooler services.ItemPooler,
	logger *slog.Logger,
) ApplySyncEventCommandHandler {
	return ApplySyncEventCommandHandler{
		sessions: sessions,
		orders:   orders,
		pooler:   pooler,
		logger:   logger.With("component", "sync-applier"),
	}
}

// Handle applies the event to every live session containing the order.
func (h *ApplySyncEventCommandHandler) Handle(ctx context.Context, cmd ApplySyncEventCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	sessions, err := h.sessions.GetAll(ctx)
	if err != nil {
		return err
	}

	for _, s := range sessions {
		switch cmd.Kind() {
		case SyncEventStatusChanged:
			err = h.applyStatus(s, cmd)
		case SyncEventOrderCorrected:
			err = h.applyCorrection(ctx, s, cmd)
		default:
			continue
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (h *ApplySyncEventCommandHandler) applyStatus(s *session.PackingSession, cmd ApplySyncEventCommand) error {
	known, err := s.ApplyExternalStatus(cmd.OrderID(), cmd.Status())
	if err != nil {
		return err
	}
	if known {
		h.logger.Info("applied order status",
			"session", s.ID().String(),
			"order", cmd.OrderID(),
			"status", cmd.Status().String(),
		)
	}
	return nil
}

func (h *ApplySyncEventCommandHandler) applyCorrection(
	ctx context.Context,
	s *session.PackingSession,
	cmd ApplySyncEventCommand,
) error {
	if s.OrderByID(cmd.OrderID()) == nil {
		return nil
	}

	orderIDs := s.OrderIDs()
	refetched := make([]*order.SourceOrder, 0, len(orderIDs))
	for _, orderID := range orderIDs {
		o, err := h.orders.GetOrder(ctx, orderID)
		if err != nil {
			return err
		}
		// Refetched orders keep the hold provenance of the ones they replace.
		if meta := s.OrderByID(orderID).Hold(); meta != nil {
			if err = o.MarkHeld(meta.HolderEmail, meta.AssigneeEmail); err != nil {
				return err
			}
		}
		refetched = append(refetched, o)
	}

	pooled, err := h.pooler.Build(refetched)
	if err != nil {
		return err
	}

	if err = s.RebuildPool(refetched, pooled); err != nil {
		return err
	}

	h.logger.Info("rebuilt pool after order correction",
		"session", s.ID().String(),
		"order", cmd.OrderID(),
	)
	return nil
}
