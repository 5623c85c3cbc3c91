package commands

import (
	"context"

	"packing/internal/core/ports"
)

// SendToReviewCommandHandler fans the session's issue summary out to the
// billing backend, one review submission per active order.
//
// The fan-out is not atomic: a failure part-way leaves the already submitted
// orders under review on the backend. Local state is only advanced once every
// submission succeeded; the sync stream reconciles the partial remainder.
type SendToReviewCommandHandler struct {
	sessions    ports.SessionStore
	fulfillment ports.FulfillmentClient
}

// NewSendToReviewCommandHandler creates a handler for review escalation.
func NewSendToReviewCommandHandler(
	sessions ports.SessionStore,
	fulfillment ports.FulfillmentClient,
) SendToReviewCommandHandler {
	return SendToReviewCommandHandler{
		sessions:    sessions,
		fulfillment: fulfillment,
	}
}

// Handle submits one review per active order and, on full success, marks the
// orders as under review and clears the session's reports.
func (h *SendToReviewCommandHandler) Handle(ctx context.Context, cmd SendToReviewCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	packingSession, err := h.sessions.Get(ctx, cmd.SessionID())
	if err != nil {
		return err
	}

	if err = packingSession.BeginReviewEscalation(); err != nil {
		return err
	}

	summary := packingSession.IssueSummary()
	for _, o := range packingSession.Orders() {
		if err = h.fulfillment.SubmitReview(ctx, o.ID(), cmd.ReporterEmail(), summary); err != nil {
			return err
		}
	}

	if err = packingSession.ConfirmReviewEscalation(); err != nil {
		return err
	}

	packingSession.Touch()
	return nil
}
