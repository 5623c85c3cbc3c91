package ports

import (
	"context"
	"errors"

	"packing/internal/core/domain/model/order"
	"packing/internal/core/domain/model/session"
)

// ErrSessionIDCollision is returned by FulfillmentClient.SubmitCompletion when
// the backend rejects the submission because the consolidation id is already
// taken. The collision is surfaced to the operator as a retriable conflict,
// never resubmitted automatically; a later attempt goes out under a fresh id.
var ErrSessionIDCollision = errors.New("consolidation id already exists in backend")

// OrderClient fetches source orders from the billing backend.
// Implementations convert the backend's wire shapes to domain orders at this
// boundary; no raw payloads cross into the core.
type OrderClient interface {
	// GetOrder fetches one source order by its billing identifier.
	// Returns errs.ErrObjectNotFound for unknown ids.
	GetOrder(ctx context.Context, orderID string) (*order.SourceOrder, error)
}

// FulfillmentClient submits packing outcomes to the billing backend.
type FulfillmentClient interface {
	// SubmitCompletion posts the finished session's consolidation manifest
	// and returns the backend-assigned consolidated session id. Returns
	// ErrSessionIDCollision when the backend already knows the submitted id;
	// any failure leaves the session intact for a retry.
	SubmitCompletion(ctx context.Context, s *session.PackingSession) (string, error)

	// SubmitReview escalates one source order for manual review with the
	// session's issue summary attached.
	SubmitReview(ctx context.Context, orderID, reporterEmail, summary string) error
}
