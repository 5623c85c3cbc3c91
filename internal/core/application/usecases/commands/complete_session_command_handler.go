package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"packing/internal/core/ports"
)

// ErrSessionIsNotReady is returned when completion is requested while blocking
// conditions remain. The error message lists every blocker; nothing is
// auto-corrected.
var ErrSessionIsNotReady = errors.New("session is not ready for completion")

// CompleteSessionCommandHandler submits finished sessions. The submission is
// single-flight: a second completion request while one is outstanding fails
// immediately instead of double-submitting.
//
// Example:
//
//	handler := NewCompleteSessionCommandHandler(sessions, fulfillment)
//	cmd, _ := NewCompleteSessionCommand(sessionID)
//
//	consolidatedID, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("completion failed: %w", err)
//	}
type CompleteSessionCommandHandler struct {
	sessions    ports.SessionStore
	fulfillment ports.FulfillmentClient
}

// NewCompleteSessionCommandHandler creates a handler for session completion.
func NewCompleteSessionCommandHandler(
	sessions ports.SessionStore,
	fulfillment ports.FulfillmentClient,
) CompleteSessionCommandHandler {
	return CompleteSessionCommandHandler{
		sessions:    sessions,
		fulfillment: fulfillment,
	}
}

// Handle validates the session, submits its consolidation manifest and, on
// success, discards the session and returns the backend-assigned consolidated
// session id. A failed submission keeps the session fully intact for a later
// retry. A consolidation id collision is surfaced unchanged so the operator
// can refresh and resubmit; the handler never regenerates ids on its own.
func (h *CompleteSessionCommandHandler) Handle(ctx context.Context, cmd CompleteSessionCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	packingSession, err := h.sessions.Get(ctx, cmd.SessionID())
	if err != nil {
		return "", err
	}

	if blockers := packingSession.CompletionBlockers(); len(blockers) > 0 {
		return "", fmt.Errorf("%w: %s", ErrSessionIsNotReady, strings.Join(blockers, "; "))
	}

	if err = packingSession.BeginSubmission(); err != nil {
		return "", err
	}
	defer packingSession.EndSubmission()

	consolidatedID, err := h.fulfillment.SubmitCompletion(ctx, packingSession)
	if err != nil {
		return "", err
	}

	if err = h.sessions.Remove(ctx, cmd.SessionID()); err != nil {
		return "", err
	}

	return consolidatedID, nil
}
