package commands

import (
	"context"

	"packing/internal/core/ports"
)

// ReportIssueCommandHandler records item defect reports on a session.
type ReportIssueCommandHandler struct {
	sessions ports.SessionStore
}

// NewReportIssueCommandHandler creates a handler for issue reports.
func NewReportIssueCommandHandler(sessions ports.SessionStore) ReportIssueCommandHandler {
	return ReportIssueCommandHandler{sessions: sessions}
}

// Handle records the report, replacing any prior report for the same item.
func (h *ReportIssueCommandHandler) Handle(ctx context.Context, cmd ReportIssueCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	packingSession, err := h.sessions.Get(ctx, cmd.SessionID())
	if err != nil {
		return err
	}

	if err = packingSession.ReportIssue(cmd.ItemKey(), cmd.Tags(), cmd.Note()); err != nil {
		return err
	}

	packingSession.Touch()
	return nil
}
