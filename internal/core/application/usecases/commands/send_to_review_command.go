package commands

import (
	"errors"

	"packing/internal/core/domain/model/kernel"
	"packing/internal/pkg/errs"
	"packing/internal/pkg/guard"
)

var ErrSendToReviewCommandIsNotConstructed = errors.New(
	"SendToReviewCommand must be created via NewSendToReviewCommand constructor",
)

// SendToReviewCommand represents a request to escalate the session's reported
// issues: one review submission per active order, all carrying the combined
// issue summary.
type SendToReviewCommand struct { //nolint:recvcheck //using for validation
	sessionID     kernel.UUID
	reporterEmail string

	guard guard.ConstructorGuard
}

// NewSendToReviewCommand creates a command to send a session's orders to review.
func NewSendToReviewCommand(sessionID kernel.UUID, reporterEmail string) (SendToReviewCommand, error) {
	command := SendToReviewCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setSessionID(sessionID),
		command.setReporterEmail(reporterEmail),
	); err != nil {
		return SendToReviewCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SendToReviewCommand) Validate() error {
	return c.guard.Validate(ErrSendToReviewCommandIsNotConstructed)
}

// SessionID returns the target session identifier.
func (c SendToReviewCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// ReporterEmail returns the operator escalating the issues.
func (c SendToReviewCommand) ReporterEmail() string {
	return c.reporterEmail
}

func (c *SendToReviewCommand) setSessionID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.sessionID = id
	return nil
}

func (c *SendToReviewCommand) setReporterEmail(reporterEmail string) error {
	if reporterEmail == "" {
		return errs.NewValueIsRequiredError("reporterEmail")
	}

	c.reporterEmail = reporterEmail
	return nil
}
