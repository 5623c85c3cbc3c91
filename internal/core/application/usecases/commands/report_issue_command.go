package commands

import (
	"errors"

	"packing/internal/core/domain/model/kernel"
	"packing/internal/pkg/errs"
	"packing/internal/pkg/guard"
)

var ErrReportIssueCommandIsNotConstructed = errors.New(
	"ReportIssueCommand must be created via NewReportIssueCommand constructor",
)

// ReportIssueCommand represents a defect report for one pooled item.
// The session keeps at most one report per item; a new report replaces it.
type ReportIssueCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	itemKey   string
	tags      []string
	note      string

	guard guard.ConstructorGuard
}

// NewReportIssueCommand creates a command to report an issue.
// The session validates that at least one tag or a non-empty note is present.
func NewReportIssueCommand(
	sessionID kernel.UUID,
	itemKey string,
	tags []string,
	note string,
) (ReportIssueCommand, error) {
	command := ReportIssueCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}
	command.tags = make([]string, len(tags))
	copy(command.tags, tags)

	if err := errors.Join(
		command.setSessionID(sessionID),
		command.setItemKey(itemKey),
	); err != nil {
		return ReportIssueCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportIssueCommand) Validate() error {
	return c.guard.Validate(ErrReportIssueCommandIsNotConstructed)
}

// SessionID returns the target session identifier.
func (c ReportIssueCommand) SessionID() kernel.UUID {
	return c.sessionID
}

// ItemKey returns the item the report is about.
func (c ReportIssueCommand) ItemKey() string {
	return c.itemKey
}

// Tags returns the issue tags. The slice is a copy.
func (c ReportIssueCommand) Tags() []string {
	tags := make([]string, len(c.tags))
	copy(tags, c.tags)
	return tags
}

// Note returns the free-text note, possibly empty.
func (c ReportIssueCommand) Note() string {
	return c.note
}

func (c *ReportIssueCommand) setSessionID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.sessionID = id
	return nil
}

func (c *ReportIssueCommand) setItemKey(itemKey string) error {
	if itemKey == "" {
		return errs.NewValueIsRequiredError("itemKey")
	}

	c.itemKey = itemKey
	return nil
}
