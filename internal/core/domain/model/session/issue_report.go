package session

import (
	"errors"
	"fmt"
	"strings"

	"packing/internal/pkg/errs"
)

var (
	// ErrIssueReportIsNotConstructed is returned when an IssueReport was not
	// created through NewIssueReport.
	ErrIssueReportIsNotConstructed = errors.New("IssueReport must be created via NewIssueReport constructor")

	// ErrIssueNeedsTagOrNote is returned when a report carries neither a tag
	// nor a free-text note.
	ErrIssueNeedsTagOrNote = errors.New("issue report requires at least one tag or a note")
)

// IssueReport records a defect observed on one pooled item. A session keeps at
// most one report per item; a newer report replaces the prior one.
type IssueReport struct {
	itemKey string
	tags    []string
	note    string

	isConstructed bool
}

// NewIssueReport creates a validated issue report.
// At least one tag or a non-empty note is required.
func NewIssueReport(itemKey string, tags []string, note string) (IssueReport, error) {
	if itemKey == "" {
		return IssueReport{}, errs.NewValueIsRequiredError("itemKey")
	}

	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			cleaned = append(cleaned, tag)
		}
	}
	note = strings.TrimSpace(note)

	if len(cleaned) == 0 && note == "" {
		return IssueReport{}, ErrIssueNeedsTagOrNote
	}

	return IssueReport{
		itemKey:       itemKey,
		tags:          cleaned,
		note:          note,
		isConstructed: true,
	}, nil
}

// Validate ensures the report was created via NewIssueReport.
func (r IssueReport) Validate() error {
	if !r.isConstructed {
		return ErrIssueReportIsNotConstructed
	}
	return nil
}

// ItemKey returns the pooled item the report is about.
func (r IssueReport) ItemKey() string {
	return r.itemKey
}

// Tags returns the issue tags. The returned slice is a copy.
func (r IssueReport) Tags() []string {
	tags := make([]string, len(r.tags))
	copy(tags, r.tags)
	return tags
}

// Note returns the free-text note, possibly empty.
func (r IssueReport) Note() string {
	return r.note
}

// Text renders the report as a single line for review submissions.
func (r IssueReport) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", r.itemKey, strings.Join(r.tags, ", "))
	if r.note != "" {
		if len(r.tags) > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "note: %s", r.note)
	}
	return b.String()
}
