package order

import (
	"fmt"

	"packing/internal/pkg/errs"
)

// Status represents the billing lifecycle state of a source order.
//
// State transitions:
//
//	Normal ──> Review ──> ReInvoiced
//	   │                      ▲
//	   └──────────────────────┘
//	  (direct correction allowed)
//
// Review is set when the operator escalates defective items; ReInvoiced is set
// when the backend confirms the corrected bill, which arrives through the live
// sync stream.
type Status int

const (
	// Unknown represents an invalid or undefined status. The zero value helps
	// catch uninitialized Status values.
	Unknown Status = iota

	// Normal is the default billing state; the order may be packed and completed.
	Normal

	// Review indicates the order was sent back for correction. Session
	// completion is blocked while any active order is in this state.
	Review

	// ReInvoiced indicates the backend issued a corrected bill. Orders in this
	// state no longer block completion.
	ReInvoiced
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Normal:     "Normal",
		Review:     "Review",
		ReInvoiced: "ReInvoiced",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Normal:     "Normal",
		Review:     "Review",
		ReInvoiced: "ReInvoiced",
	}
}

// wireStatusValues maps the billing backend's envelope values to Status.
var wireStatusValues = map[string]Status{
	"NORMAL":      Normal,
	"REVIEW":      Review,
	"RE_INVOICED": ReInvoiced,
}

// StatusFromWire parses a status value as delivered by the billing backend
// ("NORMAL", "REVIEW", "RE_INVOICED"). Returns an error for any other value so
// malformed envelopes are rejected at the ingestion boundary.
func StatusFromWire(value string) (Status, error) {
	if s, ok := wireStatusValues[value]; ok {
		return s, nil
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a known billing status", value),
	)
}

// Validate checks that the status is one of Normal, Review, ReInvoiced.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status, "Unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Review transitions the status to Review.
//
// Valid transitions:
//   - Normal -> Review (operator escalates defects)
//
// A Review or ReInvoiced order cannot be escalated again.
func (s Status) Review() (Status, error) {
	if s != Normal {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to send to review", s.String()),
		)
	}

	return Review, nil
}

// ReInvoice transitions the status to ReInvoiced.
//
// Valid transitions:
//   - Review -> ReInvoiced (backend confirms the corrected bill)
//   - Normal -> ReInvoiced (backend issues a correction without a local review)
func (s Status) ReInvoice() (Status, error) {
	if s != Review && s != Normal {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to re-invoice", s.String()),
		)
	}

	return ReInvoiced, nil
}
