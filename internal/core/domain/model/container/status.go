package container

import (
	"fmt"

	"packing/internal/pkg/errs"
)

// Status represents the lifecycle state of a container.
//
// State transitions:
//
//	Open ──> Completed ──> Labeled ──┐
//	                          ▲      │
//	                          └──────┘
//	                   (re-entrant for reprints)
//
// A Completed container is immutable; the only change allowed afterwards is the
// Labeled marker, which may be applied repeatedly.
type Status int

const (
	// Unknown represents an invalid or undefined status. The zero value helps
	// catch uninitialized Status values.
	Unknown Status = iota

	// Open is the initial state; lines may be added and removed.
	Open

	// Completed freezes the container contents.
	Completed

	// Labeled marks that the shipping label was acknowledged. Re-entrant.
	Labeled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Open:      "Open",
		Completed: "Completed",
		Labeled:   "Labeled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Open:      "Open",
		Completed: "Completed",
		Labeled:   "Labeled",
	}
}

// Validate checks that the status is one of Open, Completed, Labeled.
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

// IsFinished reports whether the container contents are frozen
// (Completed or Labeled).
func (s Status) IsFinished() bool {
	return s == Completed || s == Labeled
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - Open -> Completed
func (s Status) Complete() (Status, error) {
	if s != Open {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}

	return Completed, nil
}

// Label transitions the status to Labeled.
//
// Valid transitions:
//   - Completed -> Labeled
//   - Labeled -> Labeled (reprints)
func (s Status) Label() (Status, error) {
	if s != Completed && s != Labeled {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to label", s.String()),
		)
	}

	return Labeled, nil
}
