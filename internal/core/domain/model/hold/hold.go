// Package hold contains the HoldRecord entity: a deferred source order waiting
// for sibling orders from the same customer so they can be packed together.
package hold

import (
	"errors"
	"time"

	"packing/internal/core/domain/model/kernel"
	"packing/internal/pkg/errs"
)

var (
	// ErrHoldRecordIsNotConstructed is returned when a HoldRecord was not created
	// through NewHoldRecord or RestoreHoldRecord.
	ErrHoldRecordIsNotConstructed = errors.New("HoldRecord must be created via NewHoldRecord constructor")
)

// HoldRecord parks one source order under a grouping key. All records sharing
// the key form a consolidation group owned by a single operator.
//
// Invariants:
//   - The grouping key is the customer name matched verbatim; no normalization
//     is applied, so two spellings form two groups
//   - A source order belongs to at most one hold record at any time (enforced
//     by the repository's unique order id)
type HoldRecord struct {
	id kernel.UUID

	// orderID is the billing backend's order identifier
	orderID string

	// groupingKey is the exact customer name
	groupingKey string

	// holderEmail identifies the operator that placed the hold
	holderEmail string

	// assigneeEmail, when set, delegates the group to another operator so one
	// person accumulates all sibling orders
	assigneeEmail string

	heldAt time.Time

	isConstructed bool
}

// NewHoldRecord creates a hold record timestamped now.
func NewHoldRecord(id kernel.UUID, orderID, groupingKey, holderEmail, assigneeEmail string) (*HoldRecord, error) {
	return RestoreHoldRecord(id, orderID, groupingKey, holderEmail, assigneeEmail, time.Now().UTC())
}

// RestoreHoldRecord reconstructs a hold record from persistence.
func RestoreHoldRecord(
	id kernel.UUID,
	orderID, groupingKey, holderEmail, assigneeEmail string,
	heldAt time.Time,
) (*HoldRecord, error) {
	h := &HoldRecord{
		isConstructed: true,
	}

	if err := errors.Join(
		h.setID(id),
		h.setOrderID(orderID),
		h.setGroupingKey(groupingKey),
		h.setHolderEmail(holderEmail),
	); err != nil {
		return nil, err
	}

	h.assigneeEmail = assigneeEmail
	h.heldAt = heldAt
	return h, nil
}

// Validate ensures the record was built through a constructor.
func (h *HoldRecord) Validate() error {
	if h == nil || !h.isConstructed {
		return ErrHoldRecordIsNotConstructed
	}
	return nil
}

// IsEqual compares two hold records by identifier.
func (h *HoldRecord) IsEqual(other *HoldRecord) bool {
	return other != nil && h.id.IsEqual(other.id)
}

// ID returns the record's unique identifier.
func (h *HoldRecord) ID() kernel.UUID {
	return h.id
}

// OrderID returns the parked order's billing identifier.
func (h *HoldRecord) OrderID() string {
	return h.orderID
}

// GroupingKey returns the exact customer name the group matches on.
func (h *HoldRecord) GroupingKey() string {
	return h.groupingKey
}

// HolderEmail returns the operator that placed the hold.
func (h *HoldRecord) HolderEmail() string {
	return h.holderEmail
}

// AssigneeEmail returns the delegated operator, empty when the holder keeps the group.
func (h *HoldRecord) AssigneeEmail() string {
	return h.assigneeEmail
}

// HeldAt returns when the hold was placed.
func (h *HoldRecord) HeldAt() time.Time {
	return h.heldAt
}

// Owner returns the operator that accumulates the group: the delegated assignee
// when one is set, the holder otherwise.
func (h *HoldRecord) Owner() string {
	if h.assigneeEmail != "" {
		return h.assigneeEmail
	}
	return h.holderEmail
}

// Delegate attributes subsequent accumulation of the group to another operator.
func (h *HoldRecord) Delegate(assigneeEmail string) error {
	if assigneeEmail == "" {
		return errs.NewValueIsRequiredError("assigneeEmail")
	}
	h.assigneeEmail = assigneeEmail
	return nil
}

func (h *HoldRecord) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	h.id = id
	return nil
}

func (h *HoldRecord) setOrderID(orderID string) error {
	if orderID == "" {
		return errs.NewValueIsRequiredError("order id")
	}
	h.orderID = orderID
	return nil
}

func (h *HoldRecord) setGroupingKey(groupingKey string) error {
	if groupingKey == "" {
		return errs.NewValueIsRequiredError("grouping key")
	}
	h.groupingKey = groupingKey
	return nil
}

func (h *HoldRecord) setHolderEmail(holderEmail string) error {
	if holderEmail == "" {
		return errs.NewValueIsRequiredError("holder email")
	}
	h.holderEmail = holderEmail
	return nil
}
