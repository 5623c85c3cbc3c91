package order

import (
	"errors"

	"packing/internal/pkg/errs"
)

var (
	// ErrSourceOrderIsNotConstructed is returned when a SourceOrder instance was
	// not created through NewSourceOrder or RestoreSourceOrder.
	ErrSourceOrderIsNotConstructed = errors.New("SourceOrder must be created via NewSourceOrder constructor")
)

// HoldMetadata records who parked the order and, optionally, who the group was
// delegated to. Attached when a hold group proceeds to packing and kept for
// the session's lifetime; nil for orders packed directly.
type HoldMetadata struct {
	// HolderEmail identifies the operator that placed the hold.
	HolderEmail string

	// AssigneeEmail identifies the operator the group was delegated to.
	// Empty when the holder keeps the group.
	AssigneeEmail string
}

// SourceOrder is an individual customer bill whose items must be fulfilled.
// It is the unit the hold coordinator defers and the pooling service merges.
//
// Invariants:
//   - Must have a non-empty external identifier (assigned by the billing backend)
//   - Must carry at least one validated line item
//   - Billing status transitions follow the Status state machine
//   - Line item order is preserved exactly as fetched
type SourceOrder struct {
	// id is the billing backend's identifier, opaque to this engine
	id string

	// customerName is the exact grouping key for hold consolidation
	customerName string

	// deliveryAddress and phone feed the label hand-off manifests
	deliveryAddress string
	phone           string

	// items is the ordered list of billed lines
	items []LineItem

	// status is the billing lifecycle state
	status Status

	// hold is the consolidation provenance, nil when packed directly
	hold *HoldMetadata

	isConstructed bool
}

// NewSourceOrder creates a source order in Normal billing status.
//
// Parameters:
//   - id: billing backend identifier (must be non-empty)
//   - customerName: exact customer name used as the consolidation key
//   - deliveryAddress, phone: shipping contact data for labels
//   - items: ordered billed lines (at least one, each created via NewLineItem)
func NewSourceOrder(
	id, customerName, deliveryAddress, phone string,
	items []LineItem,
) (*SourceOrder, error) {
	return RestoreSourceOrder(id, customerName, deliveryAddress, phone, items, Normal, nil)
}

// RestoreSourceOrder reconstructs a source order in an arbitrary billing state,
// used when reconciling orders against sync events or hold records.
func RestoreSourceOrder(
	id, customerName, deliveryAddress, phone string,
	items []LineItem,
	status Status,
	hold *HoldMetadata,
) (*SourceOrder, error) {
	o := &SourceOrder{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerName(customerName),
		o.setItems(items),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	o.deliveryAddress = deliveryAddress
	o.phone = phone
	o.hold = hold
	return o, nil
}

// Validate ensures the order was built through a constructor.
func (o *SourceOrder) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrSourceOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two source orders by identifier.
func (o *SourceOrder) IsEqual(other *SourceOrder) bool {
	return other != nil && o.id == other.id
}

// ID returns the billing backend's order identifier.
func (o *SourceOrder) ID() string {
	return o.id
}

// CustomerName returns the exact customer name. Grouping for hold consolidation
// matches this string verbatim; no normalization is applied.
func (o *SourceOrder) CustomerName() string {
	return o.customerName
}

// DeliveryAddress returns the shipping address for label manifests.
func (o *SourceOrder) DeliveryAddress() string {
	return o.deliveryAddress
}

// Phone returns the customer contact phone for label manifests.
func (o *SourceOrder) Phone() string {
	return o.phone
}

// Items returns the billed lines in their original order.
// The returned slice is a copy; mutating it does not affect the order.
func (o *SourceOrder) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// Status returns the current billing status.
func (o *SourceOrder) Status() Status {
	return o.status
}

// Hold returns the hold provenance, nil when the order never sat in a group.
func (o *SourceOrder) Hold() *HoldMetadata {
	return o.hold
}

// MarkHeld attaches hold provenance to the order.
func (o *SourceOrder) MarkHeld(holderEmail, assigneeEmail string) error {
	if holderEmail == "" {
		return errs.NewValueIsRequiredError("holderEmail")
	}

	o.hold = &HoldMetadata{
		HolderEmail:   holderEmail,
		AssigneeEmail: assigneeEmail,
	}
	return nil
}

// SendToReview transitions the billing status to Review.
// Fails unless the order is currently Normal.
func (o *SourceOrder) SendToReview() error {
	newStatus, err := o.status.Review()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// MarkReInvoiced transitions the billing status to ReInvoiced, reflecting a
// backend-confirmed correction delivered by the sync stream.
func (o *SourceOrder) MarkReInvoiced() error {
	newStatus, err := o.status.ReInvoice()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// ApplyStatus reconciles the order against an externally reported status.
// Applying the current status is a no-op; any valid transition is performed
// through the state machine so illegal jumps are still rejected.
func (o *SourceOrder) ApplyStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if status == o.status {
		return nil
	}

	switch status {
	case Review:
		return o.SendToReview()
	case ReInvoiced:
		return o.MarkReInvoiced()
	default:
		return errs.NewValueIsInvalidError("status transition")
	}
}

func (o *SourceOrder) setID(id string) error {
	if id == "" {
		return errs.NewValueIsRequiredError("order id")
	}
	o.id = id
	return nil
}

func (o *SourceOrder) setCustomerName(customerName string) error {
	if customerName == "" {
		return errs.NewValueIsRequiredError("customer name")
	}
	o.customerName = customerName
	return nil
}

func (o *SourceOrder) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	return nil
}

func (o *SourceOrder) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
