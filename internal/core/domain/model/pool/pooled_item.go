// Package pool contains the merged, cross-order view of required quantities.
// A PooledItem aggregates every line for one product key across the active
// source-order set, keeping per-order contributions so completed containers can
// report their source breakdown.
package pool

import (
	"errors"
	"fmt"

	"packing/internal/core/domain/model/order"
	"packing/internal/pkg/errs"
)

var (
	// ErrPooledItemIsNotConstructed is returned when a PooledItem was not created
	// through NewPooledItem.
	ErrPooledItemIsNotConstructed = errors.New("PooledItem must be created via NewPooledItem constructor")

	// ErrItemKeyMismatch is returned when a line for a different product key is
	// absorbed into a pooled item.
	ErrItemKeyMismatch = errors.New("line item key does not match pooled item key")
)

// Contribution records how much of a pooled item one source order requires.
// Contributions keep the order in which source orders were pooled.
type Contribution struct {
	orderID string
	qty     int
}

// OrderID returns the contributing source order's identifier.
func (c Contribution) OrderID() string {
	return c.orderID
}

// Qty returns the contributed quantity, always positive.
func (c Contribution) Qty() int {
	return c.qty
}

// PooledItem is the merged view of one product across the active order set.
//
// Invariant: RequiredQty always equals the sum of all contribution quantities.
// The only mutation path is Absorb, which updates both together.
type PooledItem struct {
	itemKey     string
	name        string
	code        string
	unitPrice   float64
	batch       string
	expiry      string
	packageUnit string

	requiredQty   int
	contributions []Contribution

	isConstructed bool
}

// NewPooledItem starts a pooled item from the first line encountered for its key.
// The first line defines the display attributes; later lines for the same key
// only add quantity.
func NewPooledItem(item order.LineItem, orderID string) (*PooledItem, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if orderID == "" {
		return nil, errs.NewValueIsRequiredError("orderID")
	}

	return &PooledItem{
		itemKey:       item.ItemKey(),
		name:          item.Name(),
		code:          item.Code(),
		unitPrice:     item.UnitPrice(),
		batch:         item.Batch(),
		expiry:        item.Expiry(),
		packageUnit:   item.PackageUnit(),
		requiredQty:   item.Qty(),
		contributions: []Contribution{{orderID: orderID, qty: item.Qty()}},
		isConstructed: true,
	}, nil
}

// Validate ensures the pooled item was created via NewPooledItem.
func (p *PooledItem) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPooledItemIsNotConstructed
	}
	return nil
}

// Absorb merges another line for the same product key into the pooled item,
// increasing the required quantity and appending a contribution record.
func (p *PooledItem) Absorb(item order.LineItem, orderID string) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if orderID == "" {
		return errs.NewValueIsRequiredError("orderID")
	}
	if item.ItemKey() != p.itemKey {
		return fmt.Errorf("%w: have %q, got %q", ErrItemKeyMismatch, p.itemKey, item.ItemKey())
	}

	p.requiredQty += item.Qty()
	p.contributions = append(p.contributions, Contribution{orderID: orderID, qty: item.Qty()})
	return nil
}

// Key returns the product key the pool merges on.
func (p *PooledItem) Key() string {
	return p.itemKey
}

// Name returns the product display name.
func (p *PooledItem) Name() string {
	return p.name
}

// Code returns the product code used in completion manifests.
func (p *PooledItem) Code() string {
	return p.code
}

// UnitPrice returns the billed unit price.
func (p *PooledItem) UnitPrice() float64 {
	return p.unitPrice
}

// Batch returns the batch attribute of the first pooled line.
func (p *PooledItem) Batch() string {
	return p.batch
}

// Expiry returns the expiry attribute of the first pooled line.
func (p *PooledItem) Expiry() string {
	return p.expiry
}

// PackageUnit returns the package unit attribute.
func (p *PooledItem) PackageUnit() string {
	return p.packageUnit
}

// RequiredQty returns the total quantity required across all contributing orders.
func (p *PooledItem) RequiredQty() int {
	return p.requiredQty
}

// Contributions returns the per-order contributions in pooling order.
// The returned slice is a copy.
func (p *PooledItem) Contributions() []Contribution {
	contributions := make([]Contribution, len(p.contributions))
	copy(contributions, p.contributions)
	return contributions
}
