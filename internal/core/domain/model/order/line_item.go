package order

import (
	"errors"
	"fmt"

	"packing/internal/pkg/errs"
)

var (
	// ErrLineItemIsNotConstructed is returned when a LineItem was not created
	// through the NewLineItem factory function.
	ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")
)

// LineItem is a value object describing one billed product line of a source order.
// Unit attributes (price, batch, expiry, package unit) travel with the line so the
// pool can display them without re-fetching the order.
type LineItem struct {
	itemKey     string
	name        string
	code        string
	unitPrice   float64
	batch       string
	expiry      string
	packageUnit string
	qty         int

	isConstructed bool
}

// NewLineItem creates a validated line item.
// Item key and name must be non-empty, quantity must be positive. The remaining
// attributes are carried as delivered by the billing backend and may be empty.
func NewLineItem(
	itemKey, name, code string,
	unitPrice float64,
	batch, expiry, packageUnit string,
	qty int,
) (LineItem, error) {
	if itemKey == "" {
		return LineItem{}, errs.NewValueIsRequiredError("itemKey")
	}
	if name == "" {
		return LineItem{}, errs.NewValueIsRequiredError("name")
	}
	if qty <= 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause(
			"qty",
			fmt.Errorf("%d is not greater than 0", qty),
		)
	}

	return LineItem{
		itemKey:       itemKey,
		name:          name,
		code:          code,
		unitPrice:     unitPrice,
		batch:         batch,
		expiry:        expiry,
		packageUnit:   packageUnit,
		qty:           qty,
		isConstructed: true,
	}, nil
}

// Validate ensures the line item was created via NewLineItem.
func (l LineItem) Validate() error {
	if !l.isConstructed {
		return ErrLineItemIsNotConstructed
	}
	return nil
}

// ItemKey returns the product key the pool merges on.
func (l LineItem) ItemKey() string {
	return l.itemKey
}

// Name returns the product display name.
func (l LineItem) Name() string {
	return l.name
}

// Code returns the product code used in completion manifests.
func (l LineItem) Code() string {
	return l.code
}

// UnitPrice returns the billed unit price.
func (l LineItem) UnitPrice() float64 {
	return l.unitPrice
}

// Batch returns the batch identifier, empty when the backend omitted it.
func (l LineItem) Batch() string {
	return l.batch
}

// Expiry returns the expiry attribute as delivered by the backend.
func (l LineItem) Expiry() string {
	return l.expiry
}

// PackageUnit returns the package unit attribute.
func (l LineItem) PackageUnit() string {
	return l.packageUnit
}

// Qty returns the billed quantity, always positive.
func (l LineItem) Qty() int {
	return l.qty
}
