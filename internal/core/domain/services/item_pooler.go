package services

import (
	"errors"
	"fmt"

	"packing/internal/core/domain/model/order"
	"packing/internal/core/domain/model/pool"
)

// ErrNoOrdersToPool is returned when Build is called with an empty order set.
var ErrNoOrdersToPool = errors.New("no orders to pool")

// ErrDuplicateOrderInPool is returned when the same source order appears twice
// in the set handed to the pooler.
var ErrDuplicateOrderInPool = errors.New("duplicate source order in pool input")

// ItemPooler is a domain service that merges per-order line items into the
// canonical item pool.
//
// Merge rules:
//   - Items merge by product key in first-seen order
//   - Quantities for the same key sum across orders
//   - Contribution records append in the order the orders are processed,
//     so the result is deterministic for a given input order
//
// The pooler is all-or-nothing: any invalid order or line aborts the build and
// no partial pool is returned.
type ItemPooler struct{}

// NewItemPooler creates a new ItemPooler instance.
func NewItemPooler() ItemPooler {
	return ItemPooler{}
}

// Build merges the line items of the given source orders into pooled items.
//
// Returns the pooled items in first-seen key order, or an error if the order
// set is empty, contains duplicates, or carries an invalid order.
func (p ItemPooler) Build(orders []*order.SourceOrder) ([]*pool.PooledItem, error) {
	if len(orders) == 0 {
		return nil, ErrNoOrdersToPool
	}

	seen := make(map[string]struct{}, len(orders))
	byKey := make(map[string]*pool.PooledItem)
	pooled := make([]*pool.PooledItem, 0)

	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seen[o.ID()]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateOrderInPool, o.ID())
		}
		seen[o.ID()] = struct{}{}

		for _, item := range o.Items() {
			existing, ok := byKey[item.ItemKey()]
			if !ok {
				created, err := pool.NewPooledItem(item, o.ID())
				if err != nil {
					return nil, err
				}
				byKey[item.ItemKey()] = created
				pooled = append(pooled, created)
				continue
			}

			if err := existing.Absorb(item, o.ID()); err != nil {
				return nil, err
			}
		}
	}

	return pooled, nil
}
