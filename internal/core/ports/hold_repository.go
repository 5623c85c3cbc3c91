// Package ports defines repository and outbound client interfaces for the
// packing domain. These interfaces establish contracts between the domain layer
// and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"packing/internal/core/domain/model/hold"
	"packing/internal/core/domain/model/kernel"
)

// HoldRepository defines the persistence contract for hold records.
// A hold survives process restarts so the consolidation coordinator works
// across operator shifts.
type HoldRepository interface {
	// Add persists a new hold record.
	// Fails when the order is already parked under any grouping key;
	// a source order belongs to at most one hold at a time.
	Add(ctx context.Context, record *hold.HoldRecord) error

	// Update persists changes to an existing hold record, such as delegation
	// to another operator.
	Update(ctx context.Context, record *hold.HoldRecord) error

	// Get retrieves a hold record by its unique identifier.
	// Returns errs.ErrObjectNotFound when no such record exists.
	Get(ctx context.Context, id kernel.UUID) (*hold.HoldRecord, error)

	// GetByOrderID retrieves the hold record parking the given source order.
	// Returns errs.ErrObjectNotFound when the order is not held.
	GetByOrderID(ctx context.Context, orderID string) (*hold.HoldRecord, error)

	// GetByGroupingKey retrieves all records of one consolidation group in
	// held-at order. An unknown key yields an empty slice, not an error.
	GetByGroupingKey(ctx context.Context, groupingKey string) ([]*hold.HoldRecord, error)

	// Remove deletes a hold record, releasing its order for packing.
	Remove(ctx context.Context, id kernel.UUID) error
}
