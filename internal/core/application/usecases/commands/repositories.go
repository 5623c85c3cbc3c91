// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management
// where persistence is involved, and explicit error returns.
package commands

import (
	"context"

	"packing/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// HoldRepoFactory provides access to the hold repository within a transaction.
	HoldRepoFactory interface {
		HoldRepository() ports.HoldRepository
	}

	// HoldUoW manages transactions for hold record operations.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   repo := uow.HoldRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	HoldUoW interface {
		TxManager
		HoldRepoFactory
	}

	// HoldUoWFactory creates new hold unit of work instances.
	HoldUoWFactory interface {
		Create() HoldUoW
	}
)
