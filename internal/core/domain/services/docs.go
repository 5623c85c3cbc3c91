// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the packing system. It implements workflows
// that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - ItemPooler: merges line items from multiple source orders into the
//     canonical item pool used by the allocation ledger
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
