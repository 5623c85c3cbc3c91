// Package queries contains read-only operations in the CQRS architecture.
// Query handlers read either the postgres hold records directly or the live
// session store, bypassing the command-side aggregates.
package queries

import (
	"errors"
	"time"

	"packing/internal/pkg/guard"
)

var ErrGetHeldOrdersQueryIsNotConstructed = errors.New(
	"GetHeldOrdersQuery must be created via NewGetHeldOrdersQuery constructor",
)

// GetHeldOrdersQuery retrieves the parked orders of the consolidation
// coordinator, optionally filtered by the exact customer name.
//
// Example:
//
//	query := NewGetHeldOrdersQuery("ACME Pharmacy")
//	handler := NewGetHeldOrdersQueryHandler(db)
//
//	held, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list held orders: %w", err)
//	}
type GetHeldOrdersQuery struct {
	customerName string

	guard guard.ConstructorGuard
}

// NewGetHeldOrdersQuery creates a query for held orders.
// An empty customer name lists every hold group.
func NewGetHeldOrdersQuery(customerName string) GetHeldOrdersQuery {
	return GetHeldOrdersQuery{
		customerName: customerName,
		guard:        guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q GetHeldOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetHeldOrdersQueryIsNotConstructed)
}

// CustomerName returns the grouping key filter, empty for no filter.
func (q GetHeldOrdersQuery) CustomerName() string {
	return q.customerName
}

// GetHeldOrdersQueryResponse represents one parked order.
type GetHeldOrdersQueryResponse struct {
	OrderID       string
	CustomerName  string
	HolderEmail   string
	AssigneeEmail string
	HeldAt        time.Time
}
