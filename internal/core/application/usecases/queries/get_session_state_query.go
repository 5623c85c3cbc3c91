package queries

import (
	"errors"

	"packing/internal/core/domain/model/kernel"
	"packing/internal/pkg/guard"
)

var ErrGetSessionStateQueryIsNotConstructed = errors.New(
	"GetSessionStateQuery must be created via NewGetSessionStateQuery constructor",
)

// GetSessionStateQuery retrieves the full operator view of one live packing
// session: the pool with remaining quantities, the containers with their
// lines, order statuses and current completion blockers.
type GetSessionStateQuery struct {
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetSessionStateQuery creates a query for one session's state.
func NewGetSessionStateQuery(sessionID kernel.UUID) (GetSessionStateQuery, error) {
	if err := sessionID.Validate(); err != nil {
		return GetSessionStateQuery{}, err
	}

	return GetSessionStateQuery{
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetSessionStateQuery) Validate() error {
	return q.guard.Validate(ErrGetSessionStateQueryIsNotConstructed)
}

// SessionID returns the target session identifier.
func (q GetSessionStateQuery) SessionID() kernel.UUID {
	return q.sessionID
}

// PooledItemView is the operator view of one pooled item.
type PooledItemView struct {
	ItemKey     string
	Name        string
	Code        string
	UnitPrice   float64
	Batch       string
	Expiry      string
	PackageUnit string
	Required    int
	Assigned    int
	Remaining   int
}

// ContainerLineView is one allocated line inside a container.
type ContainerLineView struct {
	ItemKey string
	Qty     int
}

// ContainerView is the operator view of one container.
type ContainerView struct {
	ContainerID string
	Status      string
	Lines       []ContainerLineView
}

// OrderView is the status of one active source order. The hold emails carry
// the consolidation provenance and are empty for orders packed directly.
type OrderView struct {
	OrderID       string
	Status        string
	HolderEmail   string
	AssigneeEmail string
}

// IssueView is one pending issue report.
type IssueView struct {
	ItemKey string
	Tags    []string
	Note    string
}

// GetSessionStateQueryResponse is the full session snapshot.
type GetSessionStateQueryResponse struct {
	SessionID          kernel.UUID
	CustomerName       string
	Orders             []OrderView
	Pool               []PooledItemView
	Containers         []ContainerView
	Issues             []IssueView
	CompletionBlockers []string
}
