package queries

import (
	"errors"

	"packing/internal/core/domain/model/kernel"
	"packing/internal/pkg/guard"
)

var ErrGetContainerManifestsQueryIsNotConstructed = errors.New(
	"GetContainerManifestsQuery must be created via NewGetContainerManifestsQuery constructor",
)

// GetContainerManifestsQuery retrieves label hand-off data for every completed
// container of a session. The external label renderer consumes this shape.
type GetContainerManifestsQuery struct {
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetContainerManifestsQuery creates a query for a session's container manifests.
func NewGetContainerManifestsQuery(sessionID kernel.UUID) (GetContainerManifestsQuery, error) {
	if err := sessionID.Validate(); err != nil {
		return GetContainerManifestsQuery{}, err
	}

	return GetContainerManifestsQuery{
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetContainerManifestsQuery) Validate() error {
	return q.guard.Validate(ErrGetContainerManifestsQueryIsNotConstructed)
}

// SessionID returns the target session identifier.
func (q GetContainerManifestsQuery) SessionID() kernel.UUID {
	return q.sessionID
}

// ManifestItemView is one line of a container manifest.
type ManifestItemView struct {
	ItemKey string
	Name    string
	Code    string
	Qty     int
}

// GetContainerManifestsQueryResponse is the label hand-off data for one
// completed container.
type GetContainerManifestsQueryResponse struct {
	ContainerID     string
	CustomerName    string
	DeliveryAddress string
	Phone           string
	Labeled         bool
	Items           []ManifestItemView
}
