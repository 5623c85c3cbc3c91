package queries

import (
	"context"

	"packing/internal/core/domain/model/container"
	"packing/internal/core/ports"
)

// GetContainerManifestsQueryHandler produces label hand-off data for completed
// containers. Open containers are excluded; their contents are still mutable.
type GetContainerManifestsQueryHandler struct {
	sessions ports.SessionStore
}

// NewGetContainerManifestsQueryHandler creates a handler for manifest queries.
func NewGetContainerManifestsQueryHandler(sessions ports.SessionStore) GetContainerManifestsQueryHandler {
	return GetContainerManifestsQueryHandler{sessions: sessions}
}

// Handle builds one manifest per completed container. Delivery address and
// phone come from the first active order; all orders in a session belong to
// the same customer.
func (h GetContainerManifestsQueryHandler) Handle(
	ctx context.Context,
	query GetContainerManifestsQuery,
) ([]GetContainerManifestsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	s, err := h.sessions.Get(ctx, query.SessionID())
	if err != nil {
		return nil, err
	}

	address := ""
	phone := ""
	if orders := s.Orders(); len(orders) > 0 {
		address = orders[0].DeliveryAddress()
		phone = orders[0].Phone()
	}

	namesByKey := make(map[string]string)
	codesByKey := make(map[string]string)
	for _, item := range s.PooledItems() {
		namesByKey[item.Key()] = item.Name()
		codesByKey[item.Key()] = item.Code()
	}

	manifests := make([]GetContainerManifestsQueryResponse, 0)
	for _, c := range s.Containers() {
		if !c.Status().IsFinished() {
			continue
		}

		manifest := GetContainerManifestsQueryResponse{
			ContainerID:     c.ID(),
			CustomerName:    s.CustomerName(),
			DeliveryAddress: address,
			Phone:           phone,
			Labeled:         c.Status() == container.Labeled,
			Items:           make([]ManifestItemView, 0),
		}

		for _, line := range c.Lines() {
			manifest.Items = append(manifest.Items, ManifestItemView{
				ItemKey: line.ItemKey(),
				Name:    namesByKey[line.ItemKey()],
				Code:    codesByKey[line.ItemKey()],
				Qty:     line.Qty(),
			})
		}

		manifests = append(manifests, manifest)
	}

	return manifests, nil
}
