package queries

import (
	"context"

	"packing/internal/core/ports"
)

// GetSessionStateQueryHandler snapshots live sessions for the operator UI.
type GetSessionStateQueryHandler struct {
	sessions ports.SessionStore
}

// NewGetSessionStateQueryHandler creates a handler for session state queries.
func NewGetSessionStateQueryHandler(sessions ports.SessionStore) GetSessionStateQueryHandler {
	return GetSessionStateQueryHandler{sessions: sessions}
}

// Handle builds the full session snapshot.
func (h GetSessionStateQueryHandler) Handle(
	ctx context.Context,
	query GetSessionStateQuery,
) (GetSessionStateQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetSessionStateQueryResponse{}, err
	}

	s, err := h.sessions.Get(ctx, query.SessionID())
	if err != nil {
		return GetSessionStateQueryResponse{}, err
	}

	response := GetSessionStateQueryResponse{
		SessionID:          s.ID(),
		CustomerName:       s.CustomerName(),
		Orders:             make([]OrderView, 0),
		Pool:               make([]PooledItemView, 0),
		Containers:         make([]ContainerView, 0),
		Issues:             make([]IssueView, 0),
		CompletionBlockers: s.CompletionBlockers(),
	}

	for _, o := range s.Orders() {
		view := OrderView{
			OrderID: o.ID(),
			Status:  o.Status().String(),
		}
		if meta := o.Hold(); meta != nil {
			view.HolderEmail = meta.HolderEmail
			view.AssigneeEmail = meta.AssigneeEmail
		}
		response.Orders = append(response.Orders, view)
	}

	for _, item := range s.PooledItems() {
		response.Pool = append(response.Pool, PooledItemView{
			ItemKey:     item.Key(),
			Name:        item.Name(),
			Code:        item.Code(),
			UnitPrice:   item.UnitPrice(),
			Batch:       item.Batch(),
			Expiry:      item.Expiry(),
			PackageUnit: item.PackageUnit(),
			Required:    item.RequiredQty(),
			Assigned:    s.Assigned(item.Key()),
			Remaining:   s.Remaining(item.Key()),
		})
	}

	for _, c := range s.Containers() {
		view := ContainerView{
			ContainerID: c.ID(),
			Status:      c.Status().String(),
			Lines:       make([]ContainerLineView, 0),
		}
		for _, line := range c.Lines() {
			view.Lines = append(view.Lines, ContainerLineView{
				ItemKey: line.ItemKey(),
				Qty:     line.Qty(),
			})
		}
		response.Containers = append(response.Containers, view)
	}

	for _, report := range s.Issues() {
		response.Issues = append(response.Issues, IssueView{
			ItemKey: report.ItemKey(),
			Tags:    report.Tags(),
			Note:    report.Note(),
		})
	}

	return response, nil
}
