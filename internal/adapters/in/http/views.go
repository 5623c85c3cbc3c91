package http

import (
	"packing/internal/core/application/usecases/queries"
)

// JSON shapes for the session state endpoint.
type (
	pooledItemJSON struct {
		ItemKey     string  `json:"itemKey"`
		Name        string  `json:"name"`
		Code        string  `json:"code"`
		UnitPrice   float64 `json:"unitPrice"`
		Batch       string  `json:"batch,omitempty"`
		Expiry      string  `json:"expiry,omitempty"`
		PackageUnit string  `json:"packageUnit,omitempty"`
		Required    int     `json:"required"`
		Assigned    int     `json:"assigned"`
		Remaining   int     `json:"remaining"`
	}

	containerLineJSON struct {
		ItemKey string `json:"itemKey"`
		Qty     int    `json:"qty"`
	}

	containerJSON struct {
		ContainerID string              `json:"containerId"`
		Status      string              `json:"status"`
		Lines       []containerLineJSON `json:"lines"`
	}

	orderJSON struct {
		OrderID       string `json:"orderId"`
		Status        string `json:"status"`
		HolderEmail   string `json:"holderEmail,omitempty"`
		AssigneeEmail string `json:"assigneeEmail,omitempty"`
	}

	issueJSON struct {
		ItemKey string   `json:"itemKey"`
		Tags    []string `json:"tags"`
		Note    string   `json:"note,omitempty"`
	}

	sessionStateJSON struct {
		SessionID          string           `json:"sessionId"`
		CustomerName       string           `json:"customerName"`
		Orders             []orderJSON      `json:"orders"`
		Pool               []pooledItemJSON `json:"pool"`
		Containers         []containerJSON  `json:"containers"`
		Issues             []issueJSON      `json:"issues"`
		CompletionBlockers []string         `json:"completionBlockers"`
	}

	manifestItemJSON struct {
		ItemKey string `json:"itemKey"`
		Name    string `json:"name"`
		Code    string `json:"code"`
		Qty     int    `json:"qty"`
	}

	manifestJSON struct {
		ContainerID     string             `json:"containerId"`
		CustomerName    string             `json:"customerName"`
		DeliveryAddress string             `json:"deliveryAddress"`
		Phone           string             `json:"phone"`
		Labeled         bool               `json:"labeled"`
		Items           []manifestItemJSON `json:"items"`
	}
)

func sessionStateResponse(state queries.GetSessionStateQueryResponse) sessionStateJSON {
	response := sessionStateJSON{
		SessionID:          state.SessionID.String(),
		CustomerName:       state.CustomerName,
		Orders:             make([]orderJSON, len(state.Orders)),
		Pool:               make([]pooledItemJSON, len(state.Pool)),
		Containers:         make([]containerJSON, len(state.Containers)),
		Issues:             make([]issueJSON, len(state.Issues)),
		CompletionBlockers: state.CompletionBlockers,
	}

	for i, o := range state.Orders {
		response.Orders[i] = orderJSON{
			OrderID:       o.OrderID,
			Status:        o.Status,
			HolderEmail:   o.HolderEmail,
			AssigneeEmail: o.AssigneeEmail,
		}
	}

	for i, item := range state.Pool {
		response.Pool[i] = pooledItemJSON{
			ItemKey:     item.ItemKey,
			Name:        item.Name,
			Code:        item.Code,
			UnitPrice:   item.UnitPrice,
			Batch:       item.Batch,
			Expiry:      item.Expiry,
			PackageUnit: item.PackageUnit,
			Required:    item.Required,
			Assigned:    item.Assigned,
			Remaining:   item.Remaining,
		}
	}

	for i, c := range state.Containers {
		lines := make([]containerLineJSON, len(c.Lines))
		for j, line := range c.Lines {
			lines[j] = containerLineJSON{ItemKey: line.ItemKey, Qty: line.Qty}
		}
		response.Containers[i] = containerJSON{
			ContainerID: c.ContainerID,
			Status:      c.Status,
			Lines:       lines,
		}
	}

	for i, issue := range state.Issues {
		response.Issues[i] = issueJSON{
			ItemKey: issue.ItemKey,
			Tags:    issue.Tags,
			Note:    issue.Note,
		}
	}

	return response
}

func manifestsResponse(manifests []queries.GetContainerManifestsQueryResponse) []manifestJSON {
	response := make([]manifestJSON, len(manifests))
	for i, manifest := range manifests {
		items := make([]manifestItemJSON, len(manifest.Items))
		for j, item := range manifest.Items {
			items[j] = manifestItemJSON{
				ItemKey: item.ItemKey,
				Name:    item.Name,
				Code:    item.Code,
				Qty:     item.Qty,
			}
		}
		response[i] = manifestJSON{
			ContainerID:     manifest.ContainerID,
			CustomerName:    manifest.CustomerName,
			DeliveryAddress: manifest.DeliveryAddress,
			Phone:           manifest.Phone,
			Labeled:         manifest.Labeled,
			Items:           items,
		}
	}
	return response
}
