// Package billing implements HTTP clients for the billing backend: fetching
// source orders, submitting consolidation manifests, and escalating orders for
// review. Wire payloads are converted to domain types at this boundary; no raw
// JSON crosses into the core.
package billing

import (
	"packing/internal/core/domain/model/container"
	"packing/internal/core/domain/model/order"
	"packing/internal/core/domain/model/pool"
	"packing/internal/core/domain/model/session"

	"github.com/google/uuid"
)

// lineItemDTO is one billed line as delivered by the backend.
type lineItemDTO struct {
	ItemKey     string  `json:"itemKey"`
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	UnitPrice   float64 `json:"unitPrice"`
	Batch       string  `json:"batch"`
	Expiry      string  `json:"expiry"`
	PackageUnit string  `json:"packageUnit"`
	Qty         int     `json:"qty"`
}

// orderDTO is the backend's order shape.
type orderDTO struct {
	ID              string        `json:"id"`
	CustomerName    string        `json:"customerName"`
	DeliveryAddress string        `json:"deliveryAddress"`
	Phone           string        `json:"phone"`
	Status          string        `json:"status"`
	Items           []lineItemDTO `json:"items"`
}

// toDomain normalizes the wire order into a domain source order. Malformed
// payloads are rejected here so the core only ever sees validated orders.
func (dto orderDTO) toDomain() (*order.SourceOrder, error) {
	status, err := order.StatusFromWire(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewLineItem(
			itemDTO.ItemKey, itemDTO.Name, itemDTO.Code,
			itemDTO.UnitPrice,
			itemDTO.Batch, itemDTO.Expiry, itemDTO.PackageUnit,
			itemDTO.Qty,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreSourceOrder(
		dto.ID, dto.CustomerName, dto.DeliveryAddress, dto.Phone,
		items, status, nil,
	)
}

// sourcePortionDTO attributes part of a container line to one source order.
type sourcePortionDTO struct {
	OrderID string `json:"orderId"`
	Qty     int    `json:"qty"`
}

// containerLineDTO is one packed line with its item identity and per-order
// breakdown.
type containerLineDTO struct {
	ItemKey string             `json:"itemKey"`
	Name    string             `json:"name"`
	Code    string             `json:"code"`
	Qty     int                `json:"qty"`
	Sources []sourcePortionDTO `json:"sourceBreakdown"`
}

// containerDTO is one completed container of the consolidation manifest.
type containerDTO struct {
	ContainerID string             `json:"id"`
	Labeled     bool               `json:"labeled"`
	Lines       []containerLineDTO `json:"items"`
}

// consolidationDTO is the completion payload. ConsolidationID is generated
// fresh per submission, so an operator-initiated resubmission after a
// collision goes out under a new id.
type consolidationDTO struct {
	ConsolidationID string         `json:"consolidationId"`
	CustomerName    string         `json:"customerName"`
	OrderIDs        []string       `json:"orderIds"`
	Containers      []containerDTO `json:"containers"`
}

// consolidationResponseDTO is the backend's acknowledgment of a completion.
type consolidationResponseDTO struct {
	ConsolidatedSessionID string `json:"consolidatedSessionId"`
}

// reviewDTO escalates one source order for manual review.
type reviewDTO struct {
	OrderID       string `json:"orderId"`
	ReporterEmail string `json:"reporterEmail"`
	Summary       string `json:"summary"`
}

// consolidationFromSession builds the completion payload from a finished session.
func consolidationFromSession(s *session.PackingSession) consolidationDTO {
	dto := consolidationDTO{
		ConsolidationID: uuid.NewString(),
		CustomerName:    s.CustomerName(),
		OrderIDs:        s.OrderIDs(),
		Containers:      make([]containerDTO, 0),
	}

	itemsByKey := make(map[string]*pool.PooledItem)
	for _, item := range s.PooledItems() {
		itemsByKey[item.Key()] = item
	}

	for _, c := range s.Containers() {
		packed := containerDTO{
			ContainerID: c.ID(),
			Labeled:     c.Status() == container.Labeled,
			Lines:       make([]containerLineDTO, 0, len(c.Lines())),
		}

		for _, line := range c.Lines() {
			packedLine := containerLineDTO{
				ItemKey: line.ItemKey(),
				Qty:     line.Qty(),
				Sources: make([]sourcePortionDTO, 0, len(line.Sources())),
			}
			if item, ok := itemsByKey[line.ItemKey()]; ok {
				packedLine.Name = item.Name()
				packedLine.Code = item.Code()
			}
			for _, portion := range line.Sources() {
				packedLine.Sources = append(packedLine.Sources, sourcePortionDTO{
					OrderID: portion.OrderID,
					Qty:     portion.Qty,
				})
			}
			packed.Lines = append(packed.Lines, packedLine)
		}

		dto.Containers = append(dto.Containers, packed)
	}

	return dto
}
