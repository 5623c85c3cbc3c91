// Package holdrepo provides data transfer objects and mapping functions for
// hold record persistence. This package implements the repository pattern for
// the consolidation coordinator, handling the conversion between domain
// entities and database representations.
package holdrepo

import (
	"time"

	"packing/internal/core/domain/model/hold"
	"packing/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// HoldDTO represents the database structure for persisting hold records.
// The unique index on order_id enforces that a source order is parked at most
// once; the grouping_key index serves group lookups.
type HoldDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID       string    `gorm:"uniqueIndex"`
	GroupingKey   string    `gorm:"index"`
	HolderEmail   string
	AssigneeEmail string
	HeldAt        time.Time
}

// TableName specifies the database table name for hold records.
func (HoldDTO) TableName() string {
	return "holds"
}

// fromDomain converts a hold record to its database representation.
func fromDomain(record *hold.HoldRecord) HoldDTO {
	return HoldDTO{
		ID:            record.ID().Bytes(),
		OrderID:       record.OrderID(),
		GroupingKey:   record.GroupingKey(),
		HolderEmail:   record.HolderEmail(),
		AssigneeEmail: record.AssigneeEmail(),
		HeldAt:        record.HeldAt(),
	}
}

// toDomain converts a database DTO to a hold record using RestoreHoldRecord.
func toDomain(dto HoldDTO) (*hold.HoldRecord, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return hold.RestoreHoldRecord(
		id,
		dto.OrderID,
		dto.GroupingKey,
		dto.HolderEmail,
		dto.AssigneeEmail,
		dto.HeldAt,
	)
}
