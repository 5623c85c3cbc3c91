package holdrepo

import (
	"context"
	"errors"

	"packing/internal/core/domain/model/hold"
	"packing/internal/core/domain/model/kernel"
	"packing/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormHoldRepository implements HoldRepository using GORM.
type GormHoldRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormHoldRepository creates a new GORM hold repository.
func NewGormHoldRepository(db *gorm.DB, tracker aggregateTracker) *GormHoldRepository {
	return &GormHoldRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new hold record to the database. The unique index on order_id
// rejects a second hold on the same order.
func (r *GormHoldRepository) Add(ctx context.Context, record *hold.HoldRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(record.ID(), record)
	return nil
}

// Update saves an existing hold record to the database.
func (r *GormHoldRepository) Update(ctx context.Context, record *hold.HoldRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	result := r.db.WithContext(ctx).Model(&HoldDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(record.ID(), record)
	return nil
}

// Get retrieves a hold record by ID.
func (r *GormHoldRepository) Get(ctx context.Context, id kernel.UUID) (*hold.HoldRecord, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto HoldDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("hold", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrderID retrieves the hold record parking the given source order.
func (r *GormHoldRepository) GetByOrderID(ctx context.Context, orderID string) (*hold.HoldRecord, error) {
	if orderID == "" {
		return nil, errs.NewValueIsRequiredError("orderID")
	}

	var dto HoldDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("hold", orderID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByGroupingKey retrieves a consolidation group's records in held-at order.
func (r *GormHoldRepository) GetByGroupingKey(
	ctx context.Context,
	groupingKey string,
) ([]*hold.HoldRecord, error) {
	if groupingKey == "" {
		return nil, errs.NewValueIsRequiredError("groupingKey")
	}

	var dtos []HoldDTO
	err := r.db.WithContext(ctx).
		Order("held_at").
		Find(&dtos, "grouping_key = ?", groupingKey).Error
	if err != nil {
		return nil, err
	}

	records := make([]*hold.HoldRecord, 0, len(dtos))
	for _, dto := range dtos {
		record, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		records = append(records, record)
	}

	return records, nil
}

// Remove deletes a hold record, releasing its order for packing.
func (r *GormHoldRepository) Remove(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&HoldDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("hold", id.String())
	}

	return nil
}
