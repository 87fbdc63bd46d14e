package deliveryrepo

import (
	"context"
	"errors"
	"time"

	"chipdrop/internal/core/domain/model/delivery"
	"chipdrop/internal/core/domain/model/kernel"
	"chipdrop/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const uniqueViolationCode = "23505"

// GormDeliveryRepository implements DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// isDuplicate reports whether the error is a unique key violation.
func isDuplicate(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolationCode
}

// Add saves a new delivery with all its recipient and product links.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isDuplicate(err) {
			return errs.NewObjectAlreadyExistsError("delivery", aggregate.ID().String())
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the delivery row together with the recipient links' assignment
// flags, so a reassignment lands in one write path. Link acceptance and
// product links have their own write paths.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Where("id = ?", dto.ID).
		Select("assigned_to", "status", "details", "recipient_note", "company_note").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery", aggregate.ID().String())
	}

	for _, link := range dto.Recipients {
		err := r.db.WithContext(ctx).
			Model(&RecipientDTO{}).
			Where("delivery_id = ? AND user_id = ?", link.DeliveryID, link.UserID).
			Updates(map[string]any{
				"is_assigned": link.IsAssigned,
				"updated_at":  link.UpdatedAt,
			}).Error
		if err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateStatus writes only the status column of the delivery row.
func (r *GormDeliveryRepository) UpdateStatus(ctx context.Context, id kernel.UUID, status delivery.Status) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Where("id = ?", id.Bytes()).
		Update("status", int(status))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery", id.String())
	}
	return nil
}

// UpdateStatusGuarded writes the status column only when the row still holds
// the expected status. Reports whether a row was changed, so a sweep that
// races a concurrent transition counts nothing twice.
func (r *GormDeliveryRepository) UpdateStatusGuarded(
	ctx context.Context,
	id kernel.UUID,
	from, to delivery.Status,
) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), int(from)).
		Update("status", int(to))
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// MarkWarned stamps the delivery's warning time. The guard on warned_at and
// status means a delivery is claimed for warning exactly once, no matter how
// many sweeps overlap.
func (r *GormDeliveryRepository) MarkWarned(ctx context.Context, id kernel.UUID, at time.Time) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	result := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Where("id = ? AND status = ? AND warned_at IS NULL", id.Bytes(), int(delivery.StatusScheduled)).
		Update("warned_at", at)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// UpdateRecipientStatus writes one recipient link row.
func (r *GormDeliveryRepository) UpdateRecipientStatus(ctx context.Context, link *delivery.Recipient) error {
	if err := link.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&RecipientDTO{}).
		Where("delivery_id = ? AND user_id = ?", link.DeliveryID().Bytes(), link.UserID().Bytes()).
		Updates(map[string]any{
			"status":      int(link.Status()),
			"is_assigned": link.IsAssigned(),
			"updated_at":  time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("recipient", link.UserID().String())
	}
	return nil
}

// AddRecipient inserts one recipient link row.
func (r *GormDeliveryRepository) AddRecipient(ctx context.Context, link *delivery.Recipient) error {
	if err := link.Validate(); err != nil {
		return err
	}

	dto := recipientFromDomain(link)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isDuplicate(err) {
			return errs.NewObjectAlreadyExistsError("recipient", link.UserID().String())
		}
		return err
	}
	return nil
}

// RemoveRecipient deletes one recipient link row.
func (r *GormDeliveryRepository) RemoveRecipient(ctx context.Context, deliveryID, userID kernel.UUID) error {
	if err := errors.Join(deliveryID.Validate(), userID.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Where("delivery_id = ? AND user_id = ?", deliveryID.Bytes(), userID.Bytes()).
		Delete(&RecipientDTO{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("recipient", userID.String())
	}
	return nil
}

// Delete removes the delivery with all its link rows. Links go first so the
// delete works the same with or without database-level cascades.
func (r *GormDeliveryRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	if err := db.Where("delivery_id = ?", id.Bytes()).Delete(&ProductDTO{}).Error; err != nil {
		return err
	}
	if err := db.Where("delivery_id = ?", id.Bytes()).Delete(&RecipientDTO{}).Error; err != nil {
		return err
	}

	result := db.Where("id = ?", id.Bytes()).Delete(&DeliveryDTO{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery", id.String())
	}
	return nil
}

// Get retrieves a delivery by ID with all its links.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	err := r.db.WithContext(ctx).
		Preload("Recipients").
		Preload("Products").
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetScheduledBefore retrieves all scheduled deliveries created before the
// cutoff. Expired and delivered rows never match, which keeps repeated
// expiry sweeps idempotent.
func (r *GormDeliveryRepository) GetScheduledBefore(ctx context.Context, cutoff time.Time) ([]*delivery.Delivery, error) {
	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).
		Preload("Recipients").
		Preload("Products").
		Find(&dtos, "status = ? AND created_at < ?", int(delivery.StatusScheduled), cutoff).Error
	if err != nil {
		return nil, err
	}

	deliveries := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}

	return deliveries, nil
}
