package ports

import (
	"context"
	"time"

	"chipdrop/internal/core/domain/model/delivery"
	"chipdrop/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
// All write methods run against the transaction of the owning unit of work, so
// the lifecycle engine controls atomicity boundaries, not the store.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate: the delivery row, one row per
	// recipient link, and one row per product link.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery row and its recipient
	// links' assignment flags.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// UpdateStatus persists a status value for a delivery.
	// The transition must already be validated on the aggregate.
	UpdateStatus(ctx context.Context, id kernel.UUID, status delivery.Status) error

	// UpdateStatusGuarded persists a status value only when the stored status
	// still equals from. Returns false when no row matched, which makes
	// repeated sweeps idempotent and keeps a racing explicit update intact.
	UpdateStatusGuarded(ctx context.Context, id kernel.UUID, from, to delivery.Status) (bool, error)

	// MarkWarned claims a scheduled delivery's expiry-warning slot. Returns
	// false when the delivery was already warned or is no longer Scheduled,
	// so each delivery gets at most one warning across repeated sweeps.
	MarkWarned(ctx context.Context, id kernel.UUID, at time.Time) (bool, error)

	// UpdateRecipientStatus persists a recipient link's acceptance state.
	UpdateRecipientStatus(ctx context.Context, recipient *delivery.Recipient) error

	// AddRecipient persists a new recipient link row.
	AddRecipient(ctx context.Context, recipient *delivery.Recipient) error

	// RemoveRecipient deletes a recipient link row.
	RemoveRecipient(ctx context.Context, deliveryID, userID kernel.UUID) error

	// Delete removes the delivery and cascades over its recipient and product
	// link rows. The cascade is performed by the store, not the schema.
	Delete(ctx context.Context, id kernel.UUID) error

	// Get retrieves a delivery aggregate with its recipient and product links.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetScheduledBefore retrieves all Scheduled deliveries created before the
	// cutoff. Non-Scheduled deliveries are excluded by the scan itself.
	GetScheduledBefore(ctx context.Context, cutoff time.Time) ([]*delivery.Delivery, error)
}
