package queries

import (
	"context"

	"chipdrop/internal/core/domain/model/delivery"
	"chipdrop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingDeliveriesQueryHandler retrieves a user's open delivery requests
// from the database. A request is open while the delivery is Requested and
// the user's link is still Pending, so an accepted or expired delivery drops
// out of the result without extra filtering in callers.
type GetPendingDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingDeliveriesQueryHandler creates a handler for pending request
// queries.
func NewGetPendingDeliveriesQueryHandler(db *gorm.DB) GetPendingDeliveriesQueryHandler {
	return GetPendingDeliveriesQueryHandler{db: db}
}

// Handle executes the query. Results are ordered oldest first so recipients
// see requests closest to expiry on top.
func (h GetPendingDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetPendingDeliveriesQuery,
) ([]GetPendingDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries := make([]GetPendingDeliveriesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.assigned_by,
			d.details,
			d.recipient_note,
			d.created_at
		FROM deliveries d
		JOIN delivery_recipients r ON r.delivery_id = d.id
		WHERE r.user_id = ?
		  AND r.status = ?
		  AND d.status = ?
		ORDER BY d.created_at
	`, query.UserID().Bytes(), delivery.LinkStatusPending, delivery.StatusRequested).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetPendingDeliveriesQueryResponse
		var id, assignedBy uuid.UUID

		err = rows.Scan(
			&id,
			&assignedBy,
			&resp.Details,
			&resp.RecipientNote,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.AssignedBy, err = kernel.UUIDFromBytes(assignedBy[:]); err != nil {
			return nil, err
		}
		deliveries = append(deliveries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
