package queries

import (
	"context"
	"time"

	"chipdrop/internal/core/domain/model/delivery"
	"chipdrop/internal/core/domain/model/kernel"
	"chipdrop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDeliveryQueryHandler retrieves a single delivery read model from the
// database. Reads go straight through SQL, bypassing the aggregate, per the
// CQRS split.
type GetDeliveryQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryQueryHandler creates a handler for single-delivery queries.
func NewGetDeliveryQueryHandler(db *gorm.DB) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{db: db}
}

// Handle executes the query. Returns an ObjectNotFoundError when no delivery
// exists under the given identifier.
func (h GetDeliveryQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryQuery,
) (GetDeliveryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	resp, err := h.fetchDelivery(ctx, query.DeliveryID())
	if err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	resp.Recipients, err = h.fetchRecipients(ctx, query.DeliveryID())
	if err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	resp.ProductIDs, err = h.fetchProductIDs(ctx, query.DeliveryID())
	if err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	return resp, nil
}

func (h GetDeliveryQueryHandler) fetchDelivery(
	ctx context.Context,
	deliveryID kernel.UUID,
) (GetDeliveryQueryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			assigned_by,
			assigned_to,
			status,
			details,
			recipient_note,
			company_note,
			created_at
		FROM deliveries
		WHERE id = ?
	`, deliveryID.Bytes()).Rows()
	if err != nil {
		return GetDeliveryQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetDeliveryQueryResponse{}, err
		}
		return GetDeliveryQueryResponse{}, errs.NewObjectNotFoundError("deliveryId", deliveryID.String())
	}

	var resp GetDeliveryQueryResponse
	var id, assignedBy, assignedTo uuid.UUID
	var status int

	err = rows.Scan(
		&id,
		&assignedBy,
		&assignedTo,
		&status,
		&resp.Details,
		&resp.RecipientNote,
		&resp.CompanyNote,
		&resp.CreatedAt,
	)
	if err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetDeliveryQueryResponse{}, err
	}
	if resp.AssignedBy, err = kernel.UUIDFromBytes(assignedBy[:]); err != nil {
		return GetDeliveryQueryResponse{}, err
	}
	if resp.AssignedTo, err = kernel.UUIDFromBytes(assignedTo[:]); err != nil {
		return GetDeliveryQueryResponse{}, err
	}
	resp.Status = delivery.Status(status)

	return resp, rows.Err()
}

func (h GetDeliveryQueryHandler) fetchRecipients(
	ctx context.Context,
	deliveryID kernel.UUID,
) ([]DeliveryRecipientResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			user_id,
			status,
			is_assigned,
			updated_at
		FROM delivery_recipients
		WHERE delivery_id = ?
		ORDER BY user_id
	`, deliveryID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipients := make([]DeliveryRecipientResponse, 0)
	for rows.Next() {
		var recipient DeliveryRecipientResponse
		var userID uuid.UUID
		var status int
		var updatedAt time.Time

		if err = rows.Scan(&userID, &status, &recipient.IsAssigned, &updatedAt); err != nil {
			return nil, err
		}
		if recipient.UserID, err = kernel.UUIDFromBytes(userID[:]); err != nil {
			return nil, err
		}
		recipient.Status = delivery.LinkStatus(status)
		recipient.UpdatedAt = updatedAt
		recipients = append(recipients, recipient)
	}

	return recipients, rows.Err()
}

func (h GetDeliveryQueryHandler) fetchProductIDs(
	ctx context.Context,
	deliveryID kernel.UUID,
) ([]kernel.UUID, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT product_id
		FROM delivery_products
		WHERE delivery_id = ?
		ORDER BY product_id
	`, deliveryID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	productIDs := make([]kernel.UUID, 0)
	for rows.Next() {
		var productID uuid.UUID
		if err = rows.Scan(&productID); err != nil {
			return nil, err
		}
		id, idErr := kernel.UUIDFromBytes(productID[:])
		if idErr != nil {
			return nil, idErr
		}
		productIDs = append(productIDs, id)
	}

	return productIDs, rows.Err()
}
