package queries

import (
	"context"

	"chipdrop/internal/core/domain/model/delivery"
	"chipdrop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCompanyDeliveriesQueryHandler retrieves a company's assigned deliveries
// from the database.
type GetCompanyDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetCompanyDeliveriesQueryHandler creates a handler for company overview
// queries.
func NewGetCompanyDeliveriesQueryHandler(db *gorm.DB) GetCompanyDeliveriesQueryHandler {
	return GetCompanyDeliveriesQueryHandler{db: db}
}

// Handle executes the query. Newest deliveries come first.
func (h GetCompanyDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetCompanyDeliveriesQuery,
) ([]GetCompanyDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries := make([]GetCompanyDeliveriesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			assigned_to,
			status,
			details,
			created_at
		FROM deliveries
		WHERE assigned_by = ?
		ORDER BY created_at DESC
	`, query.CompanyID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetCompanyDeliveriesQueryResponse
		var id, assignedTo uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&assignedTo,
			&status,
			&resp.Details,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.AssignedTo, err = kernel.UUIDFromBytes(assignedTo[:]); err != nil {
			return nil, err
		}
		resp.Status = delivery.Status(status)
		deliveries = append(deliveries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
