package queries

import (
	"errors"
	"time"

	"chipdrop/internal/core/domain/model/delivery"
	"chipdrop/internal/core/domain/model/kernel"
	"chipdrop/internal/pkg/guard"
)

var (
	ErrGetDeliveryQueryIsNotConstructed = errors.New(
		"GetDeliveryQuery must be created via NewGetDeliveryQuery constructor",
	)
)

// GetDeliveryQuery retrieves one delivery with its recipient links and
// product links.
//
// Example:
//
//	query, err := NewGetDeliveryQuery(deliveryID)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetDeliveryQueryHandler(db)
//	resp, err := handler.Handle(ctx, query)
type GetDeliveryQuery struct {
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDeliveryQuery creates a query for a single delivery.
func NewGetDeliveryQuery(deliveryID kernel.UUID) (GetDeliveryQuery, error) {
	if err := deliveryID.Validate(); err != nil {
		return GetDeliveryQuery{}, err
	}
	return GetDeliveryQuery{
		deliveryID: deliveryID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryQueryIsNotConstructed)
}

// DeliveryID returns the identifier of the delivery to fetch.
func (q GetDeliveryQuery) DeliveryID() kernel.UUID {
	return q.deliveryID
}

// GetDeliveryQueryResponse is the full read model of one delivery.
type GetDeliveryQueryResponse struct {
	ID            kernel.UUID
	AssignedBy    kernel.UUID
	AssignedTo    kernel.UUID
	Status        delivery.Status
	Details       string
	RecipientNote string
	CompanyNote   string
	CreatedAt     time.Time
	Recipients    []DeliveryRecipientResponse
	ProductIDs    []kernel.UUID
}

// DeliveryRecipientResponse is the read model of one recipient link.
type DeliveryRecipientResponse struct {
	UserID     kernel.UUID
	Status     delivery.LinkStatus
	IsAssigned bool
	UpdatedAt  time.Time
}
