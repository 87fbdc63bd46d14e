// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery persistence. It implements the repository pattern for the
// delivery aggregate, converting between domain entities and the relational
// schema: one delivery row plus one row per recipient link and product link.
package deliveryrepo

import (
	"time"

	"chipdrop/internal/core/domain/model/delivery"
	"chipdrop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery
// aggregates. Recipient and product links live in child tables keyed by the
// delivery, so a create inserts the whole aggregate in one transaction.
type DeliveryDTO struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	AssignedBy    uuid.UUID      `gorm:"type:uuid;not null;index"`
	AssignedTo    uuid.UUID      `gorm:"type:uuid;not null"`
	Status        int            `gorm:"type:int;not null;index"`
	Details       string         `gorm:"type:text;not null"`
	RecipientNote string         `gorm:"type:text"`
	CompanyNote   string         `gorm:"type:text"`
	CreatedAt     time.Time      `gorm:"not null;index"`
	WarnedAt      *time.Time
	Recipients    []RecipientDTO `gorm:"foreignKey:DeliveryID;constraint:OnDelete:CASCADE"`
	Products      []ProductDTO   `gorm:"foreignKey:DeliveryID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for delivery entities.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// RecipientDTO represents one recipient link row. The composite key
// (delivery, user) makes double-linking a user impossible at the schema
// level.
type RecipientDTO struct {
	DeliveryID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Status     int       `gorm:"type:int;not null"`
	IsAssigned bool      `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName specifies the database table name for recipient link entities.
func (RecipientDTO) TableName() string {
	return "delivery_recipients"
}

// ProductDTO represents one product link row.
type ProductDTO struct {
	DeliveryID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID  uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName specifies the database table name for product link entities.
func (ProductDTO) TableName() string {
	return "delivery_products"
}

// fromDomain converts a delivery aggregate to its database representation,
// including all recipient and product link rows.
func fromDomain(d *delivery.Delivery) DeliveryDTO {
	deliveryID := d.ID().Bytes()

	recipients := make([]RecipientDTO, 0, len(d.Recipients()))
	for _, r := range d.Recipients() {
		recipients = append(recipients, recipientFromDomain(r))
	}

	products := make([]ProductDTO, 0, len(d.ProductIDs()))
	for _, productID := range d.ProductIDs() {
		products = append(products, ProductDTO{
			DeliveryID: deliveryID,
			ProductID:  productID.Bytes(),
		})
	}

	return DeliveryDTO{
		ID:            deliveryID,
		AssignedBy:    d.AssignedBy().Bytes(),
		AssignedTo:    d.AssignedTo().Bytes(),
		Status:        int(d.Status()),
		Details:       d.Details(),
		RecipientNote: d.RecipientNote(),
		CompanyNote:   d.CompanyNote(),
		CreatedAt:     d.CreatedAt(),
		Recipients:    recipients,
		Products:      products,
	}
}

// recipientFromDomain converts one recipient link to its row representation.
func recipientFromDomain(r *delivery.Recipient) RecipientDTO {
	return RecipientDTO{
		DeliveryID: r.DeliveryID().Bytes(),
		UserID:     r.UserID().Bytes(),
		Status:     int(r.Status()),
		IsAssigned: r.IsAssigned(),
		UpdatedAt:  r.UpdatedAt(),
	}
}

// toDomain converts a database DTO to a delivery aggregate.
// Reconstructs the complete aggregate including all links using
// RestoreDelivery.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	assignedBy, err := kernel.UUIDFromBytes(dto.AssignedBy[:])
	if err != nil {
		return nil, err
	}

	assignedTo, err := kernel.UUIDFromBytes(dto.AssignedTo[:])
	if err != nil {
		return nil, err
	}

	recipients := make([]*delivery.Recipient, 0, len(dto.Recipients))
	for _, rDto := range dto.Recipients {
		r, rErr := recipientToDomain(rDto)
		if rErr != nil {
			return nil, rErr
		}
		recipients = append(recipients, r)
	}

	productIDs := make([]kernel.UUID, 0, len(dto.Products))
	for _, pDto := range dto.Products {
		productID, pErr := kernel.UUIDFromBytes(pDto.ProductID[:])
		if pErr != nil {
			return nil, pErr
		}
		productIDs = append(productIDs, productID)
	}

	return delivery.RestoreDelivery(
		id, assignedBy, assignedTo,
		delivery.Status(dto.Status),
		dto.Details, dto.RecipientNote, dto.CompanyNote,
		dto.CreatedAt,
		recipients,
		productIDs,
	)
}

// recipientToDomain converts a recipient link row to its domain entity.
func recipientToDomain(dto RecipientDTO) (*delivery.Recipient, error) {
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	deliveryID, err := kernel.UUIDFromBytes(dto.DeliveryID[:])
	if err != nil {
		return nil, err
	}

	return delivery.RestoreRecipient(
		userID, deliveryID,
		delivery.LinkStatus(dto.Status),
		dto.IsAssigned,
		dto.UpdatedAt,
	)
}
