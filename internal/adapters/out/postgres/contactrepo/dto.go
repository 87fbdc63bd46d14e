// Package contactrepo provides the database-backed contact directory used
// by notification dispatch to resolve recipient and company contact
// information.
package contactrepo

import (
	"chipdrop/internal/core/ports"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ContactDTO represents one user's contact row.
type ContactDTO struct {
	UserID  uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name    string         `gorm:"type:varchar(255);not null"`
	Email   string         `gorm:"type:varchar(255);not null"`
	Phones  pq.StringArray `gorm:"type:text[]"`
	Address string         `gorm:"type:text"`
}

// TableName specifies the database table name for contact entities.
func (ContactDTO) TableName() string {
	return "contacts"
}

// toContact converts a contact row to the notification port's contact shape.
func toContact(dto ContactDTO) ports.Contact {
	return ports.Contact{
		Name:    dto.Name,
		Email:   dto.Email,
		Phones:  dto.Phones,
		Address: dto.Address,
	}
}
