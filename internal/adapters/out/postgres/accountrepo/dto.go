// Package accountrepo provides data transfer objects and mapping functions
// for account persistence.
package accountrepo

import (
	"chipdrop/internal/core/domain/model/account"
	"chipdrop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AccountDTO represents the database structure for persisting account
// aggregates.
type AccountDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Availability int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for account entities.
func (AccountDTO) TableName() string {
	return "accounts"
}

// fromDomain converts an account aggregate to its database representation.
func fromDomain(a *account.Account) AccountDTO {
	return AccountDTO{
		ID:           a.ID().Bytes(),
		Name:         a.Name(),
		Availability: int(a.Availability()),
	}
}

// toDomain converts a database DTO to an account aggregate using
// RestoreAccount.
func toDomain(dto AccountDTO) (*account.Account, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return account.RestoreAccount(id, dto.Name, account.Availability(dto.Availability))
}
