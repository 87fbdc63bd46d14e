package contactrepo

import (
	"context"
	"errors"

	"chipdrop/internal/core/domain/model/kernel"
	"chipdrop/internal/core/ports"
	"chipdrop/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormContactDirectory implements ContactDirectory using GORM. Lookups run
// on the main connection pool, outside any unit of work, since dispatch
// happens after commit.
type GormContactDirectory struct {
	db *gorm.DB
}

// NewGormContactDirectory creates a new GORM contact directory.
func NewGormContactDirectory(db *gorm.DB) *GormContactDirectory {
	return &GormContactDirectory{db: db}
}

// Contact resolves one user's contact information.
func (d *GormContactDirectory) Contact(ctx context.Context, userID kernel.UUID) (ports.Contact, error) {
	if err := userID.Validate(); err != nil {
		return ports.Contact{}, err
	}

	var dto ContactDTO
	if err := d.db.WithContext(ctx).First(&dto, "user_id = ?", userID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Contact{}, errs.NewObjectNotFoundError("contact", userID.String())
		}
		return ports.Contact{}, err
	}

	return toContact(dto), nil
}
