package ports

import (
	"context"

	"chipdrop/internal/core/domain/model/account"
	"chipdrop/internal/core/domain/model/kernel"
)

// AccountRepository defines the persistence contract for account aggregates.
type AccountRepository interface {
	// Get retrieves an account by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*account.Account, error)

	// Update persists changes to an existing account, including its
	// availability flag.
	Update(ctx context.Context, aggregate *account.Account) error
}
