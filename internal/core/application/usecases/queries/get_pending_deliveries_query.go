package queries

import (
	"errors"
	"time"

	"chipdrop/internal/core/domain/model/kernel"
	"chipdrop/internal/pkg/guard"
)

var (
	ErrGetPendingDeliveriesQueryIsNotConstructed = errors.New(
		"GetPendingDeliveriesQuery must be created via NewGetPendingDeliveriesQuery constructor",
	)
)

// GetPendingDeliveriesQuery retrieves the deliveries a user can still accept:
// requested deliveries where the user's recipient link is Pending.
type GetPendingDeliveriesQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPendingDeliveriesQuery creates a query for a user's pending
// delivery requests.
func NewGetPendingDeliveriesQuery(userID kernel.UUID) (GetPendingDeliveriesQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetPendingDeliveriesQuery{}, err
	}
	return GetPendingDeliveriesQuery{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPendingDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingDeliveriesQueryIsNotConstructed)
}

// UserID returns the user whose pending requests are fetched.
func (q GetPendingDeliveriesQuery) UserID() kernel.UUID {
	return q.userID
}

// GetPendingDeliveriesQueryResponse is one pending delivery request as seen
// by its recipient.
type GetPendingDeliveriesQueryResponse struct {
	ID            kernel.UUID
	AssignedBy    kernel.UUID
	Details       string
	RecipientNote string
	CreatedAt     time.Time
}
