package queries

import (
	"errors"
	"time"

	"chipdrop/internal/core/domain/model/delivery"
	"chipdrop/internal/core/domain/model/kernel"
	"chipdrop/internal/pkg/guard"
)

var (
	ErrGetCompanyDeliveriesQueryIsNotConstructed = errors.New(
		"GetCompanyDeliveriesQuery must be created via NewGetCompanyDeliveriesQuery constructor",
	)
)

// GetCompanyDeliveriesQuery retrieves every delivery a company has assigned,
// in any status, for the company's dispatch overview.
type GetCompanyDeliveriesQuery struct {
	companyID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCompanyDeliveriesQuery creates a query for a company's deliveries.
func NewGetCompanyDeliveriesQuery(companyID kernel.UUID) (GetCompanyDeliveriesQuery, error) {
	if err := companyID.Validate(); err != nil {
		return GetCompanyDeliveriesQuery{}, err
	}
	return GetCompanyDeliveriesQuery{
		companyID: companyID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCompanyDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetCompanyDeliveriesQueryIsNotConstructed)
}

// CompanyID returns the assigning company.
func (q GetCompanyDeliveriesQuery) CompanyID() kernel.UUID {
	return q.companyID
}

// GetCompanyDeliveriesQueryResponse is one delivery row in the company's
// dispatch overview.
type GetCompanyDeliveriesQueryResponse struct {
	ID         kernel.UUID
	AssignedTo kernel.UUID
	Status     delivery.Status
	Details    string
	CreatedAt  time.Time
}
