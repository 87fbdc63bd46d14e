package commands

import (
	"errors"

	"chipdrop/internal/core/domain/model/delivery"
	"chipdrop/internal/core/domain/model/kernel"
	"chipdrop/internal/pkg/errs"
	"chipdrop/internal/pkg/guard"
)

var (
	ErrCreateDeliveryCommandIsNotConstructed = errors.New(
		"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
	)
)

// CreateDeliveryCommand represents a request to create a new delivery together
// with its recipient links.
//
// Example:
//
//	cmd, err := NewCreateDeliveryCommand(
//	    kernel.NewUUID(), companyID, recipientID,
//	    delivery.StatusRequested, "oak chips", "", "",
//	    []kernel.UUID{recipientID}, nil,
//	)
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID    kernel.UUID
	assignedBy    kernel.UUID
	assignedTo    kernel.UUID
	status        delivery.Status
	details       string
	recipientNote string
	companyNote   string
	recipientIDs  []kernel.UUID
	productIDs    []kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand creates a command to register a new delivery.
// Validates identifiers, requires non-empty details and at least one
// recipient. Status validity for creation is enforced by the aggregate.
func NewCreateDeliveryCommand(
	deliveryID, assignedBy, assignedTo kernel.UUID,
	status delivery.Status,
	details, recipientNote, companyNote string,
	recipientIDs []kernel.UUID,
	productIDs []kernel.UUID,
) (CreateDeliveryCommand, error) {
	cmd := CreateDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setAssignedBy(assignedBy),
		cmd.setAssignedTo(assignedTo),
		cmd.setDetails(details),
		cmd.setRecipientIDs(recipientIDs),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	cmd.status = status
	cmd.recipientNote = recipientNote
	cmd.companyNote = companyNote
	cmd.productIDs = productIDs
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identifier of the delivery to create.
func (c CreateDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// AssignedBy returns the assigning company user's identifier.
func (c CreateDeliveryCommand) AssignedBy() kernel.UUID {
	return c.assignedBy
}

// AssignedTo returns the committed recipient's identifier.
func (c CreateDeliveryCommand) AssignedTo() kernel.UUID {
	return c.assignedTo
}

// Status returns the requested initial status.
func (c CreateDeliveryCommand) Status() delivery.Status {
	return c.status
}

// Details returns the delivery description.
func (c CreateDeliveryCommand) Details() string {
	return c.details
}

// RecipientNote returns the text addressed to recipients.
func (c CreateDeliveryCommand) RecipientNote() string {
	return c.recipientNote
}

// CompanyNote returns the text addressed to the assigning company.
func (c CreateDeliveryCommand) CompanyNote() string {
	return c.companyNote
}

// RecipientIDs returns the users to link as recipients.
func (c CreateDeliveryCommand) RecipientIDs() []kernel.UUID {
	return c.recipientIDs
}

// ProductIDs returns the products included in the delivery.
func (c CreateDeliveryCommand) ProductIDs() []kernel.UUID {
	return c.productIDs
}

func (c *CreateDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *CreateDeliveryCommand) setAssignedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.assignedBy = id
	return nil
}

func (c *CreateDeliveryCommand) setAssignedTo(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.assignedTo = id
	return nil
}

func (c *CreateDeliveryCommand) setDetails(details string) error {
	if details == "" {
		return delivery.ErrDetailsAreRequired
	}
	c.details = details
	return nil
}

func (c *CreateDeliveryCommand) setRecipientIDs(recipientIDs []kernel.UUID) error {
	if len(recipientIDs) == 0 {
		return delivery.ErrRecipientsAreRequired
	}
	for _, id := range recipientIDs {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("recipientIds", err)
		}
	}
	c.recipientIDs = recipientIDs
	return nil
}
