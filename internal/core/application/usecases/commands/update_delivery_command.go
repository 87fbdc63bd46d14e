package commands

import (
	"errors"

	"chipdrop/internal/core/domain/model/delivery"
	"chipdrop/internal/core/domain/model/kernel"
	"chipdrop/internal/pkg/guard"
)

var ErrUpdateDeliveryCommandIsNotConstructed = errors.New(
	"UpdateDeliveryCommand must be created via NewUpdateDeliveryCommand constructor",
)

// UpdateDeliveryCommand represents a request to change an existing delivery's
// content, assignment, and status.
type UpdateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID    kernel.UUID
	assignedTo    kernel.UUID
	status        delivery.Status
	details       string
	recipientNote string
	companyNote   string

	guard guard.ConstructorGuard
}

// NewUpdateDeliveryCommand creates a command to update a delivery.
// The same field requirements as creation apply.
func NewUpdateDeliveryCommand(
	deliveryID, assignedTo kernel.UUID,
	status delivery.Status,
	details, recipientNote, companyNote string,
) (UpdateDeliveryCommand, error) {
	cmd := UpdateDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setAssignedTo(assignedTo),
		cmd.setDetails(details),
	); err != nil {
		return UpdateDeliveryCommand{}, err
	}

	cmd.status = status
	cmd.recipientNote = recipientNote
	cmd.companyNote = companyNote
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identifier of the delivery to update.
func (c UpdateDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// AssignedTo returns the committed recipient after the update.
func (c UpdateDeliveryCommand) AssignedTo() kernel.UUID {
	return c.assignedTo
}

// Status returns the target status of the update.
func (c UpdateDeliveryCommand) Status() delivery.Status {
	return c.status
}

// Details returns the updated delivery description.
func (c UpdateDeliveryCommand) Details() string {
	return c.details
}

// RecipientNote returns the updated text addressed to recipients.
func (c UpdateDeliveryCommand) RecipientNote() string {
	return c.recipientNote
}

// CompanyNote returns the updated text addressed to the company.
func (c UpdateDeliveryCommand) CompanyNote() string {
	return c.companyNote
}

func (c *UpdateDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *UpdateDeliveryCommand) setAssignedTo(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.assignedTo = id
	return nil
}

func (c *UpdateDeliveryCommand) setDetails(details string) error {
	if details == "" {
		return delivery.ErrDetailsAreRequired
	}
	c.details = details
	return nil
}
