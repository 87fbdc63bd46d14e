package commands

import (
	"errors"

	"chipdrop/internal/core/domain/model/kernel"
	"chipdrop/internal/pkg/guard"
)

var ErrAcceptDeliveryRequestCommandIsNotConstructed = errors.New(
	"AcceptDeliveryRequestCommand must be created via NewAcceptDeliveryRequestCommand constructor",
)

// AcceptDeliveryRequestCommand represents a recipient accepting a requested
// delivery.
type AcceptDeliveryRequestCommand struct { //nolint:recvcheck //using for validation
	userID     kernel.UUID
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptDeliveryRequestCommand creates an accept command for the given
// user and delivery.
func NewAcceptDeliveryRequestCommand(userID, deliveryID kernel.UUID) (AcceptDeliveryRequestCommand, error) {
	cmd := AcceptDeliveryRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setDeliveryID(deliveryID),
	); err != nil {
		return AcceptDeliveryRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptDeliveryRequestCommand) Validate() error {
	return c.guard.Validate(ErrAcceptDeliveryRequestCommandIsNotConstructed)
}

// UserID returns the accepting recipient's identifier.
func (c AcceptDeliveryRequestCommand) UserID() kernel.UUID {
	return c.userID
}

// DeliveryID returns the identifier of the delivery being accepted.
func (c AcceptDeliveryRequestCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

func (c *AcceptDeliveryRequestCommand) setUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.userID = id
	return nil
}

func (c *AcceptDeliveryRequestCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}
