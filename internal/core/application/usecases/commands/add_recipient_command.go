package commands

import (
	"errors"

	"chipdrop/internal/core/domain/model/kernel"
	"chipdrop/internal/pkg/guard"
)

var ErrAddRecipientCommandIsNotConstructed = errors.New(
	"AddRecipientCommand must be created via NewAddRecipientCommand constructor",
)

// AddRecipientCommand represents linking an additional user to a delivery.
type AddRecipientCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	userID     kernel.UUID

	guard guard.ConstructorGuard
}

// NewAddRecipientCommand creates a command to link a user to a delivery.
func NewAddRecipientCommand(deliveryID, userID kernel.UUID) (AddRecipientCommand, error) {
	cmd := AddRecipientCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setUserID(userID),
	); err != nil {
		return AddRecipientCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddRecipientCommand) Validate() error {
	return c.guard.Validate(ErrAddRecipientCommandIsNotConstructed)
}

// DeliveryID returns the delivery to link the user to.
func (c AddRecipientCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// UserID returns the user to link.
func (c AddRecipientCommand) UserID() kernel.UUID {
	return c.userID
}

func (c *AddRecipientCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *AddRecipientCommand) setUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.userID = id
	return nil
}
