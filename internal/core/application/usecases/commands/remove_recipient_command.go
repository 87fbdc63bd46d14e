package commands

import (
	"errors"

	"chipdrop/internal/core/domain/model/kernel"
	"chipdrop/internal/pkg/guard"
)

var ErrRemoveRecipientCommandIsNotConstructed = errors.New(
	"RemoveRecipientCommand must be created via NewRemoveRecipientCommand constructor",
)

// RemoveRecipientCommand represents unlinking a user from a delivery.
type RemoveRecipientCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	userID     kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveRecipientCommand creates a command to unlink a user from a
// delivery.
func NewRemoveRecipientCommand(deliveryID, userID kernel.UUID) (RemoveRecipientCommand, error) {
	cmd := RemoveRecipientCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setUserID(userID),
	); err != nil {
		return RemoveRecipientCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveRecipientCommand) Validate() error {
	return c.guard.Validate(ErrRemoveRecipientCommandIsNotConstructed)
}

// DeliveryID returns the delivery to unlink the user from.
func (c RemoveRecipientCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// UserID returns the user to unlink.
func (c RemoveRecipientCommand) UserID() kernel.UUID {
	return c.userID
}

func (c *RemoveRecipientCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}

func (c *RemoveRecipientCommand) setUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.userID = id
	return nil
}
