package commands

import (
	"errors"

	"chipdrop/internal/core/domain/model/kernel"
	"chipdrop/internal/pkg/guard"
)

var ErrDeleteDeliveryCommandIsNotConstructed = errors.New(
	"DeleteDeliveryCommand must be created via NewDeleteDeliveryCommand constructor",
)

// DeleteDeliveryCommand represents the hard deletion of a delivery and all
// rows it owns. There is no soft delete.
type DeleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeleteDeliveryCommand creates a delete command for the given delivery.
func NewDeleteDeliveryCommand(deliveryID kernel.UUID) (DeleteDeliveryCommand, error) {
	cmd := DeleteDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setDeliveryID(deliveryID); err != nil {
		return DeleteDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrDeleteDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identifier of the delivery to delete.
func (c DeleteDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

func (c *DeleteDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.deliveryID = id
	return nil
}
