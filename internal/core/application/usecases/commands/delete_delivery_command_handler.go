package commands

import (
	"context"
)

// DeleteDeliveryCommandHandler deletes a delivery and cascades over its
// recipient and product link rows in one transaction. The cascade is
// performed by the store, not by schema constraints.
type DeleteDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewDeleteDeliveryCommandHandler creates a handler for delivery deletion.
func NewDeleteDeliveryCommandHandler(uowFactory DeliveryUoWFactory) DeleteDeliveryCommandHandler {
	return DeleteDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the delete command. Deleting a delivery that does not
// exist surfaces a not-found error.
func (h DeleteDeliveryCommandHandler) Handle(ctx context.Context, cmd DeleteDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.DeliveryRepository().Delete(ctx, cmd.DeliveryID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
