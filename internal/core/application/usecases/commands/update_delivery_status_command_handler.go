package commands

import (
	"context"
)

// UpdateDeliveryStatusCommandHandler handles narrow status transitions.
// The transition is validated on the aggregate's state machine before the
// write; applying the current status again is a no-op, which makes the
// operation idempotent. No notification fires on this path.
type UpdateDeliveryStatusCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewUpdateDeliveryStatusCommandHandler creates a handler for status-only
// updates.
func NewUpdateDeliveryStatusCommandHandler(uowFactory DeliveryUoWFactory) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status update command.
func (h UpdateDeliveryStatusCommandHandler) Handle(ctx context.Context, cmd UpdateDeliveryStatusCommand) error {
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

	repo := uow.DeliveryRepository()
	d, err := repo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	if err = d.TransitionTo(cmd.Status()); err != nil {
		return err
	}

	if err = repo.UpdateStatus(ctx, d.ID(), d.Status()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
