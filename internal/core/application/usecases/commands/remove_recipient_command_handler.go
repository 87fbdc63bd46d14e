package commands

import (
	"context"
)

// RemoveRecipientCommandHandler unlinks a user from a delivery.
// The link row is deleted transactionally; no notification fires. The last
// remaining recipient cannot be removed.
type RemoveRecipientCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewRemoveRecipientCommandHandler creates a handler for recipient unlinking.
func NewRemoveRecipientCommandHandler(uowFactory DeliveryUoWFactory) RemoveRecipientCommandHandler {
	return RemoveRecipientCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the remove-recipient command.
func (h RemoveRecipientCommandHandler) Handle(ctx context.Context, cmd RemoveRecipientCommand) error {
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

	if err = d.RemoveRecipient(cmd.UserID()); err != nil {
		return err
	}

	if err = repo.RemoveRecipient(ctx, cmd.DeliveryID(), cmd.UserID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
