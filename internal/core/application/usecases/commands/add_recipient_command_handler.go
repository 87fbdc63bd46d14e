package commands

import (
	"context"
)

// AddRecipientCommandHandler links an additional user to a delivery.
// The link row is inserted transactionally; no notification fires.
type AddRecipientCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewAddRecipientCommandHandler creates a handler for recipient linking.
func NewAddRecipientCommandHandler(uowFactory DeliveryUoWFactory) AddRecipientCommandHandler {
	return AddRecipientCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the add-recipient command.
func (h AddRecipientCommandHandler) Handle(ctx context.Context, cmd AddRecipientCommand) error {
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

	if err = d.AddRecipient(cmd.UserID()); err != nil {
		return err
	}

	link, err := d.Recipient(cmd.UserID())
	if err != nil {
		return err
	}
	if err = repo.AddRecipient(ctx, link); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
