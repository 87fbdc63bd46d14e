package commands

import (
	"context"
	"log/slog"
)

// AcceptDeliveryRequestCommandHandler handles a recipient accepting a
// requested delivery.
//
// Two writes happen in one transaction: the recipient link transitions
// Pending -> Accepted, and the assigning company's account flips back to
// Ready availability. The second write is a deliberate cross-aggregate
// post-condition of accepting — acceptance is what frees the assigner to take
// on the next delivery — not an accidental coupling. Both writes are durable
// before the accepted notification is attempted, so a failed notification
// leaves them intact.
type AcceptDeliveryRequestCommandHandler struct {
	uowFactory UoWFactory
	notifier   Notifier
	logger     *slog.Logger
}

// NewAcceptDeliveryRequestCommandHandler creates a handler for accept
// operations. Requires a cross-aggregate UoWFactory since both the delivery
// and the assigner's account change.
func NewAcceptDeliveryRequestCommandHandler(
	uowFactory UoWFactory,
	notifier Notifier,
	logger *slog.Logger,
) AcceptDeliveryRequestCommandHandler {
	return AcceptDeliveryRequestCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "accept_delivery_handler"),
	}
}

// Handle processes the accept command.
func (h AcceptDeliveryRequestCommandHandler) Handle(ctx context.Context, cmd AcceptDeliveryRequestCommand) error {
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

	deliveryRepo := uow.DeliveryRepository()
	d, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	if err = d.AcceptBy(cmd.UserID()); err != nil {
		return err
	}

	link, err := d.Recipient(cmd.UserID())
	if err != nil {
		return err
	}
	if err = deliveryRepo.UpdateRecipientStatus(ctx, link); err != nil {
		return err
	}

	accountRepo := uow.AccountRepository()
	assigner, err := accountRepo.Get(ctx, d.AssignedBy())
	if err != nil {
		return err
	}
	assigner.MarkReady()
	if err = accountRepo.Update(ctx, assigner); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.notifier.DispatchAccepted(ctx, d, cmd.UserID()); err != nil {
		h.logger.ErrorContext(ctx, "accepted notification incomplete",
			"delivery_id", d.ID().String(),
			"user_id", cmd.UserID().String(),
			"error", err,
		)
	}
	return nil
}
