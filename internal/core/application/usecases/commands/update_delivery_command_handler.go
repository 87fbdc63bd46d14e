package commands

import (
	"context"
	"log/slog"

	"chipdrop/internal/core/domain/services"
)

// UpdateDeliveryCommandHandler handles delivery updates.
// The delivery row and the recipient links' assignment flags change in one
// transaction. After commit the same notification branch as creation applies,
// keyed by the resulting status.
type UpdateDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	notifier   Notifier
	logger     *slog.Logger
}

// NewUpdateDeliveryCommandHandler creates a handler for delivery updates.
func NewUpdateDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	notifier Notifier,
	logger *slog.Logger,
) UpdateDeliveryCommandHandler {
	return UpdateDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "update_delivery_handler"),
	}
}

// Handle processes the delivery update command.
func (h UpdateDeliveryCommandHandler) Handle(ctx context.Context, cmd UpdateDeliveryCommand) error {
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

	if err = d.Reassign(cmd.AssignedTo(), cmd.Details(), cmd.RecipientNote(), cmd.CompanyNote()); err != nil {
		return err
	}
	if err = d.TransitionTo(cmd.Status()); err != nil {
		return err
	}

	if err = repo.Update(ctx, d); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	kind, err := services.KindForStatus(d.Status())
	if err != nil {
		h.logger.WarnContext(ctx, "no notification routed", "delivery_id", d.ID().String(), "error", err)
		return nil
	}
	if err = h.notifier.Dispatch(ctx, d, kind); err != nil {
		h.logger.ErrorContext(ctx, "delivery notification incomplete",
			"delivery_id", d.ID().String(),
			"kind", kind.String(),
			"error", err,
		)
	}
	return nil
}
