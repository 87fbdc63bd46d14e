package commands

import (
	"context"
	"log/slog"

	"chipdrop/internal/core/domain/model/delivery"
	"chipdrop/internal/core/domain/services"
)

// CreateDeliveryCommandHandler handles delivery creation.
// The delivery row and all recipient link rows are written in one transaction:
// either every row persists or none does. After a successful commit the
// handler routes the create notification — the request flavor when the
// resulting status is Requested, the scheduled flavor otherwise.
type CreateDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	notifier   Notifier
	logger     *slog.Logger
}

// NewCreateDeliveryCommandHandler creates a handler for delivery creation.
func NewCreateDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	notifier Notifier,
	logger *slog.Logger,
) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "create_delivery_handler"),
	}
}

// Handle processes the delivery creation command.
// Any persistence failure rolls the whole transaction back and propagates the
// underlying error unmodified. Notification failures never fail the operation.
func (h CreateDeliveryCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryCommand) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	d, err := delivery.NewDelivery(
		cmd.DeliveryID(),
		cmd.AssignedBy(),
		cmd.AssignedTo(),
		cmd.Status(),
		cmd.Details(),
		cmd.RecipientNote(),
		cmd.CompanyNote(),
		cmd.RecipientIDs(),
		cmd.ProductIDs(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DeliveryRepository().Add(ctx, d); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notify(ctx, d)
	return d, nil
}

// notify routes the post-commit notification by the resulting status.
func (h CreateDeliveryCommandHandler) notify(ctx context.Context, d *delivery.Delivery) {
	kind, err := services.KindForStatus(d.Status())
	if err != nil {
		h.logger.WarnContext(ctx, "no notification routed", "delivery_id", d.ID().String(), "error", err)
		return
	}

	if err := h.notifier.Dispatch(ctx, d, kind); err != nil {
		h.logger.ErrorContext(ctx, "delivery notification incomplete",
			"delivery_id", d.ID().String(),
			"kind", kind.String(),
			"error", err,
		)
	}
}
