package commands

import (
	"context"
	"log/slog"
	"time"

	"chipdrop/internal/core/domain/model/delivery"
	"chipdrop/internal/core/domain/services"
)

// ExpireDeliveriesCommandHandler runs one expiry sweep.
//
// The sweep scans Scheduled deliveries older than the warning threshold.
// Deliveries past the hard cutoff transition to Expired through the status
// state machine with a guarded write (only rows still Scheduled are
// touched); the rest get one expiring warning notification, claimed through
// a guarded warned-at stamp. Repeating the sweep is safe: expired rows drop
// out of the scan, and neither guarded write matches twice.
type ExpireDeliveriesCommandHandler struct {
	uowFactory DeliveryUoWFactory
	notifier   Notifier
	logger     *slog.Logger

	// warnAfter is the age at which a scheduled delivery gets a warning.
	warnAfter time.Duration
	// expireAfter is the age past which a scheduled delivery expires.
	expireAfter time.Duration

	now func() time.Time
}

// NewExpireDeliveriesCommandHandler creates a sweep handler with the given
// policy thresholds. warnAfter must not exceed expireAfter.
func NewExpireDeliveriesCommandHandler(
	uowFactory DeliveryUoWFactory,
	notifier Notifier,
	logger *slog.Logger,
	warnAfter, expireAfter time.Duration,
) ExpireDeliveriesCommandHandler {
	return ExpireDeliveriesCommandHandler{
		uowFactory:  uowFactory,
		notifier:    notifier,
		logger:      logger.With("component", "expire_deliveries_handler"),
		warnAfter:   warnAfter,
		expireAfter: expireAfter,
		now:         time.Now,
	}
}

// WithClock returns a copy of the handler using the given clock. Used by
// tests to pin sweep time.
func (h ExpireDeliveriesCommandHandler) WithClock(now func() time.Time) ExpireDeliveriesCommandHandler {
	h.now = now
	return h
}

// Handle processes one sweep. Returns the number of deliveries expired.
func (h ExpireDeliveriesCommandHandler) Handle(ctx context.Context, cmd ExpireDeliveriesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := h.now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DeliveryRepository()
	stale, err := repo.GetScheduledBefore(ctx, now.Add(-h.warnAfter))
	if err != nil {
		return 0, err
	}

	expired := 0
	var warned []*delivery.Delivery
	for _, d := range stale {
		if now.Sub(d.CreatedAt()) < h.expireAfter {
			claimed, warnErr := repo.MarkWarned(ctx, d.ID(), now)
			if warnErr != nil {
				return 0, warnErr
			}
			if claimed {
				warned = append(warned, d)
			}
			continue
		}

		if err = d.TransitionTo(delivery.StatusExpired); err != nil {
			return 0, err
		}
		flipped, guardErr := repo.UpdateStatusGuarded(ctx, d.ID(), delivery.StatusScheduled, delivery.StatusExpired)
		if guardErr != nil {
			return 0, guardErr
		}
		if flipped {
			expired++
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	for _, d := range warned {
		if err = h.notifier.Dispatch(ctx, d, services.KindExpiring); err != nil {
			h.logger.ErrorContext(ctx, "expiry warning incomplete",
				"delivery_id", d.ID().String(),
				"error", err,
			)
		}
	}

	if expired > 0 || len(warned) > 0 {
		h.logger.InfoContext(ctx, "expiry sweep finished",
			"expired", expired,
			"warned", len(warned),
		)
	}
	return expired, nil
}
