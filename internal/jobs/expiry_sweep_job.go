package jobs

import (
	"context"
	"log/slog"

	"chipdrop/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ExpirySweepJob runs the delivery expiry sweep on a cron schedule.
// Each run expires scheduled deliveries past the hard cutoff and sends
// warning notifications for the ones approaching it. The sweep is idempotent,
// so an extra run after a missed schedule or a restart does no harm.
type ExpirySweepJob struct {
	handler  commands.ExpireDeliveriesCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewExpirySweepJob creates the expiry sweep job with the given cron
// schedule (standard five-field cron expression).
func NewExpirySweepJob(
	handler commands.ExpireDeliveriesCommandHandler,
	schedule string,
	logger *slog.Logger,
) *ExpirySweepJob {
	return &ExpirySweepJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "expiry_sweep_job"),
	}
}

// Start schedules the sweep. Returns an error when the cron expression does
// not parse.
func (j *ExpirySweepJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewExpireDeliveriesCommand()

		expired, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Expiry sweep failed", "error", err)
			return
		}
		if expired > 0 {
			j.logger.InfoContext(ctx, "Expiry sweep expired deliveries", "count", expired)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Expiry sweep job started", "schedule", j.schedule)
	return nil
}

// Stop stops the expiry sweep job.
func (j *ExpirySweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Expiry sweep job stopped")
}
