// Package jobs provides scheduled background tasks for the delivery
// coordination service.
//
// The package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// ExpirySweepJob runs the delivery expiry sweep: scheduled deliveries past
// the hard age cutoff transition to Expired, and deliveries approaching it
// get a warning notification. The default schedule runs the sweep hourly;
// the cron expression comes from configuration.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(expireHandler, "0 * * * *", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Sweep failures are logged and retried on the next scheduled run. Because
// the sweep is idempotent, overlapping or repeated runs cannot double-expire
// a delivery.
package jobs
