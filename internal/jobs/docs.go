// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the order lifecycle.
//
// # Available Jobs
//
// 1. ValidationTimeoutJob - Runs every minute to cancel orders whose stock
// validation results did not fully arrive within the configured timeout
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(aggregator, cancelHandler, timeout, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The timeout job uses the cron expression "0 * * * * *", sweeping once a
// minute. Validation timeouts are measured in minutes, so a finer sweep
// would only add load.
//
// # Error Handling
//
// - The timeout job ignores orders that were already cancelled by the user
// - All other cancellation failures are logged and retried on the next sweep
// - Failed job starts will stop any already running jobs
package jobs
