// Package jobs provides scheduled background tasks for the packing engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic housekeeping the engine needs.
//
// # Available Jobs
//
// 1. SessionCleanupJob - Runs every minute to discard packing sessions idle longer than the configured TTL
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(sessionStore, sessionTTL, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Cleanup failures are logged and retried on the next tick
// - Failed job starts will stop any already running jobs
package jobs
