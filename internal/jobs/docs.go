// Package jobs provides scheduled background tasks for the marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// AvailabilityResyncJob recounts the orders waiting for pickup and
// rebroadcasts the figure to rider sockets. A rider that missed a
// change-driven broadcast is at most one period behind.
//
// # Usage
//
//	resync := jobs.NewAvailabilityResyncJob(notifier, cfg.NotifierResyncSchedule, cfg.NotifierTimeout, logger)
//	jobManager := jobs.NewJobManager(resync)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatalf("Failed to start jobs: %v", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use the six-field cron format with a leading seconds field. The
// default "*/30 * * * * *" runs every 30 seconds. A run that is still going
// when the next one is due makes the next one skip.
//
// # Error Handling
//
// Failed runs are logged and the schedule continues. A job that fails to
// start stops the jobs already running.
package jobs
