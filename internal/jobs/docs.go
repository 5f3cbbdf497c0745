// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the dispatch service.
//
// # Available Jobs
//
// 1. SessionSweepJob - Removes conversational sessions that have been
// inactive longer than the configured TTL, so an abandoned flow does not
// swallow an actor's later messages.
// 2. PendingOrderReminderJob - Reminds admins about pool orders that have
// waited for a courier longer than the configured threshold.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(sweepJob, reminderJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Job runs log failures and keep the schedule; a failed sweep or reminder
// pass is retried on the next tick. Failed job starts stop any already
// running jobs.
package jobs
