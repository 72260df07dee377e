// Package jobs provides scheduled background tasks for the freight back office.
//
// Jobs use github.com/robfig/cron/v3 with second-resolution schedules.
//
// # Available Jobs
//
// 1. OutboxRelayJob - publishes committed domain events from the outbox to Kafka
// 2. OutboxCleanupJob - deletes published outbox messages after the retention period
//
// # Usage
//
//	relay, err := jobs.NewOutboxRelayJob(relayHandler, "*/5 * * * * *", 100, logger)
//	cleanup, err := jobs.NewOutboxCleanupJob(purgeHandler, "0 0 3 * * *", 7, logger)
//	jobManager := jobs.NewJobManager(relay, cleanup)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Failed runs are logged and retried on the next tick. A relay run that fails
// leaves its batch unpublished, so delivery is at least once.
package jobs
