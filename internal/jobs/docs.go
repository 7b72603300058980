// Package jobs runs the background side of the broadcast flow.
//
// # Components
//
// 1. TaskDispatcher - a bounded worker pool implementing ports.TaskScheduler.
// Intake schedules the dispatch pass and the media sideload on it and returns
// immediately.
// 2. DispatchRecoveryJob - a cron sweep (github.com/robfig/cron/v3) that finds
// dispatch markers stuck in pending or running and schedules them once more.
//
// # Usage
//
//	dispatcher := jobs.NewTaskDispatcher(8, 1000, registry, logger)
//	recovery := jobs.NewDispatchRecoveryJob(requests, categories, profiles,
//	    dispatcher, dispatchHandler, collectors, jobs.RecoveryConfig{}, logger)
//
//	jobManager := jobs.NewJobManager(dispatcher, recovery, logger)
//	if err := jobManager.StartAll(ctx); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll(10 * time.Second)
//
// # Scheduling
//
// The sweep runs every minute by default ("0 * * * * *", seconds field
// first) and only looks at markers older than two minutes.
//
// # Error Handling
//
// - Task errors are logged with the task name and never retried by the pool
// - A replay that cannot be scheduled marks the dispatch failed
// - Failed job starts will stop any already running jobs
package jobs
