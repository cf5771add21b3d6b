// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic maintenance the order lifecycle requires.
//
// # Available Jobs
//
// 1. CouponExpiryJob - Runs every minute to deactivate coupons past their expiry
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(deactivateExpiredCouponsHandler, logger)
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
// The expiry sweep is idempotent, so a failed run is only logged; the next
// run picks up whatever the failed one left behind.
package jobs
