package jobs

import (
	"context"
	"log/slog"

	"orderflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// CouponExpiryJob periodically deactivates coupons whose expiry has passed.
// Expiry is also enforced at application time, so the sweep only keeps the
// stored active flags honest for reporting.
type CouponExpiryJob struct {
	handler commands.DeactivateExpiredCouponsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewCouponExpiryJob creates a new job sweeping expired coupons.
// Uses DeactivateExpiredCouponsCommandHandler to run the sweep every minute.
func NewCouponExpiryJob(
	handler commands.DeactivateExpiredCouponsCommandHandler, logger *slog.Logger,
) *CouponExpiryJob {
	return &CouponExpiryJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "coupon_expiry_job"),
	}
}

// Start begins the coupon expiry job to run every minute.
func (j *CouponExpiryJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewDeactivateExpiredCouponsCommand()
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Coupon expiry job failed to build command", "error", cmdErr)
			return
		}

		swept, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Coupon expiry job failed", "error", handleErr)
			return
		}
		if swept > 0 {
			j.logger.InfoContext(ctx, "Deactivated expired coupons", "count", swept)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Coupon expiry job started (running every minute)")
	return nil
}

// Stop stops the coupon expiry job.
func (j *CouponExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Coupon expiry job stopped")
}
