package scheduler

import (
	"context"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/services"
	deliverreminders "remindbot/internal/core/services/deliver_reminders"
	"time"
)

// Run delivers due reminders every interval until ctx is cancelled.
// Pending writes are not flushed on exit.
func Run(
	ctx context.Context,
	log logging.Logger,
	interval time.Duration,
	service services.Service[deliverreminders.Input, deliverreminders.Result],
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info(ctx, "Starting reminder scheduler.", logging.Entry("interval", interval))

loop:
	for {
		select {
		case <-ctx.Done():
			log.Info(context.Background(), "Stopping reminder scheduler.")
			break loop
		case <-ticker.C:
			result, err := service.Run(ctx, deliverreminders.Input{})
			if err != nil {
				log.Error(ctx, "Reminder delivery returned an error.", logging.Entry("err", err))
				continue
			}
			if result.Taken() > 0 {
				log.Info(
					ctx,
					"Due reminders processed.",
					logging.Entry("delivered", result.Delivered),
					logging.Entry("dropped", result.Dropped),
				)
			}
		}
	}
}
