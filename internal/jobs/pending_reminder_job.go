// Package jobs holds the cron-driven background sweeps. Jobs never crash the
// process; every iteration failure is logged and the next tick tries again.
package jobs

import (
	"context"
	"time"

	"github.com/smsgrouprw-hash/Talabat-sub000/internal/logger"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/order"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	// Orders still pending after this long get re-surfaced to the supplier.
	staleAfter = 15 * time.Minute

	reminderSchedule = "*/5 * * * *"
)

// PendingReminderJob periodically reminds suppliers of orders stuck in pending
// and re-broadcasts them on the feed.
type PendingReminderJob struct {
	orders order.Service
	cron   *cron.Cron
}

func NewPendingReminderJob(orders order.Service) *PendingReminderJob {
	return &PendingReminderJob{
		orders: orders,
		cron:   cron.New(),
	}
}

func (j *PendingReminderJob) Start() error {
	_, err := j.cron.AddFunc(reminderSchedule, j.runOnce)
	if err != nil {
		return err
	}

	j.cron.Start()
	logger.L().Info("pending reminder job started", zap.String("schedule", reminderSchedule))
	return nil
}

func (j *PendingReminderJob) Stop() {
	j.cron.Stop()
	logger.L().Info("pending reminder job stopped")
}

func (j *PendingReminderJob) runOnce() {
	ctx := context.Background()

	count, err := j.orders.RemindStalePending(ctx, staleAfter)
	if err != nil {
		logger.L().Error("pending reminder sweep failed", zap.Error(err))
		return
	}
	if count > 0 {
		logger.L().Info("pending reminder sweep completed", zap.Int("reminded", count))
	}
}
