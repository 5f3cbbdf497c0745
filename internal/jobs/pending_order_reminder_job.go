package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"dispatch/internal/core/application/dispatch"
	"dispatch/internal/core/domain/model/admin"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// PendingOrderReminderJob nags admins about pool orders nobody dispatched.
// Runs every five minutes and broadcasts one summary message when orders
// have waited longer than the configured threshold.
type PendingOrderReminderJob struct {
	orders    ports.OrderRepository
	roster    *admin.Roster
	gateway   *dispatch.Gateway
	threshold time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewPendingOrderReminderJob creates a new job reminding admins about
// orders that waited in the pool longer than threshold.
func NewPendingOrderReminderJob(
	orders ports.OrderRepository,
	roster *admin.Roster,
	gateway *dispatch.Gateway,
	threshold time.Duration,
	logger *slog.Logger,
) *PendingOrderReminderJob {
	return &PendingOrderReminderJob{
		orders:    orders,
		roster:    roster,
		gateway:   gateway,
		threshold: threshold,
		cron:      cron.New(),
		logger:    logger.With("component", "pending_order_reminder_job"),
	}
}

// Start begins the reminder job to run every five minutes.
func (j *PendingOrderReminderJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * *", func() {
		ctx := context.Background()
		if runErr := j.run(ctx); runErr != nil {
			j.logger.ErrorContext(ctx, "Pending order reminder failed", "error", runErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(),
		"Pending order reminder job started (running every five minutes)",
		"threshold", j.threshold)
	return nil
}

// Stop stops the reminder job.
func (j *PendingOrderReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Pending order reminder job stopped")
}

func (j *PendingOrderReminderJob) run(ctx context.Context) error {
	pool, err := j.orders.GetAllByStatuses(ctx, []order.Status{order.New, order.NewOnline})
	if err != nil {
		return err
	}

	now := time.Now()
	var lines []string
	for _, o := range pool {
		waited := now.Sub(o.CreatedAt())
		if waited < j.threshold {
			continue
		}
		lines = append(lines, fmt.Sprintf("• %s — waiting %d min", o.Items(), int(waited.Minutes())))
	}
	if len(lines) == 0 {
		return nil
	}

	text := fmt.Sprintf("⏳ %d order(s) still need a driver:\n%s", len(lines), strings.Join(lines, "\n"))
	j.gateway.Broadcast(ctx, j.roster.All(), text, nil)
	return nil
}
