package jobs

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// SessionSweepJob removes expired conversational sessions on a schedule.
// Runs every minute; sessions inactive longer than the TTL are deleted.
type SessionSweepJob struct {
	sessions ports.SessionRepository
	ttl      time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewSessionSweepJob creates a new job sweeping sessions older than ttl.
func NewSessionSweepJob(sessions ports.SessionRepository, ttl time.Duration, logger *slog.Logger) *SessionSweepJob {
	return &SessionSweepJob{
		sessions: sessions,
		ttl:      ttl,
		cron:     cron.New(),
		logger:   logger.With("component", "session_sweep_job"),
	}
}

// Start begins the session sweep job to run every minute.
func (j *SessionSweepJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		swept, sweepErr := j.sessions.DeleteExpired(ctx, time.Now(), j.ttl)
		if sweepErr != nil {
			j.logger.ErrorContext(ctx, "Session sweep failed", "error", sweepErr)
			return
		}
		if swept > 0 {
			j.logger.InfoContext(ctx, "Swept expired sessions", "count", swept)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session sweep job started (running every minute)", "ttl", j.ttl)
	return nil
}

// Stop stops the session sweep job.
func (j *SessionSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Session sweep job stopped")
}
