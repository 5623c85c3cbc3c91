package jobs

import (
	"context"
	"log/slog"
	"time"

	"packing/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// SessionCleanupJob discards packing sessions that saw no operator activity
// for longer than the configured TTL. Abandoned sessions hold no persistent
// state, so sweeping them only frees memory; the orders they referenced stay
// untouched in the billing backend.
type SessionCleanupJob struct {
	sessions ports.SessionStore
	ttl      time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewSessionCleanupJob creates a cleanup job sweeping sessions idle longer
// than ttl.
func NewSessionCleanupJob(sessions ports.SessionStore, ttl time.Duration, logger *slog.Logger) *SessionCleanupJob {
	return &SessionCleanupJob{
		sessions: sessions,
		ttl:      ttl,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "session_cleanup_job"),
	}
}

// Start begins the cleanup job, sweeping once a minute.
func (j *SessionCleanupJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		cutoff := time.Now().UTC().Add(-j.ttl)

		removed, sweepErr := j.sessions.RemoveIdleSince(ctx, cutoff)
		if sweepErr != nil {
			j.logger.ErrorContext(ctx, "Session cleanup job failed", "error", sweepErr)
			return
		}

		for _, id := range removed {
			j.logger.InfoContext(ctx, "Idle session discarded",
				"session_id", id.String(), "ttl", j.ttl.String())
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session cleanup job started (running every minute)")
	return nil
}

// Stop stops the cleanup job.
func (j *SessionCleanupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Session cleanup job stopped")
}
