package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// TokenPurger removes expired password-reset tokens
type TokenPurger interface {
	DeleteExpired(ctx context.Context, now time.Time) error
}

// SessionPurger removes expired login sessions
type SessionPurger interface {
	PurgeExpired(ctx context.Context) error
}

// CleanupJob periodically drops expired password-reset tokens and
// login sessions. Expiry is also enforced at read time, so the job only
// keeps the tables from growing; a missed run is harmless.
type CleanupJob struct {
	tokens   TokenPurger
	sessions SessionPurger
	interval time.Duration

	stopCh  chan struct{}
	wg      sync.WaitGroup
	running bool
	mu      sync.Mutex
}

// NewCleanupJob creates a cleanup job. A non-positive interval defaults
// to hourly.
func NewCleanupJob(tokens TokenPurger, sessions SessionPurger, interval time.Duration) *CleanupJob {
	if interval <= 0 {
		interval = time.Hour
	}
	return &CleanupJob{
		tokens:   tokens,
		sessions: sessions,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic cleanup
func (j *CleanupJob) Start() {
	j.mu.Lock()
	if j.running {
		j.mu.Unlock()
		return
	}
	j.running = true
	j.mu.Unlock()

	j.wg.Add(1)
	go j.run()
	slog.Info("cleanup job started", slog.Duration("interval", j.interval))
}

// Stop gracefully stops the job
func (j *CleanupJob) Stop() {
	j.mu.Lock()
	if !j.running {
		j.mu.Unlock()
		return
	}
	j.running = false
	j.mu.Unlock()

	close(j.stopCh)
	j.wg.Wait()
	slog.Info("cleanup job stopped")
}

func (j *CleanupJob) run() {
	defer j.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	// One sweep on startup too
	j.sweep()

	for {
		select {
		case <-ticker.C:
			j.sweep()
		case <-j.stopCh:
			return
		}
	}
}

func (j *CleanupJob) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := j.tokens.DeleteExpired(ctx, time.Now()); err != nil {
		slog.Error("cleanup: token purge failed", slog.Any("error", err))
	}
	if err := j.sessions.PurgeExpired(ctx); err != nil {
		slog.Error("cleanup: session purge failed", slog.Any("error", err))
	}
}
