// internal/app/system/workers/sessioncleanup.go
package workers

import (
	"context"
	"sync"
	"time"

	oauthstatestore "github.com/dalemusser/waitlist/internal/app/store/oauthstate"
	sessionstore "github.com/dalemusser/waitlist/internal/app/store/sessions"
	"go.uber.org/zap"
)

// SessionCleanup is a background worker that purges expired session
// records and OAuth state tokens. Mongo's TTL monitor usually handles
// both, but its sweep interval is not guaranteed; this keeps the
// collections tidy regardless.
type SessionCleanup struct {
	sessions *sessionstore.Store
	states   *oauthstatestore.Store
	log      *zap.Logger
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewSessionCleanup creates a cleanup worker that runs every interval.
func NewSessionCleanup(sessions *sessionstore.Store, states *oauthstatestore.Store, logger *zap.Logger, interval time.Duration) *SessionCleanup {
	return &SessionCleanup{
		sessions: sessions,
		states:   states,
		log:      logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background cleanup loop.
func (w *SessionCleanup) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("session cleanup worker started",
		zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *SessionCleanup) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("session cleanup worker stopped")
}

func (w *SessionCleanup) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.cleanup()
		}
	}
}

func (w *SessionCleanup) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if count, err := w.sessions.DeleteExpired(ctx); err != nil {
		w.log.Error("failed to delete expired sessions", zap.Error(err))
	} else if count > 0 {
		w.log.Info("deleted expired sessions", zap.Int64("count", count))
	}

	if count, err := w.states.CleanupExpired(ctx); err != nil {
		w.log.Error("failed to delete expired oauth states", zap.Error(err))
	} else if count > 0 {
		w.log.Info("deleted expired oauth states", zap.Int64("count", count))
	}
}
