package tasks

import (
	"context"
	"sync"
	"time"

	"github.com/osa911/uplink/internal/logging"
)

// Sweeper closes sessions idle for longer than the given duration and
// reports how many it removed
type Sweeper interface {
	Sweep(idleFor time.Duration) int
}

// SessionCleanup handles periodic cleaning of abandoned form sessions
type SessionCleanup struct {
	sweeper  Sweeper
	ttl      time.Duration
	interval time.Duration
	logger   *logging.Logger

	wg sync.WaitGroup
}

// NewSessionCleanup creates a cleanup task removing sessions idle for ttl.
// It runs every ttl/2, but at least once a minute.
func NewSessionCleanup(sweeper Sweeper, ttl time.Duration, logger *logging.Logger) *SessionCleanup {
	interval := ttl / 2
	if interval <= 0 || interval > time.Minute {
		interval = time.Minute
	}
	return &SessionCleanup{
		sweeper:  sweeper,
		ttl:      ttl,
		interval: interval,
		logger:   logger,
	}
}

// Start begins the session cleanup task in the background. It stops when
// ctx is done.
func (sc *SessionCleanup) Start(ctx context.Context) {
	sc.wg.Add(1)
	go func() {
		defer sc.wg.Done()
		sc.runPeriodically(ctx)
	}()
}

// Wait blocks until the task has stopped
func (sc *SessionCleanup) Wait() {
	sc.wg.Wait()
}

// runPeriodically runs the cleanup task at regular intervals
func (sc *SessionCleanup) runPeriodically(ctx context.Context) {
	ticker := time.NewTicker(sc.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sc.cleanup()
		}
	}
}

// cleanup performs the actual session cleanup
func (sc *SessionCleanup) cleanup() {
	if removed := sc.sweeper.Sweep(sc.ttl); removed > 0 {
		sc.logger.Info("[CLEANUP] Closed %d idle form sessions", removed)
	}
}
