package app

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/coolview/coolview/internal/engine"
	"github.com/coolview/coolview/internal/state"
)

const (
	defaultPollInterval = time.Second
	maxBackoff          = 30 * time.Second
)

// StartPoller launches a background goroutine that drives the synchronizer
// at a fixed cadence, stretching the interval exponentially while the daemon
// is unreachable. It returns immediately.
func StartPoller(ctx context.Context, sync *engine.Synchronizer, store *state.Store, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			refresh(ctx, sync)
			timer.Reset(calculateBackoff(store.Snapshot().ConsecutiveFailures, interval))
		}
	}()
}

func refresh(ctx context.Context, sync *engine.Synchronizer) {
	outcome, err := sync.PollOnce(ctx)
	if err != nil {
		// An overlapping tick is skipped by design and not a failure.
		if errors.Is(err, engine.ErrPollInFlight) {
			return
		}
		log.Printf("status poll failed: %v", err)
		return
	}
	if outcome == engine.OutcomeFullResync {
		log.Printf("status history resynchronized in full")
	}
}

// calculateBackoff doubles the base interval per consecutive failure, capped
// at maxBackoff, so a down daemon isn't hammered at full poll rate.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base << failures
	if backoff <= 0 || backoff > maxBackoff {
		return maxBackoff
	}
	return backoff
}
