package services

import (
	"context"
	"time"

	"github.com/overtone-labs/stagehand/internal/core/ports/driven"
	"github.com/overtone-labs/stagehand/internal/logger"
)

// Query snapshots currently-matching elements. Queries are idempotent
// reads; the poller re-runs them, never a mutating action.
type Query func(ctx context.Context) []driven.Element

// Outcome is the result of a bounded poll: Matched with the handles
// from the first non-empty snapshot, or timed out with none.
// There is no partial or ambiguous state.
type Outcome struct {
	// Elements is non-empty exactly when the poll matched.
	Elements []driven.Element
}

// Matched reports whether the poll found at least one element.
func (o Outcome) Matched() bool {
	return len(o.Elements) > 0
}

// Poll invokes query up to maxAttempts times, sleeping interval between
// attempts. The first invocation happens immediately, with no leading
// delay. This is the system's only synchronisation primitive: the host
// exposes no notification for "dialog appeared", so discovery is
// query-until-match-or-bound. A cancelled context ends the poll early
// with a timed-out outcome.
func Poll(ctx context.Context, query Query, interval time.Duration, maxAttempts int) Outcome {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleepCtx(ctx, interval); err != nil {
				logger.Debug("poll cancelled on attempt %d: %v", attempt, err)
				return Outcome{}
			}
		}
		if els := query(ctx); len(els) > 0 {
			logger.Debug("poll matched %d element(s) on attempt %d", len(els), attempt)
			return Outcome{Elements: els}
		}
	}
	logger.Debug("poll timed out after %d attempts", maxAttempts)
	return Outcome{}
}

// sleepCtx sleeps for d or until the context is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
