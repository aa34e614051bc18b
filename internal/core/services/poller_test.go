package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/overtone-labs/stagehand/internal/adapters/driven/accessibility/memory"
	"github.com/overtone-labs/stagehand/internal/core/ports/driven"
)

func TestPoll_NeverMatches_ExhaustsAllAttempts(t *testing.T) {
	calls := 0
	query := func(_ context.Context) []driven.Element {
		calls++
		return nil
	}

	interval := 10 * time.Millisecond
	start := time.Now()
	outcome := Poll(context.Background(), query, interval, 5)
	elapsed := time.Since(start)

	assert.False(t, outcome.Matched())
	assert.Equal(t, 5, calls, "every attempt queries exactly once")
	assert.GreaterOrEqual(t, elapsed, 4*interval, "sleeps between attempts, none before the first")
}

func TestPoll_MatchOnAttemptK_StopsEarly(t *testing.T) {
	el := memory.NewWindow("Import")
	calls := 0
	query := func(_ context.Context) []driven.Element {
		calls++
		if calls >= 3 {
			return []driven.Element{el}
		}
		return nil
	}

	outcome := Poll(context.Background(), query, time.Millisecond, 10)

	assert.True(t, outcome.Matched())
	assert.Equal(t, 3, calls)
	assert.Len(t, outcome.Elements, 1)
}

func TestPoll_FirstAttemptIsImmediate(t *testing.T) {
	el := memory.NewWindow("Import")
	query := func(_ context.Context) []driven.Element {
		return []driven.Element{el}
	}

	// A matching first attempt must return without ever sleeping;
	// an hour-long interval would hang the test otherwise.
	start := time.Now()
	outcome := Poll(context.Background(), query, time.Hour, 3)

	assert.True(t, outcome.Matched())
	assert.Less(t, time.Since(start), time.Second)
}

func TestPoll_CancelledContextEndsEarly(t *testing.T) {
	calls := 0
	query := func(_ context.Context) []driven.Element {
		calls++
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	outcome := Poll(ctx, query, 50*time.Millisecond, 100)

	assert.False(t, outcome.Matched())
	assert.Equal(t, 1, calls, "cancelled during the first sleep")
}

func TestPoll_ZeroAttempts_NeverQueries(t *testing.T) {
	calls := 0
	query := func(_ context.Context) []driven.Element {
		calls++
		return nil
	}

	outcome := Poll(context.Background(), query, time.Millisecond, 0)

	assert.False(t, outcome.Matched())
	assert.Equal(t, 0, calls)
}
