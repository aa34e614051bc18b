package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewImportSession_StartsIdle(t *testing.T) {
	s := NewImportSession("abc", "/projects/demo.logicx", "/tmp/chords.mid")

	assert.Equal(t, "abc", s.ID)
	assert.Equal(t, PhaseIdle, s.Phase)
	assert.False(t, s.StartedAt.IsZero())
	assert.True(t, s.FinishedAt.IsZero())
	assert.Nil(t, s.Failure)
}

func TestImportSession_AdvanceToDone(t *testing.T) {
	s := NewImportSession("abc", "p", "m")

	s.Advance(PhaseActivated)
	assert.True(t, s.FinishedAt.IsZero())

	s.Advance(PhaseDone)
	assert.True(t, s.Succeeded())
	assert.False(t, s.FinishedAt.IsZero())
	assert.GreaterOrEqual(t, s.Duration().Nanoseconds(), int64(0))
}

func TestImportSession_Fail(t *testing.T) {
	s := NewImportSession("abc", "p", "m")
	s.Advance(PhaseActivated)

	s.Fail(FailureDialogNotFound, "poll exhausted after 100 attempts")

	assert.Equal(t, PhaseFailed, s.Phase)
	assert.False(t, s.Succeeded())
	assert.True(t, s.Phase.Terminal())
	if assert.NotNil(t, s.Failure) {
		assert.Equal(t, FailureDialogNotFound, s.Failure.Kind)
		assert.Contains(t, s.Failure.Message, "100 attempts")
	}
}

func TestImportSession_FallbackLogKeepsOrder(t *testing.T) {
	s := NewImportSession("abc", "p", "m")

	s.RecordFallback("confirm", "Import")
	s.RecordFallback("tempo_prompt", "OK")

	assert.Equal(t, []FallbackChoice{
		{Step: "confirm", Chosen: "Import"},
		{Step: "tempo_prompt", Chosen: "OK"},
	}, s.Fallbacks)
}

func TestPhase_Terminal(t *testing.T) {
	assert.True(t, PhaseDone.Terminal())
	assert.True(t, PhaseFailed.Terminal())
	assert.False(t, PhaseIdle.Terminal())
	assert.False(t, PhaseTempoPromptChecked.Terminal())
}

func TestImportSession_DurationZeroWhileRunning(t *testing.T) {
	s := NewImportSession("abc", "p", "m")
	s.Advance(PhaseDialogOpen)

	assert.Equal(t, int64(0), s.Duration().Nanoseconds())
}
