package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/overtone-labs/stagehand/internal/adapters/driven/accessibility/memory"
	"github.com/overtone-labs/stagehand/internal/core/domain"
	"github.com/overtone-labs/stagehand/internal/core/ports/driven"
)

func located(els ...*memory.Element) func(context.Context) []driven.Element {
	return func(_ context.Context) []driven.Element {
		out := make([]driven.Element, 0, len(els))
		for _, el := range els {
			out = append(out, el)
		}
		return out
	}
}

func absent() func(context.Context) []driven.Element {
	return func(_ context.Context) []driven.Element { return nil }
}

func TestResolveFirst_FirstAbsentSecondPresent(t *testing.T) {
	okButton := memory.NewButton("OK")

	chosen, err := ResolveFirst(context.Background(), []Candidate{
		{Name: "Import Tempo", Locate: absent()},
		{Name: "OK", Locate: located(okButton)},
	})

	require.NoError(t, err)
	assert.Equal(t, "OK", chosen)
	assert.Equal(t, 1, okButton.PressCount, "exactly one action performed")
}

func TestResolveFirst_FirstPresent_SecondNeverTried(t *testing.T) {
	importTempo := memory.NewButton("Import Tempo")
	okButton := memory.NewButton("OK")

	chosen, err := ResolveFirst(context.Background(), []Candidate{
		{Name: "Import Tempo", Locate: located(importTempo)},
		{Name: "OK", Locate: located(okButton)},
	})

	require.NoError(t, err)
	assert.Equal(t, "Import Tempo", chosen)
	assert.Equal(t, 1, importTempo.PressCount)
	assert.Equal(t, 0, okButton.PressCount)
}

func TestResolveFirst_AllAbsent_NoActionPerformed(t *testing.T) {
	acted := false

	_, err := ResolveFirst(context.Background(), []Candidate{
		{Name: "A", Locate: absent(), Act: func(context.Context, driven.Element) error {
			acted = true
			return nil
		}},
		{Name: "B", Locate: absent()},
	})

	assert.ErrorIs(t, err, domain.ErrCandidatesExhausted)
	assert.False(t, acted, "zero actions when every candidate is absent")
}

func TestResolveFirst_ActErrorPropagates(t *testing.T) {
	el := memory.NewButton("Import")
	boom := errors.New("dispatch refused")

	_, err := ResolveFirst(context.Background(), []Candidate{
		{Name: "Import", Locate: located(el), Act: func(context.Context, driven.Element) error {
			return boom
		}},
	})

	assert.ErrorIs(t, err, boom)
}
