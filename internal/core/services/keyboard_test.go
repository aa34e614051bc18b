package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/overtone-labs/stagehand/internal/adapters/driven/accessibility/memory"
	"github.com/overtone-labs/stagehand/internal/core/domain"
)

func TestTyper_Type_OneKeyPerCharacterInOrder(t *testing.T) {
	backend := memory.New()
	typer := NewTyper(backend, 0)

	text := "/Users/a b/chords über.mid"
	require.NoError(t, typer.Type(context.Background(), text))

	runes := []rune(text)
	require.Len(t, backend.Keys, len(runes))
	for i, r := range runes {
		assert.Equal(t, string(r), backend.Keys[i])
	}
}

func TestTyper_Type_PacesKeys(t *testing.T) {
	backend := memory.New()
	typer := NewTyper(backend, 5*time.Millisecond)

	start := time.Now()
	require.NoError(t, typer.Type(context.Background(), "abcd"))

	// First key immediate, three paced gaps after it.
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
	assert.Len(t, backend.Keys, 4)
}

func TestTyper_Clear_SelectAllThenDelete(t *testing.T) {
	backend := memory.New()
	typer := NewTyper(backend, 0)

	require.NoError(t, typer.Clear(context.Background()))

	require.Len(t, backend.Chords, 1)
	assert.Equal(t, "a", backend.Chords[0].Key)
	assert.Equal(t, []domain.Modifier{domain.ModCommand}, backend.Chords[0].Mods)
	assert.Equal(t, []string{"backspace"}, backend.Keys)
}

func TestTyper_Submit_SendsReturn(t *testing.T) {
	backend := memory.New()
	typer := NewTyper(backend, 0)

	require.NoError(t, typer.Submit(context.Background()))

	assert.Equal(t, []string{"\n"}, backend.Keys)
}
