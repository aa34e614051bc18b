package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/overtone-labs/stagehand/internal/adapters/driven/accessibility/memory"
	"github.com/overtone-labs/stagehand/internal/core/domain"
)

func TestFinder_Windows_FiltersByPredicate(t *testing.T) {
	backend := memory.New()
	backend.AddWindow(memory.NewWindow("Tracks"))
	importWin := memory.NewWindow("Import")
	backend.AddWindow(importWin)

	finder := NewFinder(backend)
	matched := finder.Windows(context.Background(), domain.TitleIs("Import"))

	require.Len(t, matched, 1)
	title, ok := matched[0].Attr(domain.AttrTitle)
	require.True(t, ok)
	assert.Equal(t, "Import", title.Str)
}

func TestFinder_Windows_EmptyOnNoMatch(t *testing.T) {
	backend := memory.New()
	backend.AddWindow(memory.NewWindow("Tracks"))

	finder := NewFinder(backend)

	// Empty result, not an error.
	assert.Empty(t, finder.Windows(context.Background(), domain.TitleIs("Import")))
}

func TestFinder_Windows_BackendErrorReportsNoMatches(t *testing.T) {
	backend := memory.New()
	backend.WindowsErr = errors.New("host quit")

	finder := NewFinder(backend)

	assert.Empty(t, finder.Windows(context.Background(), domain.TitleIs("Import")))
}

func TestFinder_Buttons_ScopedToSubtree(t *testing.T) {
	backend := memory.New()
	dialog := memory.NewWindow("Import").
		AddButton(memory.NewButton("Cancel")).
		AddButton(memory.NewButton("Import"))
	backend.AddWindow(dialog)

	finder := NewFinder(backend)
	matched := finder.Buttons(context.Background(), dialog, domain.TitleIs("Import"))

	require.Len(t, matched, 1)
}

func TestFinder_TextFields_MatchOnValue(t *testing.T) {
	backend := memory.New()
	field := memory.NewElement(map[domain.AttrName]domain.AttrValue{
		domain.AttrRole:  domain.StringAttr("AXTextField"),
		domain.AttrVal:   domain.StringAttr("/tmp/chords.mid"),
	})
	sheet := memory.NewWindow("Import").AddTextField(field)
	backend.AddWindow(sheet)

	finder := NewFinder(backend)

	assert.Len(t, finder.TextFields(context.Background(), sheet, domain.ValueIs("/tmp/chords.mid")), 1)
	assert.Empty(t, finder.TextFields(context.Background(), sheet, domain.ValueIs("/other")))
}
