package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWatchTestCmd() (*cobra.Command, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	cmd.SetContext(context.Background())
	return cmd, buf
}

func TestIsMidiFile(t *testing.T) {
	assert.True(t, isMidiFile("/drop/chords.mid"))
	assert.True(t, isMidiFile("/drop/chords.MIDI"))
	assert.False(t, isMidiFile("/drop/chords.wav"))
	assert.False(t, isMidiFile("/drop/chords"))
}

func TestWatchLoop_OneImportPerCreatedFile(t *testing.T) {
	cmd, _ := newWatchTestCmd()
	events := make(chan fsnotify.Event, 8)
	errs := make(chan error)

	events <- fsnotify.Event{Name: "/drop/a.mid", Op: fsnotify.Create}
	events <- fsnotify.Event{Name: "/drop/a.mid", Op: fsnotify.Write}
	events <- fsnotify.Event{Name: "/drop/a.mid", Op: fsnotify.Create}
	events <- fsnotify.Event{Name: "/drop/b.midi", Op: fsnotify.Create}
	events <- fsnotify.Event{Name: "/drop/notes.txt", Op: fsnotify.Create}
	close(events)

	var handled []string
	err := watchLoop(cmd, events, errs, func(_ *cobra.Command, path string) {
		handled = append(handled, path)
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"/drop/a.mid", "/drop/b.midi"}, handled)
}

func TestWatchLoop_StopsWhenContextEnds(t *testing.T) {
	cmd, _ := newWatchTestCmd()
	ctx, cancel := context.WithCancel(context.Background())
	cmd.SetContext(ctx)
	cancel()

	events := make(chan fsnotify.Event)
	errs := make(chan error)

	err := watchLoop(cmd, events, errs, func(*cobra.Command, string) {
		t.Fatal("no events were sent")
	})

	require.NoError(t, err)
}

func TestWatchLoop_WatcherErrorsDoNotStopTheLoop(t *testing.T) {
	cmd, _ := newWatchTestCmd()
	events := make(chan fsnotify.Event, 2)
	errs := make(chan error, 1)

	errs <- assert.AnError
	events <- fsnotify.Event{Name: "/drop/a.mid", Op: fsnotify.Create}
	close(events)

	var handled []string
	err := watchLoop(cmd, events, errs, func(_ *cobra.Command, path string) {
		handled = append(handled, path)
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"/drop/a.mid"}, handled)
}

func TestWatchCmd_WithoutServiceFails(t *testing.T) {
	_, _, _, _, cleanup := setupTestServices()
	defer cleanup()
	importOrchestrator = nil

	_, err := executeCommand("watch", t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
