package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/overtone-labs/stagehand/internal/core/ports/driving"
	"github.com/overtone-labs/stagehand/internal/logger"
)

// watchSettle is how long a freshly created file gets to finish being
// written before the import starts.
const watchSettle = 500 * time.Millisecond

var watchProjectFlag string

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Import every MIDI file dropped into a directory",
	Long: `Watch a directory and run the import flow once for each MIDI file
created in it. Useful with a hardware sequencer or phone sync folder
that drops .mid files as you sketch.

Imports run one at a time, in arrival order. Stop with ctrl+c.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchProjectFlag, "project", "p", "", "project path recorded on the session reports")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if importOrchestrator == nil {
		return errors.New("import service not configured")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(args[0]); err != nil {
		return fmt.Errorf("watching %s: %w", args[0], err)
	}

	cmd.Printf("Watching %s for MIDI files (ctrl+c to stop)\n", args[0])
	return watchLoop(cmd, watcher.Events, watcher.Errors, importMidiFile)
}

// watchLoop dispatches create events until the context ends. Each MIDI
// file triggers exactly one import: only create events are acted on,
// and a seen set absorbs editors that emit a second create on rename.
func watchLoop(
	cmd *cobra.Command,
	events <-chan fsnotify.Event,
	errs <-chan error,
	handle func(cmd *cobra.Command, path string),
) error {
	seen := make(map[string]struct{})

	for {
		select {
		case <-cmd.Context().Done():
			return nil

		case event, ok := <-events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) || !isMidiFile(event.Name) {
				continue
			}
			if _, dup := seen[event.Name]; dup {
				continue
			}
			seen[event.Name] = struct{}{}
			handle(cmd, event.Name)

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			logger.Warn("Watcher: %v", err)
		}
	}
}

// isMidiFile reports whether the path looks like a MIDI file.
func isMidiFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mid", ".midi":
		return true
	}
	return false
}

// importMidiFile runs one import for a freshly dropped file. Failures
// are reported and the watch keeps going; one bad file should not end
// the session.
func importMidiFile(cmd *cobra.Command, path string) {
	time.Sleep(watchSettle)

	cmd.Printf("Importing %s\n", path)
	session, err := importOrchestrator.Import(cmd.Context(), driving.ImportRequest{
		ProjectPath: watchProjectFlag,
		SourcePath:  path,
	})
	if err != nil {
		cmd.Printf("  failed: %v\n", err)
		return
	}
	printSessionSummary(cmd, session)
}
