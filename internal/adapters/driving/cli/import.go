package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/overtone-labs/stagehand/internal/adapters/driving/tui"
	"github.com/overtone-labs/stagehand/internal/core/domain"
	"github.com/overtone-labs/stagehand/internal/core/ports/driving"
)

var (
	importProjectFlag string
	importPlainFlag   bool
)

var importCmd = &cobra.Command{
	Use:   "import <midi-file>",
	Short: "Import a MIDI file into the frontmost project",
	Long: `Drive the host application's MIDI import flow for one file.

The host must already have a project open. The flow activates the host,
invokes the import menu action, injects the file path into the open
dialog and confirms, resolving the tempo prompt if one appears. It runs
to completion or failure and cannot be aborted mid-flight.

Examples:
  stagehand import ideas/chords.mid
  stagehand import ideas/chords.mid --project "projects/house vibes.logicx"`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importProjectFlag, "project", "p", "", "project path recorded on the session report")
	importCmd.Flags().BoolVar(&importPlainFlag, "plain", false, "plain line output instead of the progress view")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	return runImportFlow(cmd, importProjectFlag, args[0])
}

// runImportFlow runs one import session, with a progress view on a
// terminal and plain output everywhere else. Shared with create.
func runImportFlow(cmd *cobra.Command, projectPath, sourcePath string) error {
	if importOrchestrator == nil {
		return fmt.Errorf("import service not configured")
	}

	req := driving.ImportRequest{
		ProjectPath: projectPath,
		SourcePath:  sourcePath,
	}

	if importPlainFlag || !term.IsTerminal(int(os.Stdout.Fd())) {
		return runImportPlain(cmd, req)
	}
	return runImportProgress(cmd, req)
}

func runImportPlain(cmd *cobra.Command, req driving.ImportRequest) error {
	cmd.Printf("Importing %s\n", req.SourcePath)
	session, err := importOrchestrator.Import(cmd.Context(), req)
	if err != nil {
		return err
	}
	printSessionSummary(cmd, session)
	return nil
}

func runImportProgress(cmd *cobra.Command, req driving.ImportRequest) error {
	view, final := startImport(cmd.Context(), req)

	model, err := tui.NewModel(&tui.Ports{Importer: importOrchestrator}, req.SourcePath, view)
	if err != nil {
		return err
	}

	if _, err := tea.NewProgram(model).Run(); err != nil {
		return fmt.Errorf("running progress view: %w", err)
	}

	result := tui.Result{Session: model.Session(), Err: model.Err()}
	if result.Session == nil && result.Err == nil {
		// The view was left before the session finished. The flow cannot
		// be aborted, so wait it out rather than killing it mid-keystroke.
		cmd.Println("Waiting for the running import to finish...")
		result = <-final
	}

	if result.Err != nil {
		return result.Err
	}
	printSessionSummary(cmd, result.Session)
	return nil
}

// startImport runs the import in the background, delivering the outcome
// on both returned channels. The progress view consumes one copy and
// the command the other: a view quit before the session finishes leaves
// its result wait draining the view channel, which must not starve the
// command's own read. Both channels are buffered so the session
// goroutine never blocks on an abandoned reader.
func startImport(ctx context.Context, req driving.ImportRequest) (view, final <-chan tui.Result) {
	viewCh := make(chan tui.Result, 1)
	finalCh := make(chan tui.Result, 1)
	go func() {
		session, err := importOrchestrator.Import(ctx, req)
		result := tui.Result{Session: session, Err: err}
		viewCh <- result
		finalCh <- result
	}()
	return viewCh, finalCh
}

func printSessionSummary(cmd *cobra.Command, session *domain.ImportSession) {
	if session == nil {
		return
	}
	for _, choice := range session.Fallbacks {
		cmd.Printf("  %s resolved via %q\n", choice.Step, choice.Chosen)
	}
	if session.Succeeded() {
		cmd.Printf("Import complete in %s (session %s)\n",
			session.Duration().Round(time.Millisecond), session.ID)
	}
}
