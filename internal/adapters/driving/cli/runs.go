package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/overtone-labs/stagehand/internal/core/domain"
)

var (
	runsLimit int
	runsJSON  bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect finished import sessions",
	Long: `Every import session is recorded once it reaches a terminal phase.
The reports are an audit trail: which files were imported, which
fallback buttons were pressed, and why failed runs failed.`,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent import sessions, newest first",
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one session report",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

func init() {
	runsListCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "maximum number of runs")
	runsListCmd.Flags().BoolVar(&runsJSON, "json", false, "output as JSON")
	runsShowCmd.Flags().BoolVar(&runsJSON, "json", false, "output as JSON")
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}

func runRunsList(cmd *cobra.Command, _ []string) error {
	if runService == nil {
		return errors.New("run service not configured")
	}

	runs, err := runService.List(cmd.Context(), runsLimit)
	if err != nil {
		return err
	}

	if runsJSON {
		return outputRunsJSON(cmd, runs)
	}

	if len(runs) == 0 {
		cmd.Println("No import runs recorded.")
		return nil
	}

	for i := range runs {
		run := &runs[i]
		cmd.Printf("  %s  %-6s  %s\n", run.StartedAt.Format("2006-01-02 15:04:05"), run.Phase, run.SourcePath)
		cmd.Printf("      id: %s\n", run.ID)
		if run.Failure != nil {
			cmd.Printf("      failure: %s (%s)\n", run.Failure.Kind, run.Failure.Message)
		}
	}
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	if runService == nil {
		return errors.New("run service not configured")
	}

	run, err := runService.Get(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no run with id %s", args[0])
		}
		return err
	}

	if runsJSON {
		data, err := json.MarshalIndent(run, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling run: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Run %s\n", run.ID)
	cmd.Printf("  Project:  %s\n", run.ProjectPath)
	cmd.Printf("  Source:   %s\n", run.SourcePath)
	cmd.Printf("  Phase:    %s\n", run.Phase)
	cmd.Printf("  Started:  %s\n", run.StartedAt.Format(time.RFC3339))
	if !run.FinishedAt.IsZero() {
		cmd.Printf("  Duration: %s\n", run.Duration().Round(time.Millisecond))
	}
	for _, choice := range run.Fallbacks {
		cmd.Printf("  Fallback: %s resolved via %q\n", choice.Step, choice.Chosen)
	}
	if run.Failure != nil {
		cmd.Printf("  Failure:  %s (%s)\n", run.Failure.Kind, run.Failure.Message)
	}
	return nil
}

func outputRunsJSON(cmd *cobra.Command, runs []domain.ImportSession) error {
	data, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling runs: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
