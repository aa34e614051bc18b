// Package cli implements the stagehand command-line interface using
// cobra. Commands are thin: they parse flags and arguments, call the
// driving services wired in by main, and render the result.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/overtone-labs/stagehand/internal/core/ports/driving"
	"github.com/overtone-labs/stagehand/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services wired in by main before Execute runs. Commands nil-check
// the service they need so a partially wired binary fails with a clear
// message instead of a panic.
var (
	importOrchestrator driving.ImportOrchestrator
	projectService     driving.ProjectService
	runService         driving.RunService
	settingsService    driving.SettingsService
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "stagehand",
	Short: "Template-based project provisioning and MIDI import automation",
	Long: `Stagehand provisions DAW projects from a template bundle and drives
the host application's MIDI import flow through its accessibility tree.

The import flow is keystroke-level automation: keep the host frontmost
while an import is running.`,
	PersistentPreRun: func(*cobra.Command, []string) {
		logger.SetVerbose(verboseFlag)
	},
	SilenceUsage: true,
}

// Services aggregates everything the commands need.
type Services struct {
	Importer driving.ImportOrchestrator
	Project  driving.ProjectService
	Runs     driving.RunService
	Settings driving.SettingsService
}

// SetServices wires the driving services into the commands.
func SetServices(s Services) {
	importOrchestrator = s.Importer
	projectService = s.Project
	runService = s.Runs
	settingsService = s.Settings
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"print accessibility queries and keystroke traffic")
}
