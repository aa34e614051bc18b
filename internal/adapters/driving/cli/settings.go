package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and reset host, timing, label, and project settings.

Values are stored in the configuration file and can be edited there
directly; unset keys fall back to the built-in Logic Pro defaults.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset all settings to the built-in defaults",
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	auto := settings.Automation

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Host]")
	cmd.Printf("  App name: %s\n", auto.Host.AppName)
	cmd.Printf("  Bundle ID: %s\n", auto.Host.BundleID)
	cmd.Println()

	cmd.Println("[Timing]")
	cmd.Printf("  Poll interval: %s\n", auto.Timing.PollInterval)
	cmd.Printf("  Dialog poll attempts: %d\n", auto.Timing.DialogPollAttempts)
	cmd.Printf("  Prompt poll attempts: %d\n", auto.Timing.PromptPollAttempts)
	cmd.Printf("  Key delay: %s\n", auto.Timing.KeyDelay)
	cmd.Println()

	cmd.Println("[Labels]")
	cmd.Printf("  Import menu: %s\n", strings.Join(auto.Labels.ImportMenu, " > "))
	if len(auto.Labels.SelectTrackMenu) > 0 {
		cmd.Printf("  Select track menu: %s\n", strings.Join(auto.Labels.SelectTrackMenu, " > "))
	} else {
		cmd.Printf("  Select track menu: (disabled)\n")
	}
	cmd.Printf("  Dialog title: %s\n", auto.Labels.DialogTitle)
	cmd.Printf("  Confirm buttons: %s\n", strings.Join(auto.Labels.ConfirmButtons, ", "))
	cmd.Printf("  Tempo prompt buttons: %s\n", strings.Join(auto.Labels.TempoPromptButtons, ", "))
	cmd.Println()

	cmd.Println("[Project]")
	cmd.Printf("  Template: %s\n", settings.Project.TemplatePath)
	cmd.Printf("  Output directory: %s\n", settings.Project.OutputDir)
	cmd.Println()

	verify := "off"
	if auto.VerifyPathField {
		verify = "on"
	}
	cmd.Printf("Path field verification: %s\n", verify)

	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	defaults := settingsService.GetDefaults()
	if err := settingsService.Save(&defaults); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}

	cmd.Println("Settings reset to defaults.")
	return nil
}
