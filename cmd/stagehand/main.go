// Command stagehand provisions DAW projects from a template and drives
// the host application's MIDI import flow through its accessibility tree.
package main

import (
	"fmt"
	"os"

	"github.com/overtone-labs/stagehand/cgo/ax"
	"github.com/overtone-labs/stagehand/internal/adapters/driven/config/file"
	"github.com/overtone-labs/stagehand/internal/adapters/driven/provision/fs"
	"github.com/overtone-labs/stagehand/internal/adapters/driven/storage/sqlite"
	"github.com/overtone-labs/stagehand/internal/adapters/driving/cli"
	"github.com/overtone-labs/stagehand/internal/core/services"
)

// version is set at build time via
// -ldflags "-X main.version=v1.2.3".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	runStore, err := sqlite.NewRunStore("")
	if err != nil {
		return fmt.Errorf("opening run store: %w", err)
	}
	defer runStore.Close()

	backend := ax.New(settings.Automation.Host)

	cli.SetServices(cli.Services{
		Importer: services.NewImportOrchestrator(backend, runStore, settings.Automation),
		Project:  services.NewProjectService(fs.New(), backend, settings.Project),
		Runs:     services.NewRunService(runStore),
		Settings: settingsService,
	})
	cli.SetVersion(version)

	return cli.Execute()
}
