package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/overtone-labs/stagehand/internal/core/domain"
	"github.com/overtone-labs/stagehand/internal/core/ports/driving"
)

// Defaults for the optional tempo and key arguments.
const (
	defaultTempoBPM = 124
	defaultKey      = "A minor"
)

var (
	createTemplateFlag string
	createOutputFlag   string
	createNoOpenFlag   bool
)

var createCmd = &cobra.Command{
	Use:   "create <name> [tempo] [key] [midi-file]",
	Short: "Create a project from the template",
	Long: `Create a new project by copying the configured template bundle.

An existing project of the same name is replaced. Tempo and key are
recorded for guidance only; set them inside the host after opening.
When a MIDI file is given, the project is opened and the import flow
runs against it.

Examples:
  stagehand create "house vibes"
  stagehand create "house vibes" 128 "F minor"
  stagehand create "house vibes" 128 "F minor" ideas/chords.mid`,
	Args: cobra.RangeArgs(1, 4),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createTemplateFlag, "template", "", "template bundle to copy (overrides configuration)")
	createCmd.Flags().StringVarP(&createOutputFlag, "output", "o", "", "directory to create the project in (overrides configuration)")
	createCmd.Flags().BoolVar(&createNoOpenFlag, "no-open", false, "do not open the project in the host")
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	if projectService == nil {
		return fmt.Errorf("project service not configured")
	}

	req := driving.ProvisionRequest{
		Name:         args[0],
		TempoBPM:     defaultTempoBPM,
		Key:          defaultKey,
		TemplatePath: createTemplateFlag,
		OutputDir:    createOutputFlag,
	}

	if len(args) >= 2 {
		tempo, err := strconv.Atoi(args[1])
		if err != nil || tempo <= 0 {
			return fmt.Errorf("%w: tempo must be a positive number, got %q", domain.ErrInvalidInput, args[1])
		}
		req.TempoBPM = tempo
	}
	if len(args) >= 3 {
		req.Key = args[2]
	}

	project, err := projectService.Provision(cmd.Context(), req)
	if err != nil {
		return err
	}
	cmd.Printf("Created %s\n", project.Path)

	if !createNoOpenFlag {
		if err := projectService.Open(cmd.Context(), project.Path); err != nil {
			return err
		}
	}

	if len(args) == 4 {
		if createNoOpenFlag {
			return fmt.Errorf("%w: cannot import %s with --no-open, the import flow needs the project open", domain.ErrInvalidInput, args[3])
		}
		if err := runImportFlow(cmd, project.Path, args[3]); err != nil {
			return err
		}
	}

	printNextSteps(cmd, project)
	return nil
}

// printNextSteps mirrors what the template does not encode: tempo and
// key live inside the host project and have to be set by hand.
func printNextSteps(cmd *cobra.Command, project *domain.Project) {
	cmd.Printf("\nNext steps:\n")
	cmd.Printf("  1. Set the tempo to %d BPM\n", project.TempoBPM)
	cmd.Printf("  2. Set the key to %s\n", project.Key)
	cmd.Printf("  3. Start sketching\n")
}
