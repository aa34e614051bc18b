package domain

import "time"

// HostSettings identifies the application being driven.
type HostSettings struct {
	// AppName is the host's display name, used in status output.
	AppName string

	// BundleID is the macOS bundle identifier used to locate the host.
	BundleID string
}

// TimingSettings names every delay and poll bound in the import flow.
// The original automation scattered these as magic sleeps; here they are
// configuration so operators can trade latency against host load.
type TimingSettings struct {
	// PollInterval is the sleep between bounded poll attempts.
	PollInterval time.Duration

	// DialogPollAttempts bounds the poll for the import dialog.
	// The dialog is expected to appear; exhaustion is a failure.
	DialogPollAttempts int

	// PromptPollAttempts bounds the poll for the tempo-conflict prompt.
	// The prompt is conditional; exhaustion is a normal outcome.
	PromptPollAttempts int

	// RevealSettle is the pause after the path-reveal key chord.
	RevealSettle time.Duration

	// TypeSettle is the pause after typing the path, before submitting.
	TypeSettle time.Duration

	// SubmitSettle is the pause after submitting the path.
	SubmitSettle time.Duration

	// KeyDelay is the pacing between per-character key events.
	// Bulk text delivery drops characters in the host's path sheet.
	KeyDelay time.Duration
}

// LabelSettings holds every host UI label the flow matches on.
// Host versions and locales relabel elements, so each lookup that has
// known variants lists them in fallback priority order.
type LabelSettings struct {
	// SelectTrackMenu selects the last track before importing, so the
	// imported regions land below the existing arrangement. Empty
	// disables the step; invocation failures are not fatal.
	SelectTrackMenu []string

	// ImportMenu is the menu path that opens the import dialog.
	ImportMenu []string

	// DialogTitle is the expected title of the import dialog window.
	DialogTitle string

	// PathRevealKey with PathRevealModifiers opens the go-to-folder sheet.
	PathRevealKey       string
	PathRevealModifiers []Modifier

	// ConfirmButtons are confirm-button labels in fallback order.
	ConfirmButtons []string

	// AlertDescription identifies the tempo prompt window. The prompt
	// carries no title; it is matched on its description attribute.
	AlertDescription string

	// TempoPromptButtons are resolution labels in fallback order.
	TempoPromptButtons []string
}

// ProjectSettings holds provisioning paths.
type ProjectSettings struct {
	// TemplatePath is the template project bundle to copy.
	TemplatePath string

	// OutputDir is where provisioned projects are created.
	OutputDir string
}

// AutomationSettings groups the settings the import engine consumes.
type AutomationSettings struct {
	Host   HostSettings
	Timing TimingSettings
	Labels LabelSettings

	// VerifyPathField enables polling the path field's value attribute
	// for equality with the injected path before submitting, with one
	// bounded re-injection. Off by default: the shipped flow submits
	// best-effort without verification.
	VerifyPathField bool
}

// AppSettings is the full application configuration.
type AppSettings struct {
	Automation AutomationSettings
	Project    ProjectSettings
}

// DefaultAppSettings returns the defaults observed against Logic Pro.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Automation: AutomationSettings{
			Host: HostSettings{
				AppName:  "Logic Pro",
				BundleID: "com.apple.logic10",
			},
			Timing: TimingSettings{
				PollInterval:       100 * time.Millisecond,
				DialogPollAttempts: 100,
				PromptPollAttempts: 50,
				RevealSettle:       500 * time.Millisecond,
				TypeSettle:         500 * time.Millisecond,
				SubmitSettle:       time.Second,
				KeyDelay:           10 * time.Millisecond,
			},
			Labels: LabelSettings{
				SelectTrackMenu:     []string{"Track", "Select Last Track"},
				ImportMenu:          []string{"File", "Import", "MIDI File…"},
				DialogTitle:         "Import",
				PathRevealKey:       "g",
				PathRevealModifiers: []Modifier{ModCommand, ModShift},
				ConfirmButtons:      []string{"Import", "Open"},
				AlertDescription:    "alert",
				TempoPromptButtons:  []string{"Import Tempo", "OK"},
			},
			VerifyPathField: false,
		},
		Project: ProjectSettings{
			TemplatePath: "templates/dance_template" + ProjectExtension,
			OutputDir:    "projects",
		},
	}
}
