package services

import (
	"fmt"
	"time"

	"github.com/overtone-labs/stagehand/internal/core/domain"
	"github.com/overtone-labs/stagehand/internal/core/ports/driven"
	"github.com/overtone-labs/stagehand/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage. Durations are stored as
// milliseconds; TOML has no duration type.
const (
	keyHostAppName   = "host.app_name"
	keyHostBundleID  = "host.bundle_id"
	keyPollInterval  = "timing.poll_interval_ms"
	keyDialogPolls   = "timing.dialog_poll_attempts"
	keyPromptPolls   = "timing.prompt_poll_attempts"
	keyRevealSettle  = "timing.reveal_settle_ms"
	keyTypeSettle    = "timing.type_settle_ms"
	keySubmitSettle  = "timing.submit_settle_ms"
	keyKeyDelay      = "timing.key_delay_ms"
	keySelectTrack   = "labels.select_track_menu"
	keyImportMenu    = "labels.import_menu"
	keyDialogTitle   = "labels.dialog_title"
	keyRevealKey     = "labels.path_reveal_key"
	keyRevealMods    = "labels.path_reveal_modifiers"
	keyConfirmBtns   = "labels.confirm_buttons"
	keyAlertDesc     = "labels.alert_description"
	keyTempoBtns     = "labels.tempo_prompt_buttons"
	keyVerifyField   = "automation.verify_path_field"
	keyTemplatePath  = "project.template_path"
	keyOutputDir     = "project.output_dir"
)

// SettingsService manages application settings over the config store,
// applying defaults for any key the store does not carry.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings with defaults applied.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Automation: domain.AutomationSettings{
			Host: domain.HostSettings{
				AppName:  s.getString(keyHostAppName, defaults.Automation.Host.AppName),
				BundleID: s.getString(keyHostBundleID, defaults.Automation.Host.BundleID),
			},
			Timing: domain.TimingSettings{
				PollInterval:       s.getDuration(keyPollInterval, defaults.Automation.Timing.PollInterval),
				DialogPollAttempts: s.getInt(keyDialogPolls, defaults.Automation.Timing.DialogPollAttempts),
				PromptPollAttempts: s.getInt(keyPromptPolls, defaults.Automation.Timing.PromptPollAttempts),
				RevealSettle:       s.getDuration(keyRevealSettle, defaults.Automation.Timing.RevealSettle),
				TypeSettle:         s.getDuration(keyTypeSettle, defaults.Automation.Timing.TypeSettle),
				SubmitSettle:       s.getDuration(keySubmitSettle, defaults.Automation.Timing.SubmitSettle),
				KeyDelay:           s.getDuration(keyKeyDelay, defaults.Automation.Timing.KeyDelay),
			},
			Labels: domain.LabelSettings{
				SelectTrackMenu:     s.getStringSlice(keySelectTrack, defaults.Automation.Labels.SelectTrackMenu),
				ImportMenu:          s.getStringSlice(keyImportMenu, defaults.Automation.Labels.ImportMenu),
				DialogTitle:         s.getString(keyDialogTitle, defaults.Automation.Labels.DialogTitle),
				PathRevealKey:       s.getString(keyRevealKey, defaults.Automation.Labels.PathRevealKey),
				PathRevealModifiers: s.getModifiers(keyRevealMods, defaults.Automation.Labels.PathRevealModifiers),
				ConfirmButtons:      s.getStringSlice(keyConfirmBtns, defaults.Automation.Labels.ConfirmButtons),
				AlertDescription:    s.getString(keyAlertDesc, defaults.Automation.Labels.AlertDescription),
				TempoPromptButtons:  s.getStringSlice(keyTempoBtns, defaults.Automation.Labels.TempoPromptButtons),
			},
			VerifyPathField: s.configStore.GetBool(keyVerifyField),
		},
		Project: domain.ProjectSettings{
			TemplatePath: s.getString(keyTemplatePath, defaults.Project.TemplatePath),
			OutputDir:    s.getString(keyOutputDir, defaults.Project.OutputDir),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := map[string]any{
		keyHostAppName:  settings.Automation.Host.AppName,
		keyHostBundleID: settings.Automation.Host.BundleID,
		keyPollInterval: settings.Automation.Timing.PollInterval.Milliseconds(),
		keyDialogPolls:  settings.Automation.Timing.DialogPollAttempts,
		keyPromptPolls:  settings.Automation.Timing.PromptPollAttempts,
		keyRevealSettle: settings.Automation.Timing.RevealSettle.Milliseconds(),
		keyTypeSettle:   settings.Automation.Timing.TypeSettle.Milliseconds(),
		keySubmitSettle: settings.Automation.Timing.SubmitSettle.Milliseconds(),
		keyKeyDelay:     settings.Automation.Timing.KeyDelay.Milliseconds(),
		keySelectTrack:  settings.Automation.Labels.SelectTrackMenu,
		keyImportMenu:   settings.Automation.Labels.ImportMenu,
		keyDialogTitle:  settings.Automation.Labels.DialogTitle,
		keyRevealKey:    settings.Automation.Labels.PathRevealKey,
		keyRevealMods:   modifierStrings(settings.Automation.Labels.PathRevealModifiers),
		keyConfirmBtns:  settings.Automation.Labels.ConfirmButtons,
		keyAlertDesc:    settings.Automation.Labels.AlertDescription,
		keyTempoBtns:    settings.Automation.Labels.TempoPromptButtons,
		keyVerifyField:  settings.Automation.VerifyPathField,
		keyTemplatePath: settings.Project.TemplatePath,
		keyOutputDir:    settings.Project.OutputDir,
	}
	for key, value := range values {
		if err := s.configStore.Set(key, value); err != nil {
			return fmt.Errorf("saving %s: %w", key, err)
		}
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) getString(key, def string) string {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return s.configStore.GetString(key)
}

func (s *SettingsService) getInt(key string, def int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getDuration(key string, def time.Duration) time.Duration {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return time.Duration(s.configStore.GetInt(key)) * time.Millisecond
}

func (s *SettingsService) getStringSlice(key string, def []string) []string {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return s.configStore.GetStringSlice(key)
}

func (s *SettingsService) getModifiers(key string, def []domain.Modifier) []domain.Modifier {
	raw := s.getStringSlice(key, modifierStrings(def))
	mods := make([]domain.Modifier, 0, len(raw))
	for _, m := range raw {
		mods = append(mods, domain.Modifier(m))
	}
	return mods
}

func modifierStrings(mods []domain.Modifier) []string {
	out := make([]string, 0, len(mods))
	for _, m := range mods {
		out = append(out, string(m))
	}
	return out
}
