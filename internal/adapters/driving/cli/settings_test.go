package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsCmd_ShowsCurrentSettings(t *testing.T) {
	_, _, _, _, cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "App name: Logic Pro")
	assert.Contains(t, out, "Bundle ID: com.apple.logic10")
	assert.Contains(t, out, "Import menu: File > Import > MIDI File…")
	assert.Contains(t, out, "Select track menu: Track > Select Last Track")
	assert.Contains(t, out, "Confirm buttons: Import, Open")
	assert.Contains(t, out, "Path field verification: off")
}

func TestSettingsCmd_BareInvocationShows(t *testing.T) {
	_, _, _, _, cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("settings")

	require.NoError(t, err)
	assert.Contains(t, out, "Current Settings")
}

func TestSettingsCmd_ShowsDisabledTrackSelection(t *testing.T) {
	_, _, _, settings, cleanup := setupTestServices()
	defer cleanup()
	settings.settings.Automation.Labels.SelectTrackMenu = nil

	out, err := executeCommand("settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Select track menu: (disabled)")
}

func TestSettingsResetCmd_SavesDefaults(t *testing.T) {
	_, _, _, settings, cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("settings", "reset")

	require.NoError(t, err)
	assert.Contains(t, out, "Settings reset to defaults.")
	require.NotNil(t, settings.saved)
	assert.Equal(t, "Logic Pro", settings.saved.Automation.Host.AppName)
}

func TestSettingsCmds_WithoutServiceFail(t *testing.T) {
	_, _, _, _, cleanup := setupTestServices()
	defer cleanup()
	settingsService = nil

	_, err := executeCommand("settings", "show")
	require.Error(t, err)

	_, err = executeCommand("settings", "reset")
	require.Error(t, err)
}
