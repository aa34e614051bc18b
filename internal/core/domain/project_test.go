package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBundleName(t *testing.T) {
	assert.Equal(t, "house vibes.logicx", BundleName("house vibes"))
	// Extension is not doubled.
	assert.Equal(t, "house vibes.logicx", BundleName("house vibes.logicx"))
}

func TestProject_DisplayName(t *testing.T) {
	p := &Project{Name: "house vibes", TempoBPM: 124, Key: "A minor"}
	assert.Equal(t, "house vibes (124 BPM, A minor)", p.DisplayName())

	bare := &Project{Name: "house vibes"}
	assert.Equal(t, "house vibes", bare.DisplayName())
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, "Logic Pro", s.Automation.Host.AppName)
	assert.Equal(t, "Import", s.Automation.Labels.DialogTitle)
	assert.Equal(t, []string{"Import Tempo", "OK"}, s.Automation.Labels.TempoPromptButtons)
	assert.Equal(t, 100, s.Automation.Timing.DialogPollAttempts)
	assert.Equal(t, 50, s.Automation.Timing.PromptPollAttempts)
	assert.False(t, s.Automation.VerifyPathField)
	assert.NotEmpty(t, s.Project.TemplatePath)
}
