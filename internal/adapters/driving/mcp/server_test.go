package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil project service returns error", func(t *testing.T) {
		ports := &Ports{Importer: &mockImporter{}}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingProjectService)
	})

	t.Run("nil importer returns error", func(t *testing.T) {
		ports := &Ports{Project: &mockProjectService{}}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingImporter)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports := &Ports{
			Project:  &mockProjectService{},
			Importer: &mockImporter{},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("runs service is optional", func(t *testing.T) {
		ports := &Ports{
			Project:  &mockProjectService{},
			Importer: &mockImporter{},
		}
		assert.NoError(t, ports.Validate())
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Project:  &mockProjectService{},
			Importer: &mockImporter{},
			Runs:     &mockRunService{},
		}
		assert.NoError(t, ports.Validate())
	})
}
