package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidateRejectsBadEOL(t *testing.T) {
	var c = Default()
	c.EOLBytes = "\t"
	var err = c.Validate()
	require.Error(t, err)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "eol_bytes", cfgErr.Field)
}

func TestValidateRejectsBadADPCMChannels(t *testing.T) {
	var c = Default()
	c.ADPCM.Channels = 3
	require.Error(t, c.Validate())
}

func TestValidateRejectsBadADPCMSampleWidth(t *testing.T) {
	var c = Default()
	c.ADPCM.SampleWidth = 24
	require.Error(t, c.Validate())
}

func TestValidateRejectsZeroRingCapacity(t *testing.T) {
	var c = Default()
	c.Ring.NRowsCap = 0
	require.Error(t, c.Validate())

	c = Default()
	c.Ring.NColsCap = 0
	require.Error(t, c.Validate())
}

func TestLoadOverlaysDefaults(t *testing.T) {
	var dir = t.TempDir()
	var path = filepath.Join(dir, "config.yaml")
	var contents = "labels_enabled: false\nstrict: true\nadpcm:\n  channels: 2\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	var c, err = Load(path)
	require.NoError(t, err)

	assert.False(t, c.LabelsEnabled)
	assert.True(t, c.Strict)
	assert.Equal(t, 2, c.ADPCM.Channels)
	// Untouched fields keep their defaults.
	assert.Equal(t, 16, c.ADPCM.SampleWidth)
	assert.Equal(t, 1024, c.Ring.NRowsCap)
}

func TestLoadRejectsInvalidOverlay(t *testing.T) {
	var dir = t.TempDir()
	var path = filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("eol_bytes: \"xx\"\n"), 0o644))

	var _, err = Load(path)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	var _, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
