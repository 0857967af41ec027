package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glimmer/internal/config"
)

const sample = `
fps: 25
log_level: debug
control_addr: ":9090"

universes:
  - name: stage
    address: 192.168.1.40
    universe: 1
    channels: 3
  - name: wall
    protocol: artnet
    address: 192.168.1.41:6454
    universe: 2
    channels: 9

channels:
  - universe: stage
    channel: 0
    type: rgb
    hue: "rgb(255,0,0)"
  - universe: wall
    channel: 3
    type: hsv
    hue: candle
    effect: candle
    level: [50, 100]
`

func write(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := config.Load(write(t, sample))
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.FPS)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":9090", cfg.ControlAddr)

	require.Len(t, cfg.Universes, 2)
	assert.Equal(t, "sacn", cfg.Universes[0].Protocol, "protocol defaults to sacn")
	assert.Equal(t, "artnet", cfg.Universes[1].Protocol)
	assert.Equal(t, uint16(2), cfg.Universes[1].Universe)

	require.Len(t, cfg.Channels, 2)
	assert.Equal(t, "candle", cfg.Channels[1].Effect)
	assert.Equal(t, []float64{50, 100}, cfg.Channels[1].Level)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(write(t, "universes: []\n"))
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.FPS)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "glimmer", cfg.SourceName)
	assert.Equal(t, uint8(100), cfg.Priority)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadBadYAML(t *testing.T) {
	_, err := config.Load(write(t, "universes: [unclosed"))
	require.Error(t, err)
}
