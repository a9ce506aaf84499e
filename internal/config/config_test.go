package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	var cfg Config

	assert.Equal(t, 8090, cfg.Server.GetRESTPort())
	assert.Equal(t, 100, cfg.Safety.GetRebuildInterval())
	assert.Equal(t, 6, cfg.Safety.GetReservedPriority())
	assert.Equal(t, 1024, cfg.EventBus.GetBuffer())

	w, h, d := cfg.Grid.Dimensions()
	assert.Equal(t, 64, w)
	assert.Equal(t, 64, h)
	assert.Equal(t, 16, d)
}

func TestEnvFallback(t *testing.T) {
	t.Setenv("DIGSAFE_REBUILD_INTERVAL", "250")

	var cfg Config
	assert.Equal(t, 250, cfg.Safety.GetRebuildInterval())

	// Значение из конфига имеет приоритет над ENV
	cfg.Safety.RebuildIntervalTicks = 50
	assert.Equal(t, 50, cfg.Safety.GetRebuildInterval())
}

func TestLoadYAML(t *testing.T) {
	yaml := `
safety:
  rebuild_interval_ticks: 200
  reserved_priority: 7
  enabled: true
server:
  rest_port: 9000
grid:
  width: 128
  height: 128
  depth: 32
  seed: 42
`
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 200, cfg.Safety.GetRebuildInterval())
	assert.Equal(t, 7, cfg.Safety.GetReservedPriority())
	assert.True(t, cfg.Safety.Enabled)
	assert.Equal(t, 9000, cfg.Server.GetRESTPort())

	w, h, d := cfg.Grid.Dimensions()
	assert.Equal(t, 128, w)
	assert.Equal(t, 128, h)
	assert.Equal(t, 32, d)
	assert.Equal(t, int64(42), cfg.Grid.Seed)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)

	// Путь не задан и ENV пуст — nil без ошибки
	t.Setenv("DIGSAFE_CONFIG", "")
	cfg, err := Load("")
	assert.NoError(t, err)
	assert.Nil(t, cfg)
}
