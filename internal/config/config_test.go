package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 1000, cfg.MaxDepth)
	assert.True(t, cfg.Logging.Categories["saturation"], "expected saturation category enabled by default")
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.MaxDepth)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.MaxDepth = 42
	cfg.DefaultPolicyPath = "my_policy.prudens"

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 42, loaded.MaxDepth)
	assert.Equal(t, "my_policy.prudens", loaded.DefaultPolicyPath)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PRUDENS_POLICY", "env_policy.prudens")
	t.Setenv("PRUDENS_DEBUG", "1")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "env_policy.prudens", cfg.DefaultPolicyPath)
	assert.True(t, cfg.Logging.DebugMode, "expected PRUDENS_DEBUG=1 to enable debug mode")
}
