package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadWorldConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.yaml")
	require.NoError(t, os.WriteFile(path, []byte("maxPlayers: 8\nseed: 42\n"), 0o644))

	cfg, err := LoadWorldConfig(path)
	require.NoError(t, err)

	require.Equal(t, 8, cfg.MaxPlayers)
	require.Equal(t, int64(42), cfg.Seed)

	// Everything not named in the file keeps its default.
	defaults := DefaultWorldConfig()
	require.Equal(t, defaults.Width, cfg.Width)
	require.Equal(t, defaults.MaxSpeed, cfg.MaxSpeed)
	require.Equal(t, defaults.TickRate, cfg.TickRate)
}

func TestLoadWorldConfigRejectsMissingFile(t *testing.T) {
	_, err := LoadWorldConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadWorldConfigRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: [not a number"), 0o644))

	_, err := LoadWorldConfig(path)
	require.Error(t, err)
}

func TestNormalizedBackfillsNonsense(t *testing.T) {
	cfg := WorldConfig{Width: -10, TickRate: -1, MaxPlayers: -3}.normalized()
	defaults := DefaultWorldConfig()

	require.Equal(t, defaults.Width, cfg.Width)
	require.Equal(t, defaults.TickRate, cfg.TickRate)
	require.Zero(t, cfg.MaxPlayers)
}
