package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/luci/internal/config"
)

func TestLoadMissingFileUsesZeroValue(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	require.Equal(t, uint64(0), cfg.MaxSteps)
	require.Equal(t, "", cfg.HistoryFile)
}

func TestLoadReadsYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".lucirc")
	require.NoError(t, os.WriteFile(path, []byte("max_steps: 1000\nhistory_size: 42\n"), 0600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, uint64(1000), cfg.MaxSteps)
	require.Equal(t, 42, cfg.HistorySize)
}

func TestEnvVarsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".lucirc")
	require.NoError(t, os.WriteFile(path, []byte("max_steps: 1000\n"), 0600))

	t.Setenv("LUCI_MAX_STEPS", "5000")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, uint64(5000), cfg.MaxSteps)
}

func TestResolvePrefersCurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.FileName)
	require.NoError(t, os.WriteFile(path, []byte("max_steps: 1\n"), 0600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { require.NoError(t, os.Chdir(wd)) }()

	require.Equal(t, config.FileName, config.Resolve())
}
