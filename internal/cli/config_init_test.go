package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigInit(t *testing.T) {
	home := setupCLITest(t)
	path := filepath.Join(home, "config.yaml")

	out, err := executeCommand(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")
	assert.Contains(t, out, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "base_url: http://localhost:8000")
	assert.Contains(t, string(data), "# caterview configuration")

	t.Run("refuses_overwrite_without_force", func(t *testing.T) {
		_, err := executeCommand(t, "config", "init")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("force_overwrites", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: https://old.example.com\n"), 0o600))

		out, err := executeCommand(t, "config", "init", "--force")
		require.NoError(t, err)
		assert.Contains(t, out, "Configuration initialized successfully")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "base_url: http://localhost:8000")
	})
}

// A broken config file must not lock the user out of the command that
// repairs it.
func TestConfigInitRecoversBrokenFile(t *testing.T) {
	home := setupCLITest(t)
	path := filepath.Join(home, "config.yaml")
	require.NoError(t, os.MkdirAll(home, 0o700))
	require.NoError(t, os.WriteFile(path, []byte("api: [\n"), 0o600))

	out, err := executeCommand(t, "config", "init", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "base_url: http://localhost:8000")
}

func TestConfigInitExplicitPath(t *testing.T) {
	setupCLITest(t)
	path := filepath.Join(t.TempDir(), "nested", "caterview.yaml")

	out, err := executeCommand(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestConfigPath(t *testing.T) {
	home := setupCLITest(t)
	path := filepath.Join(home, "config.yaml")

	out, err := executeCommand(t, "config", "path")
	require.NoError(t, err)
	assert.Contains(t, out, path)
	assert.Contains(t, out, "not created yet")

	t.Run("after_init", func(t *testing.T) {
		_, err := executeCommand(t, "config", "init")
		require.NoError(t, err)

		out, err := executeCommand(t, "config", "path")
		require.NoError(t, err)
		assert.Contains(t, out, path)
		assert.NotContains(t, out, "not created yet")
	})
}

func TestConfigShow(t *testing.T) {
	home := setupCLITest(t)
	require.NoError(t, os.MkdirAll(home, 0o700))
	path := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: https://kitchen.example.com\ndefaults:\n  year: 2023\n"), 0o600))

	out, err := executeCommand(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "base_url: https://kitchen.example.com")
	assert.Contains(t, out, "year: 2023")
	assert.Contains(t, out, "from_month: 1")

	t.Run("env_override_shown", func(t *testing.T) {
		t.Setenv("CATERVIEW_API_URL", "https://env.example.com")

		out, err := executeCommand(t, "config", "show")
		require.NoError(t, err)
		assert.Contains(t, out, "base_url: https://env.example.com")
	})

	t.Run("workspace_overlay_shown", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".caterview.yaml"), []byte("defaults:\n  year: 2024\n"), 0o600))
		chdir(t, dir)

		out, err := executeCommand(t, "config", "show")
		require.NoError(t, err)
		assert.Contains(t, out, "year: 2024")
		assert.Contains(t, out, "base_url: https://kitchen.example.com")
	})

	t.Run("broken_file_errors", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("api: [\n"), 0o600))

		_, err := executeCommand(t, "config", "show")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing config file")
	})
}
