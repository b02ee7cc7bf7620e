package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateEnv points the config machinery at empty temp directories so a
// test sees neither the developer's real config nor leaked env overrides.
// It returns the stubbed caterview home directory.
func isolateEnv(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv(EnvHome, home)
	t.Setenv(EnvConfigPath, "")
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvAPIToken, "")
	t.Setenv(EnvLogLevel, "")
	chdir(t, t.TempDir())
	return home
}

// chdir switches the working directory to dir and restores the previous
// one when the test finishes. Stand-in for t.Chdir, which needs Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()

	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func writeConfigFile(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewDefaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Empty(t, cfg.API.Token)
	assert.Equal(t, 15, cfg.API.TimeoutSeconds)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout())
	assert.Equal(t, 3, cfg.API.RetryMax)

	assert.Equal(t, time.Now().Year(), cfg.Defaults.Year)
	assert.Equal(t, 1, cfg.Defaults.FromMonth)
	assert.Equal(t, 12, cfg.Defaults.ToMonth)

	assert.Equal(t, 8, cfg.UI.MaxSelection)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, LogFormatConsole, cfg.Logging.Format)
	assert.Empty(t, cfg.Logging.File)

	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	isolateEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, New(), cfg)
}

func TestLoadExplicitMissingFileErrors(t *testing.T) {
	isolateEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestLoadFile(t *testing.T) {
	home := isolateEnv(t)

	writeConfigFile(t, home, `api:
  base_url: https://catering.example.com
  token: secret-token
  timeout_seconds: 30
  retry_max: 5
defaults:
  year: 2024
  from_month: 3
  to_month: 9
ui:
  max_selection: 4
logging:
  level: debug
  format: json
`)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://catering.example.com", cfg.API.BaseURL)
	assert.Equal(t, "secret-token", cfg.API.Token)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout())
	assert.Equal(t, 5, cfg.API.RetryMax)
	assert.Equal(t, 2024, cfg.Defaults.Year)
	assert.Equal(t, 3, cfg.Defaults.FromMonth)
	assert.Equal(t, 9, cfg.Defaults.ToMonth)
	assert.Equal(t, 4, cfg.UI.MaxSelection)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)

	t.Run("partial_file_keeps_defaults", func(t *testing.T) {
		home := isolateEnv(t)
		writeConfigFile(t, home, `api:
  base_url: https://other.example.com
`)

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "https://other.example.com", cfg.API.BaseURL)
		assert.Equal(t, 15, cfg.API.TimeoutSeconds, "timeout should keep its default")
		assert.Equal(t, 1, cfg.Defaults.FromMonth)
		assert.Equal(t, 8, cfg.UI.MaxSelection)
	})

	t.Run("malformed_yaml_errors", func(t *testing.T) {
		home := isolateEnv(t)
		writeConfigFile(t, home, "api: [broken\n")

		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing config file")
	})

	t.Run("explicit_path_wins_over_default", func(t *testing.T) {
		home := isolateEnv(t)
		writeConfigFile(t, home, "defaults:\n  year: 2023\n")
		explicit := filepath.Join(t.TempDir(), "alt.yaml")
		require.NoError(t, os.WriteFile(explicit, []byte("defaults:\n  year: 2022\n"), 0o644))

		cfg, err := Load(explicit)
		require.NoError(t, err)
		assert.Equal(t, 2022, cfg.Defaults.Year)
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	home := isolateEnv(t)

	writeConfigFile(t, home, `api:
  base_url: https://from-file.example.com
  token: file-token
logging:
  level: debug
`)
	t.Setenv(EnvAPIURL, "https://from-env.example.com")
	t.Setenv(EnvAPIToken, "env-token")
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://from-env.example.com", cfg.API.BaseURL)
	assert.Equal(t, "env-token", cfg.API.Token)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, LogFormatConsole, cfg.Logging.Format, "format has no env override")
}

func TestLoadConfigPathEnv(t *testing.T) {
	isolateEnv(t)

	alt := filepath.Join(t.TempDir(), "elsewhere.yaml")
	require.NoError(t, os.WriteFile(alt, []byte("defaults:\n  year: 2021\n"), 0o644))
	t.Setenv(EnvConfigPath, alt)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2021, cfg.Defaults.Year)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	home := isolateEnv(t)

	writeConfigFile(t, home, "defaults:\n  from_month: 13\n")

	_, err := Load("")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrMonthOutOfRange)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadWorkspaceOverlay(t *testing.T) {
	home := isolateEnv(t)
	writeConfigFile(t, home, `api:
  base_url: https://global.example.com
defaults:
  year: 2025
`)

	workspace := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(workspace, OverlayFileName), []byte(`defaults:
  year: 2024
kitchen:
  ignored: true
`), 0o644))
	chdir(t, workspace)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 2024, cfg.Defaults.Year, "overlay should pin the year")
	assert.Equal(t, 1, cfg.Defaults.FromMonth, "fields absent from the overlay keep global values")
	assert.Equal(t, "https://global.example.com", cfg.API.BaseURL)

	t.Run("env_wins_over_overlay", func(t *testing.T) {
		t.Setenv(EnvAPIURL, "https://env.example.com")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "https://env.example.com", cfg.API.BaseURL)
	})

	t.Run("malformed_overlay_errors", func(t *testing.T) {
		broken := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(broken, OverlayFileName), []byte("defaults: [\n"), 0o644))
		chdir(t, broken)

		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "workspace overlay")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "missing_base_url",
			mutate:  func(c *Config) { c.API.BaseURL = "" },
			wantErr: ErrBaseURLRequired,
		},
		{
			name:    "base_url_scheme",
			mutate:  func(c *Config) { c.API.BaseURL = "ftp://proforma.example.com" },
			wantErr: ErrBaseURLScheme,
		},
		{
			name:    "year_too_small",
			mutate:  func(c *Config) { c.Defaults.Year = 1999 },
			wantErr: ErrYearOutOfRange,
		},
		{
			name:    "year_too_large",
			mutate:  func(c *Config) { c.Defaults.Year = 2101 },
			wantErr: ErrYearOutOfRange,
		},
		{
			name:    "from_month_zero",
			mutate:  func(c *Config) { c.Defaults.FromMonth = 0 },
			wantErr: ErrMonthOutOfRange,
		},
		{
			name:    "to_month_thirteen",
			mutate:  func(c *Config) { c.Defaults.ToMonth = 13 },
			wantErr: ErrMonthOutOfRange,
		},
		{
			name: "inverted_month_range",
			mutate: func(c *Config) {
				c.Defaults.FromMonth = 9
				c.Defaults.ToMonth = 3
			},
			wantErr: ErrMonthRangeInverted,
		},
		{
			name:    "max_selection_zero",
			mutate:  func(c *Config) { c.UI.MaxSelection = 0 },
			wantErr: ErrMaxSelectionTooSmall,
		},
		{
			name:    "log_format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: ErrLogFormatInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			require.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}

	t.Run("unparseable_base_url", func(t *testing.T) {
		cfg := New()
		cfg.API.BaseURL = "://missing-scheme"
		assert.Error(t, cfg.Validate())
	})
}

func TestDefaultPath(t *testing.T) {
	home := isolateEnv(t)

	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "config.yaml"), path)

	t.Run("config_path_env_override", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "/etc/caterview/config.yaml")

		path, err := DefaultPath()
		require.NoError(t, err)
		assert.Equal(t, "/etc/caterview/config.yaml", path)
	})
}

func TestGetConfigDir(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv(EnvHome, "")
	t.Setenv("HOME", tmpHome)
	t.Setenv("USERPROFILE", tmpHome) // Windows uses USERPROFILE

	dir, err := GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpHome, ".caterview"), dir)

	t.Run("caterview_home_override", func(t *testing.T) {
		override := t.TempDir()
		t.Setenv(EnvHome, override)

		dir, err := GetConfigDir()
		require.NoError(t, err)
		assert.Equal(t, override, dir)
	})
}

func TestEnsureConfigDir(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv(EnvHome, "")
	t.Setenv("HOME", tmpHome)
	t.Setenv("USERPROFILE", tmpHome)

	require.NoError(t, EnsureConfigDir())

	stat, err := os.Stat(filepath.Join(tmpHome, ".caterview"))
	require.NoError(t, err)
	assert.True(t, stat.IsDir())
}

func TestEnsureLogDir(t *testing.T) {
	tmpDir := t.TempDir()
	lc := LoggingConfig{File: filepath.Join(tmpDir, "logs", "subdir", "caterview.log")}

	require.NoError(t, lc.EnsureLogDir())

	stat, err := os.Stat(filepath.Join(tmpDir, "logs", "subdir"))
	require.NoError(t, err)
	assert.True(t, stat.IsDir())

	t.Run("no_file_no_dir", func(t *testing.T) {
		assert.NoError(t, LoggingConfig{}.EnsureLogDir())
	})

	t.Run("parent_is_a_file", func(t *testing.T) {
		tmpFile, err := os.CreateTemp(t.TempDir(), "occupied")
		require.NoError(t, err)
		tmpFile.Close()

		lc := LoggingConfig{File: filepath.Join(tmpFile.Name(), "subdir", "caterview.log")}
		assert.Error(t, lc.EnsureLogDir())
	})
}

func TestWriteDefault(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "conf", "config.yaml")

	require.NoError(t, WriteDefault(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# caterview configuration")
	assert.Contains(t, string(data), "base_url: http://localhost:8000")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	t.Run("refuses_overwrite", func(t *testing.T) {
		err := WriteDefault(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})
}
