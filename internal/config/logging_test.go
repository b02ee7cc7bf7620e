package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetLogger restores the package default logger after a test reconfigures
// the global state.
func resetLogger(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		CloseLogFile()
		_ = InitLogger(LoggingConfig{Level: DefaultLogLevel, Format: DefaultLogFormat})
	})
}

func TestInitLoggerLevels(t *testing.T) {
	resetLogger(t)

	require.NoError(t, InitLogger(LoggingConfig{Level: "debug", Format: LogFormatConsole}))
	assert.Equal(t, zerolog.DebugLevel, GetLogger().GetLevel())

	t.Run("unknown_level_falls_back_to_info", func(t *testing.T) {
		require.NoError(t, InitLogger(LoggingConfig{Level: "chatty", Format: LogFormatConsole}))
		assert.Equal(t, zerolog.InfoLevel, GetLogger().GetLevel())
	})
}

func TestInitLoggerFileSink(t *testing.T) {
	resetLogger(t)

	logPath := filepath.Join(t.TempDir(), "logs", "caterview.log")
	require.NoError(t, InitLogger(LoggingConfig{
		Level:  "debug",
		Format: LogFormatJSON,
		File:   logPath,
	}))

	logger := GetLogger()
	logger.Info().Str("component", "config").Msg("file sink test")
	CloseLogFile()

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"file sink test"`)
	assert.Contains(t, string(data), `"component":"config"`)

	t.Run("reinit_appends", func(t *testing.T) {
		require.NoError(t, InitLogger(LoggingConfig{Level: "info", Format: LogFormatJSON, File: logPath}))
		rerunLogger := GetLogger()
		rerunLogger.Info().Msg("second run")
		CloseLogFile()

		data, err := os.ReadFile(logPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), "file sink test")
		assert.Contains(t, string(data), "second run")
	})

	t.Run("unwritable_dir_errors", func(t *testing.T) {
		occupied, err := os.CreateTemp(t.TempDir(), "occupied")
		require.NoError(t, err)
		occupied.Close()

		err = InitLogger(LoggingConfig{
			Level:  "info",
			Format: LogFormatConsole,
			File:   filepath.Join(occupied.Name(), "caterview.log"),
		})
		assert.Error(t, err)
	})
}

func TestCloseLogFilePreservesLevel(t *testing.T) {
	resetLogger(t)

	logPath := filepath.Join(t.TempDir(), "caterview.log")
	require.NoError(t, InitLogger(LoggingConfig{Level: "debug", Format: LogFormatConsole, File: logPath}))

	CloseLogFile()
	assert.Equal(t, zerolog.DebugLevel, GetLogger().GetLevel())

	// Logging after close must not panic or write to the closed file.
	logger := GetLogger()
	logger.Debug().Msg("post close")
}

func TestSetLogLevel(t *testing.T) {
	resetLogger(t)

	SetLogLevel("trace")
	assert.Equal(t, zerolog.TraceLevel, GetLogger().GetLevel())

	SetLogLevel("nonsense")
	assert.Equal(t, zerolog.InfoLevel, GetLogger().GetLevel())
}
