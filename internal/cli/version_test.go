package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	setupCLITest(t)
	newBackend(t, "1.4.0")

	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "client: caterview test")
	assert.Contains(t, out, "server: Catering Analytics API 1.4.0 (status running)")
	assert.Contains(t, out, "compatibility: ok")
}

// An incompatible server is reported, not treated as a failure.
func TestVersionCommandIncompatibleServer(t *testing.T) {
	setupCLITest(t)
	newBackend(t, "2.1.0")

	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "server: Catering Analytics API 2.1.0")
	assert.Contains(t, out, "incompatible server version")
	assert.NotContains(t, out, "compatibility: ok")
}

func TestVersionFlag(t *testing.T) {
	out, err := executeCommand(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "caterview version test")
}
