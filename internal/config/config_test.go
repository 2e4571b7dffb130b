package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-via/numinput"
	"github.com/go-via/numinput/live"
)

// isolate runs the test in an empty directory without a config file.
func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("NUMINPUT_CONFIG", "")
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":3000", c.Server.Address)
	assert.Equal(t, "info", c.Server.LogLevel)
	assert.Equal(t, 30*time.Minute, c.Server.ContextTTL)

	def := numinput.DefaultConfig()
	require.NotNil(t, c.Widget.Min)
	require.NotNil(t, c.Widget.Max)
	assert.Equal(t, *def.Min, *c.Widget.Min)
	assert.Equal(t, *def.Max, *c.Widget.Max)
	assert.Equal(t, 1.0, c.Widget.Step)
}

func TestLoad_File(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "demo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  address: ":8080"
  log_level: debug
  context_ttl: 5m
widget:
  min: 0
  max: 10
  step: 0.5
  precision: 1
  prefix: "$ "
  readonly: true
`), 0o600))
	t.Setenv("NUMINPUT_CONFIG", path)

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", c.Server.Address)
	assert.Equal(t, 5*time.Minute, c.Server.ContextTTL)
	assert.Equal(t, 0.0, *c.Widget.Min)
	assert.Equal(t, 10.0, *c.Widget.Max)
	assert.Equal(t, 0.5, c.Widget.Step)
	assert.Equal(t, 1, c.Widget.Precision)
	assert.Equal(t, "$ ", c.Widget.Prefix)
	assert.True(t, c.Widget.ReadOnly)

	opts := c.LiveOptions()
	assert.Equal(t, live.LogLevelDebug, opts.LogLvl)
	assert.Equal(t, ":8080", opts.ServerAddress)
}

func TestLoad_WorkingDirectoryFile(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile("numinput.yaml", []byte("widget:\n  suffix: \" kg\"\n"), 0o600))

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, " kg", c.Widget.Suffix)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("NUMINPUT_SERVER_ADDRESS", ":9090")
	t.Setenv("NUMINPUT_WIDGET_MAX", "25")
	t.Setenv("NUMINPUT_WIDGET_MOBILE", "true")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", c.Server.Address)
	assert.Equal(t, 25.0, *c.Widget.Max)
	assert.True(t, c.Widget.Mobile)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		isolate(t)
		t.Setenv("NUMINPUT_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
		_, err := Load()
		assert.ErrorContains(t, err, "read config")
	})
	t.Run("invalid widget", func(t *testing.T) {
		isolate(t)
		t.Setenv("NUMINPUT_WIDGET_MIN", "10")
		t.Setenv("NUMINPUT_WIDGET_MAX", "1")
		_, err := Load()
		assert.ErrorIs(t, err, numinput.ErrInvalidConfig)
	})
	t.Run("unknown log level", func(t *testing.T) {
		isolate(t)
		t.Setenv("NUMINPUT_SERVER_LOG_LEVEL", "loud")
		_, err := Load()
		assert.ErrorContains(t, err, "unknown log level")
	})
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want live.LogLevel
	}{
		{"error", live.LogLevelError},
		{"WARN", live.LogLevelWarn},
		{"warning", live.LogLevelWarn},
		{"", live.LogLevelInfo},
		{" debug ", live.LogLevelDebug},
	}
	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
