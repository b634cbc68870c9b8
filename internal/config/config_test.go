package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dkerrors "github.com/vango-dev/dragkit/internal/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dragkit.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultHost, cfg.Server.Host)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 256, cfg.Server.MaxEventQueue)
	assert.Equal(t, 4.0, cfg.Drag.ActivationDistance)
	assert.Equal(t, 10.0, cfg.Drag.KeyboardStep)
	assert.False(t, cfg.Drag.UseOverlay)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "dragkit", cfg.Tracing.TracerName)
	assert.Equal(t, "", cfg.File())
	assert.Equal(t, "localhost:8080", cfg.Address())
	assert.Equal(t, "http://localhost:8080", cfg.URL())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `{
		"server": {"port": 9000, "readTimeout": "2s"},
		"drag": {"activationDistance": 8, "useOverlay": true},
		"log": {"level": "debug", "format": "json"}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 8.0, cfg.Drag.ActivationDistance)
	assert.True(t, cfg.Drag.UseOverlay)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, path, cfg.File())
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `{"server": {"port": 9000}}`)
	t.Setenv("DRAGKIT_SERVER_PORT", "9100")
	t.Setenv("DRAGKIT_DRAG_USEOVERLAY", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.True(t, cfg.Drag.UseOverlay)
}

func TestConfigFileFromEnv(t *testing.T) {
	path := writeConfig(t, `{"metrics": {"namespace": "cards"}}`)
	t.Setenv(EnvConfigFile, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "cards", cfg.Metrics.Namespace)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, "D120", dkerrors.CodeOf(err))

	_, err = Load(writeConfig(t, `{not json`))
	assert.Equal(t, "D120", dkerrors.CodeOf(err))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		code   string
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "D121"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "D121"},
		{"read timeout", func(c *Config) { c.Server.ReadTimeout = 0 }, "D122"},
		{"queue", func(c *Config) { c.Server.MaxEventQueue = 0 }, "D126"},
		{"distance", func(c *Config) { c.Drag.ActivationDistance = -1 }, "D123"},
		{"level", func(c *Config) { c.Log.Level = "loud" }, "D124"},
		{"metrics path", func(c *Config) { c.Metrics.Path = "metrics" }, "D125"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			cfg, err := Load("")
			require.NoError(t, err)

			tt.mutate(cfg)
			assert.Equal(t, tt.code, dkerrors.CodeOf(cfg.Validate()))
		})
	}
}

func TestMetricsPathIgnoredWhenDisabled(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Metrics.Enabled = false
	cfg.Metrics.Path = ""
	assert.NoError(t, cfg.Validate())
}

func TestNewLogger(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)

	var buf bytes.Buffer
	cfg.Log.Format = "json"
	cfg.NewLogger(&buf).Info("hello", "port", 1)
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	buf.Reset()
	cfg.Log.Format = "text"
	cfg.NewLogger(&buf).Debug("hidden")
	assert.Empty(t, buf.String())
}
