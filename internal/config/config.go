package config

import (
	"errors"
	"io"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	dkerrors "github.com/vango-dev/dragkit/internal/errors"
)

const (
	// ConfigName is the base name of the configuration file.
	ConfigName = "dragkit"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "DRAGKIT"

	// EnvConfigFile names an explicit configuration file.
	EnvConfigFile = "DRAGKIT_CONFIG"

	// DefaultPort is the default demo server port.
	DefaultPort = 8080

	// DefaultHost is the default demo server host.
	DefaultHost = "localhost"
)

// Config is the complete dragkit configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" json:"server"`
	Drag    DragConfig    `mapstructure:"drag" json:"drag"`
	Metrics MetricsConfig `mapstructure:"metrics" json:"metrics"`
	Tracing TracingConfig `mapstructure:"tracing" json:"tracing"`
	Log     LogConfig     `mapstructure:"log" json:"log"`

	// file is the configuration file that was read, if any.
	file string
}

// ServerConfig contains demo server settings.
type ServerConfig struct {
	Host         string        `mapstructure:"host" json:"host"`
	Port         int           `mapstructure:"port" json:"port"`
	ReadTimeout  time.Duration `mapstructure:"readTimeout" json:"readTimeout"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout" json:"writeTimeout"`

	// MaxEventQueue bounds the events buffered per session.
	MaxEventQueue int `mapstructure:"maxEventQueue" json:"maxEventQueue"`
}

// DragConfig contains sensor and rendering settings.
type DragConfig struct {
	// ActivationDistance is the pointer dead zone in pixels.
	ActivationDistance float64 `mapstructure:"activationDistance" json:"activationDistance"`

	// KeyboardStep is how far one arrow key moves a draggable.
	KeyboardStep float64 `mapstructure:"keyboardStep" json:"keyboardStep"`

	// UseOverlay renders drags in an overlay and leaves cards in place.
	UseOverlay bool `mapstructure:"useOverlay" json:"useOverlay"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled" json:"enabled"`
	Path      string `mapstructure:"path" json:"path"`
	Namespace string `mapstructure:"namespace" json:"namespace"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	TracerName string `mapstructure:"tracerName" json:"tracerName"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `mapstructure:"level" json:"level"`

	// Format is text or json.
	Format string `mapstructure:"format" json:"format"`
}

// NewViper returns a viper instance with defaults and environment
// overrides set up. Callers may bind flags to it before calling FromViper.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("server.host", DefaultHost)
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.readTimeout", 10*time.Second)
	v.SetDefault("server.writeTimeout", 10*time.Second)
	v.SetDefault("server.maxEventQueue", 256)
	v.SetDefault("drag.activationDistance", 4.0)
	v.SetDefault("drag.keyboardStep", 10.0)
	v.SetDefault("drag.useOverlay", false)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("metrics.namespace", "dragkit")
	v.SetDefault("tracing.tracerName", "dragkit")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads configuration from path. An empty path uses $DRAGKIT_CONFIG,
// then looks for dragkit.json in the working directory; a missing file
// there is not an error.
func Load(path string) (*Config, error) {
	return FromViper(NewViper(), path)
}

// FromViper reads the configuration file into v and decodes the result.
func FromViper(v *viper.Viper, path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}

	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("json")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return nil, dkerrors.New("D120").
				WithSuggestion("Check that the file exists and is valid JSON").
				Wrap(err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, dkerrors.New("D120").Wrap(err)
	}
	c.file = v.ConfigFileUsed()
	return &c, nil
}

// File returns the configuration file that was read, or "".
func (c *Config) File() string {
	return c.file
}

// Validate checks every value and returns the first problem as a coded
// error.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return dkerrors.New("D121").
			WithDetailf("server.port is %d; it must be between 1 and 65535", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return dkerrors.New("D122").
			WithDetailf("server.readTimeout is %s and server.writeTimeout is %s", c.Server.ReadTimeout, c.Server.WriteTimeout)
	}
	if c.Server.MaxEventQueue <= 0 {
		return dkerrors.New("D126")
	}
	if c.Drag.ActivationDistance < 0 {
		return dkerrors.New("D123").
			WithDetailf("drag.activationDistance is %g; it must not be negative", c.Drag.ActivationDistance)
	}
	if _, ok := parseLevel(c.Log.Level); !ok {
		return dkerrors.New("D124").
			WithDetailf("log.level is %q; use debug, info, warn or error", c.Log.Level)
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return dkerrors.New("D125").
			WithSuggestion("Use a path such as /metrics")
	}
	return nil
}

// Address returns host:port for the demo server.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// URL returns the demo server's base URL.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// SlogLevel returns the configured log level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	level, _ := parseLevel(c.Log.Level)
	return level
}

// NewLogger builds the process logger writing to w.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}
