package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/go-via/numinput"
	"github.com/go-via/numinput/live"
)

// Config holds the demo server configuration.
type Config struct {
	Server ServerConfig
	Widget numinput.Config
}

// ServerConfig holds live runtime settings.
type ServerConfig struct {
	Address    string
	LogLevel   string        `mapstructure:"log_level"`
	Title      string
	ContextTTL time.Duration `mapstructure:"context_ttl"`
	Accent     string
}

// Load reads configuration from file and env. Env var overrides use prefix
// NUMINPUT_, e.g. NUMINPUT_WIDGET_MAX=10. The file is NUMINPUT_CONFIG, or
// numinput.yaml in the working directory when present.
func Load() (Config, error) {
	v := viper.New()

	def := numinput.DefaultConfig()
	v.SetDefault("server.address", ":3000")
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.title", "Numeric input")
	v.SetDefault("server.context_ttl", 30*time.Minute)
	v.SetDefault("server.accent", "")
	v.SetDefault("widget.min", *def.Min)
	v.SetDefault("widget.max", *def.Max)
	v.SetDefault("widget.step", def.Step)
	v.SetDefault("widget.precision", 0)
	v.SetDefault("widget.prefix", "")
	v.SetDefault("widget.suffix", "")
	v.SetDefault("widget.value", 0)
	v.SetDefault("widget.disabled", false)
	v.SetDefault("widget.readonly", false)
	v.SetDefault("widget.mobile", false)

	v.SetConfigType("yaml")

	cfgPath := os.Getenv("NUMINPUT_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("numinput")
	}

	v.SetEnvPrefix("NUMINPUT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if _, err := ParseLogLevel(c.Server.LogLevel); err != nil {
		return Config{}, err
	}
	if err := c.Widget.Validate(); err != nil {
		return Config{}, fmt.Errorf("widget config: %w", err)
	}
	return c, nil
}

// ParseLogLevel maps a level name to a live log level.
func ParseLogLevel(s string) (live.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return live.LogLevelError, nil
	case "warn", "warning":
		return live.LogLevelWarn, nil
	case "info", "":
		return live.LogLevelInfo, nil
	case "debug":
		return live.LogLevelDebug, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// LiveOptions converts the server section into live runtime options.
func (c Config) LiveOptions() live.Options {
	lvl, _ := ParseLogLevel(c.Server.LogLevel)
	return live.Options{
		ServerAddress: c.Server.Address,
		LogLvl:        lvl,
		DocumentTitle: c.Server.Title,
		ContextTTL:    c.Server.ContextTTL,
	}
}
