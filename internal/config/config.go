// Package config loads lantern runtime settings.
//
// Settings come from LANTERN_* environment variables, an optional config
// file named by LANTERN_CONFIG, and built-in defaults, in that order of
// precedence. A missing config file is not an error.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Environment variables.
const (
	EnvPrefix     = "LANTERN"
	EnvConfigFile = "LANTERN_CONFIG"
)

// Config keys.
const (
	KeyLogLevel    = "log.level"
	KeyLogFormat   = "log.format"
	KeyLogFailures = "log.failures"
	KeyMaxHandles  = "registry.max_handles"
)

// Log formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config holds the runtime settings.
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Registry RegistryConfig `mapstructure:"registry"`
}

// LogConfig configures the zerolog logger.
type LogConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Failures bool   `mapstructure:"failures"` // log every trapped boundary failure
}

// RegistryConfig configures the handle registry.
type RegistryConfig struct {
	MaxHandles int `mapstructure:"max_handles"` // 0 means unlimited
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Log:      LogConfig{Level: "info", Format: FormatConsole},
		Registry: RegistryConfig{MaxHandles: 0},
	}
}

// Load reads settings using the file named by LANTERN_CONFIG, if any.
func Load() (Config, error) {
	return LoadFile(os.Getenv(EnvConfigFile))
}

// LoadFile reads settings from path (may be empty) and the environment.
func LoadFile(path string) (Config, error) {
	v, err := newViper(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid %s %q: %w", KeyLogLevel, c.Log.Level, err)
	}
	switch c.Log.Format {
	case FormatConsole, FormatJSON:
	default:
		return fmt.Errorf("invalid %s %q: want %s or %s", KeyLogFormat, c.Log.Format, FormatConsole, FormatJSON)
	}
	if c.Registry.MaxHandles < 0 {
		return fmt.Errorf("invalid %s %d: must be >= 0", KeyMaxHandles, c.Registry.MaxHandles)
	}
	return nil
}

func newViper(path string) (*viper.Viper, error) {
	def := Default()

	v := viper.New()
	v.SetDefault(KeyLogLevel, def.Log.Level)
	v.SetDefault(KeyLogFormat, def.Log.Format)
	v.SetDefault(KeyLogFailures, def.Log.Failures)
	v.SetDefault(KeyMaxHandles, def.Registry.MaxHandles)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		return v, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return v, nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}
