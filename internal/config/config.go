// Package config loads keyspace settings from defaults, an optional YAML
// file and KEYSPACE_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// DefaultFile is read when present and no file is named explicitly.
const DefaultFile = "keyspace.yaml"

// Store drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Config holds application configuration.
type Config struct {
	// OrgID scopes imported dictionaries. Empty means built-ins only.
	OrgID string      `mapstructure:"org_id"`
	Log   LogConfig   `mapstructure:"log"`
	Store StoreConfig `mapstructure:"store"`
	Bus   BusConfig   `mapstructure:"bus"`
	// Dictionaries are built-in dictionary files, in merge order.
	Dictionaries []string `mapstructure:"dictionaries"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// StoreConfig selects where imports are persisted.
type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// BusConfig tunes the distribution bus.
type BusConfig struct {
	EventCap int `mapstructure:"event_cap"`
}

// Load reads configuration. path names a config file that must exist; when
// empty, KEYSPACE_CONFIG is used, then DefaultFile if it exists. Env var
// overrides use prefix KEYSPACE_ (log.level -> KEYSPACE_LOG_LEVEL).
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("org_id", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("store.driver", DriverMemory)
	v.SetDefault("store.dsn", "")
	v.SetDefault("bus.event_cap", 200)
	v.SetDefault("dictionaries", []string{})

	v.SetConfigType("yaml")

	if path == "" {
		path = os.Getenv("KEYSPACE_CONFIG")
	}

	required := path != ""
	if !required {
		path = DefaultFile
	}

	v.SetConfigFile(path)
	v.SetEnvPrefix("KEYSPACE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError

		missing := errors.Is(err, os.ErrNotExist) || errors.As(err, &notFound)
		if required || !missing {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}

	if !slices.Contains([]string{"text", "json"}, c.Log.Format) {
		return fmt.Errorf("log.format %q: want text or json", c.Log.Format)
	}

	switch c.Store.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Store.DSN == "" {
			return errors.New("store.dsn is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("store.driver %q: want %s or %s", c.Store.Driver, DriverMemory, DriverSQLite)
	}

	if c.Bus.EventCap < 1 {
		return fmt.Errorf("bus.event_cap %d: must be positive", c.Bus.EventCap)
	}

	return nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level

	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log.level %q: %w", s, err)
	}

	return l, nil
}
