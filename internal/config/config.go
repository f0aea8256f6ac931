package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var (
	validBackends   = []string{"memory", "sqlite"}
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json"}
)

type Config struct {
	// Database
	DBPath      string `mapstructure:"db_path"`
	DataBackend string `mapstructure:"data_backend"`

	// AMQP, disabled when AMQPURL is empty
	AMQPURL      string `mapstructure:"amqp_url"`
	AMQPExchange string `mapstructure:"amqp_exchange"`
	AMQPQueue    string `mapstructure:"amqp_queue"`

	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// Display
	Timezone string `mapstructure:"timezone"`
}

// Load resolves configuration from defaults, an optional TOML file and the
// environment. Env overrides use the prefix KANTONG_. The file is taken from
// KANTONG_CONFIG or ~/.config/kantong/config.toml.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("db_path", defaultDBPath())
	v.SetDefault("data_backend", "sqlite")
	v.SetDefault("amqp_url", "")
	v.SetDefault("amqp_exchange", "kantong")
	v.SetDefault("amqp_queue", "expense_events")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("timezone", "Local")

	v.SetConfigType("toml")
	if path := os.Getenv("KANTONG_CONFIG"); path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "kantong"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("KANTONG")
	v.AutomaticEnv()

	// A missing default file is fine; an explicit KANTONG_CONFIG must exist.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	c.DataBackend = strings.ToLower(strings.TrimSpace(c.DataBackend))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	return &c, nil
}

func defaultDBPath() string {
	home := os.Getenv("HOME")
	if home == "" {
		return "./data/kantong.db"
	}
	return filepath.Join(home, ".local", "share", "kantong", "kantong.db")
}

// AMQPEnabled reports whether change events should be published.
func (c *Config) AMQPEnabled() bool {
	return c.AMQPURL != ""
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var problems []string

	if !slices.Contains(validBackends, c.DataBackend) {
		problems = append(problems, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "sqlite" {
		if c.DBPath == "" {
			problems = append(problems, "database path cannot be empty when using sqlite backend")
		} else if info, err := os.Stat(c.DBPath); err == nil && info.IsDir() {
			problems = append(problems, fmt.Sprintf("database path '%s' is a directory", c.DBPath))
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			problems = append(problems, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			problems = append(problems, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if !slices.Contains(validLogLevels, c.LogLevel) {
		problems = append(problems, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLogLevels))
	}
	if !slices.Contains(validLogFormats, c.LogFormat) {
		problems = append(problems, fmt.Sprintf("invalid log format '%s': must be one of %v", c.LogFormat, validLogFormats))
	}

	if c.Timezone != "" {
		if _, err := c.Location(); err != nil {
			problems = append(problems, fmt.Sprintf("invalid timezone '%s': %v", c.Timezone, err))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}

	return nil
}

// Location returns the zone used to display timestamps.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}
