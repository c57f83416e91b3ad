// Package config loads runtime configuration from defaults, an optional
// config file, and LABELSORT_-prefixed environment variables. The default
// sort strategy is deliberately configuration, not a constant: deployments
// disagree on which ordering they want by default.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"labelsort/internal/sortorder"
)

// Config holds all runtime settings.
type Config struct {
	ServerHost      string        `mapstructure:"server_host"`
	ServerPort      string        `mapstructure:"server_port"`
	DefaultStrategy string        `mapstructure:"default_strategy"`
	OutputFormat    string        `mapstructure:"output_format"`
	MaxUploadMB     int           `mapstructure:"max_upload_mb"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Debug           bool          `mapstructure:"debug"`
}

// Load builds the configuration from defaults, config file and environment.
func Load() (*Config, error) {
	return LoadWithViper(viper.New())
}

// LoadWithViper is Load over a caller-supplied viper instance, used by tests.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix("LABELSORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("labelsort")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.labelsort")
	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; anything else is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_host", "localhost")
	v.SetDefault("server_port", "8080")
	v.SetDefault("default_strategy", string(sortorder.ByReferenceOrder))
	v.SetDefault("output_format", "table")
	v.SetDefault("max_upload_mb", 64)
	v.SetDefault("shutdown_timeout", 30*time.Second)
	v.SetDefault("debug", false)
}

// Validate rejects configuration errors up front, before any request or
// batch can hit them.
func (c *Config) Validate() error {
	if _, err := sortorder.ParseStrategy(c.DefaultStrategy); err != nil {
		return err
	}

	switch c.OutputFormat {
	case "table", "json":
	default:
		return fmt.Errorf("unknown output format %q", c.OutputFormat)
	}

	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("max_upload_mb must be positive, got %d", c.MaxUploadMB)
	}

	return nil
}

// Address returns the host:port the HTTP server binds to.
func (c *Config) Address() string {
	return c.ServerHost + ":" + c.ServerPort
}

// Strategy returns the validated default sort strategy.
func (c *Config) Strategy() sortorder.Strategy {
	s, _ := sortorder.ParseStrategy(c.DefaultStrategy)
	return s
}
