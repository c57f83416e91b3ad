package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labelsort/internal/sortorder"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadWithViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.ServerHost)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "reference", cfg.DefaultStrategy)
	assert.Equal(t, "table", cfg.OutputFormat)
	assert.Equal(t, 64, cfg.MaxUploadMB)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("LABELSORT_DEFAULT_STRATEGY", "suffix")
	t.Setenv("LABELSORT_SERVER_PORT", "9090")

	cfg, err := LoadWithViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "suffix", cfg.DefaultStrategy)
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, sortorder.ByNumericSuffix, cfg.Strategy())
}

func TestLoadRejectsUnknownStrategy(t *testing.T) {
	t.Setenv("LABELSORT_DEFAULT_STRATEGY", "alphabetical")

	_, err := LoadWithViper(viper.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, sortorder.ErrUnsupportedStrategy)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "Defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "Unknown output format",
			mutate:  func(c *Config) { c.OutputFormat = "yaml" },
			wantErr: true,
		},
		{
			name:    "Zero upload limit",
			mutate:  func(c *Config) { c.MaxUploadMB = 0 },
			wantErr: true,
		},
		{
			name:   "JSON output format",
			mutate: func(c *Config) { c.OutputFormat = "json" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				ServerHost:      "localhost",
				ServerPort:      "8080",
				DefaultStrategy: "reference",
				OutputFormat:    "table",
				MaxUploadMB:     64,
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAddress(t *testing.T) {
	cfg := &Config{ServerHost: "0.0.0.0", ServerPort: "9090"}
	assert.Equal(t, "0.0.0.0:9090", cfg.Address())
}
