// Package config loads cogview configuration.
//
// Global configuration lives in <root>/.cogview/config.json and is loaded
// with viper so values can also come from COGVIEW_* environment variables.
// A per-project .cogview.toml at the project root may override a subset of
// fields.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
)

// ConfigDirName is the directory under the project root that holds cogview
// state (config, cache database, logs).
const ConfigDirName = ".cogview"

// Config represents the complete cogview configuration
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Server   ServerConfig   `json:"server" mapstructure:"server"`
	Cache    CacheConfig    `json:"cache" mapstructure:"cache"`
	Analysis AnalysisConfig `json:"analysis" mapstructure:"analysis"`
	Logging  LoggingConfig  `json:"logging" mapstructure:"logging"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host string `json:"host" mapstructure:"host"`
	Port int    `json:"port" mapstructure:"port"`
}

// CacheConfig contains score cache configuration
type CacheConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`
}

// AnalysisConfig contains per-scan analysis configuration
type AnalysisConfig struct {
	Include          []string `json:"include" mapstructure:"include"`
	Exclude          []string `json:"exclude" mapstructure:"exclude"`
	MaxFileSizeBytes int      `json:"maxFileSizeBytes" mapstructure:"maxFileSizeBytes"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// ProjectOverrides is the subset of configuration a project may override via
// a .cogview.toml file at its root.
type ProjectOverrides struct {
	Include          []string `toml:"include"`
	Exclude          []string `toml:"exclude"`
	MaxFileSizeBytes *int     `toml:"max_file_size_bytes"`
	CacheEnabled     *bool    `toml:"cache_enabled"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Server: ServerConfig{
			Host: "localhost",
			Port: 5673,
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		Analysis: AnalysisConfig{
			Include: []string{"**/*.js", "**/*.jsx", "**/*.ts", "**/*.tsx"},
			Exclude: []string{"node_modules", "dist", "build", ".git"},
			// Generated bundles past this size are skipped rather than scored.
			MaxFileSizeBytes: 1000000,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// Load loads configuration from <root>/.cogview/config.json, applies
// COGVIEW_* environment overrides, then applies any .cogview.toml project
// overrides. A missing config file yields the defaults.
func Load(root string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, ConfigDirName))
	v.SetEnvPrefix("COGVIEW")
	v.AutomaticEnv()

	cfg := DefaultConfig()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	} else {
		if err := v.Unmarshal(cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyProjectOverrides(root); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyProjectOverrides merges <root>/.cogview.toml into the config, if the
// file exists.
func (c *Config) applyProjectOverrides(root string) error {
	path := filepath.Join(root, ".cogview.toml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	var o ProjectOverrides
	if _, err := toml.DecodeFile(path, &o); err != nil {
		return err
	}

	if len(o.Include) > 0 {
		c.Analysis.Include = o.Include
	}
	if len(o.Exclude) > 0 {
		c.Analysis.Exclude = o.Exclude
	}
	if o.MaxFileSizeBytes != nil {
		c.Analysis.MaxFileSizeBytes = *o.MaxFileSizeBytes
	}
	if o.CacheEnabled != nil {
		c.Cache.Enabled = *o.CacheEnabled
	}

	return nil
}

// Save writes the configuration to <root>/.cogview/config.json
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, ConfigDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return &ConfigError{Field: "server.port", Message: "port out of range"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
