// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the guardia-parse tool configuration. The core pipeline has
// no environment surface of its own; everything here belongs to the CLI.
type Config struct {
	// LogFile mirrors log output to a file when non-empty.
	LogFile string `mapstructure:"log_file"`
	// Debug enables DEBUG-level logging (column dumps, skipped lines).
	Debug bool `mapstructure:"debug"`
	// SourceURLs maps a region identifier to the URL its roster PDF was
	// downloaded from; the URL is only a year hint for the resolver.
	SourceURLs map[string]string `mapstructure:"source_urls"`
}

// Load reads the YAML config at configPath. An empty path yields defaults;
// a missing explicit file is an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("log_file", "")
	v.SetDefault("debug", false)
	v.SetDefault("source_urls", map[string]string{})

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
