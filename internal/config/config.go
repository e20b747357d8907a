package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Feeds  FeedsConfig  `toml:"feeds"`
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
}

type FeedsConfig struct {
	// Path to the feed-list file; format is chosen by extension
	// (.opml/.xml hierarchical, .json flat).
	Path string `toml:"path"`
}

type ServerConfig struct {
	Enabled  bool   `toml:"enabled"`
	Port     string `toml:"port"`
	MaxItems int    `toml:"max_items"`
	CacheTTL string `toml:"cache_ttl"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

func Default() *Config {
	return &Config{
		Feeds:  FeedsConfig{Path: "feeds.opml"},
		Server: ServerConfig{Port: "8080", MaxItems: 50, CacheTTL: "1h"},
		Log:    LogConfig{Level: "info"},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Feeds.Path == "" {
		config.Feeds.Path = "feeds.opml"
	}

	if config.Server.Port == "" {
		config.Server.Port = "8080"
	}

	if config.Server.MaxItems <= 0 {
		config.Server.MaxItems = 50
	}

	if config.Server.CacheTTL == "" {
		config.Server.CacheTTL = "1h"
	}
	if _, err := time.ParseDuration(config.Server.CacheTTL); err != nil {
		return fmt.Errorf("invalid cache_ttl: %w", err)
	}

	switch config.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}
	if config.Log.Level == "" {
		config.Log.Level = "info"
	}

	return nil
}

func (c *Config) ServerCacheTTL() time.Duration {
	d, err := time.ParseDuration(c.Server.CacheTTL)
	if err != nil {
		return 1 * time.Hour
	}
	return d
}
