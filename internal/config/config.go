// Package config loads the TOML configuration file (~/.levelup.toml by
// default). Every field has a working default so a missing file is not
// an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"levelup/internal/clock"
)

type Config struct {
	Timezone string `toml:"timezone"`
	DBPath   string `toml:"db_path"`

	Shop ShopConfig `toml:"shop"`
	API  APIConfig  `toml:"api"`
	Log  LogConfig  `toml:"log"`
}

type ShopConfig struct {
	ConversionRate int `toml:"conversion_rate"`
	MinRedemption  int `toml:"min_redemption"`
}

type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type LogConfig struct {
	Level      string `toml:"level"`
	Path       string `toml:"path"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

func DefaultConfig() Config {
	return Config{
		Timezone: clock.DefaultTimezone,
		Shop: ShopConfig{
			ConversionRate: 100,
			MinRedemption:  500,
		},
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 8654,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}
}

// DefaultPath returns ~/.levelup.toml, or the LEVELUP_CONFIG override.
func DefaultPath() (string, error) {
	if p := os.Getenv("LEVELUP_CONFIG"); p != "" {
		return p, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".levelup.toml"), nil
}

// Load reads the config at path, layered over the defaults. A missing
// file yields the defaults; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// Addr is the API listen address in host:port form.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.API.Host, c.API.Port)
}
