// Package config provides configuration loading and structs for the Insight Stack server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool          `yaml:"debug"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Search  SearchConfig  `yaml:"search"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig holds the insight collection location and the favorites
// database path.
type StorageConfig struct {
	MongoURI      string `yaml:"mongo_uri"`
	Database      string `yaml:"database"`
	Collection    string `yaml:"collection"`
	FavoritesPath string `yaml:"favorites_path"`
}

// SearchConfig holds listing and search settings.
type SearchConfig struct {
	DefaultLimit    int `yaml:"default_limit"`
	MaxLimit        int `yaml:"max_limit"`
	MaxSuggestions  int `yaml:"max_suggestions"`
	CacheTTLMinutes int `yaml:"cache_ttl_minutes"`
	CacheCapacity   int `yaml:"cache_capacity"`
}

// Load reads and parses the config file at path, expands paths, and applies
// defaults. Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	cfg.Storage.FavoritesPath = expandPath(cfg.Storage.FavoritesPath, filepath.Dir(path))

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative
// to configDir; other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
