package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const appName = "mangastats"

// Config represents the configuration file structure
type Config struct {
	// DownloadDir is the root under which chapters are stored per source and title
	DownloadDir string `yaml:"download_dir"`
	Database    string `yaml:"database"`
	// ScanConcurrency bounds how many manga folders are measured at once; 0 uses every CPU
	ScanConcurrency int    `yaml:"scan_concurrency"`
	LogFile         string `yaml:"log_file"`
}

// DefaultPath is where the configuration file is looked up when --config is not given
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

// Default returns a configuration with every field set to its default
func Default() *Config {
	c := &Config{}
	if err := c.ApplyDefaults(); err != nil {
		panic(err)
	}
	return c
}

// Load reads filename, falling back to defaults when it does not exist
func Load(filename string) (*Config, error) {
	if filename == "" {
		filename = DefaultPath()
	}
	c, err := LoadFromFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return c, err
}

// LoadFromFile reads a YAML configuration file and returns the parsed Config
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.ApplyDefaults(); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}

	return &config, nil
}

// ApplyDefaults fills unset fields with xdg based locations and validates the rest
func (c *Config) ApplyDefaults() error {
	if c.DownloadDir == "" {
		c.DownloadDir = filepath.Join(xdg.UserDirs.Download, appName)
	}
	if c.Database == "" {
		c.Database = filepath.Join(xdg.DataHome, appName, "library.db")
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(xdg.StateHome, appName, "mangastats.log")
	}

	c.DownloadDir = expandHome(c.DownloadDir)
	c.Database = expandHome(c.Database)
	c.LogFile = expandHome(c.LogFile)

	if c.ScanConcurrency < 0 {
		return fmt.Errorf("scan_concurrency must not be negative, got %d", c.ScanConcurrency)
	}
	return nil
}

// Save writes the configuration as YAML, creating parent directories
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func expandHome(path string) string {
	if path != "~" && !hasHomePrefix(path) {
		return path
	}
	return filepath.Join(xdg.Home, path[1:])
}

func hasHomePrefix(path string) bool {
	return len(path) > 1 && path[0] == '~' && (path[1] == '/' || path[1] == filepath.Separator)
}
