package config

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// Loader handles loading the configuration.
type Loader struct {
	Version      string // Build version, used to determine dev mode
	OverridePath string // Set at compile time if needed
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Load attempts to load the configuration.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil // No config file found, return defaults
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// GetConfigPath returns the path to the configuration file, or empty string if not found.
func (l *Loader) GetConfigPath() string {
	// 1. Variable override path
	if l.OverridePath != "" {
		if _, err := os.Stat(l.OverridePath); err == nil {
			return l.OverridePath
		}
	}

	// 2. Local run directory (dev mode)
	if l.Version == "dev" {
		wd, _ := os.Getwd()
		localPath := filepath.Join(wd, ".paintframerc")
		if _, err := os.Stat(localPath); err == nil {
			return localPath
		}
	}

	// 3. XDG Config Path
	xdgPath := l.UserConfigPath()
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}

	return ""
}

// UserConfigPath is where "config save" writes and where Load looks last.
// XDG_CONFIG_HOME is honoured when set.
func (l *Loader) UserConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "paintframe", "config.rc")
	}
	home, err := homedir.Dir()
	if err != nil {
		home, _ = os.UserHomeDir()
	}
	return filepath.Join(home, ".config", "paintframe", "config.rc")
}

// Save writes cfg to the user config path, creating its directory.
func (l *Loader) Save(cfg *Config) (string, error) {
	path := l.UserConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	return path, os.WriteFile(path, []byte(cfg.String()), 0o644)
}
