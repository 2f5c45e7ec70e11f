package config

import (
	"os"
	"path/filepath"
)

// Loader resolves and reads the configuration file.
type Loader struct {
	Version      string // build version, used to detect dev mode
	OverridePath string // set at compile time if needed
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Load reads the resolved configuration file. A missing file is not an
// error; defaults are returned instead.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// DefaultPath returns where the configuration file lives whether or not
// it exists: $XDG_CONFIG_HOME/snapmark/config, with ~/.config standing
// in when XDG_CONFIG_HOME is unset.
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "snapmark", "config")
}

// GetConfigPath returns the path of the configuration file to read, or
// empty string if none exists.
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
		localPath := filepath.Join(wd, ".snapmarkrc")
		if _, err := os.Stat(localPath); err == nil {
			return localPath
		}
	}

	// 3. XDG config path
	path := DefaultPath()
	if _, err := os.Stat(path); err == nil {
		return path
	}

	return ""
}
