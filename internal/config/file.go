package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/ytget/img2pdf/internal/platform"
)

// File config defaults
const (
	ConfigFileName  = "config.toml"
	LogFileName     = "img2pdf.log"
	DefaultBackend  = "img2pdf-backend"
	DefaultLogLevel = 4
	ViewerBackend   = "backend"
	ViewerSystem    = "system"
	DefaultViewer   = ViewerBackend
	ConfigFilePerms = 0644
)

// BackendConfig describes how the native backend process is launched
type BackendConfig struct {
	Command string   `toml:"command"`
	Args    []string `toml:"args"`

	// Viewer selects who opens files: the backend's open_path or the OS directly
	Viewer string `toml:"viewer"`
}

// LogConfig controls logging. Level uses 0 off, 1 error, 2 warn, 3 info, 4 debug, 5 trace.
type LogConfig struct {
	Level int    `toml:"level"`
	File  string `toml:"file"`
}

// FileConfig is the launch configuration read from config.toml
type FileConfig struct {
	Backend BackendConfig `toml:"backend"`
	Log     LogConfig     `toml:"log"`
}

// DefaultFileConfig returns the configuration used when no file exists
func DefaultFileConfig() FileConfig {
	cfg := FileConfig{
		Backend: BackendConfig{
			Command: DefaultBackend,
			Viewer:  DefaultViewer,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
	if dir, err := platform.AppConfigDir(); err == nil {
		cfg.Log.File = filepath.Join(dir, LogFileName)
	}
	return cfg
}

// DefaultConfigPath returns <user config dir>/img2pdf/config.toml
func DefaultConfigPath() string {
	dir, err := platform.AppConfigDir()
	if err != nil {
		return ConfigFileName
	}
	return filepath.Join(dir, ConfigFileName)
}

// LoadFile reads the config at path. A missing file is created with defaults.
// A file that does not parse yields the defaults and an error describing why.
func LoadFile(path string) (FileConfig, error) {
	cfg := DefaultFileConfig()

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := SaveFile(path, cfg); err != nil {
			slog.Warn("Could not write default config", "path", path, "error", err)
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return DefaultFileConfig(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.normalize()
	return cfg, nil
}

// SaveFile writes cfg to path, creating parent directories as needed
func SaveFile(path string, cfg FileConfig) error {
	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, ConfigFilePerms)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

func (c *FileConfig) normalize() {
	if c.Backend.Command == "" {
		c.Backend.Command = DefaultBackend
	}
	if c.Backend.Viewer != ViewerSystem {
		c.Backend.Viewer = ViewerBackend
	}
	if c.Log.Level < 0 || c.Log.Level > 5 {
		c.Log.Level = DefaultLogLevel
	}
}
