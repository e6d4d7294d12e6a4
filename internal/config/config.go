// Package config loads the editor configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"jewelry/internal/domain"
)

// Config holds all editor configuration.
type Config struct {
	LogLevel string        `yaml:"log_level"`
	Editor   EditorConfig  `yaml:"editor"`
	History  HistoryConfig `yaml:"history"`
	Export   ExportConfig  `yaml:"export"`
	Catalog  CatalogConfig `yaml:"catalog"`
	MCP      MCPConfig     `yaml:"mcp"`
}

// EditorConfig controls placement and gesture handling.
type EditorConfig struct {
	DefaultItemSize        float64       `yaml:"default_item_size"`
	DragActivationDistance float64       `yaml:"drag_activation_distance"`
	ResizeDebounce         time.Duration `yaml:"resize_debounce"`
}

type HistoryConfig struct {
	MaxSnapshots int `yaml:"max_snapshots"` // 0 = unlimited
}

// ExportConfig controls the composite download.
type ExportConfig struct {
	FilenamePrefix string `yaml:"filename_prefix"`
	Dir            string `yaml:"dir"` // default directory offered by the save dialog
}

// CatalogConfig points at the decoration catalog.
type CatalogConfig struct {
	Manifest string `yaml:"manifest"` // YAML manifest; empty = no catalog
	DBPath   string `yaml:"db_path"`  // SQLite DSN; empty = in-memory
	Watch    bool   `yaml:"watch"`
}

// MCPConfig controls the agent-facing MCP server.
type MCPConfig struct {
	Listen      string `yaml:"listen"`       // HTTP address for the in-app server; empty = disabled
	AutoApprove bool   `yaml:"auto_approve"` // skip approval for destructive tools
}

// Default returns a Config with every default applied.
func Default() *Config {
	c := &Config{}
	c.defaults()
	return c
}

func (c *Config) defaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Editor.DefaultItemSize <= 0 {
		c.Editor.DefaultItemSize = domain.MinItemSize
	}
	if c.Editor.DefaultItemSize < domain.MinItemSize {
		c.Editor.DefaultItemSize = domain.MinItemSize
	}
	if c.Editor.DefaultItemSize > domain.MaxItemSize {
		c.Editor.DefaultItemSize = domain.MaxItemSize
	}
	if c.Editor.DragActivationDistance <= 0 {
		c.Editor.DragActivationDistance = 5
	}
	if c.Editor.ResizeDebounce <= 0 {
		c.Editor.ResizeDebounce = 100 * time.Millisecond
	}
	if c.History.MaxSnapshots < 0 {
		c.History.MaxSnapshots = 0
	}
	if c.Export.FilenamePrefix == "" {
		c.Export.FilenamePrefix = "dental-jewelry"
	}
}

// DefaultPath returns ~/.config/jewelry/config.yaml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "jewelry", "config.yaml")
}

// Load reads a YAML config file. A missing file yields the defaults.
// Relative catalog paths are resolved against the config file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.defaults()
	if m := cfg.Catalog.Manifest; m != "" && !filepath.IsAbs(m) {
		cfg.Catalog.Manifest = filepath.Join(filepath.Dir(path), m)
	}
	return cfg, nil
}

// Level maps LogLevel onto slog levels. Unknown values mean info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// NewLogger builds the process logger.
func (c *Config) NewLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.Level()}))
}
