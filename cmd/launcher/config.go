package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kungfusheep/vlist"
	"gopkg.in/yaml.v3"
)

// Config holds launcher settings.
type Config struct {
	Grid      GridConfig    `yaml:"grid"`
	Margins   MarginsConfig `yaml:"margins"`
	Selection string        `yaml:"selection_policy"`
	Scroll    string        `yaml:"scroll_policy"`
	PoolLimit int           `yaml:"pool_limit"`

	Frame    time.Duration `yaml:"-"`
	FrameStr string        `yaml:"frame_interval"`

	Catalog string     `yaml:"catalog"`
	Demo    DemoConfig `yaml:"demo"`
	Log     LogConfig  `yaml:"log"`
}

// GridConfig controls the application grid section.
type GridConfig struct {
	Columns int `yaml:"columns"`
	Spacing int `yaml:"spacing"`
}

// MarginsConfig is the content inset of the result list.
type MarginsConfig struct {
	Left   int `yaml:"left"`
	Top    int `yaml:"top"`
	Right  int `yaml:"right"`
	Bottom int `yaml:"bottom"`
}

// DemoConfig sizes the generated catalog used when no catalog file is set.
type DemoConfig struct {
	Apps  int `yaml:"apps"`
	Clips int `yaml:"clips"`
	Files int `yaml:"files"`
}

// LogConfig routes engine diagnostics. The interactive UI owns the
// terminal, so logs only go to a file.
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// Warning is a non-fatal configuration problem.
type Warning struct {
	Field   string
	Message string
}

// Default returns a Config with all default values populated.
func Default() *Config {
	return &Config{
		Grid:      GridConfig{Columns: 4, Spacing: 1},
		Margins:   MarginsConfig{Left: 1, Right: 1},
		Selection: vlist.KeepSelection.String(),
		Scroll:    vlist.ScrollRelative.String(),
		PoolLimit: 64,
		Frame:     vlist.DefaultFrameInterval,
		FrameStr:  vlist.DefaultFrameInterval.String(),
		Demo:      DemoConfig{Apps: 24, Clips: 200, Files: 5000},
		Log:       LogConfig{Level: "info"},
	}
}

// Load loads config from path. An empty path uses
// ~/.config/vlist/launcher.yaml, which is created with defaults when missing.
func Load(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine home directory: %w", err)
		}
		path = filepath.Join(home, ".config", "vlist", "launcher.yaml")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		if err := cfg.Save(path); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	return LoadFrom(path)
}

// LoadFrom loads and parses config from path. Missing fields keep their
// default values.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.FrameStr != "" {
		d, err := time.ParseDuration(cfg.FrameStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse frame_interval %q: %w", cfg.FrameStr, err)
		}
		cfg.Frame = d
	}

	return cfg, nil
}

// Save writes the config as YAML, creating parent directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks values and resets invalid ones to their defaults,
// returning a warning for each.
func (c *Config) Validate() []Warning {
	def := Default()
	var warns []Warning
	warn := func(field, format string, args ...any) {
		warns = append(warns, Warning{Field: field, Message: field + ": " + fmt.Sprintf(format, args...)})
	}

	if c.Grid.Columns < 1 {
		warn("grid.columns", "must be at least 1, using %d", def.Grid.Columns)
		c.Grid.Columns = def.Grid.Columns
	}
	if c.Grid.Spacing < 0 {
		warn("grid.spacing", "must not be negative, using %d", def.Grid.Spacing)
		c.Grid.Spacing = def.Grid.Spacing
	}
	m := c.Margins
	if m.Left < 0 || m.Top < 0 || m.Right < 0 || m.Bottom < 0 {
		warn("margins", "must not be negative, using defaults")
		c.Margins = def.Margins
	}
	if _, err := parseSelectionPolicy(c.Selection); err != nil {
		warn("selection_policy", "%v, using %s", err, def.Selection)
		c.Selection = def.Selection
	}
	if _, err := parseScrollPolicy(c.Scroll); err != nil {
		warn("scroll_policy", "%v, using %s", err, def.Scroll)
		c.Scroll = def.Scroll
	}
	if c.PoolLimit < 0 {
		warn("pool_limit", "must not be negative, using %d", def.PoolLimit)
		c.PoolLimit = def.PoolLimit
	}
	if c.Frame < 0 {
		warn("frame_interval", "must not be negative, using %s", def.Frame)
		c.Frame, c.FrameStr = def.Frame, def.FrameStr
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		warn("log.level", "%v, using %s", err, def.Log.Level)
		c.Log.Level = def.Log.Level
	}
	return warns
}

var selectionPolicies = []vlist.SelectionPolicy{
	vlist.SelectFirst, vlist.KeepSelection, vlist.PreserveSelection, vlist.SelectNone,
}

func parseSelectionPolicy(s string) (vlist.SelectionPolicy, error) {
	for _, p := range selectionPolicies {
		if strings.EqualFold(s, p.String()) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown selection policy %q", s)
}

func parseScrollPolicy(s string) (vlist.ScrollPolicy, error) {
	for _, p := range []vlist.ScrollPolicy{vlist.ScrollRelative, vlist.ScrollAbsolute} {
		if strings.EqualFold(s, p.String()) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown scroll policy %q", s)
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return l, nil
}
