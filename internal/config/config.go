// Package config loads binkit settings from TOML.
//
// Configuration file locations (in order of precedence):
//   - the path passed to Load (the --config flag)
//   - ~/.binkit/config.toml
//   - built-in defaults
//
// BINKIT_WIDTH and BINKIT_MODE override the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/joshuapare/binkit/pkg/rows"
)

// Config is the complete binkit configuration.
type Config struct {
	View ViewConfig `toml:"view"`
	Log  LogConfig  `toml:"log"`
}

// ViewConfig controls how rows are rendered.
type ViewConfig struct {
	// Width is the bytes-per-row setting: 8, 16 or 32.
	Width int `toml:"width"`
	// Mode is "hex" or "binary".
	Mode string `toml:"mode"`
	// Preview is the character column charset: "ascii" or "latin1".
	Preview string `toml:"preview"`
	// HighlightMS is how long edited rows stay highlighted in the explorer.
	HighlightMS int `toml:"highlight_ms"`
}

// LogConfig controls the file logger.
type LogConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
	Level   string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		View: ViewConfig{
			Width:       rows.DefaultWidth,
			Mode:        "hex",
			Preview:     "ascii",
			HighlightMS: 1500,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns ~/.binkit/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".binkit", "config.toml"), nil
}

// Load reads path, or the default location when path is empty. A missing
// default file is not an error; a missing explicit file is.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	_, err := toml.DecodeFile(path, cfg)
	if err != nil && (explicit || !errors.Is(err, fs.ErrNotExist)) {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML text on top of the defaults.
func Parse(text string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(text, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("BINKIT_WIDTH"); v != "" {
		w, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BINKIT_WIDTH: %w", err)
		}
		c.View.Width = w
	}
	if v := os.Getenv("BINKIT_MODE"); v != "" {
		c.View.Mode = v
	}
	return nil
}

// Validate rejects unknown widths, modes and preview charsets.
func (c *Config) Validate() error {
	if err := rows.ValidateWidth(c.View.Width); err != nil {
		return err
	}
	if _, err := rows.ParseMode(c.View.Mode); err != nil {
		return err
	}
	if _, err := rows.ParsePreview(c.View.Preview); err != nil {
		return err
	}
	if c.View.HighlightMS < 0 {
		return fmt.Errorf("highlight_ms must not be negative, got %d", c.View.HighlightMS)
	}
	return nil
}

// Mode returns the parsed display mode.
func (c *Config) Mode() rows.Mode {
	m, _ := rows.ParseMode(c.View.Mode)
	return m
}

// Preview returns the parsed preview charset.
func (c *Config) Preview() rows.Preview {
	p, _ := rows.ParsePreview(c.View.Preview)
	return p
}

// HighlightDelay returns HighlightMS as a duration.
func (c *Config) HighlightDelay() time.Duration {
	return time.Duration(c.View.HighlightMS) * time.Millisecond
}
