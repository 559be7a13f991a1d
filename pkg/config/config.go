// Package config loads and saves the filetidy settings file and parses
// rename mapping files. Both accept JSON with comments and trailing commas.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"

	"github.com/nethoundsh/filetidy/pkg/fspath"
	"github.com/nethoundsh/filetidy/pkg/rename"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	MaxDepth        int      `json:"max_depth"`
	TitleExceptions []string `json:"title_exceptions"`
	DashKeywords    []string `json:"dash_keywords"`
	Output          string   `json:"output"`
	Color           string   `json:"color"`
	// Throttle caps filesystem mutations per second; 0 disables it.
	Throttle int `json:"throttle"`
}

func Default() Config {
	return Config{
		MaxDepth:        0,
		TitleExceptions: append([]string(nil), rename.DefaultTitleExceptions...),
		DashKeywords:    append([]string(nil), rename.DefaultDashKeywords...),
		Output:          "text",
		Color:           "auto",
	}
}

// FilePath returns the OS-standard config file path
// (e.g. ~/.config/filetidy/config.json on Linux).
func FilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, "filetidy", "config.json"), nil
}

// Load reads path over the defaults. A missing file returns the defaults and
// false.
func Load(path string) (Config, bool, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, false, nil
	}
	if err != nil {
		return cfg, false, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := decode(data, &cfg); err != nil {
		return cfg, false, fmt.Errorf("%w %s: %w", ErrInvalid, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, false, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, true, nil
}

// Save writes cfg as indented JSON. The file is replaced atomically so a
// crash never leaves a truncated config behind.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append(data, '\n')
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

func (c Config) Validate() error {
	switch c.Output {
	case "text", "json":
	default:
		return fmt.Errorf("%w: output must be text or json, got %q", ErrInvalid, c.Output)
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("%w: color must be auto, always or never, got %q", ErrInvalid, c.Color)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: max_depth must be >= 0, got %d", ErrInvalid, c.MaxDepth)
	}
	if c.Throttle < 0 {
		return fmt.Errorf("%w: throttle must be >= 0, got %d", ErrInvalid, c.Throttle)
	}
	return nil
}

// LoadMapping reads a JSON object of old name to new name. Every new name
// must be a bare file name.
func LoadMapping(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mapping: %w", err)
	}
	var mapping map[string]string
	if err := decode(data, &mapping); err != nil {
		return nil, fmt.Errorf("%w: mapping %s: %w", fspath.ErrInvalidArgument, path, err)
	}
	for oldName, newName := range mapping {
		if err := fspath.ValidateBaseName(newName); err != nil {
			return nil, fmt.Errorf("mapping %s entry %q: %w", path, oldName, err)
		}
	}
	return mapping, nil
}

func decode(data []byte, v any) error {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fmt.Errorf("invalid JSONC: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(standardized))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}
