// Package config loads and saves PanelCut settings files. The format follows
// the file extension: .json is read as JSON, anything else as TOML.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/piwi3910/PanelCut/internal/model"
)

// Config is the on-disk settings file.
type Config struct {
	Layout model.LayoutSettings `json:"layout" toml:"layout"`
	Output OutputConfig         `json:"output" toml:"output"`
}

// OutputConfig selects which companion files the CLI writes next to the
// machine documents.
type OutputConfig struct {
	Dir    string `json:"dir" toml:"dir"`
	Labels bool   `json:"labels" toml:"labels"`
	Report bool   `json:"report" toml:"report"`
	DXF    bool   `json:"dxf" toml:"dxf"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Layout: model.DefaultSettings(),
		Output: OutputConfig{Dir: "."},
	}
}

// DefaultConfigDir returns the default directory for configuration.
// On all platforms this is ~/.panelcut/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".panelcut")
}

// DefaultConfigPath returns the default path for the config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.toml")
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// Load reads a Config from path, layered over Default so keys missing from
// the file keep their defaults. If the file does not exist, it returns
// Default with no error. Layout values are sanitized.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if isJSON(path) {
		err = json.Unmarshal(data, &cfg)
	} else {
		err = toml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.Layout = cfg.Layout.Sanitized()
	if strings.TrimSpace(cfg.Output.Dir) == "" {
		cfg.Output.Dir = "."
	}
	return cfg, nil
}

// Save persists cfg to path, creating any missing parent directories.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	var (
		data []byte
		err  error
	)
	if isJSON(path) {
		data, err = json.MarshalIndent(cfg, "", "  ")
	} else {
		data, err = toml.Marshal(cfg)
	}
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}
