// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package config loads the board description from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/GermanBionicSystems/magtag/il0373"
	"github.com/GermanBionicSystems/magtag/internal/log"
	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/physic"
)

// SPIConfig selects the bus the panel is wired to.
type SPIConfig struct {
	// Port is a spireg name, empty for the first available port.
	Port  string `yaml:"port"`
	MaxHz int64  `yaml:"max_hz"`
}

// PinsConfig holds gpioreg names. CS may be empty to let the SPI port drive
// chip select.
type PinsConfig struct {
	DC  string `yaml:"dc"`
	CS  string `yaml:"cs"`
	RST string `yaml:"rst"`
}

// PanelConfig describes the glass.
type PanelConfig struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Revision string `yaml:"revision"`
	Mode     string `yaml:"mode"`
}

// Config is the top-level configuration.
type Config struct {
	SPI      SPIConfig   `yaml:"spi"`
	Pins     PinsConfig  `yaml:"pins"`
	Panel    PanelConfig `yaml:"panel"`
	LogLevel string      `yaml:"log_level"`
}

// DefaultConfig returns the MagTag wiring on a Raspberry Pi.
func DefaultConfig() *Config {
	return &Config{
		SPI:  SPIConfig{MaxHz: 4000000},
		Pins: PinsConfig{DC: "GPIO25", CS: "GPIO8", RST: "GPIO17"},
		Panel: PanelConfig{
			Width:    il0373.MagTag.Width,
			Height:   il0373.MagTag.Height,
			Revision: il0373.MagTag.Revision.String(),
			Mode:     il0373.MagTag.Mode.String(),
		},
		LogLevel: string(log.LevelInfo),
	}
}

// Normalize fills in missing values with the defaults. CS is left alone, an
// empty CS is meaningful.
func (c *Config) Normalize() {
	d := DefaultConfig()
	if c.SPI.MaxHz <= 0 {
		c.SPI.MaxHz = d.SPI.MaxHz
	}
	if c.Pins.DC == "" {
		c.Pins.DC = d.Pins.DC
	}
	if c.Pins.RST == "" {
		c.Pins.RST = d.Pins.RST
	}
	if c.Panel.Width == 0 {
		c.Panel.Width = d.Panel.Width
	}
	if c.Panel.Height == 0 {
		c.Panel.Height = d.Panel.Height
	}
	if c.Panel.Revision == "" {
		c.Panel.Revision = d.Panel.Revision
	}
	if c.Panel.Mode == "" {
		c.Panel.Mode = d.Panel.Mode
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
}

// Opts converts the panel section to driver options.
func (c *Config) Opts() (il0373.Opts, error) {
	opts := il0373.Opts{
		Width:    c.Panel.Width,
		Height:   c.Panel.Height,
		MaxSpeed: physic.Frequency(c.SPI.MaxHz) * physic.Hertz,
	}
	if err := opts.Revision.Set(c.Panel.Revision); err != nil {
		return il0373.Opts{}, fmt.Errorf("config: panel.revision: %w", err)
	}
	if err := opts.Mode.Set(c.Panel.Mode); err != nil {
		return il0373.Opts{}, fmt.Errorf("config: panel.mode: %w", err)
	}
	return opts, nil
}

// Validate reports the first value that cannot be used.
func (c *Config) Validate() error {
	if _, err := c.Opts(); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: log_level: %w", err)
	}
	return nil
}

// Load loads configuration from the given YAML path.
//
// A missing file is created with the defaults, which are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config: path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			return cfg, Save(path, cfg)
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes cfg to path with 0600 permissions, through a temporary file
// renamed over the target.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config: path is empty")
	}
	if cfg == nil {
		return errors.New("config: nil config")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".magtag-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Save writes c to path, see the package level Save.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
