// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/GermanBionicSystems/magtag/il0373"
	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/physic"
)

func TestLoadCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "magtag.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if diff := cmp.Diff(cfg, DefaultConfig()); diff != "" {
		t.Errorf("Load() difference (-got +want):\n%s", diff)
	}

	fi, err := os.Stat(path)
	if err != nil {
		t.Fatalf("default config not written: %v", err)
	}
	if perm := fi.Mode().Perm(); perm != 0o600 {
		t.Errorf("permissions = %o, want 600", perm)
	}

	again, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if diff := cmp.Diff(again, cfg); diff != "" {
		t.Errorf("reload difference (-got +want):\n%s", diff)
	}
}

func TestLoad(t *testing.T) {
	for _, tc := range []struct {
		name    string
		yaml    string
		want    *Config
		wantErr bool
	}{
		{
			name: "partial",
			yaml: "panel:\n  revision: b\n  mode: mono\npins:\n  cs: \"\"\n",
			want: &Config{
				SPI:      SPIConfig{MaxHz: 4000000},
				Pins:     PinsConfig{DC: "GPIO25", RST: "GPIO17"},
				Panel:    PanelConfig{Width: 128, Height: 296, Revision: "b", Mode: "mono"},
				LogLevel: "INFO",
			},
		},
		{
			name: "full",
			yaml: "spi: {port: SPI0.1, max_hz: 2000000}\npins: {dc: GPIO5, cs: GPIO7, rst: GPIO6}\npanel: {width: 104, height: 212, revision: A, mode: grey4}\nlog_level: debug\n",
			want: &Config{
				SPI:      SPIConfig{Port: "SPI0.1", MaxHz: 2000000},
				Pins:     PinsConfig{DC: "GPIO5", CS: "GPIO7", RST: "GPIO6"},
				Panel:    PanelConfig{Width: 104, Height: 212, Revision: "A", Mode: "grey4"},
				LogLevel: "debug",
			},
		},
		{name: "bad revision", yaml: "panel: {revision: C}\n", wantErr: true},
		{name: "bad mode", yaml: "panel: {mode: color}\n", wantErr: true},
		{name: "bad level", yaml: "log_level: loud\n", wantErr: true},
		{name: "bad yaml", yaml: "spi: [\n", wantErr: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "magtag.yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0o600); err != nil {
				t.Fatal(err)
			}

			got, err := Load(path)
			if gotErr := err != nil; gotErr != tc.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tc.wantErr)
			}
			if diff := cmp.Diff(got, tc.want); diff != "" {
				t.Errorf("Load() difference (-got +want):\n%s", diff)
			}
		})
	}
}

func TestOpts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Panel.Revision = "B"
	cfg.Panel.Mode = "mono"
	cfg.SPI.MaxHz = 2000000

	got, err := cfg.Opts()
	if err != nil {
		t.Fatalf("Opts() failed: %v", err)
	}

	want := il0373.Opts{
		Width:    128,
		Height:   296,
		Revision: il0373.RevisionB,
		Mode:     il0373.Mono,
		MaxSpeed: 2 * physic.MegaHertz,
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Opts() difference (-got +want):\n%s", diff)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "magtag.yaml")

	cfg := DefaultConfig()
	cfg.Pins.CS = ""
	cfg.LogLevel = "DEBUG"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if diff := cmp.Diff(got, cfg); diff != "" {
		t.Errorf("Load() difference (-got +want):\n%s", diff)
	}
}

func TestSaveErrors(t *testing.T) {
	if err := Save("", DefaultConfig()); err == nil {
		t.Error("Save() with an empty path succeeded")
	}
	if err := Save(filepath.Join(t.TempDir(), "x.yaml"), nil); err == nil {
		t.Error("Save() with a nil config succeeded")
	}
}
