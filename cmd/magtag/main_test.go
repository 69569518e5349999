// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/GermanBionicSystems/magtag/il0373"
	"github.com/GermanBionicSystems/magtag/il0373/image2bit"
)

func TestWrap(t *testing.T) {
	if err := wrap(nil); err != nil {
		t.Errorf("wrap(nil) = %v", err)
	}

	base := errors.New("boom")
	err := wrap(base)
	if !errors.Is(err, base) {
		t.Errorf("wrap() lost the cause: %v", err)
	}
	if _, ok := err.(interface{ ErrorStack() string }); !ok {
		t.Errorf("wrap() has no stack: %T", err)
	}
}

func TestLoadConfigFlags(t *testing.T) {
	configFlag = filepath.Join(t.TempDir(), "config.yaml")
	t.Cleanup(func() {
		configFlag = defaultConfigPath()
		debugFlag = false
		_ = rootCmd.PersistentFlags().Set("mode", "grey4")
		rootCmd.PersistentFlags().Lookup("mode").Changed = false
	})

	_, opts, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}
	if opts.Mode != il0373.Grey4 || opts.Logger != nil {
		t.Errorf("default opts = %+v", opts)
	}
	if _, err := os.Stat(configFlag); err != nil {
		t.Errorf("config not created: %v", err)
	}

	debugFlag = true
	if err := rootCmd.PersistentFlags().Set("mode", "mono"); err != nil {
		t.Fatal(err)
	}
	_, opts, err = loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}
	if opts.Mode != il0373.Mono {
		t.Errorf("Mode = %v, want mono", opts.Mode)
	}
	if opts.Logger == nil {
		t.Error("no command tracer with --debug")
	}
}

func TestPaintPreview(t *testing.T) {
	configFlag = filepath.Join(t.TempDir(), "config.yaml")
	previewFlag = true
	scaleFlag = 8
	t.Cleanup(func() {
		configFlag = defaultConfigPath()
		previewFlag = false
		scaleFlag = 2
	})

	called := false
	err := paint(func(p *image2bit.Planes) error {
		called = true
		if p.Width() != 128 || p.Height() != 296 {
			t.Errorf("preview is %dx%d", p.Width(), p.Height())
		}
		return nil
	})
	if err != nil {
		t.Fatalf("paint() failed: %v", err)
	}
	if !called {
		t.Error("paint() did not draw")
	}

	want := errors.New("no font")
	if err := paint(func(*image2bit.Planes) error { return want }); !errors.Is(err, want) {
		t.Errorf("paint() = %v, want %v", err, want)
	}
}
