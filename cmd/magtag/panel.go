// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"github.com/go-errors/errors"

	"github.com/GermanBionicSystems/magtag/il0373"
	"github.com/GermanBionicSystems/magtag/internal/config"
	"github.com/GermanBionicSystems/magtag/internal/log"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// loadConfig reads the configuration and applies the global flags.
func loadConfig() (*config.Config, il0373.Opts, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, il0373.Opts{}, wrap(err)
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, il0373.Opts{}, wrap(err)
	}
	if debugFlag {
		level = log.LevelDebug
	}
	log.SetLevel(level)

	opts, err := cfg.Opts()
	if err != nil {
		return nil, il0373.Opts{}, wrap(err)
	}
	if rootCmd.PersistentFlags().Changed("mode") {
		opts.Mode = modeFlag
	}
	if debugFlag {
		opts.Logger = log.Tracer()
	}
	return cfg, opts, nil
}

// openPanel initializes periph and connects to the panel. The returned
// closer releases the SPI port.
func openPanel() (*il0373.Dev, func(), error) {
	cfg, opts, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	if _, err := host.Init(); err != nil {
		return nil, nil, wrap(err)
	}

	dc, err := pin(cfg.Pins.DC)
	if err != nil {
		return nil, nil, err
	}
	rst, err := pin(cfg.Pins.RST)
	if err != nil {
		return nil, nil, err
	}
	var cs gpio.PinOut
	if cfg.Pins.CS != "" {
		if cs, err = pin(cfg.Pins.CS); err != nil {
			return nil, nil, err
		}
	}

	var port spi.PortCloser
	if port, err = spireg.Open(cfg.SPI.Port); err != nil {
		return nil, nil, wrap(err)
	}
	closer := func() {
		if err := port.Close(); err != nil {
			log.Error("closing spi port", err)
		}
	}

	dev, err := il0373.New(port, dc, cs, rst, &opts)
	if err != nil {
		closer()
		return nil, nil, wrap(err)
	}
	log.Debug("panel opened", "dev", dev, "mode", opts.Mode)
	return dev, closer, nil
}

func pin(name string) (gpio.PinOut, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, errors.Errorf("gpio %q not found", name)
	}
	return p, nil
}
