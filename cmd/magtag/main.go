// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// magtag drives the grayscale e-paper panel of an Adafruit MagTag wired to
// a single board computer.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"

	"github.com/GermanBionicSystems/magtag/il0373"
	"github.com/GermanBionicSystems/magtag/internal/log"
)

var rootCmd = &cobra.Command{
	Use:          filepath.Base(os.Args[0]),
	Short:        "magtag drives an IL0373 e-paper panel",
	Long:         "magtag drives an IL0373 e-paper panel over SPI, or previews it on the terminal",
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
		os.Exit(1)
	},
}

var (
	debugFlag  bool
	configFlag string
	modeFlag   il0373.ScreenMode
)

func init() {
	cobra.EnablePrefixMatching = true
	rootCmd.PersistentFlags().BoolVar(&debugFlag, `debug`, false, `debug errors and trace every command sent to the panel`)
	rootCmd.PersistentFlags().StringVar(&configFlag, `config`, defaultConfigPath(), `configuration file, created on first use`)
	rootCmd.PersistentFlags().Var(&modeFlag, `mode`, `screen mode overriding the configuration: mono or grey4`)
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "magtag.yaml"
	}
	return filepath.Join(dir, "magtag", "config.yaml")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// run reports the error returned by fn, with its stack trace under --debug.
func run(fn func() error) {
	err := fn()
	if err == nil {
		return
	}
	if stackFramer, ok := err.(interface{ ErrorStack() string }); debugFlag && ok {
		fmt.Fprintln(os.Stderr, stackFramer.ErrorStack())
		os.Exit(1)
	}
	log.Error("command failed", err)
	os.Exit(1)
}

// wrap attaches a stack trace, keeping nil as nil.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, 1)
}
