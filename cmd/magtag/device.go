// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GermanBionicSystems/magtag/il0373"
	"github.com/GermanBionicSystems/magtag/internal/log"
)

func init() {
	rootCmd.AddCommand(initCmd, statusCmd, sleepCmd)
}

var initCmd = &cobra.Command{
	Use:   `init`,
	Short: `load the panel registers and power it down`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		run(func() error {
			return withPanel(cmd, (*il0373.Dev).Init)
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   `status`,
	Short: `print the controller status register`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		run(func() error {
			return withPanel(cmd, func(dev *il0373.Dev) error {
				st, err := dev.Status()
				if err != nil {
					return err
				}
				fmt.Printf("%s: status %#02x, busy %t\n", dev, st, st&1 == 0)
				return nil
			})
		})
	},
}

var sleepCmd = &cobra.Command{
	Use:   `sleep`,
	Short: `power the panel down and put the controller in deep sleep`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		run(func() error {
			return withPanel(cmd, (*il0373.Dev).Sleep)
		})
	},
}

func withPanel(cmd *cobra.Command, fn func(dev *il0373.Dev) error) error {
	dev, closer, err := openPanel()
	if err != nil {
		return err
	}
	defer closer()

	if err := fn(dev); err != nil {
		return wrap(err)
	}
	log.Info(cmd.Name()+" done", "state", dev.State())
	return nil
}
