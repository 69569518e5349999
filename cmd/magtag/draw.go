// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"github.com/spf13/cobra"

	"github.com/GermanBionicSystems/magtag/il0373"
	"github.com/GermanBionicSystems/magtag/il0373/image2bit"
	"github.com/GermanBionicSystems/magtag/internal/log"
	"github.com/GermanBionicSystems/magtag/internal/render"
	"github.com/GermanBionicSystems/magtag/termscreen"
)

func init() {
	for _, c := range []*cobra.Command{clearCmd, patternCmd, textCmd} {
		c.Flags().BoolVar(&previewFlag, `preview`, false, `print on the terminal instead of the panel`)
		c.Flags().IntVar(&scaleFlag, `scale`, 2, `keep one pixel out of scale in preview`)
		c.Flags().BoolVar(&keepPoweredFlag, `keep-powered`, false, `leave the panel powered after the refresh`)
		rootCmd.AddCommand(c)
	}
	patternCmd.Flags().BoolVar(&quickFlag, `quick`, false, `load the controller memory without refreshing`)
	textCmd.Flags().StringVar(&footerFlag, `footer`, ``, `small text at the bottom`)
}

var (
	previewFlag     bool
	scaleFlag       int
	keepPoweredFlag bool
	quickFlag       bool
	footerFlag      string
)

var clearCmd = &cobra.Command{
	Use:   `clear`,
	Short: `clear the panel to white`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		run(func() error {
			return paint(func(p *image2bit.Planes) error {
				p.Clear()
				return nil
			})
		})
	},
}

var patternCmd = &cobra.Command{
	Use:   `pattern`,
	Short: `show the test pattern`,
	Long:  `show the test pattern: a black column on plane 0 and a grey checker on plane 1`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		run(func() error {
			return paint(func(p *image2bit.Planes) error {
				p.Clear()
				p.DrawTestPattern()
				return nil
			})
		})
	},
}

var textCmd = &cobra.Command{
	Use:   `text <title>`,
	Short: `show a text label`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(func() error {
			return paint(func(p *image2bit.Planes) error {
				return render.Label(p, args[0], footerFlag)
			})
		})
	},
}

// paint draws with fn into the framebuffer of the panel, or of a terminal
// preview, and shows the result.
func paint(fn func(p *image2bit.Planes) error) error {
	if previewFlag {
		_, opts, err := loadConfig()
		if err != nil {
			return err
		}
		screen, err := termscreen.New(&termscreen.Opts{Width: opts.Width, Height: opts.Height, Scale: scaleFlag})
		if err != nil {
			return wrap(err)
		}
		if err := fn(screen.Buffer()); err != nil {
			return wrap(err)
		}
		if err := screen.Refresh(); err != nil {
			return wrap(err)
		}
		return wrap(screen.Halt())
	}

	dev, closer, err := openPanel()
	if err != nil {
		return err
	}
	defer closer()

	if err := fn(dev.Buffer()); err != nil {
		return wrap(err)
	}
	log.Debug("drawing", "dirty", dev.Buffer().Dirty())

	if quickFlag {
		return wrap(dev.QuickDraw())
	}
	cycle := il0373.FullCycle
	if keepPoweredFlag {
		cycle = il0373.KeepPowered
	}
	if err := dev.Refresh(cycle); err != nil {
		return wrap(err)
	}
	log.Info("refreshed", "state", dev.State())
	return nil
}
