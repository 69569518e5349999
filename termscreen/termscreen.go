// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package termscreen implements a display.Drawer that previews a 4-level grey
// e-paper framebuffer on a terminal using ANSI color codes.
//
// Useful to lay out a screen without waiting a second per refresh, or without
// a panel at all.
package termscreen

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/GermanBionicSystems/magtag/il0373/image2bit"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"
)

// Opts represents the options available for this display.
type Opts struct {
	Width  int
	Height int
	// W defaults to a colorable stdout.
	W io.Writer
	// Scale keeps one pixel out of Scale in each direction. Defaults to 1.
	Scale   int
	Palette *ansi256.Palette

	_ struct{}
}

// Dev is an e-paper emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	scale   int
	palette ansi256.Palette

	planes *image2bit.Planes
	buf    bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) (*Dev, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("termscreen: invalid size %dx%d", opts.Width, opts.Height)
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	return &Dev{
		w:       w,
		scale:   scale,
		palette: *p,
		planes:  image2bit.New(opts.Width, opts.Height),
	}, nil
}

func (d *Dev) String() string {
	return "TermScreen"
}

// Halt implements conn.Resource.
//
// It resets the terminal colors.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m\n"))
	return err
}

// Buffer returns the framebuffer shown by Refresh.
func (d *Dev) Buffer() *image2bit.Planes {
	return d.planes
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return image2bit.LevelModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.planes.Bounds()
}

// Draw implements display.Drawer.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	draw.Src.Draw(d.planes, r, src, sp)
	return d.Refresh()
}

// Refresh prints the framebuffer.
func (d *Dev) Refresh() error {
	return d.Show(d.planes)
}

// Show prints p, which may have a different size than the Dev.
func (d *Dev) Show(p *image2bit.Planes) error {
	d.buf.Reset()
	for y := 0; y < p.Height(); y += d.scale {
		_, _ = d.buf.WriteString("\033[0m")
		for x := 0; x < p.Width(); x += d.scale {
			_, _ = io.WriteString(&d.buf, d.palette.Block(nrgba(p.LevelAt(x, y))))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

func nrgba(l image2bit.Level) color.NRGBA {
	return color.NRGBAModel.Convert(l).(color.NRGBA)
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
