// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package render composes simple cards for the panel.
package render

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	"github.com/GermanBionicSystems/magtag/il0373/image2bit"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

const (
	margin       = 4
	footerHeight = 16
)

// Label draws title centered and word wrapped, above a light grey band
// holding footer. Portrait planes are drawn rotated a quarter turn clockwise
// so the text runs along the long side.
//
// Anti-aliased edges are quantized to the 4 levels.
func Label(p *image2bit.Planes, title, footer string) error {
	w, h := p.Width(), p.Height()
	rotate := w < h
	if rotate {
		w, h = h, w
	}
	if h < 2*footerHeight {
		return errors.New("render: panel too small for a label")
	}

	goFont, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return err
	}
	face := truetype.NewFace(goFont, &truetype.Options{
		Size: float64(h) / 4,
	})
	defer face.Close()

	c := gg.NewContext(w, h)
	c.SetColor(color.White)
	c.Clear()

	footerTop := h - footerHeight
	c.SetColor(image2bit.LightGrey)
	c.DrawRectangle(0, float64(footerTop), float64(w), footerHeight)
	c.Fill()

	c.SetColor(image2bit.Black)
	c.SetFontFace(face)
	c.DrawStringWrapped(title, float64(w)/2, float64(footerTop)/2, 0.5, 0.5, float64(w-2*margin), 1.2, gg.AlignCenter)

	img, ok := c.Image().(draw.Image)
	if !ok {
		return errors.New("render: unexpected context image")
	}
	f := basicfont.Face7x13
	drawer := font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image2bit.Black},
		Face: f,
		Dot:  fixed.P(margin, h-1-f.Descent),
	}
	drawer.DrawString(footer)

	if !rotate {
		draw.Src.Draw(p, p.Bounds(), img, image.Point{})
		return nil
	}
	pw := p.Width()
	for y := 0; y < p.Height(); y++ {
		for x := 0; x < pw; x++ {
			p.Set(x, y, img.At(y, pw-1-x))
		}
	}
	return nil
}
