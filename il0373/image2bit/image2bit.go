// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package image2bit implements a 4-level image stored as two bit-planes, the
// memory layout used by IL0373 e-paper controllers.
//
// Pixel (x, y) lives at the linear bit offset x+y*width in both planes, most
// significant bit first. Plane 0 holds bit 0 of the pixel level and plane 1
// holds bit 1.
package image2bit

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// ErrOutOfBounds is returned when a pixel coordinate lies outside the planes.
var ErrOutOfBounds = errors.New("image2bit: pixel out of bounds")

// Level is one of the 4 grey levels a pixel can take.
type Level byte

// Possible levels. White is the background.
const (
	White Level = iota
	LightGrey
	DarkGrey
	Black
)

// RGBA implements color.Color.
func (l Level) RGBA() (uint32, uint32, uint32, uint32) {
	y := uint32(levelLuma[l&3])
	y |= y << 8
	return y, y, y, 0xffff
}

func (l Level) String() string {
	switch l & 3 {
	case White:
		return "White"
	case LightGrey:
		return "LightGrey"
	case DarkGrey:
		return "DarkGrey"
	default:
		return "Black"
	}
}

var levelLuma = [4]byte{0xff, 0xaa, 0x55, 0x00}

// LevelModel is the color Model for 4-level grey.
var LevelModel = color.ModelFunc(convert)

func convert(c color.Color) color.Color {
	return toLevel(c)
}

func toLevel(c color.Color) Level {
	if l, ok := c.(Level); ok {
		return l & 3
	}
	r, g, b, _ := c.RGBA()
	// Same weights as color.GrayModel.
	y := (19595*r + 38470*g + 7471*b + 1<<15) >> 24
	// Nearest of 0xff, 0xaa, 0x55, 0x00.
	return Level(3 - (y+0x2a)/0x55)
}

// Planes is a 4-level image split into two bit-planes.
//
// It tracks the smallest rectangle touched since the last ResetDirty. The
// rectangle is aligned to byte cells (8 pixels) horizontally.
type Planes struct {
	// Plane0 and Plane1 hold bit 0 and bit 1 of each pixel level.
	Plane0 []byte
	Plane1 []byte

	width  int
	height int
	dirty  image.Rectangle
}

// New returns an initialized Planes of the given size, all White.
func New(width, height int) *Planes {
	n := (width*height + 7) / 8
	return &Planes{
		Plane0: make([]byte, n),
		Plane1: make([]byte, n),
		width:  width,
		height: height,
	}
}

// Width returns the width in pixels.
func (p *Planes) Width() int {
	return p.width
}

// Height returns the height in pixels.
func (p *Planes) Height() int {
	return p.height
}

// Len returns the size of one plane in bytes.
func (p *Planes) Len() int {
	return len(p.Plane0)
}

// Clear sets every pixel to White and marks the whole image dirty.
func (p *Planes) Clear() {
	for i := range p.Plane0 {
		p.Plane0[i] = 0
		p.Plane1[i] = 0
	}
	p.markAll()
}

// SetPixel sets the pixel at (x, y) to level l. Only the two low bits of l
// are used.
func (p *Planes) SetPixel(x, y int, l Level) error {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return fmt.Errorf("%w: (%d, %d) not in %dx%d", ErrOutOfBounds, x, y, p.width, p.height)
	}
	p.set(x, y, l)
	return nil
}

// LevelAt returns the level of the pixel at (x, y). Pixels outside the image
// read as White.
func (p *Planes) LevelAt(x, y int) Level {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return White
	}
	i, mask := p.offset(x, y)
	var l Level
	if p.Plane0[i]&mask != 0 {
		l |= 1
	}
	if p.Plane1[i]&mask != 0 {
		l |= 2
	}
	return l
}

// Dirty returns the area modified since the last ResetDirty. An empty
// rectangle means nothing changed.
func (p *Planes) Dirty() image.Rectangle {
	return p.dirty
}

// ResetDirty marks the image as fully transmitted.
func (p *Planes) ResetDirty() {
	p.dirty = image.Rectangle{}
}

// ColorModel implements image.Image.
func (p *Planes) ColorModel() color.Model {
	return LevelModel
}

// Bounds implements image.Image.
func (p *Planes) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// At implements image.Image.
func (p *Planes) At(x, y int) color.Color {
	return p.LevelAt(x, y)
}

// Set implements draw.Image. Out of bounds coordinates are ignored.
func (p *Planes) Set(x, y int, c color.Color) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	p.set(x, y, toLevel(c))
}

func (p *Planes) set(x, y int, l Level) {
	i, mask := p.offset(x, y)
	if l&1 != 0 {
		p.Plane0[i] |= mask
	} else {
		p.Plane0[i] &^= mask
	}
	if l&2 != 0 {
		p.Plane1[i] |= mask
	} else {
		p.Plane1[i] &^= mask
	}

	cell := x &^ 7
	p.dirty = p.dirty.Union(image.Rect(cell, y, cell+8, y+1))
}

func (p *Planes) offset(x, y int) (int, byte) {
	bit := x + y*p.width
	return bit / 8, 0x80 >> uint(bit%8)
}

func (p *Planes) markAll() {
	p.dirty = image.Rect(0, 0, (p.width+7)&^7, p.height)
}
