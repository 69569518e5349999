// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package il0373_test

import (
	"image"
	"log"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/GermanBionicSystems/magtag/il0373"
	"github.com/GermanBionicSystems/magtag/il0373/image2bit"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Use spireg SPI bus registry to find the first available SPI bus.
	b, err := spireg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer b.Close()

	dev, err := il0373.New(b, gpioreg.ByName("GPIO25"), gpioreg.ByName("GPIO8"), gpioreg.ByName("GPIO17"), &il0373.MagTag)
	if err != nil {
		log.Fatalf("Failed to initialize driver: %v", err)
	}

	if err := dev.Init(); err != nil {
		log.Fatalf("Failed to initialize display: %v", err)
	}

	// Dark grey text on a white background.
	dev.Clear()
	f := basicfont.Face7x13
	drawer := font.Drawer{
		Dst:  dev.Buffer(),
		Src:  &image.Uniform{image2bit.DarkGrey},
		Face: f,
		Dot:  fixed.P(0, dev.Bounds().Dy()-1-f.Descent),
	}
	drawer.DrawString("Hello from periph!")

	if err := dev.Refresh(il0373.FullCycle); err != nil {
		log.Fatal(err)
	}
}

func Example_quickDraw() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	b, err := spireg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer b.Close()

	opts := il0373.MagTag
	opts.Mode = il0373.Mono
	dev, err := il0373.New(b, gpioreg.ByName("GPIO25"), nil, gpioreg.ByName("GPIO17"), &opts)
	if err != nil {
		log.Fatalf("Failed to initialize driver: %v", err)
	}

	// Load the planes, then refresh once and keep the panel powered for the
	// next frame.
	dev.Buffer().DrawTestPattern()
	if err := dev.QuickDraw(); err != nil {
		log.Fatal(err)
	}
	if err := dev.Refresh(il0373.KeepPowered); err != nil {
		log.Fatal(err)
	}
	if err := dev.Sleep(); err != nil {
		log.Fatal(err)
	}
}
