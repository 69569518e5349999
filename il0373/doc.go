// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package il0373 controls 2.9" 128x296 e-paper panels driven by the IL0373
// controller, as found on the Adafruit MagTag.
//
// The driver keeps a two-plane framebuffer (see package image2bit) and
// streams both planes on every refresh. In Grey4 mode the panel shows the
// four levels encoded by the planes using the waveform tables shipped with
// this package; in Mono mode only plane 1 is shown.
//
// Two calibrations exist for two physical panel revisions. They differ in
// power-up order, settle times and waveform tables and are selected with
// Opts.Revision.
//
// # Datasheet
//
// https://www.mikroshop.ch/pdf/IL0373.pdf
//
// # Product page
//
// https://www.adafruit.com/product/4800
package il0373
