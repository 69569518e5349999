// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package magtag is a container for the driver of the 2.9" grayscale e-paper
// panel of the Adafruit MagTag, and its tooling.
//
// The driver lives in il0373, the framebuffer in il0373/image2bit and a
// terminal preview in termscreen. cmd/magtag is a bring-up tool.
package magtag
