// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package il0373

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/GermanBionicSystems/magtag/il0373/image2bit"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Commands
const (
	panelSettingCmd         byte = 0x00
	powerSetting            byte = 0x01
	powerOff                byte = 0x02
	powerOffSequenceSetting byte = 0x03
	powerOn                 byte = 0x04
	powerOnMeasure          byte = 0x05
	boosterSoftStart        byte = 0x06
	deepSleepCmd            byte = 0x07
	dataStartTransmission1  byte = 0x10
	dataStop                byte = 0x11
	displayRefresh          byte = 0x12
	dataStartTransmission2  byte = 0x13
	vcomLUT                 byte = 0x20
	w2wLUT                  byte = 0x21
	b2wLUT                  byte = 0x22
	w2bLUT                  byte = 0x23
	b2bLUT                  byte = 0x24
	pllControl              byte = 0x30
	vcomDataIntervalSetting byte = 0x50
	resolutionSetting       byte = 0x61
	getStatus               byte = 0x71
	vcmDCSetting            byte = 0x82
)

const resetDelay = 10 * time.Millisecond

// Opts defines the structure of the display configuration.
type Opts struct {
	Width  int
	Height int
	// Revision selects the calibration of the glass.
	Revision Revision
	// Mode is the initial screen mode.
	Mode ScreenMode
	// MaxSpeed is the SPI clock. Defaults to 4MHz.
	MaxSpeed physic.Frequency
	// Logger, if set, is told about every command sent.
	Logger Logger
}

// MagTag contains the display configuration for the Adafruit MagTag 2.9"
// grayscale panel.
var MagTag = Opts{
	Width:    128,
	Height:   296,
	Revision: RevisionA,
	Mode:     Grey4,
}

// Dev defines the handler which is used to access the display.
//
// Dev is not safe for concurrent use. Every operation blocks until the panel
// settled, up to about one second for a refresh.
type Dev struct {
	c conn.Conn

	dc  gpio.PinOut
	cs  gpio.PinOut
	rst gpio.PinOut

	maxTxSize int
	sleep     func(time.Duration)

	opts   Opts
	mode   ScreenMode
	state  State
	buffer *image2bit.Planes
}

// New creates new handler which is used to access the display.
//
// cs may be nil, in which case the chip select of the SPI port is used and
// each command is sent as two transfers.
func New(p spi.Port, dc, cs, rst gpio.PinOut, opts *Opts) (*Dev, error) {
	if err := checkOpts(opts); err != nil {
		return nil, err
	}

	speed := opts.MaxSpeed
	if speed == 0 {
		speed = 4 * physic.MegaHertz
	}
	mode := spi.Mode0
	if cs != nil {
		mode |= spi.NoCS
	}
	c, err := p.Connect(speed, mode, 8)
	if err != nil {
		return nil, fmt.Errorf("il0373: failed to connect over spi: %w", err)
	}

	// Get the maxTxSize from the conn if it implements the conn.Limits
	// interface, otherwise use 4096 bytes.
	maxTxSize := 0
	if limits, ok := c.(conn.Limits); ok {
		maxTxSize = limits.MaxTxSize()
	}
	if maxTxSize == 0 {
		maxTxSize = 4096
	}

	d := &Dev{
		c:         c,
		dc:        dc,
		cs:        cs,
		rst:       rst,
		maxTxSize: maxTxSize,
		sleep:     time.Sleep,
		opts:      *opts,
		mode:      opts.Mode,
		buffer:    image2bit.New(opts.Width, opts.Height),
	}

	return d, nil
}

func checkOpts(opts *Opts) error {
	// The resolution register holds the width on a single byte, in multiples
	// of 8.
	if opts.Width <= 0 || opts.Width > 255 || opts.Width%8 != 0 {
		return fmt.Errorf("il0373: invalid width %d: must be a multiple of 8 below 256", opts.Width)
	}
	if opts.Height <= 0 || opts.Height > 0xffff {
		return fmt.Errorf("il0373: invalid height %d", opts.Height)
	}
	switch opts.Revision {
	case RevisionA, RevisionB:
	default:
		return fmt.Errorf("il0373: unknown revision %v", opts.Revision)
	}
	switch opts.Mode {
	case Mono, Grey4:
	default:
		return fmt.Errorf("il0373: unknown screen mode %v", opts.Mode)
	}
	return nil
}

// Init powers the panel up once to load the registers and powers it down
// again, leaving it off until the next refresh.
func (d *Dev) Init() error {
	if err := d.PowerUp(); err != nil {
		return err
	}
	return d.PowerDown()
}

// Reset pulses the hardware reset line: idle high, low, high again. The
// controller comes out of it unpowered.
func (d *Dev) Reset() error {
	eh := errorHandler{d: d}

	eh.rstOut(gpio.High)
	eh.delay(resetDelay)
	eh.rstOut(gpio.Low)
	eh.delay(resetDelay)
	eh.rstOut(gpio.High)
	eh.delay(resetDelay)

	// Registers are lost even when the pulse did not complete.
	if eh.err == nil || d.state != Uninitialized {
		d.state = PoweredDown
	}
	return eh.err
}

// PowerUp resets the controller, powers the panel and loads the registers and
// waveform tables for the current screen mode.
func (d *Dev) PowerUp() error {
	if err := d.Reset(); err != nil {
		return err
	}

	eh := errorHandler{d: d}
	powerUp(&eh, &d.opts, d.mode)
	if eh.err != nil {
		return eh.err
	}

	d.state = PoweredUp
	return nil
}

// PowerDown restores the default registers and turns the panel power off.
//
// The commands are sent whatever the current state; the controller tolerates
// a power off while already off.
func (d *Dev) PowerDown() error {
	eh := errorHandler{d: d}
	powerDown(&eh)
	if eh.err != nil {
		return eh.err
	}

	d.state = PoweredDown
	return nil
}

// Refresh powers the panel up, sends both planes and refreshes the panel.
// With FullCycle the panel is powered down afterwards.
func (d *Dev) Refresh(cycle PowerCycle) error {
	if err := d.PowerUp(); err != nil {
		return err
	}

	eh := errorHandler{d: d}

	sendPlanes(&eh, d.mode, d.buffer)
	refreshDisplay(&eh, d.opts.Revision)
	if eh.err != nil {
		return eh.err
	}
	d.buffer.ResetDirty()

	if cycle == FullCycle {
		return d.PowerDown()
	}
	return nil
}

// QuickDraw sends both planes to the controller memory without refreshing the
// panel. The panel is powered up first if needed.
func (d *Dev) QuickDraw() error {
	if d.state != PoweredUp {
		if err := d.PowerUp(); err != nil {
			return err
		}
	}

	eh := errorHandler{d: d}

	sendPlanes(&eh, d.mode, d.buffer)
	stopData(&eh)

	return eh.err
}

// Sleep powers the panel down and puts the controller in deep sleep. It is
// woken up by the reset done on the next power up.
func (d *Dev) Sleep() error {
	if err := d.PowerDown(); err != nil {
		return err
	}

	eh := errorHandler{d: d}
	deepSleep(&eh)
	if eh.err != nil {
		return eh.err
	}

	d.state = DeepSleep
	return nil
}

// Status reads the raw status (FLG) register.
func (d *Dev) Status() (byte, error) {
	eh := errorHandler{d: d}
	v := eh.readRegister(getStatus)
	return v, eh.err
}

// SetScreenMode changes the screen mode. It takes effect on the next power up.
func (d *Dev) SetScreenMode(mode ScreenMode) {
	d.mode = mode
}

// ScreenMode returns the current screen mode.
func (d *Dev) ScreenMode() ScreenMode {
	return d.mode
}

// State returns the power state of the controller.
func (d *Dev) State() State {
	return d.state
}

// Initialized reports whether the controller went through a power up since
// the handler was created.
func (d *Dev) Initialized() bool {
	return d.state != Uninitialized
}

// Buffer returns the framebuffer sent on each refresh.
func (d *Dev) Buffer() *image2bit.Planes {
	return d.buffer
}

// Clear clears the framebuffer to White. The panel is not updated.
func (d *Dev) Clear() {
	d.buffer.Clear()
}

// SetPixel sets one pixel of the framebuffer. The panel is not updated.
func (d *Dev) SetPixel(x, y int, l image2bit.Level) error {
	return d.buffer.SetPixel(x, y, l)
}

// ColorModel returns a 4-level grey color model.
func (d *Dev) ColorModel() color.Model {
	return image2bit.LevelModel
}

// Bounds returns the bounds for the configured display.
func (d *Dev) Bounds() image.Rectangle {
	return d.buffer.Bounds()
}

// Draw draws the given image into the framebuffer and does a full refresh.
func (d *Dev) Draw(dstRect image.Rectangle, src image.Image, srcPts image.Point) error {
	draw.Src.Draw(d.buffer, dstRect, src, srcPts)
	return d.Refresh(FullCycle)
}

// Halt powers the panel down. The image stays on the glass.
func (d *Dev) Halt() error {
	return d.PowerDown()
}

// String returns a string containing configuration information.
func (d *Dev) String() string {
	return fmt.Sprintf("il0373.Dev{%s, %s, Width: %d, Height: %d, Revision: %s}", d.c, d.dc, d.opts.Width, d.opts.Height, d.opts.Revision)
}

var _ display.Drawer = &Dev{}
