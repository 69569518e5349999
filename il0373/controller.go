// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package il0373

import (
	"encoding/binary"
	"time"

	"github.com/GermanBionicSystems/magtag/il0373/image2bit"
)

type controller interface {
	sendCommand(cmd byte, data []byte)
	delay(d time.Duration)
}

const (
	planeGap       = 2 * time.Millisecond
	quickDrawDelay = 10 * time.Millisecond
)

// Register values.
const (
	// Panel setting: 128x296, scan up, shift right, booster on, no reset.
	panelResolution128x296 byte = 0b10
	panelScanDefault       byte = 0x0f
	// Second panel setting byte of RevisionA, undocumented.
	panelSettingExtra byte = 0x0d

	// Power setting: internal DC/DC for VDS and VDG, VGH/VGL +-16V,
	// VDH/VDL +-11V.
	powerSource byte = 0x03
	powerGate   byte = 0x00
	powerVDH    byte = 0x2b
	powerVDL    byte = 0x2b
	// VDHR drives the red pixels; the grey waveforms use it for the middle
	// levels.
	powerVDHRMono  byte = 0x03
	powerVDHRGrey4 byte = 0x13

	boosterSoftStartDefault byte = 0x17

	pllDefault byte = 0x3c

	vcmDCActive  byte = 0x12 // -1.0V
	vcmDCDefault byte = 0x00

	borderLUTW      byte = 0b10
	borderFloat     byte = 0b00
	polarityDefault byte = 0b01
	intervalDefault byte = 0b0111

	deepSleepCheck byte = 0xa5
)

// panelSetting packs the first panel setting (PSR) byte.
func panelSetting(res byte, lutFromRegister, blackWhite bool, scan byte) byte {
	v := res<<6 | scan&0x0f
	if lutFromRegister {
		v |= 1 << 5
	}
	if blackWhite {
		v |= 1 << 4
	}
	return v
}

// vcomDataInterval packs the VCOM and data interval (CDI) register.
func vcomDataInterval(border, polarity, interval byte) byte {
	return border<<6 | (polarity&0b11)<<4 | interval&0x0f
}

func powerSettings(mode ScreenMode) []byte {
	vdhr := powerVDHRGrey4
	if mode == Mono {
		vdhr = powerVDHRMono
	}
	return []byte{powerSource, powerGate, powerVDH, powerVDL, vdhr}
}

func boosterSoftStartSettings() []byte {
	return []byte{boosterSoftStartDefault, boosterSoftStartDefault, boosterSoftStartDefault}
}

// resolutionSettings encodes the width on one byte and the height big endian.
func resolutionSettings(opts *Opts) []byte {
	data := make([]byte, 3)
	data[0] = byte(opts.Width)
	binary.BigEndian.PutUint16(data[1:], uint16(opts.Height))
	return data
}

// powerUp powers the panel and loads the registers for mode. The sequence is
// calibrated per revision and must be sent in this exact order.
func powerUp(ctrl controller, opts *Opts, mode ScreenMode) {
	switch opts.Revision {
	case RevisionB:
		powerUpB(ctrl, opts, mode)
	default:
		powerUpA(ctrl, opts, mode)
	}
}

func powerUpA(ctrl controller, opts *Opts, mode ScreenMode) {
	ctrl.sendCommand(powerSetting, powerSettings(mode))
	ctrl.sendCommand(boosterSoftStart, boosterSoftStartSettings())
	ctrl.sendCommand(powerOn, nil)
	ctrl.delay(RevisionA.powerOnDelay())

	ctrl.sendCommand(panelSettingCmd, []byte{
		panelSetting(panelResolution128x296, true, true, panelScanDefault),
		panelSettingExtra,
	})
	ctrl.sendCommand(pllControl, []byte{pllDefault})
	ctrl.sendCommand(vcmDCSetting, []byte{vcmDCActive})
	ctrl.sendCommand(vcomDataIntervalSetting, []byte{
		vcomDataInterval(borderLUTW, polarityDefault, intervalDefault),
	})
	ctrl.sendCommand(resolutionSetting, resolutionSettings(opts))

	if mode == Grey4 {
		sendLUTs(ctrl, &greyLUTs)
	} else {
		sendLUTs(ctrl, &monoLUTs)
	}
}

func powerUpB(ctrl controller, opts *Opts, mode ScreenMode) {
	grey := mode == Grey4

	ctrl.sendCommand(boosterSoftStart, boosterSoftStartSettings())
	ctrl.sendCommand(powerSetting, powerSettings(mode))
	ctrl.sendCommand(powerOn, nil)
	ctrl.delay(RevisionB.powerOnDelay())

	// Mono uses the waveform stored in the controller OTP.
	ctrl.sendCommand(panelSettingCmd, []byte{
		panelSetting(panelResolution128x296, grey, true, panelScanDefault),
	})
	if grey {
		ctrl.sendCommand(pllControl, []byte{pllDefault})
	}
	ctrl.sendCommand(resolutionSetting, resolutionSettings(opts))
	ctrl.sendCommand(vcmDCSetting, []byte{vcmDCActive})
	ctrl.sendCommand(vcomDataIntervalSetting, []byte{
		vcomDataInterval(borderLUTW, polarityDefault, intervalDefault),
	})

	if grey {
		sendLUTs(ctrl, &greyLUTs)
	}
}

// powerDown restores the default interval and VCOM registers and turns the
// charge pumps off.
func powerDown(ctrl controller) {
	ctrl.sendCommand(vcomDataIntervalSetting, []byte{
		vcomDataInterval(borderFloat, polarityDefault, intervalDefault),
	})
	ctrl.sendCommand(vcmDCSetting, []byte{vcmDCDefault})
	ctrl.sendCommand(powerOff, nil)
}

// sendPlanes streams both planes. In Mono mode the controller ignores plane
// 0, so a zero fill of the same length is sent instead.
func sendPlanes(ctrl controller, mode ScreenMode, p *image2bit.Planes) {
	plane0 := p.Plane0
	if mode == Mono {
		plane0 = make([]byte, p.Len())
	}

	ctrl.sendCommand(dataStartTransmission1, plane0)
	ctrl.delay(planeGap)
	ctrl.sendCommand(dataStartTransmission2, p.Plane1)
}

// refreshDisplay triggers the refresh and waits for the panel to settle.
func refreshDisplay(ctrl controller, rev Revision) {
	ctrl.sendCommand(displayRefresh, nil)
	ctrl.delay(rev.refreshDelay())
}

// stopData latches the transmitted planes without refreshing.
func stopData(ctrl controller) {
	ctrl.sendCommand(dataStop, nil)
	ctrl.delay(quickDrawDelay)
}

func deepSleep(ctrl controller) {
	ctrl.sendCommand(deepSleepCmd, []byte{deepSleepCheck})
}
