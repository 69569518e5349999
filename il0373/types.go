// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package il0373

import (
	"fmt"
	"strings"
	"time"
)

// ScreenMode selects how the planes are interpreted by the panel.
type ScreenMode int

// Supported ScreenMode.
const (
	// Grey4 shows the 4 levels encoded by both planes.
	Grey4 ScreenMode = iota
	// Mono shows plane 1 only, in black and white.
	Mono
)

func (m ScreenMode) String() string {
	switch m {
	case Grey4:
		return "grey4"
	case Mono:
		return "mono"
	default:
		return fmt.Sprintf("ScreenMode(%d)", int(m))
	}
}

// Set sets the ScreenMode to a value represented by the string s. Set
// implements the flag.Value interface.
func (m *ScreenMode) Set(s string) error {
	switch strings.ToLower(s) {
	case "grey4", "gray4", "grey":
		*m = Grey4
	case "mono", "bw":
		*m = Mono
	default:
		return fmt.Errorf("unknown screen mode %q: expected either mono or grey4", s)
	}
	return nil
}

// Type implements pflag.Value.
func (m *ScreenMode) Type() string {
	return "mode"
}

// Revision identifies the calibration of the panel glass.
type Revision int

// Supported Revision.
const (
	// RevisionA is the calibration shipped on the original MagTag: power
	// setting first, 200ms power-on settle, waveform tables loaded in both
	// modes and a 1s refresh.
	RevisionA Revision = iota
	// RevisionB starts the booster first, settles for 100ms, uses the OTP
	// waveform in Mono mode and refreshes in 900ms.
	RevisionB
)

func (r Revision) String() string {
	switch r {
	case RevisionA:
		return "A"
	case RevisionB:
		return "B"
	default:
		return fmt.Sprintf("Revision(%d)", int(r))
	}
}

// Set sets the Revision to a value represented by the string s. Set
// implements the flag.Value interface.
func (r *Revision) Set(s string) error {
	switch strings.ToUpper(s) {
	case "A":
		*r = RevisionA
	case "B":
		*r = RevisionB
	default:
		return fmt.Errorf("unknown panel revision %q: expected either A or B", s)
	}
	return nil
}

// Type implements pflag.Value.
func (r *Revision) Type() string {
	return "revision"
}

// powerOnDelay is the time the charge pumps need after the power-on command.
func (r Revision) powerOnDelay() time.Duration {
	if r == RevisionB {
		return 100 * time.Millisecond
	}
	return 200 * time.Millisecond
}

// refreshDelay is the time the panel needs to drive a full refresh.
func (r Revision) refreshDelay() time.Duration {
	if r == RevisionB {
		return 900 * time.Millisecond
	}
	return 1000 * time.Millisecond
}

// State is the power state of the controller.
type State int

// Possible State.
const (
	// Uninitialized is the state of a new Dev, before any reset.
	Uninitialized State = iota
	// PoweredDown means the registers must be loaded again before drawing.
	PoweredDown
	// PoweredUp means the registers and waveform tables are loaded.
	PoweredUp
	// DeepSleep needs a hardware reset to wake up.
	DeepSleep
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case PoweredDown:
		return "PoweredDown"
	case PoweredUp:
		return "PoweredUp"
	case DeepSleep:
		return "DeepSleep"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// PowerCycle defines if the panel is powered down after a refresh.
type PowerCycle bool

const (
	// FullCycle powers the panel down once the refresh completed.
	FullCycle PowerCycle = true
	// KeepPowered leaves the panel powered, trading power draw for latency
	// on the next update.
	KeepPowered PowerCycle = false
)

// Logger receives a line for each command sent to the controller.
//
// *log.Logger implements it.
type Logger interface {
	Printf(format string, v ...any)
}
