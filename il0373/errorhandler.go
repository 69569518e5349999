// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package il0373

import (
	"time"

	"periph.io/x/conn/v3/gpio"
)

// errorHandler is a wrapper for error management. Once a primitive failed all
// later ones are skipped.
type errorHandler struct {
	d   *Dev
	err error
}

func (eh *errorHandler) rstOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.rst.Out(l)
}

func (eh *errorHandler) cTx(w []byte, r []byte) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.c.Tx(w, r)
}

func (eh *errorHandler) dcOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.dc.Out(l)
}

func (eh *errorHandler) csOut(l gpio.Level) {
	if eh.err != nil || eh.d.cs == nil {
		return
	}
	eh.err = eh.d.cs.Out(l)
}

func (eh *errorHandler) delay(d time.Duration) {
	if eh.err != nil {
		return
	}
	eh.d.sleep(d)
}

// begin starts a transaction in command framing.
func (eh *errorHandler) begin(cmd byte) {
	eh.csOut(gpio.High)
	eh.dcOut(gpio.Low)
	eh.csOut(gpio.Low)
	eh.cTx([]byte{cmd}, nil)
}

func (eh *errorHandler) end() {
	eh.csOut(gpio.High)
}

// sendCommand sends cmd, then switches to data framing for data if any.
// Large payloads are split to the maximum transfer size of the port.
func (eh *errorHandler) sendCommand(cmd byte, data []byte) {
	if eh.err != nil {
		return
	}
	if eh.d.opts.Logger != nil {
		eh.d.opts.Logger.Printf("il0373: cmd %#02x, %d bytes", cmd, len(data))
	}

	eh.begin(cmd)
	if len(data) > 0 {
		eh.dcOut(gpio.High)
		for len(data) > 0 {
			n := min(len(data), eh.d.maxTxSize)
			eh.cTx(data[:n], nil)
			data = data[n:]
		}
	}
	eh.end()
}

// readRegister sends cmd and clocks one byte back in data framing.
func (eh *errorHandler) readRegister(cmd byte) byte {
	if eh.err != nil {
		return 0
	}

	r := make([]byte, 1)
	eh.begin(cmd)
	eh.dcOut(gpio.High)
	eh.cTx([]byte{0}, r)
	eh.end()

	return r[0]
}
