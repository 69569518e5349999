// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package image2bit

// DrawTestPattern paints the bring-up self-test pattern.
//
// Plane 0 gets 0xff at byte 20+y*stride for every row y where that offset is
// still inside the plane; with 16 byte rows this lands on byte 4 of the next
// row. Plane 1 gets bytes 8 to 11 of each row set to 0xaa on even rows and
// 0x55 on odd rows.
func (p *Planes) DrawTestPattern() {
	stride := p.width / 8
	for y := 0; y < p.height; y++ {
		if i := 20 + y*stride; i < len(p.Plane0) {
			p.Plane0[i] = 0xff
		}
		v := byte(0xaa)
		if y&1 != 0 {
			v = 0x55
		}
		for i := y*stride + 8; i < y*stride+12 && i < (y+1)*stride && i < len(p.Plane1); i++ {
			p.Plane1[i] = v
		}
	}
	p.markAll()
}
