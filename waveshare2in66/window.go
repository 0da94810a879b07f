// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package waveshare2in66

import (
	"errors"
	"fmt"
	"image"
)

// ErrWindowBounds is returned for an update region outside of the panel.
var ErrWindowBounds = errors.New("waveshare2in66: window outside of panel bounds")

// ramXOffset is the first RAM column (in bytes) wired to the panel's source
// lines.
const ramXOffset = 1

// window is a RAM addressing window. X is in bytes, Y in rows; both ends are
// inclusive.
type window struct {
	xStart, xEnd int
	yStart, yEnd int
}

// newWindow converts a pixel rectangle into controller RAM units. Horizontal
// edges are widened to whole bytes.
func newWindow(opts *Opts, r image.Rectangle) (window, error) {
	bounds := image.Rect(0, 0, opts.Width, opts.Height)
	if r.Empty() || !r.In(bounds) {
		return window{}, fmt.Errorf("%w: %v not in %v", ErrWindowBounds, r, bounds)
	}

	return window{
		xStart: ramXOffset + r.Min.X/8,
		xEnd:   ramXOffset + (r.Max.X+7)/8 - 1,
		yStart: r.Min.Y,
		yEnd:   r.Max.Y - 1,
	}, nil
}

// fullWindow returns the window covering the whole panel.
func fullWindow(opts *Opts) window {
	w, _ := newWindow(opts, image.Rect(0, 0, opts.Width, opts.Height))
	return w
}

// rowBytes splits a row address into the low byte and the 9th bit.
func rowBytes(y int) (byte, byte) {
	return byte(y & 0xFF), byte((y >> 8) & 0x01)
}

// setWindow configures the target area of subsequent RAM writes. The Y end
// register takes the row after the last one.
func setWindow(ctrl controller, w window) {
	ctrl.sendCommand(setRAMXAddressStartEndPosition)
	ctrl.sendData([]byte{byte(w.xStart), byte(w.xEnd)})

	startLo, startHi := rowBytes(w.yStart)
	endLo, endHi := rowBytes(w.yEnd + 1)

	ctrl.sendCommand(setRAMYAddressStartEndPosition)
	ctrl.sendData([]byte{startLo, startHi, endLo, endHi})
}
