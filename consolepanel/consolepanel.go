// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package consolepanel emulates an SSD16xx e-paper controller and outputs
// the refreshed image to the terminal (stdout) using ANSI color codes.
//
// Useful while you are waiting for your e-paper module to come by mail, or
// to exercise a driver in tests without hardware.
package consolepanel

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/GermanBionicSystems/paperframe/waveshare2in66"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
)

// Commands understood by the emulator.
const (
	deepSleepMode                  byte = 0x10
	dataEntryModeSetting           byte = 0x11
	swReset                        byte = 0x12
	masterActivation               byte = 0x20
	writeRAMBW                     byte = 0x24
	setRAMXAddressStartEndPosition byte = 0x44
	setRAMYAddressStartEndPosition byte = 0x45
)

var (
	// ErrBusy is returned for bus traffic while the busy line is asserted.
	ErrBusy = errors.New("consolepanel: command while busy")
	// ErrAsleep is returned for bus traffic in deep sleep.
	ErrAsleep = errors.New("consolepanel: command in deep sleep")
	// ErrReset is returned for bus traffic while reset is asserted.
	ErrReset = errors.New("consolepanel: command while in reset")
)

// ramWidth is the number of addressable RAM columns in bytes.
const ramWidth = 256

// Opts represents the options available for this display.
type Opts struct {
	// Visible panel size in pixels.
	Width, Height int
	// First RAM column (in bytes) wired to the panel.
	XOffset int

	// BusyPolls is the number of busy reads answered with true after a
	// reset, soft reset or display update.
	BusyPolls int

	// Scale is the width in pixels of one character cell; a cell is twice as
	// tall and shows the average gray of the pixels it covers. Zero renders
	// one cell per pixel.
	Scale int

	Palette *ansi256.Palette
	// W receives the rendered image, stdout when nil.
	W io.Writer

	_ struct{}
}

// Dev is an emulated e-paper controller that outputs to the console.
type Dev struct {
	w       io.Writer
	palette ansi256.Palette
	opts    Opts

	ram []byte

	cmd  byte
	args []byte

	xStart, xEnd int
	yStart, yEnd int
	x, y         int

	busy     int
	inReset  bool
	sleeping bool

	refreshes int
	shown     []byte

	buf bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	d := &Dev{
		w:       w,
		palette: *p,
		opts:    *opts,
		ram:     make([]byte, ramWidth*opts.Height),
	}
	d.softReset()
	return d
}

func (d *Dev) String() string {
	return "ConsolePanel"
}

// Refreshes returns the number of completed display updates.
func (d *Dev) Refreshes() int {
	return d.refreshes
}

// Frame returns the packed image shown by the last display update, cols
// bytes per row.
func (d *Dev) Frame() []byte {
	return append([]byte(nil), d.shown...)
}

// Sleeping reports whether the controller is in deep sleep.
func (d *Dev) Sleeping() bool {
	return d.sleeping
}

func (d *Dev) cols() int {
	return (d.opts.Width + 7) / 8
}

func (d *Dev) check() error {
	switch {
	case d.inReset:
		return ErrReset
	case d.sleeping:
		return ErrAsleep
	case d.busy > 0:
		return ErrBusy
	}
	return nil
}

func (d *Dev) softReset() {
	d.xStart, d.xEnd = 0, ramWidth-1
	d.yStart, d.yEnd = 0, d.opts.Height
	d.x, d.y = 0, 0
	d.busy = d.opts.BusyPolls
}

// SendCommand implements waveshare2in66.Bus.
func (d *Dev) SendCommand(cmd byte) error {
	if err := d.check(); err != nil {
		return fmt.Errorf("%w: %#02x", err, cmd)
	}

	d.cmd = cmd
	d.args = d.args[:0]

	switch cmd {
	case swReset:
		d.softReset()
	case writeRAMBW:
		d.x, d.y = d.xStart, d.yStart
	case masterActivation:
		return d.refresh()
	}
	return nil
}

// SendData implements waveshare2in66.Bus.
func (d *Dev) SendData(data []byte) error {
	if err := d.check(); err != nil {
		return err
	}

	switch d.cmd {
	case writeRAMBW:
		for _, b := range data {
			d.writeRAM(b)
		}
		return nil
	case deepSleepMode:
		if len(data) > 0 && data[0] != 0 {
			d.sleeping = true
		}
		return nil
	}

	d.args = append(d.args, data...)

	switch d.cmd {
	case setRAMXAddressStartEndPosition:
		if len(d.args) >= 2 {
			d.xStart, d.xEnd = int(d.args[0]), int(d.args[1])
			d.x = d.xStart
		}
	case setRAMYAddressStartEndPosition:
		if len(d.args) >= 4 {
			d.yStart = int(d.args[0]) | int(d.args[1]&0x01)<<8
			d.yEnd = int(d.args[2]) | int(d.args[3]&0x01)<<8
			d.y = d.yStart
		}
	case dataEntryModeSetting:
		if len(d.args) > 0 && d.args[0] != 0x03 {
			return fmt.Errorf("consolepanel: unsupported data entry mode %#02x", d.args[0])
		}
	}
	return nil
}

// writeRAM stores one byte at the address counter and advances it X first.
// The Y end register holds the row after the last one.
func (d *Dev) writeRAM(b byte) {
	if d.y >= d.yEnd || d.y >= d.opts.Height {
		return
	}
	d.ram[d.y*ramWidth+d.x] = b
	d.x++
	if d.x > d.xEnd {
		d.x = d.xStart
		d.y++
	}
}

// Busy implements waveshare2in66.Bus. Every read while busy counts down.
func (d *Dev) Busy() bool {
	if d.inReset || d.busy <= 0 {
		return false
	}
	d.busy--
	return true
}

// SetReset implements waveshare2in66.Bus. Releasing reset wakes the
// controller from deep sleep.
func (d *Dev) SetReset(asserted bool) error {
	if asserted {
		d.inReset = true
		return nil
	}
	if d.inReset {
		d.inReset = false
		d.sleeping = false
		d.softReset()
	}
	return nil
}

// Halt implements conn.Resource.
//
// It resets the terminal colors so it is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m\n"))
	return err
}

func (d *Dev) refresh() error {
	cols := d.cols()
	d.shown = make([]byte, cols*d.opts.Height)
	for y := 0; y < d.opts.Height; y++ {
		off := y*ramWidth + d.opts.XOffset
		copy(d.shown[y*cols:(y+1)*cols], d.ram[off:off+cols])
	}

	d.refreshes++
	d.busy = d.opts.BusyPolls

	_, err := d.render()
	return err
}

func (d *Dev) white(x, y int) bool {
	return d.shown[y*d.cols()+x/8]&(0x80>>uint(x%8)) != 0
}

// cell returns the average gray of the w by h pixels at (x0, y0), clipped to
// the panel.
func (d *Dev) cell(x0, y0, w, h int) color.Gray {
	sum, n := 0, 0
	for y := y0; y < y0+h && y < d.opts.Height; y++ {
		for x := x0; x < x0+w && x < d.opts.Width; x++ {
			if d.white(x, y) {
				sum += 0xFF
			}
			n++
		}
	}
	return color.Gray{Y: uint8(sum / n)}
}

func (d *Dev) render() (int, error) {
	sx, sy := d.opts.Scale, 2*d.opts.Scale
	if sx <= 0 {
		sx, sy = 1, 1
	}

	d.buf.Reset()
	_, _ = d.buf.WriteString("\033[0m")
	for y := 0; y < d.opts.Height; y += sy {
		for x := 0; x < d.opts.Width; x += sx {
			_, _ = io.WriteString(&d.buf, d.palette.Block(color.NRGBAModel.Convert(d.cell(x, y, sx, sy)).(color.NRGBA)))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	n, err := d.buf.WriteTo(d.w)
	return int(n), err
}

var _ waveshare2in66.Bus = &Dev{}
var _ fmt.Stringer = &Dev{}
