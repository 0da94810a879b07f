// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package waveshare2in66

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3/rpi"
)

// ErrNotReady is returned when an image is loaded or refreshed while the
// controller is not initialized. Call Init first.
var ErrNotReady = errors.New("waveshare2in66: display not initialized")

// maxHeight is the tallest panel whose Y end register, one past the last
// row, still fits the 9-bit Y counter.
const maxHeight = 511

// Opts definies the structure of the display configuration.
type Opts struct {
	Width  int
	Height int

	// Busy line polling interval, total budget per wait and settle time after
	// release. Zero values select 100ms, 15s and 100ms.
	BusyPoll    time.Duration
	BusyTimeout time.Duration
	BusySettle  time.Duration

	// OnStateChange is called after every state transition.
	OnStateChange func(from, to State)
}

// ByteWidth returns the number of bytes in one row of controller RAM.
func (o *Opts) ByteWidth() int {
	return (o.Width + 7) / 8
}

// FrameSize returns the size in bytes of a packed full-panel image.
func (o *Opts) FrameSize() int {
	return o.ByteWidth() * o.Height
}

// EPD2in66 contains display configuration for the Waveshare 2in66.
var EPD2in66 = Opts{
	Width:  152,
	Height: 296,
}

// Dev defines the handler which is used to access the display.
type Dev struct {
	bus  Bus
	busy *busyWaiter

	state  State
	buffer *image1bit.VerticalLSB

	opts *Opts

	sleep func(time.Duration)
}

// New creates new handler which is used to access the display. The bus is
// owned by the returned device and must not be used by anything else.
func New(bus Bus, opts *Opts) (*Dev, error) {
	if opts.Width <= 0 || opts.Height <= 0 || opts.Height > maxHeight {
		return nil, fmt.Errorf("waveshare2in66: invalid geometry %dx%d", opts.Width, opts.Height)
	}

	d := &Dev{
		bus:   bus,
		state: Uninitialized,
		buffer: image1bit.NewVerticalLSB(image.Rectangle{
			Max: image.Pt(opts.ByteWidth()*8, opts.Height),
		}),
		opts:  opts,
		sleep: time.Sleep,
	}
	d.busy = newBusyWaiter(bus, opts, func(t time.Duration) { d.sleep(t) })

	// Default color
	draw.Src.Draw(d.buffer, d.buffer.Bounds(), &image.Uniform{image1bit.On}, image.Point{})

	return d, nil
}

// NewSPI creates new handler for a display connected to a SPI port.
func NewSPI(p spi.Port, dc, cs, rst gpio.PinOut, busy gpio.PinIn, opts *Opts) (*Dev, error) {
	bus, err := NewSPIBus(p, dc, cs, rst, busy)
	if err != nil {
		return nil, err
	}
	return New(bus, opts)
}

// NewHat creates new handler which is used to access the display. Default Waveshare Hat configuration is used.
func NewHat(p spi.Port, opts *Opts) (*Dev, error) {
	dc := rpi.P1_22
	cs := rpi.P1_24
	rst := rpi.P1_11
	busy := rpi.P1_18
	return NewSPI(p, dc, cs, rst, busy, opts)
}

// State returns the current controller state.
func (d *Dev) State() State {
	return d.state
}

func (d *Dev) setState(s State) {
	from := d.state
	d.state = s
	if d.opts.OnStateChange != nil && from != s {
		d.opts.OnStateChange(from, s)
	}
}

// fail abandons the running sequence. The controller can only be recovered
// by a hardware reset through Init.
func (d *Dev) fail(op string, err error) error {
	d.setState(Faulted)
	return fmt.Errorf("waveshare2in66: %s: %w", op, err)
}

// reset pulses the hardware reset line.
func (d *Dev) reset(eh *errorHandler) {
	eh.setReset(false)
	d.sleep(20 * time.Millisecond)
	eh.setReset(true)
	d.sleep(2 * time.Millisecond)
	eh.setReset(false)
	d.sleep(20 * time.Millisecond)
}

// Init resets the controller and configures it for a full-panel update. It
// can be called in any state and is the only way out of Faulted and
// Sleeping.
func (d *Dev) Init() error {
	eh := errorHandler{bus: d.bus, busy: d.busy}

	d.setState(Resetting)
	d.reset(&eh)
	eh.waitUntilIdle()
	if eh.err != nil {
		return d.fail("reset", eh.err)
	}

	d.setState(SoftResetting)
	softReset(&eh)
	if eh.err != nil {
		return d.fail("soft reset", eh.err)
	}

	d.setState(ConfiguringWindow)
	configureRAM(&eh, fullWindow(d.opts))
	if eh.err != nil {
		return d.fail("configure window", eh.err)
	}

	d.setState(Displaying)

	return nil
}

// Load transfers a packed image into controller RAM. The frame holds
// ByteWidth bytes per row, most significant bit first; a set bit is white.
func (d *Dev) Load(frame []byte) error {
	if d.state != Displaying {
		return fmt.Errorf("%w (state %s)", ErrNotReady, d.state)
	}
	if want := d.opts.FrameSize(); len(frame) != want {
		return fmt.Errorf("waveshare2in66: frame is %d bytes, want %d", len(frame), want)
	}

	eh := errorHandler{bus: d.bus, busy: d.busy}
	writeImage(&eh, frame, d.opts.ByteWidth())
	if eh.err != nil {
		return d.fail("load", eh.err)
	}

	return nil
}

// Refresh shows the loaded image and puts the controller into deep sleep.
func (d *Dev) Refresh() error {
	if d.state != Displaying {
		return fmt.Errorf("%w (state %s)", ErrNotReady, d.state)
	}

	eh := errorHandler{bus: d.bus, busy: d.busy}

	d.setState(AwaitingBusyClear)
	turnOnDisplay(&eh)
	if eh.err != nil {
		return d.fail("refresh", eh.err)
	}
	d.setState(Displaying)

	deepSleep(&eh)
	if eh.err != nil {
		return d.fail("sleep", eh.err)
	}
	d.setState(Sleeping)

	return nil
}

// Frame returns the packed contents of the drawing buffer.
func (d *Dev) Frame() []byte {
	cols := d.opts.ByteWidth()
	frame := make([]byte, d.opts.FrameSize())

	for y := 0; y < d.opts.Height; y++ {
		row := frame[y*cols : (y+1)*cols]
		for x := range row {
			for bit := 0; bit < 8; bit++ {
				if d.buffer.BitAt((x*8)+bit, y) {
					row[x] |= 0x80 >> bit
				}
			}
		}
	}

	return frame
}

// Draw draws the given image to the display. The whole panel is refreshed;
// the area outside dstRect keeps its previous contents.
func (d *Dev) Draw(dstRect image.Rectangle, src image.Image, srcPts image.Point) error {
	dstRect = dstRect.Intersect(d.Bounds())
	draw.Src.Draw(d.buffer, dstRect, src, srcPts)

	if d.state != Displaying {
		if err := d.Init(); err != nil {
			return err
		}
	}

	if err := d.Load(d.Frame()); err != nil {
		return err
	}

	return d.Refresh()
}

// Clear clears the display.
func (d *Dev) Clear(c color.Color) error {
	return d.Draw(d.Bounds(), &image.Uniform{
		C: image1bit.BitModel.Convert(c).(image1bit.Bit),
	}, image.Point{})
}

// ColorModel returns a 1Bit color model.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds returns the bounds for the configurated display.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.opts.Width, d.opts.Height)
}

// Halt clears the display.
func (d *Dev) Halt() error {
	return d.Clear(image1bit.On)
}

// String returns a string containing configuration information.
func (d *Dev) String() string {
	return fmt.Sprintf("epd.Dev{%v, Width: %d, Height: %d}", d.bus, d.opts.Width, d.opts.Height)
}

var _ display.Drawer = &Dev{}
