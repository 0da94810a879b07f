// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package waveshare2in66

import (
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Bus is the transport to the display controller. The protocol is write-only
// apart from the busy status line.
type Bus interface {
	// SendCommand transfers a single opcode.
	SendCommand(cmd byte) error
	// SendData transfers parameter or image bytes for the last opcode.
	SendData(data []byte) error
	// Busy reports whether the controller is performing an internal
	// operation.
	Busy() bool
	// SetReset drives the hardware reset line. The controller is held in
	// reset while asserted.
	SetReset(asserted bool) error
}

// SPIBus is a Bus over a 4-wire SPI connection with separate data/command,
// reset and busy lines.
type SPIBus struct {
	c conn.Conn

	dc   gpio.PinOut
	cs   gpio.PinOut
	rst  gpio.PinOut
	busy gpio.PinIn
}

// NewSPIBus connects to the controller on the given port.
func NewSPIBus(p spi.Port, dc, cs, rst gpio.PinOut, busy gpio.PinIn) (*SPIBus, error) {
	c, err := p.Connect(4*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("waveshare2in66: connect: %w", err)
	}

	if err := busy.In(gpio.Float, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("waveshare2in66: busy pin: %w", err)
	}

	return &SPIBus{
		c:    c,
		dc:   dc,
		cs:   cs,
		rst:  rst,
		busy: busy,
	}, nil
}

// SendCommand implements Bus.
func (b *SPIBus) SendCommand(cmd byte) error {
	return b.tx(gpio.Low, []byte{cmd})
}

// SendData implements Bus.
func (b *SPIBus) SendData(data []byte) error {
	return b.tx(gpio.High, data)
}

// Busy implements Bus. The line is high while the controller is busy.
func (b *SPIBus) Busy() bool {
	return b.busy.Read() == gpio.High
}

// SetReset implements Bus. The reset line is active low.
func (b *SPIBus) SetReset(asserted bool) error {
	return b.rst.Out(gpio.Level(!asserted))
}

func (b *SPIBus) String() string {
	return fmt.Sprintf("%s, %s", b.c, b.dc)
}

func (b *SPIBus) tx(dc gpio.Level, w []byte) error {
	if err := b.dc.Out(dc); err != nil {
		return err
	}
	if err := b.cs.Out(gpio.Low); err != nil {
		return err
	}
	err := b.c.Tx(w, nil)
	if csErr := b.cs.Out(gpio.High); err == nil {
		err = csErr
	}
	return err
}

var _ Bus = &SPIBus{}
