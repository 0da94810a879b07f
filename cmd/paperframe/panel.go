// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/tebeka/atexit"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/paperframe/consolepanel"
	"github.com/GermanBionicSystems/paperframe/framepreview"
	"github.com/GermanBionicSystems/paperframe/waveshare2in66"
)

// panel serializes access to the one driver and mirrors every frame shown.
type panel struct {
	mu      sync.Mutex
	dev     *waveshare2in66.Dev
	preview *framepreview.Mirror

	frames  int
	updated time.Time
	lastErr error
}

func logTransition(from, to waveshare2in66.State) {
	log.Printf("panel: %s -> %s", from, to)
}

func newPanel(dev *waveshare2in66.Dev) *panel {
	b := dev.Bounds()
	return &panel{
		dev:     dev,
		preview: framepreview.New(&framepreview.Options{Width: b.Dx(), Height: b.Dy()}),
	}
}

// openPanel opens the panel selected by the flags.
func openPanel() (*panel, error) {
	opts := waveshare2in66.EPD2in66
	opts.OnStateChange = logTransition

	if simulate {
		bus := consolepanel.New(&consolepanel.Opts{
			Width:     opts.Width,
			Height:    opts.Height,
			XOffset:   1,
			BusyPolls: 3,
			Scale:     simScale,
		})
		dev, err := waveshare2in66.New(bus, &opts)
		if err != nil {
			return nil, err
		}
		return newPanel(dev), nil
	}

	if _, err := host.Init(); err != nil {
		return nil, err
	}

	port, err := spireg.Open(spiName)
	if err != nil {
		return nil, err
	}
	atexit.Register(func() { port.Close() })

	dev, err := waveshare2in66.NewHat(port, &opts)
	if err != nil {
		return nil, err
	}
	return newPanel(dev), nil
}

// show runs a complete update: reset, load, refresh and sleep.
func (p *panel) show(frame []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.update(frame)
	p.lastErr = err
	if err != nil {
		return err
	}

	p.frames++
	p.updated = time.Now()

	return p.preview.Update(frame)
}

func (p *panel) update(frame []byte) error {
	if err := p.dev.Init(); err != nil {
		return err
	}
	if err := p.dev.Load(frame); err != nil {
		return err
	}
	return p.dev.Refresh()
}

type panelStatus struct {
	Panel   string    `json:"panel"`
	State   string    `json:"state"`
	Frames  int       `json:"frames"`
	Updated time.Time `json:"updated"`
	Error   string    `json:"error,omitempty"`
}

func (p *panel) status() panelStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := panelStatus{
		Panel:   fmt.Sprint(p.dev),
		State:   p.dev.State().String(),
		Frames:  p.frames,
		Updated: p.updated,
	}
	if p.lastErr != nil {
		s.Error = p.lastErr.Error()
	}
	return s
}
