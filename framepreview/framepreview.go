// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package framepreview mirrors the packed 1-bit frames sent to an e-paper
// panel over HTTP. Plain requests get a PNG snapshot of the last frame;
// requests with "?stream=1" get a multipart stream ("MJPEG" style, using PNG
// parts) that is updated on every new frame.
//
// E-paper panels keep their image without power and cannot be read back, so
// the mirror is the only way to check remotely what a device is showing.
package framepreview

import (
	"fmt"
	"image"
	"image/color"
	"sync"
	"time"
)

// Options for framepreview mirrors.
type Options struct {
	// Width and height of the panel in pixels.
	Width, Height int
}

// Mirror keeps the last frame and serves it to HTTP clients.
type Mirror struct {
	mu      sync.Mutex
	image   *image.Gray
	updated time.Time
	seq     uint64
	clients map[*client]struct{}

	// PNG encoding of image, nil when stale.
	snapshot []byte
}

// New creates a new mirror showing a white panel.
func New(opt *Options) *Mirror {
	img := image.NewGray(image.Rect(0, 0, opt.Width, opt.Height))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}

	return &Mirror{
		image:   img,
		clients: map[*client]struct{}{},
	}
}

// String returns the name of the device.
func (m *Mirror) String() string {
	return "FramePreview"
}

// Bounds returns the size of the mirrored panel.
func (m *Mirror) Bounds() image.Rectangle {
	return m.image.Bounds()
}

// Update replaces the mirrored image with a packed frame: one bit per pixel,
// most significant bit first, rows padded to whole bytes, set bits white.
func (m *Mirror) Update(frame []byte) error {
	b := m.image.Bounds()
	cols := (b.Dx() + 7) / 8
	if len(frame) != cols*b.Dy() {
		return fmt.Errorf("framepreview: frame is %d bytes, want %d", len(frame), cols*b.Dy())
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for y := 0; y < b.Dy(); y++ {
		row := frame[y*cols : (y+1)*cols]
		for x := 0; x < b.Dx(); x++ {
			v := color.Gray{}
			if row[x/8]&(0x80>>uint(x%8)) != 0 {
				v.Y = 0xFF
			}
			m.image.SetGray(x, y, v)
		}
	}

	m.updated = time.Now()
	m.seq++
	m.snapshot = nil
	m.notifyClientsLocked()

	return nil
}

// Halt implements conn.Resource and terminates all running client requests
// asynchronously.
func (m *Mirror) Halt() error {
	m.mu.Lock()
	m.terminateClientsLocked()
	m.mu.Unlock()

	return nil
}
