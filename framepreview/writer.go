// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package framepreview

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"image/png"
	"io"
	"net/textproto"
	"sort"
	"strconv"
	"sync"
)

type pngBufferPool sync.Pool

func (p *pngBufferPool) Get() *png.EncoderBuffer {
	buf, _ := (*sync.Pool)(p).Get().(*png.EncoderBuffer)
	return buf
}

func (p *pngBufferPool) Put(buf *png.EncoderBuffer) {
	(*sync.Pool)(p).Put(buf)
}

// newBoundary returns 60 hex digits, well within the 70 characters RFC 2046
// allows for a multipart boundary.
func newBoundary() string {
	var b [30]byte
	if _, err := io.ReadFull(rand.Reader, b[:]); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b[:])
}

// streamWriter writes an endless multipart/x-mixed-replace body.
type streamWriter struct {
	w        io.Writer
	boundary string
	opened   bool
	buf      bytes.Buffer
}

func newStreamWriter(w io.Writer) *streamWriter {
	return &streamWriter{w: w, boundary: newBoundary()}
}

// writePart sends one frame and closes it with the boundary line right away,
// so clients show it before the next frame exists. Content-Length is set on
// header.
func (s *streamWriter) writePart(header textproto.MIMEHeader, body []byte) error {
	header.Set("Content-Length", strconv.Itoa(len(body)))

	s.buf.Reset()
	if !s.opened {
		s.writeBoundary()
		s.opened = true
	}
	writeHeader(&s.buf, header)
	s.buf.Write(body)
	s.buf.WriteString("\r\n")
	s.writeBoundary()

	_, err := s.buf.WriteTo(s.w)
	return err
}

func (s *streamWriter) writeBoundary() {
	s.buf.WriteString("--")
	s.buf.WriteString(s.boundary)
	s.buf.WriteString("\r\n")
}

// writeHeader writes h in key order followed by the blank line.
func writeHeader(buf *bytes.Buffer, h textproto.MIMEHeader) {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		for _, v := range h[k] {
			buf.WriteString(k)
			buf.WriteString(": ")
			buf.WriteString(v)
			buf.WriteString("\r\n")
		}
	}
	buf.WriteString("\r\n")
}
