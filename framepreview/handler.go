// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package framepreview

import (
	"bytes"
	"image/png"
	"log"
	"mime"
	"net/http"
	"net/textproto"
	"strconv"
)

var pngEncoder = png.Encoder{
	CompressionLevel: png.BestSpeed,
	BufferPool:       &pngBufferPool{},
}

type client struct {
	refresh   chan struct{}
	terminate chan struct{}
}

func (m *Mirror) notifyClientsLocked() {
	for c := range m.clients {
		select {
		case c.refresh <- struct{}{}:
		default:
		}
	}
}

func (m *Mirror) terminateClientsLocked() {
	for c := range m.clients {
		select {
		case c.terminate <- struct{}{}:
		default:
		}
	}
}

// grabSnapshot returns the encoded image and its sequence number. The
// returned slice must not be modified.
func (m *Mirror) grabSnapshot() ([]byte, uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.snapshot == nil {
		var buf bytes.Buffer
		if err := pngEncoder.Encode(&buf, m.image); err != nil {
			return nil, 0, err
		}
		m.snapshot = buf.Bytes()
	}

	return m.snapshot, m.seq, nil
}

// ServeHTTP handles HTTP GET requests. The "stream" parameter selects
// a multipart stream of images instead of a single snapshot.
func (m *Mirror) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.Body.Close(); err != nil {
		log.Printf("Closing request body failed: %v", err)
	}

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "", http.StatusMethodNotAllowed)
		return
	}

	stream := false
	if value := r.URL.Query().Get("stream"); value != "" {
		var err error
		if stream, err = strconv.ParseBool(value); err != nil {
			http.Error(w, "invalid stream parameter", http.StatusBadRequest)
			return
		}
	}

	if !stream {
		m.serveSnapshot(w)
		return
	}

	m.serveStream(w, r)
}

func (m *Mirror) serveSnapshot(w http.ResponseWriter) {
	payload, seq, err := m.grabSnapshot()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
	w.Header().Set("X-Frame-Sequence", strconv.FormatUint(seq, 10))
	_, _ = w.Write(payload)
}

func (m *Mirror) serveStream(w http.ResponseWriter, r *http.Request) {
	sw := newStreamWriter(w)

	w.Header().Set("Content-Type",
		mime.FormatMediaType("multipart/x-mixed-replace", map[string]string{
			"boundary": sw.boundary,
		}))

	c := &client{
		refresh:   make(chan struct{}, 1),
		terminate: make(chan struct{}, 1),
	}

	m.mu.Lock()
	m.clients[c] = struct{}{}
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		delete(m.clients, c)
		m.mu.Unlock()
	}()

	partHeaders := make(textproto.MIMEHeader)
	partHeaders.Set("Content-Type", "image/png")
	partHeaders.Set("Content-Transfer-Encoding", "binary")

	for {
		payload, seq, err := m.grabSnapshot()
		if err != nil {
			return
		}

		partHeaders.Set("X-Frame-Sequence", strconv.FormatUint(seq, 10))

		// Errors cause the request to be silently terminated. There's no
		// good way to deliver an error message to the client within an
		// image stream.
		if err := sw.writePart(partHeaders, payload); err != nil {
			return
		}

		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}

		select {
		case <-c.refresh:
		case <-c.terminate:
			return
		case <-r.Context().Done():
			return
		}
	}
}
