// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/xid"
	"github.com/spf13/cobra"

	"github.com/GermanBionicSystems/paperframe/waveshare2in66"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Accept frames over HTTP.",
	Long: `Serve accepts frames with PUT /frame, reports the panel with ` +
		`GET /status and mirrors the shown frame at GET /preview ` +
		`(add ?stream=1 for a live stream).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		rec, err := store.Load()
		if err != nil {
			return err
		}
		if rec.IsMQTTEnabled() {
			log.Printf("broker %s:%d configured, frames are only accepted over HTTP", rec.MQTTServer, rec.MQTTPort)
		}

		p, err := openPanel()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		ln, err := net.Listen("tcp", serveAddr)
		if err != nil {
			return err
		}

		srv := &http.Server{Handler: newRouter(p)}
		srv.RegisterOnShutdown(func() { p.preview.Halt() })

		log.Printf("serving %s on %s", p.dev, ln.Addr())
		return runServer(ctx, srv, ln)
	},
}

// shutdownTimeout bounds the wait for running requests once serve is asked to
// stop.
const shutdownTimeout = 5 * time.Second

// runServer serves ln until ctx is done, then shuts srv down. Returning lets
// main run the atexit handlers.
func runServer(ctx context.Context, srv *http.Server, ln net.Listener) error {
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
}

type requestIDKey struct{}

// withRequestID tags every request with a unique id, logged with it.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := xid.New().String()
		w.Header().Set("X-Request-Id", id)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
		log.Printf("[%s] %s %s %v", id, r.Method, r.URL.Path, time.Since(start))
	})
}

func requestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey{}).(string)
	return id
}

func newRouter(p *panel) *mux.Router {
	r := mux.NewRouter()
	r.Use(withRequestID)

	r.HandleFunc("/frame", p.handleFrame).Methods(http.MethodPut)
	r.HandleFunc("/status", p.handleStatus).Methods(http.MethodGet)
	r.Handle("/preview", p.preview).Methods(http.MethodGet)

	return r
}

func (p *panel) handleFrame(w http.ResponseWriter, r *http.Request) {
	size := int64(waveshare2in66.EPD2in66.FrameSize())

	frame, err := io.ReadAll(io.LimitReader(r.Body, size+1))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if int64(len(frame)) != size {
		http.Error(w, fmt.Sprintf("frame must be exactly %d bytes", size), http.StatusBadRequest)
		return
	}

	if err := p.show(frame); err != nil {
		log.Printf("[%s] show failed: %v", requestID(r), err)
		code := http.StatusInternalServerError
		if errors.Is(err, waveshare2in66.ErrTimeout) {
			code = http.StatusServiceUnavailable
		}
		http.Error(w, err.Error(), code)
		return
	}

	p.handleStatus(w, r)
}

func (p *panel) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(p.status()); err != nil {
		log.Printf("[%s] encoding status failed: %v", requestID(r), err)
	}
}
