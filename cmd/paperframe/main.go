// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// paperframe drives a Waveshare 2.66" e-paper panel and manages the frame's
// runtime configuration.
//
// Usage:
//
//	paperframe show image.bin
//	paperframe serve --addr :8080
//	paperframe config set server=broker.local port=1883
package main

import (
	"log"

	"github.com/tebeka/atexit"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := rootCmd.Execute(); err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
