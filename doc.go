// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package paperframe is a container for the parts of a Waveshare 2.66"
// e-paper picture frame: the panel driver in waveshare2in66, a terminal
// emulation of the controller in consolepanel, an HTTP mirror of the shown
// image in framepreview and the persisted runtime settings in config.
//
// The paperframe command in cmd/paperframe ties them together.
package paperframe
