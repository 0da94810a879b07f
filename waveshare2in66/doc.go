// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package waveshare2in66 controls the Waveshare 2.66 inch e-paper display.
//
// Datasheet:
// https://files.waveshare.com/upload/e/ec/2.66inch-e-paper-specification.pdf
//
// Product page:
// https://www.waveshare.com/wiki/2.66inch_e-Paper_Module
//
// The module is a 152×296 pixel black and white active matrix
// electrophoretic display driven by an SSD16xx-family controller. The
// controller signals internal operations through a busy line only, so every
// step of the power-up and refresh sequence waits for that line to drop
// before issuing the next command.
//
// The controller is put into deep sleep after each refresh. Deep sleep
// discards the RAM window configuration and Init must be called again before
// the next image is loaded.
package waveshare2in66
