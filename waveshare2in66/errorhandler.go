// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package waveshare2in66

// errorHandler is a wrapper for error management. Once an operation fails,
// all further operations are skipped and the first error is kept.
type errorHandler struct {
	bus  Bus
	busy *busyWaiter
	err  error
}

func (eh *errorHandler) sendCommand(cmd byte) {
	if eh.err != nil {
		return
	}
	eh.err = eh.bus.SendCommand(cmd)
}

func (eh *errorHandler) sendData(data []byte) {
	if eh.err != nil {
		return
	}
	eh.err = eh.bus.SendData(data)
}

func (eh *errorHandler) waitUntilIdle() {
	if eh.err != nil {
		return
	}
	eh.err = eh.busy.wait()
}

func (eh *errorHandler) setReset(asserted bool) {
	if eh.err != nil {
		return
	}
	eh.err = eh.bus.SetReset(asserted)
}
