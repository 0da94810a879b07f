// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package waveshare2in66

type controller interface {
	sendCommand(byte)
	sendData([]byte)
	waitUntilIdle()
}

// Commands
const (
	deepSleepMode                  byte = 0x10
	dataEntryModeSetting           byte = 0x11
	swReset                        byte = 0x12
	masterActivation               byte = 0x20
	writeRAMBW                     byte = 0x24
	setRAMXAddressStartEndPosition byte = 0x44
	setRAMYAddressStartEndPosition byte = 0x45
)

const (
	// Y increment, X increment; update address counter in X direction.
	dataEntryYIncXInc byte = 0b011

	// Deep sleep mode 1. RAM window configuration is lost.
	deepSleepMode1 byte = 0x01
)

func softReset(ctrl controller) {
	ctrl.sendCommand(swReset)
	ctrl.waitUntilIdle()
}

// configureRAM must run after the soft reset completed; the data entry mode
// is undefined when written earlier.
func configureRAM(ctrl controller, w window) {
	ctrl.sendCommand(dataEntryModeSetting)
	ctrl.sendData([]byte{dataEntryYIncXInc})

	setWindow(ctrl, w)

	ctrl.waitUntilIdle()
}

// writeImage streams a packed frame into the black/white RAM, one row per
// transfer.
func writeImage(ctrl controller, frame []byte, rowLen int) {
	ctrl.sendCommand(writeRAMBW)
	for off := 0; off < len(frame); off += rowLen {
		ctrl.sendData(frame[off : off+rowLen])
	}
}

func turnOnDisplay(ctrl controller) {
	ctrl.sendCommand(masterActivation)
	ctrl.waitUntilIdle()
}

func deepSleep(ctrl controller) {
	ctrl.sendCommand(deepSleepMode)
	ctrl.sendData([]byte{deepSleepMode1})
}
