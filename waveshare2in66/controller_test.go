// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package waveshare2in66

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type record struct {
	cmd  byte
	data []byte
	idle bool
}

type fakeController []record

func (r *fakeController) sendCommand(cmd byte) {
	*r = append(*r, record{
		cmd: cmd,
	})
}

func (r *fakeController) sendData(data []byte) {
	cur := &(*r)[len(*r)-1]
	cur.data = append(cur.data, data...)
}

func (r *fakeController) waitUntilIdle() {
	*r = append(*r, record{idle: true})
}

func diffRecords(got fakeController, want []record) string {
	return cmp.Diff([]record(got), want, cmpopts.EquateEmpty(), cmp.AllowUnexported(record{}))
}

func TestSoftReset(t *testing.T) {
	var got fakeController

	softReset(&got)

	if diff := diffRecords(got, []record{
		{cmd: swReset},
		{idle: true},
	}); diff != "" {
		t.Errorf("softReset() difference (-got +want):\n%s", diff)
	}
}

func TestConfigureRAM(t *testing.T) {
	for _, tc := range []struct {
		name string
		opts Opts
		want []record
	}{
		{
			name: "epd2in66",
			opts: EPD2in66,
			want: []record{
				{cmd: dataEntryModeSetting, data: []byte{0x03}},
				{cmd: setRAMXAddressStartEndPosition, data: []byte{0x01, 152 / 8}},
				{cmd: setRAMYAddressStartEndPosition, data: []byte{0x00, 0x00, 40, 1}},
				{idle: true},
			},
		},
		{
			name: "odd width",
			opts: Opts{Width: 122, Height: 250},
			want: []record{
				{cmd: dataEntryModeSetting, data: []byte{0x03}},
				{cmd: setRAMXAddressStartEndPosition, data: []byte{0x01, 16}},
				{cmd: setRAMYAddressStartEndPosition, data: []byte{0x00, 0x00, 250, 0}},
				{idle: true},
			},
		},
		{
			name: "tallest",
			opts: Opts{Width: 8, Height: 511},
			want: []record{
				{cmd: dataEntryModeSetting, data: []byte{0x03}},
				{cmd: setRAMXAddressStartEndPosition, data: []byte{0x01, 0x01}},
				{cmd: setRAMYAddressStartEndPosition, data: []byte{0x00, 0x00, 0xFF, 0x01}},
				{idle: true},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var got fakeController

			configureRAM(&got, fullWindow(&tc.opts))

			if diff := diffRecords(got, tc.want); diff != "" {
				t.Errorf("configureRAM() difference (-got +want):\n%s", diff)
			}
		})
	}
}

func TestWriteImage(t *testing.T) {
	frame := bytes.Repeat([]byte{0xAA, 0x55}, 6)

	var got fakeController

	writeImage(&got, frame, 3)

	if diff := diffRecords(got, []record{
		{cmd: writeRAMBW, data: frame},
	}); diff != "" {
		t.Errorf("writeImage() difference (-got +want):\n%s", diff)
	}
}

func TestTurnOnDisplay(t *testing.T) {
	var got fakeController

	turnOnDisplay(&got)
	deepSleep(&got)

	if diff := diffRecords(got, []record{
		{cmd: masterActivation},
		{idle: true},
		{cmd: deepSleepMode, data: []byte{0x01}},
	}); diff != "" {
		t.Errorf("turnOnDisplay() difference (-got +want):\n%s", diff)
	}
}
