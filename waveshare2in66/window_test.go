// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package waveshare2in66

import (
	"errors"
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestByteWidth(t *testing.T) {
	for _, tc := range []struct {
		width int
		want  int
	}{
		{width: 152, want: 19},
		{width: 122, want: 16},
		{width: 8, want: 1},
		{width: 1, want: 1},
	} {
		opts := Opts{Width: tc.width, Height: 1}
		if got := opts.ByteWidth(); got != tc.want {
			t.Errorf("ByteWidth(%d) = %d, want %d", tc.width, got, tc.want)
		}
	}
}

func TestRowBytes(t *testing.T) {
	for _, tc := range []struct {
		y      int
		lo, hi byte
	}{
		{y: 0},
		{y: 255, lo: 255},
		{y: 256, hi: 1},
		{y: 296, lo: 40, hi: 1},
		{y: 511, lo: 255, hi: 1},
	} {
		lo, hi := rowBytes(tc.y)
		if lo != tc.lo || hi != tc.hi {
			t.Errorf("rowBytes(%d) = (%d, %d), want (%d, %d)", tc.y, lo, hi, tc.lo, tc.hi)
		}
	}
}

func TestNewWindow(t *testing.T) {
	for _, tc := range []struct {
		name    string
		rect    image.Rectangle
		want    window
		wantErr bool
	}{
		{
			name: "full",
			rect: image.Rect(0, 0, 152, 296),
			want: window{xStart: 1, xEnd: 19, yStart: 0, yEnd: 295},
		},
		{
			name: "aligned",
			rect: image.Rect(16, 10, 32, 20),
			want: window{xStart: 3, xEnd: 4, yStart: 10, yEnd: 19},
		},
		{
			name: "unaligned widened to bytes",
			rect: image.Rect(17, 0, 25, 1),
			want: window{xStart: 3, xEnd: 4, yStart: 0, yEnd: 0},
		},
		{
			name:    "empty",
			rect:    image.Rect(10, 10, 10, 20),
			wantErr: true,
		},
		{
			name:    "too wide",
			rect:    image.Rect(0, 0, 160, 10),
			wantErr: true,
		},
		{
			name:    "too tall",
			rect:    image.Rect(0, 290, 8, 297),
			wantErr: true,
		},
		{
			name:    "negative",
			rect:    image.Rect(-8, 0, 8, 8),
			wantErr: true,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := newWindow(&EPD2in66, tc.rect)
			if tc.wantErr {
				if !errors.Is(err, ErrWindowBounds) {
					t.Fatalf("newWindow() error = %v, want %v", err, ErrWindowBounds)
				}
				return
			}
			if err != nil {
				t.Fatalf("newWindow() failed: %v", err)
			}

			if diff := cmp.Diff(got, tc.want, cmp.AllowUnexported(window{})); diff != "" {
				t.Errorf("newWindow() difference (-got +want):\n%s", diff)
			}

			bw := EPD2in66.ByteWidth()
			if !(got.xStart <= got.xEnd && got.xEnd <= bw && got.yStart <= got.yEnd && got.yEnd < EPD2in66.Height) {
				t.Errorf("newWindow() = %+v violates RAM bounds", got)
			}
		})
	}
}

func TestSetWindow(t *testing.T) {
	var got fakeController

	setWindow(&got, window{xStart: 3, xEnd: 4, yStart: 255, yEnd: 256})

	if diff := diffRecords(got, []record{
		{cmd: setRAMXAddressStartEndPosition, data: []byte{3, 4}},
		{cmd: setRAMYAddressStartEndPosition, data: []byte{255, 0, 1, 1}},
	}); diff != "" {
		t.Errorf("setWindow() difference (-got +want):\n%s", diff)
	}
}
