// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package waveshare2in66

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestBusyWaiter(t *testing.T) {
	for _, tc := range []struct {
		name       string
		busyReads  int
		opts       Opts
		wantErr    error
		wantSleeps []time.Duration
	}{
		{
			name:       "idle",
			wantSleeps: []time.Duration{defaultBusySettle},
		},
		{
			name:      "busy twice",
			busyReads: 2,
			wantSleeps: []time.Duration{
				defaultBusyPoll,
				defaultBusyPoll,
				defaultBusySettle,
			},
		},
		{
			name:      "custom timing",
			busyReads: 1,
			opts: Opts{
				BusyPoll:   5 * time.Millisecond,
				BusySettle: time.Millisecond,
			},
			wantSleeps: []time.Duration{5 * time.Millisecond, time.Millisecond},
		},
		{
			name:      "timeout",
			busyReads: -1,
			opts: Opts{
				BusyPoll:    10 * time.Millisecond,
				BusyTimeout: 30 * time.Millisecond,
			},
			wantErr: ErrTimeout,
			wantSleeps: []time.Duration{
				10 * time.Millisecond,
				10 * time.Millisecond,
				10 * time.Millisecond,
			},
		},
		{
			name:      "released on last poll",
			busyReads: 3,
			opts: Opts{
				BusyPoll:    10 * time.Millisecond,
				BusyTimeout: 30 * time.Millisecond,
				BusySettle:  time.Millisecond,
			},
			wantSleeps: []time.Duration{
				10 * time.Millisecond,
				10 * time.Millisecond,
				10 * time.Millisecond,
				time.Millisecond,
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			bus := &fakeBus{busyReads: tc.busyReads}
			var sleeps sleepRecorder

			w := newBusyWaiter(bus, &tc.opts, sleeps.sleep)

			if err := w.wait(); !errors.Is(err, tc.wantErr) {
				t.Errorf("wait() error = %v, want %v", err, tc.wantErr)
			}

			if diff := cmp.Diff([]time.Duration(sleeps), tc.wantSleeps); diff != "" {
				t.Errorf("sleeps difference (-got +want):\n%s", diff)
			}
		})
	}
}

func TestBusyWaiterDefaults(t *testing.T) {
	bus := &fakeBus{busyReads: -1}
	var sleeps sleepRecorder

	w := newBusyWaiter(bus, &Opts{}, sleeps.sleep)

	if err := w.wait(); !errors.Is(err, ErrTimeout) {
		t.Fatalf("wait() error = %v, want %v", err, ErrTimeout)
	}

	if got := sleeps.total(); got != defaultBusyTimeout {
		t.Errorf("slept %v before timing out, want %v", got, defaultBusyTimeout)
	}
	if got, want := bus.reads, int(defaultBusyTimeout/defaultBusyPoll)+1; got != want {
		t.Errorf("busy line read %d times, want %d", got, want)
	}
}
