// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package waveshare2in66

import (
	"errors"
	"time"
)

// ErrTimeout is returned when the controller keeps the busy line asserted
// for longer than the configured budget.
var ErrTimeout = errors.New("waveshare2in66: timed out waiting for busy line")

const (
	defaultBusyPoll    = 100 * time.Millisecond
	defaultBusyTimeout = 15 * time.Second
	defaultBusySettle  = 100 * time.Millisecond
)

// busyWaiter polls the busy line. The controller has no interrupt, so
// polling at a fixed interval is the only way to learn it is done.
type busyWaiter struct {
	bus Bus

	poll    time.Duration
	timeout time.Duration
	settle  time.Duration

	sleep func(time.Duration)
}

func newBusyWaiter(bus Bus, opts *Opts, sleep func(time.Duration)) *busyWaiter {
	w := &busyWaiter{
		bus:     bus,
		poll:    opts.BusyPoll,
		timeout: opts.BusyTimeout,
		settle:  opts.BusySettle,
		sleep:   sleep,
	}
	if w.poll <= 0 {
		w.poll = defaultBusyPoll
	}
	if w.timeout <= 0 {
		w.timeout = defaultBusyTimeout
	}
	if w.settle <= 0 {
		w.settle = defaultBusySettle
	}
	return w
}

// wait blocks until the busy line is released. The budget is accounted in
// poll intervals slept, not wall time, so a slow bus read never shortens it.
func (w *busyWaiter) wait() error {
	var waited time.Duration

	for w.bus.Busy() {
		if waited >= w.timeout {
			return ErrTimeout
		}
		w.sleep(w.poll)
		waited += w.poll
	}

	w.sleep(w.settle)

	return nil
}
