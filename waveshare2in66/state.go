// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package waveshare2in66

import "strconv"

// State is the position of the driver in the controller lifecycle.
type State int

// Valid State.
const (
	Uninitialized State = iota
	Resetting
	SoftResetting
	ConfiguringWindow
	AwaitingBusyClear
	// Displaying is the ready state: the RAM window is configured and an
	// image can be loaded and refreshed.
	Displaying
	Sleeping
	Faulted
)

var stateNames = [...]string{
	Uninitialized:     "Uninitialized",
	Resetting:         "Resetting",
	SoftResetting:     "SoftResetting",
	ConfiguringWindow: "ConfiguringWindow",
	AwaitingBusyClear: "AwaitingBusyClear",
	Displaying:        "Displaying",
	Sleeping:          "Sleeping",
	Faulted:           "Faulted",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}
