// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package waveshare2in66

import (
	"fmt"
	"time"
)

type opKind int

const (
	opCommand opKind = iota
	opReset
	opWait
)

type busOp struct {
	kind     opKind
	cmd      byte
	data     []byte
	asserted bool
}

// fakeBus records bus traffic. Consecutive busy reads are folded into a
// single opWait entry.
type fakeBus struct {
	ops []busOp

	// busyReads is the number of Busy calls answered with true before the
	// line is released. Negative keeps the line asserted forever.
	busyReads int
	reads     int

	cmdErr error
}

func (b *fakeBus) SendCommand(cmd byte) error {
	if b.cmdErr != nil {
		return b.cmdErr
	}
	b.ops = append(b.ops, busOp{kind: opCommand, cmd: cmd})
	return nil
}

func (b *fakeBus) SendData(data []byte) error {
	if len(b.ops) == 0 || b.ops[len(b.ops)-1].kind != opCommand {
		return fmt.Errorf("data %x without command", data)
	}
	cur := &b.ops[len(b.ops)-1]
	cur.data = append(cur.data, data...)
	return nil
}

func (b *fakeBus) Busy() bool {
	if len(b.ops) == 0 || b.ops[len(b.ops)-1].kind != opWait {
		b.ops = append(b.ops, busOp{kind: opWait})
	}
	b.reads++
	return b.busyReads < 0 || b.reads <= b.busyReads
}

func (b *fakeBus) SetReset(asserted bool) error {
	b.ops = append(b.ops, busOp{kind: opReset, asserted: asserted})
	return nil
}

// commands returns the recorded opcodes, ignoring resets and waits.
func (b *fakeBus) commands() []byte {
	var cmds []byte
	for _, op := range b.ops {
		if op.kind == opCommand {
			cmds = append(cmds, op.cmd)
		}
	}
	return cmds
}

func (b *fakeBus) clear() {
	b.ops = nil
	b.reads = 0
}

// sleepRecorder replaces time.Sleep in tests.
type sleepRecorder []time.Duration

func (s *sleepRecorder) sleep(d time.Duration) {
	*s = append(*s, d)
}

func (s sleepRecorder) total() time.Duration {
	var sum time.Duration
	for _, d := range s {
		sum += d
	}
	return sum
}
