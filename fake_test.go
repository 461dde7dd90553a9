/*
Copyright 2024 Tim St. Pierre
Recording bus used by the protocol tests
*/
package hd44780

import (
	"errors"
	"fmt"
	"testing"
)

var errInjected = errors.New("injected fault")

// event is one collaborator call, either bus I/O or a delay.
type event struct {
	delay      bool
	us         uint32
	rw, rs, en bool
	data       byte
}

func (e event) String() string {
	if e.delay {
		return fmt.Sprintf("delay(%d)", e.us)
	}
	return fmt.Sprintf("io(rw=%t rs=%t en=%t %#02x)", e.rw, e.rs, e.en, e.data)
}

// fakeBus records every call. read returns the data lines for the n-th read
// cycle, a cycle ending when enable falls with R/W high.
type fakeBus struct {
	events []event
	failAt int
	read   func(cycle int) byte

	cycles int
	enHigh bool
}

func (f *fakeBus) call(e event) error {
	f.events = append(f.events, e)
	if f.failAt == len(f.events) {
		return errInjected
	}
	return nil
}

func (f *fakeBus) IO(rw, rs, en bool, data byte) (byte, error) {
	if err := f.call(event{rw: rw, rs: rs, en: en, data: data}); err != nil {
		return 0, err
	}
	var v byte
	if rw && en && f.read != nil {
		v = f.read(f.cycles)
	}
	if rw && f.enHigh && !en {
		f.cycles++
	}
	f.enHigh = en
	return v, nil
}

func (f *fakeBus) Delay(us uint32) error {
	return f.call(event{delay: true, us: us})
}

func (f *fakeBus) reset() {
	f.events = nil
	f.cycles = 0
}

// written is a byte sent to the instruction (rs false) or data register.
type written struct {
	rs bool
	b  byte
}

// writes decodes the bytes latched on rising enable edges with R/W low.
func (f *fakeBus) writes(fourBit bool) []written {
	var out []written
	var hi *event
	for i := range f.events {
		e := f.events[i]
		if e.delay || e.rw || !e.en {
			continue
		}
		if !fourBit {
			out = append(out, written{e.rs, e.data})
			continue
		}
		if hi == nil {
			hi = &f.events[i]
			continue
		}
		out = append(out, written{e.rs, hi.data&0xF0 | e.data>>4})
		hi = nil
	}
	return out
}

func (f *fakeBus) delays(us uint32) int {
	n := 0
	for _, e := range f.events {
		if e.delay && e.us == us {
			n++
		}
	}
	return n
}

// testTiming uses distinct values so every delay is identifiable.
var testTiming = BusTiming{
	AddressSetup:  1,
	EnableHold:    2,
	DataHold:      3,
	BusyInterval:  4,
	BusyHoldShort: 5,
	BusyHoldLong:  6,
}

func newTestDriver(t *testing.T, opts Opts) (*Driver, *fakeBus) {
	t.Helper()
	f := &fakeBus{}
	if opts.Width == 0 {
		opts.Width, opts.Height = 16, 2
	}
	opts.Timing = testTiming
	d, err := New(f, f, &opts)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	return d, f
}

// expectation builders mirroring the bus protocol.

func cycleEvents(rs bool, b byte, settle uint32) []event {
	return []event{
		{rs: rs, data: b},
		{delay: true, us: testTiming.AddressSetup},
		{rs: rs, en: true, data: b},
		{delay: true, us: testTiming.EnableHold},
		{rs: rs, data: b},
		{delay: true, us: settle},
	}
}

func writeEvents(fourBit, rs bool, b byte) []event {
	ev := cycleEvents(rs, b, testTiming.DataHold)
	if fourBit {
		ev = append(ev, cycleEvents(rs, b<<4, testTiming.DataHold)...)
	}
	return ev
}

func compareEvents(t *testing.T, got, want []event) {
	t.Helper()
	for i := 0; i < len(got) && i < len(want); i++ {
		if got[i] != want[i] {
			t.Fatalf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d", len(got), len(want))
	}
}
