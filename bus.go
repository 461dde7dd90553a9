/*
Copyright 2024 Tim St. Pierre
Bus transactions for hd44780 displays
*/
package hd44780

import "time"

// Bus drives the controller lines. IO sets R/W, RS, E and, when writing,
// the data lines. When reading it returns the sampled data lines. In 4-bit
// mode only the upper four data lines (D4-D7) are wired.
type Bus interface {
	IO(rw, rs, en bool, data byte) (byte, error)
}

// BusFunc adapts a function to the Bus interface.
type BusFunc func(rw, rs, en bool, data byte) (byte, error)

func (f BusFunc) IO(rw, rs, en bool, data byte) (byte, error) {
	return f(rw, rs, en, data)
}

// Delayer suspends for at least us microseconds. Overshooting is harmless.
type Delayer interface {
	Delay(us uint32) error
}

// DelayFunc adapts a function to the Delayer interface.
type DelayFunc func(us uint32) error

func (f DelayFunc) Delay(us uint32) error {
	return f(us)
}

// Sleep is a Delayer backed by time.Sleep.
var Sleep Delayer = DelayFunc(func(us uint32) error {
	time.Sleep(time.Duration(us) * time.Microsecond)
	return nil
})

const (
	busWrite = false
	busRead  = true
)

func (d *Driver) io(rw, rs, en bool, data byte) (byte, error) {
	v, err := d.bus.IO(rw, rs, en, data)
	if err != nil {
		return 0, d.fail("bus io", err)
	}
	return v, nil
}

func (d *Driver) delay(us uint32) error {
	if err := d.delayer.Delay(us); err != nil {
		return d.fail("delay", err)
	}
	return nil
}

// cycle is a single write cycle: setup, enable pulse, then settle for the
// given time after enable falls.
func (d *Driver) cycle(rs bool, b byte, settle uint32) error {
	if _, err := d.io(busWrite, rs, false, b); err != nil {
		return err
	}
	if err := d.delay(d.timing.AddressSetup); err != nil {
		return err
	}
	if _, err := d.io(busWrite, rs, true, b); err != nil {
		return err
	}
	if err := d.delay(d.timing.EnableHold); err != nil {
		return err
	}
	if _, err := d.io(busWrite, rs, false, b); err != nil {
		return err
	}
	return d.delay(settle)
}

// pulse sends b as one write cycle regardless of bus width. In 4-bit mode
// the controller only latches the high nibble.
func (d *Driver) pulse(b byte, settle uint32) error {
	d.log.Tracef("pulse %#02x", b)
	return d.cycle(false, b, settle)
}

// transaction writes a full byte to the instruction (rs false) or data
// register, high nibble first in 4-bit mode.
func (d *Driver) transaction(rs bool, b byte) error {
	d.log.Tracef("write rs=%t %#02x", rs, b)
	if err := d.cycle(rs, b, d.timing.DataHold); err != nil {
		return err
	}
	if !d.fourBit {
		return nil
	}
	return d.cycle(rs, b<<4, d.timing.DataHold)
}

// readCycle raises enable, samples the data lines and lowers enable again.
// The bus must already be in read mode.
func (d *Driver) readCycle() (byte, error) {
	if _, err := d.io(busRead, false, true, 0); err != nil {
		return 0, err
	}
	if err := d.delay(d.timing.EnableHold); err != nil {
		return 0, err
	}
	v, err := d.io(busRead, false, true, 0)
	if err != nil {
		return 0, err
	}
	if _, err := d.io(busRead, false, false, 0); err != nil {
		return 0, err
	}
	return v, nil
}

// readStatus reads the busy flag and address counter, recombining the two
// nibbles in 4-bit mode.
func (d *Driver) readStatus() (byte, error) {
	v, err := d.readCycle()
	if err != nil {
		return 0, err
	}
	if !d.fourBit {
		return v, nil
	}
	if err := d.delay(d.timing.DataHold); err != nil {
		return 0, err
	}
	lo, err := d.readCycle()
	if err != nil {
		return 0, err
	}
	return v&0xF0 | lo>>4, nil
}
