/*
Copyright 2024 Tim St. Pierre
PCF8574 I2C backpack bus for hd44780 displays
Thanks to Dave Cheney for figuring out the registers!
*/
package hd44780

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
)

const (
	// Backpack pins
	EN        = 2
	WR        = 1
	RS        = 0
	D4        = 4
	D5        = 5
	D6        = 6
	D7        = 7
	BACKLIGHT = 3

	DefaultI2CAddr = 0x27

	dataMask = 0xF0
)

// Backpack is a Bus over a PCF8574 I2C expander wired to the display in
// 4-bit mode.
type Backpack struct {
	c         conn.Conn
	backlight bool
	last      byte
	w         [1]byte
	r         [1]byte
}

// NewBackpack returns a bus talking to the expander at addr, 0 meaning
// DefaultI2CAddr. The backlight starts on.
func NewBackpack(b i2c.Bus, addr uint16) (*Backpack, error) {
	addr, err := i2cAddr(addr)
	if err != nil {
		return nil, fmt.Errorf("hd44780 %#x: %v", addr, err)
	}
	return &Backpack{c: &i2c.Dev{Bus: b, Addr: addr}, backlight: true}, nil
}

// NewI2C returns an initialized driver for a display behind a PCF8574
// backpack.
//
// Use default options if nil is used.
func NewI2C(b i2c.Bus, addr uint16, opts *Opts) (*Driver, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if opts.EightBit {
		return nil, errors.New("hd44780: backpack only supports 4-bit mode")
	}
	bp, err := NewBackpack(b, addr)
	if err != nil {
		return nil, err
	}
	d, err := New(bp, Sleep, opts)
	if err != nil {
		return nil, err
	}
	if err := d.Init(); err != nil {
		return nil, err
	}
	if err := d.SetDisplay(true, false, false); err != nil {
		return nil, err
	}
	return d, nil
}

func (b *Backpack) String() string {
	return fmt.Sprintf("pcf8574{%s}", b.c)
}

// IO implements Bus. The data lines are released high while reading so
// the display can pull them down.
func (b *Backpack) IO(rw, rs, en bool, data byte) (byte, error) {
	out := data & dataMask
	if rw {
		out = dataMask
	}
	out = pinInterpret(RS, out, rs)
	out = pinInterpret(WR, out, rw)
	out = pinInterpret(EN, out, en)
	if err := b.write(out); err != nil {
		return 0, err
	}
	if !rw || !en {
		return 0, nil
	}
	if err := b.c.Tx(nil, b.r[:]); err != nil {
		return 0, err
	}
	return b.r[0] & dataMask, nil
}

// SetBacklight switches the backlight, keeping the other pins as they are.
func (b *Backpack) SetBacklight(on bool) error {
	b.backlight = on
	return b.write(b.last)
}

func (b *Backpack) write(data byte) error {
	// Determine if back light is on and insure it does not turn off or on
	data = pinInterpret(BACKLIGHT, data, b.backlight)
	b.w[0] = data
	if err := b.c.Tx(b.w[:], nil); err != nil {
		return err
	}
	b.last = data
	return nil
}

func i2cAddr(addr uint16) (uint16, error) {
	switch addr {
	case 0:
		// Default address.
		return DefaultI2CAddr, nil
	case 0x20, 0x21, 0x22, 0x23, 0x24, 0x25, 0x26, 0x27:
		return addr, nil
	case 0x38, 0x39, 0x3A, 0x3B, 0x3C, 0x3D, 0x3E, 0x3F:
		// PCF8574A
		return addr, nil
	default:
		return addr, errors.New("given address not supported by device")
	}
}

// Backlight is implemented by buses that control a backlight.
type Backlight interface {
	SetBacklight(on bool) error
}

// SetBacklight switches the backlight when the bus has one.
func (d *Driver) SetBacklight(on bool) error {
	bl, ok := d.bus.(Backlight)
	if !ok {
		return fmt.Errorf("hd44780: %T has no backlight", d.bus)
	}
	if err := bl.SetBacklight(on); err != nil {
		return d.fail("backlight", err)
	}
	return nil
}

// Halt blanks the display and turns off the backlight if there is one.
func (d *Driver) Halt() error {
	if err := d.SetDisplay(false, false, false); err != nil {
		return err
	}
	if _, ok := d.bus.(Backlight); ok {
		return d.SetBacklight(false)
	}
	return nil
}

func pinInterpret(pin, data byte, value bool) byte {
	var mask byte = 0x01 << pin
	if value {
		return data | mask
	}
	return data &^ mask
}
