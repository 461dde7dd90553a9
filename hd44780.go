/*
Copyright 2024 Tim St. Pierre
Controls HD44780 compatible character LCD displays
*/

// Package hd44780 drives character LCDs built around the Hitachi HD44780
// instruction set over a 4 or 8 bit parallel bus.
//
// The pins are driven through a Bus and timed through a Delayer, both
// supplied by the caller. A Driver is not safe for concurrent use.
package hd44780

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Driver holds the state of one display.
type Driver struct {
	bus     Bus
	delayer Delayer
	log     *log.Entry

	width     uint8
	height    uint8
	fourBit   bool
	writeOnly bool
	largeFont bool
	timing    BusTiming

	cursor  Cursor
	forward bool
	err     *IOError
}

// New returns a driver for the display described by opts. It does not
// touch the bus; call Init before anything else.
//
// Use default options if nil is used.
func New(bus Bus, delay Delayer, opts *Opts) (*Driver, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if bus == nil {
		return nil, errors.New("hd44780: nil bus")
	}
	if delay == nil {
		delay = Sleep
	}
	w, h, err := opts.dimensions()
	if err != nil {
		return nil, fmt.Errorf("hd44780: %w", err)
	}
	return &Driver{
		bus:       bus,
		delayer:   delay,
		log:       opts.logger().WithField("dev", "hd44780"),
		width:     w,
		height:    h,
		fourBit:   !opts.EightBit,
		writeOnly: opts.WriteOnly,
		largeFont: opts.LargeFont,
		timing:    opts.timing(),
		forward:   true,
	}, nil
}

func (d *Driver) String() string {
	bits := 8
	if d.fourBit {
		bits = 4
	}
	return fmt.Sprintf("hd44780{%dx%d, %d-bit}", d.width, d.height, bits)
}

// Width returns the number of columns.
func (d *Driver) Width() int {
	return int(d.width)
}

// Height returns the number of rows.
func (d *Driver) Height() int {
	return int(d.height)
}

// Timing returns the effective bus timing.
func (d *Driver) Timing() BusTiming {
	return d.timing
}

// Clear blanks the display and homes the cursor.
func (d *Driver) Clear() error {
	if err := d.Command(Clear()); err != nil {
		return err
	}
	d.cursor = Cursor{}
	return nil
}

// Home returns the cursor to the top left and undoes any display shift.
func (d *Driver) Home() error {
	if err := d.Command(Home()); err != nil {
		return err
	}
	d.cursor = Cursor{}
	return nil
}

// SetDirection selects left to right (forward) or right to left writing.
func (d *Driver) SetDirection(forward bool) error {
	if err := d.Command(EntryMode(forward, false)); err != nil {
		return err
	}
	d.forward = forward
	return nil
}

// Forward reports whether the cursor advances left to right.
func (d *Driver) Forward() bool {
	return d.forward
}

// SetDisplay turns the characters, the underline cursor and the blinking
// block on or off.
func (d *Driver) SetDisplay(display, cursor, blink bool) error {
	return d.Command(DisplayControl(display, cursor, blink))
}

// Shift scrolls the whole display one cell, leaving the logical cursor
// alone.
func (d *Driver) Shift(right bool) error {
	return d.Command(CursorShift(true, right))
}

// PutChar writes one character at the cursor.
func (d *Driver) PutChar(c byte) error {
	_, err := d.Write([]byte{c})
	return err
}

// PutString writes s at the cursor.
func (d *Driver) PutString(s string) error {
	_, err := d.Write([]byte(s))
	return err
}

// Write writes p at the cursor, wrapping as Cursor.Advance does. The
// controller is re-addressed whenever the next cell is not the one its
// address counter moved to on its own.
func (d *Driver) Write(p []byte) (int, error) {
	addr := d.address(d.cursor)
	if err := d.Command(SetDDRAMAddress(addr)); err != nil {
		return 0, err
	}
	for i, c := range p {
		if err := d.WriteData(c); err != nil {
			return i, err
		}
		d.cursor = d.cursor.Advance(d.forward, int(d.width), int(d.height))

		next := d.address(d.cursor)
		counter := addr + 1
		if !d.forward {
			counter = addr - 1
		}
		if next != counter&0x7F {
			if err := d.Command(SetDDRAMAddress(next)); err != nil {
				return i + 1, err
			}
		}
		addr = next
	}
	return len(p), nil
}

// GlyphRows returns the bitmap height for the configured font.
func (d *Driver) GlyphRows() int {
	if d.largeFont {
		return 10
	}
	return 8
}

// StoreGlyph defines custom character slot from rows, one byte per pixel
// row with the five low bits used. The 5x8 font has slots 0-7, the 5x10
// font the even slots 0-6. The display address is restored afterwards.
func (d *Driver) StoreGlyph(slot byte, rows []byte) error {
	if slot >= 8 || (d.largeFont && slot%2 != 0) || len(rows) != d.GlyphRows() {
		return ErrGlyphSlot
	}
	if err := d.Command(SetCGRAMAddress(slot << 3)); err != nil {
		return err
	}
	for _, r := range rows {
		if err := d.WriteData(r); err != nil {
			return err
		}
	}
	return d.Command(SetDDRAMAddress(d.address(d.cursor)))
}
