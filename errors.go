/*
Copyright 2024 Tim St. Pierre
Errors reported by the hd44780 driver
*/
package hd44780

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

var (
	// ErrCursorRange is returned when a cursor position lies outside the display.
	ErrCursorRange = errors.New("hd44780: cursor position out of range")
	// ErrGlyphSlot is returned for a glyph slot or bitmap the active font cannot hold.
	ErrGlyphSlot = errors.New("hd44780: invalid glyph slot for font")
	// ErrWriteOnly is returned by operations that need to read the bus.
	ErrWriteOnly = errors.New("hd44780: bus is write only")
)

// IOError is a failure reported by the bus or delay collaborator.
//
// It matches unix.EIO with errors.Is, as well as the collaborator's error.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("hd44780: %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() []error {
	return []error{unix.EIO, e.Err}
}

// fail latches err on the driver and returns it.
func (d *Driver) fail(op string, err error) error {
	ioErr := &IOError{Op: op, Err: err}
	d.err = ioErr
	d.log.WithError(err).Debugf("%s failed", op)
	return ioErr
}

// Err returns the last I/O failure, or nil if there has been none.
func (d *Driver) Err() error {
	if d.err == nil {
		return nil
	}
	return d.err
}

// Errno returns the POSIX code of the last I/O failure, zero if none.
func (d *Driver) Errno() unix.Errno {
	if d.err == nil {
		return 0
	}
	return unix.EIO
}
