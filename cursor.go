/*
Copyright 2024 Tim St. Pierre
Cursor model and DDRAM address decoding
*/
package hd44780

// Cursor is a logical character position.
type Cursor struct {
	X, Y int8
}

// Address maps a logical position to its display data RAM address. Even
// and odd rows live in two 64 byte banks, rows past the second continue in
// the same banks one display width further on.
func Address(x, y, width int) byte {
	addr := x + 64*(y%2)
	if y >= 2 {
		addr += width
	}
	return byte(addr)
}

// Advance moves the cursor one cell, wrapping at the end of each row and of
// the display.
func (c Cursor) Advance(forward bool, width, height int) Cursor {
	x, y := int(c.X), int(c.Y)
	if forward {
		x++
		if x >= width {
			x = 0
			y++
			if y >= height {
				y = 0
			}
		}
	} else {
		x--
		if x < 0 {
			x = width - 1
			y--
			if y < 0 {
				y = height - 1
			}
		}
	}
	return Cursor{X: int8(x), Y: int8(y)}
}

func (d *Driver) address(c Cursor) byte {
	return Address(int(c.X), int(c.Y), int(d.width))
}

// Cursor returns the logical cursor position.
func (d *Driver) Cursor() Cursor {
	return d.cursor
}

// SetCursor moves the cursor to column col of row row.
func (d *Driver) SetCursor(col, row uint8) error {
	if col >= d.width || row >= d.height {
		return ErrCursorRange
	}
	c := Cursor{X: int8(col), Y: int8(row)}
	if err := d.Command(SetDDRAMAddress(d.address(c))); err != nil {
		return err
	}
	d.cursor = c
	return nil
}

// Next advances the cursor one cell in the write direction.
func (d *Driver) Next() error {
	c := d.cursor.Advance(d.forward, int(d.width), int(d.height))
	if err := d.Command(SetDDRAMAddress(d.address(c))); err != nil {
		return err
	}
	d.cursor = c
	return nil
}
