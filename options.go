/*
Copyright 2024 Tim St. Pierre
Options for hd44780 character displays
*/
package hd44780

import (
	"errors"

	log "github.com/sirupsen/logrus"
)

// BusTiming holds the bus delays, in microseconds.
type BusTiming struct {
	// Time to wait after setting up the address lines.
	AddressSetup uint32
	// Time to wait after raising enable.
	EnableHold uint32
	// Time to wait after lowering enable.
	DataHold uint32
	// Busy flag poll interval on a read capable bus.
	BusyInterval uint32
	// Hold after a write on a write only bus.
	BusyHoldShort uint32
	// Hold after clear or home on a write only bus.
	BusyHoldLong uint32
}

var DefaultTiming = BusTiming{
	AddressSetup:  10,
	EnableHold:    10,
	DataHold:      10,
	BusyInterval:  50,
	BusyHoldShort: 500,
	BusyHoldLong:  50000,
}

type Opts struct {
	// Display size in characters
	Width  uint8
	Height uint8
	// Use all eight data lines, the default is 4-bit mode
	EightBit bool
	// R/W is tied low, the busy flag cannot be read
	WriteOnly bool
	// Use the 5x10 dots font
	LargeFont bool
	// Zero fields take the value from DefaultTiming
	Timing BusTiming
	// Defaults to the logrus standard logger
	Logger log.FieldLogger
}

var DefaultOpts = Opts{
	Width:  16,
	Height: 2,
	Timing: DefaultTiming,
}

// maxCells is the size of display data RAM.
const maxCells = 80

func (o *Opts) dimensions() (uint8, uint8, error) {
	switch {
	case o.Width == 0:
		return 0, 0, errors.New("width must be at least 1")
	case o.Height == 0:
		return 0, 0, errors.New("height must be at least 1")
	case o.Height > 4:
		return 0, 0, errors.New("height must be at most 4")
	case int(o.Width)*int(o.Height) > maxCells:
		return 0, 0, errors.New("display larger than 80 characters")
	}
	return o.Width, o.Height, nil
}

// timing fills zero fields with the defaults.
func (o *Opts) timing() BusTiming {
	t := o.Timing
	def := func(v *uint32, d uint32) {
		if *v == 0 {
			*v = d
		}
	}
	def(&t.AddressSetup, DefaultTiming.AddressSetup)
	def(&t.EnableHold, DefaultTiming.EnableHold)
	def(&t.DataHold, DefaultTiming.DataHold)
	def(&t.BusyInterval, DefaultTiming.BusyInterval)
	def(&t.BusyHoldShort, DefaultTiming.BusyHoldShort)
	def(&t.BusyHoldLong, DefaultTiming.BusyHoldLong)
	return t
}

func (o *Opts) logger() log.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.StandardLogger()
}
