/*
Copyright 2024 Tim St. Pierre
Command line tool for hd44780 character displays
*/

// lcdctl writes text to an HD44780 character display attached over a
// PCF8574 I2C backpack or directly to GPIO pins.
//
// Usage:
//
//	lcdctl [options] <command> [arguments]
//
// Commands:
//
//	text <message>   Write a message starting at the top left
//	clear            Clear the display
//	backlight on|off Switch the backlight (backpack only)
//	status           Print the busy flag and address counter
package main

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/tstpierre-tc/hd44780"
)

var (
	i2cBus    = flag.String("i2c", "", "I2C bus name, empty for the first one")
	i2cAddr   = flag.Uint("addr", hd44780.DefaultI2CAddr, "Backpack I2C address")
	pins      = flag.String("gpio", "", "Direct GPIO wiring RS,RW,E,D4..D7 (or D0..D7); RW may be '-'")
	width     = flag.Uint("width", 16, "Display columns")
	height    = flag.Uint("height", 2, "Display rows")
	writeOnly = flag.Bool("write-only", false, "Do not read the busy flag")
	largeFont = flag.Bool("large-font", false, "Use the 5x10 font")
	verbose   = flag.Bool("v", false, "Verbose output")

	addressSetup  = flag.Uint("t-setup", uint(hd44780.DefaultTiming.AddressSetup), "Address setup time (us)")
	enableHold    = flag.Uint("t-enable", uint(hd44780.DefaultTiming.EnableHold), "Enable hold time (us)")
	dataHold      = flag.Uint("t-data", uint(hd44780.DefaultTiming.DataHold), "Data hold time (us)")
	busyInterval  = flag.Uint("t-poll", uint(hd44780.DefaultTiming.BusyInterval), "Busy flag poll interval (us)")
	busyHoldShort = flag.Uint("t-short", uint(hd44780.DefaultTiming.BusyHoldShort), "Write only hold (us)")
	busyHoldLong  = flag.Uint("t-long", uint(hd44780.DefaultTiming.BusyHoldLong), "Write only hold after clear/home (us)")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <command> [arguments]\n\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "Commands:")
		fmt.Fprintln(os.Stderr, "  text <message>     Write a message starting at the top left")
		fmt.Fprintln(os.Stderr, "  clear              Clear the display")
		fmt.Fprintln(os.Stderr, "  backlight on|off   Switch the backlight (backpack only)")
		fmt.Fprintln(os.Stderr, "  status             Print the busy flag and address counter")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	if err := run(flag.Arg(0), flag.Args()[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(cmd string, args []string) error {
	if err := checkSize(*width, *height); err != nil {
		return err
	}
	if _, err := host.Init(); err != nil {
		return err
	}
	opts := &hd44780.Opts{
		Width:     uint8(*width),
		Height:    uint8(*height),
		WriteOnly: *writeOnly,
		LargeFont: *largeFont,
		Timing: hd44780.BusTiming{
			AddressSetup:  uint32(*addressSetup),
			EnableHold:    uint32(*enableHold),
			DataHold:      uint32(*dataHold),
			BusyInterval:  uint32(*busyInterval),
			BusyHoldShort: uint32(*busyHoldShort),
			BusyHoldLong:  uint32(*busyHoldLong),
		},
		Logger: log.StandardLogger(),
	}

	var bus hd44780.Bus
	if *pins != "" {
		g, err := gpioBus(*pins)
		if err != nil {
			return err
		}
		opts.EightBit = strings.Count(*pins, ",") == 10
		bus = g
	} else {
		b, err := i2creg.Open(*i2cBus)
		if err != nil {
			return err
		}
		defer b.Close()
		bp, err := hd44780.NewBackpack(b, uint16(*i2cAddr))
		if err != nil {
			return err
		}
		bus = bp
	}

	d, err := hd44780.New(bus, hd44780.Sleep, opts)
	if err != nil {
		return err
	}
	if err := d.Init(); err != nil {
		return err
	}
	if err := d.SetDisplay(true, false, false); err != nil {
		return err
	}
	log.Debugf("opened %s on %s", d, bus)

	switch cmd {
	case "text":
		return d.PutString(strings.Join(args, " "))
	case "clear":
		return d.Clear()
	case "backlight":
		if len(args) != 1 {
			return errors.New("usage: lcdctl backlight on|off")
		}
		return d.SetBacklight(args[0] == "on")
	case "status":
		s, err := d.ReadStatus()
		if err != nil {
			return err
		}
		fmt.Printf("busy=%t address=%#02x\n", s.Busy, s.Address)
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// checkSize rejects sizes that do not fit the driver's uint8 dimensions.
func checkSize(w, h uint) error {
	if w > math.MaxUint8 || h > math.MaxUint8 {
		return fmt.Errorf("display size %dx%d out of range", w, h)
	}
	return nil
}

// gpioBus looks up the pins of a comma separated RS,RW,E,D... list.
func gpioBus(spec string) (*hd44780.GPIOBus, error) {
	names := strings.Split(spec, ",")
	if len(names) != 7 && len(names) != 11 {
		return nil, fmt.Errorf("-gpio needs RS,RW,E and 4 or 8 data pins, got %d names", len(names))
	}
	lookup := func(name string) (gpio.PinIO, error) {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("no gpio pin %q", name)
		}
		return p, nil
	}
	rs, err := lookup(names[0])
	if err != nil {
		return nil, err
	}
	var rw gpio.PinOut
	if names[1] != "-" {
		if rw, err = lookup(names[1]); err != nil {
			return nil, err
		}
	}
	en, err := lookup(names[2])
	if err != nil {
		return nil, err
	}
	var data []gpio.PinIO
	for _, n := range names[3:] {
		p, err := lookup(n)
		if err != nil {
			return nil, err
		}
		data = append(data, p)
	}
	return hd44780.NewGPIOBus(rs, rw, en, data...)
}
