/*
Copyright 2024 Tim St. Pierre
Direct GPIO bus for hd44780 displays
*/
package hd44780

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// GPIOBus is a Bus over host GPIO pins.
type GPIOBus struct {
	rs, rw, en gpio.PinOut
	data       []gpio.PinIO
	shift      int
	reading    bool
}

// NewGPIOBus wires the display to the given pins. data holds D4-D7 for a
// 4-bit bus or D0-D7 for an 8-bit bus, lowest line first. rw may be nil
// when R/W is tied to ground, in which case the driver must be write only.
func NewGPIOBus(rs, rw, en gpio.PinOut, data ...gpio.PinIO) (*GPIOBus, error) {
	if rs == nil || en == nil {
		return nil, errors.New("hd44780: rs and en pins are required")
	}
	if len(data) != 4 && len(data) != 8 {
		return nil, fmt.Errorf("hd44780: need 4 or 8 data pins, got %d", len(data))
	}
	for i, p := range data {
		if p == nil {
			return nil, fmt.Errorf("hd44780: data pin %d is nil", i)
		}
	}
	return &GPIOBus{
		rs:    rs,
		rw:    rw,
		en:    en,
		data:  data,
		shift: 8 - len(data),
	}, nil
}

func (g *GPIOBus) String() string {
	return fmt.Sprintf("gpio{rs=%s en=%s, %d data}", g.rs, g.en, len(g.data))
}

// IO implements Bus.
func (g *GPIOBus) IO(rw, rs, en bool, data byte) (byte, error) {
	if rw && g.rw == nil {
		return 0, errors.New("no r/w pin")
	}
	if err := g.rs.Out(gpio.Level(rs)); err != nil {
		return 0, err
	}
	if g.rw != nil {
		if err := g.rw.Out(gpio.Level(rw)); err != nil {
			return 0, err
		}
	}
	if rw {
		if err := g.release(); err != nil {
			return 0, err
		}
	} else if err := g.drive(data); err != nil {
		return 0, err
	}
	if err := g.en.Out(gpio.Level(en)); err != nil {
		return 0, err
	}
	if !rw || !en {
		return 0, nil
	}
	return g.sample(), nil
}

func (g *GPIOBus) drive(data byte) error {
	g.reading = false
	for i, p := range g.data {
		if err := p.Out(gpio.Level(data>>(g.shift+i)&1 == 1)); err != nil {
			return err
		}
	}
	return nil
}

// release turns the data pins into inputs. The weak pull-down makes a
// missing display read as idle instead of busy.
func (g *GPIOBus) release() error {
	if g.reading {
		return nil
	}
	for _, p := range g.data {
		if err := p.In(gpio.PullDown, gpio.NoEdge); err != nil {
			return err
		}
	}
	g.reading = true
	return nil
}

func (g *GPIOBus) sample() byte {
	var v byte
	for i, p := range g.data {
		if p.Read() == gpio.High {
			v |= 1 << (g.shift + i)
		}
	}
	return v
}
