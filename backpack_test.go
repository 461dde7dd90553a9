/*
Copyright 2024 Tim St. Pierre
*/
package hd44780

import (
	"errors"
	"testing"

	"golang.org/x/sys/unix"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

func TestI2CAddr(t *testing.T) {
	tests := []struct {
		in      uint16
		want    uint16
		wantErr bool
	}{
		{0, DefaultI2CAddr, false},
		{0x20, 0x20, false},
		{0x27, 0x27, false},
		{0x3F, 0x3F, false},
		{0x28, 0, true},
		{0x50, 0, true},
	}
	for _, tt := range tests {
		got, err := i2cAddr(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("i2cAddr(%#x) error = %v", tt.in, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("i2cAddr(%#x) = %#x, want %#x", tt.in, got, tt.want)
		}
	}
}

func TestPinInterpret(t *testing.T) {
	if got := pinInterpret(EN, 0x00, true); got != 0x04 {
		t.Errorf("set EN = %#02x", got)
	}
	if got := pinInterpret(BACKLIGHT, 0xFF, false); got != 0xF7 {
		t.Errorf("clear BACKLIGHT = %#02x", got)
	}
}

func TestBackpackIO(t *testing.T) {
	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			// Data register, enable high, 0xA5: only the high nibble reaches D4-D7.
			{Addr: 0x27, W: []byte{0xAD}},
			// Read: data lines released, R/W and enable high.
			{Addr: 0x27, W: []byte{0xFE}},
			{Addr: 0x27, R: []byte{0x9F}},
			// Enable low.
			{Addr: 0x27, W: []byte{0xFA}},
			// Backlight off, other pins held.
			{Addr: 0x27, W: []byte{0xF2}},
		},
		DontPanic: true,
	}
	bp, err := NewBackpack(bus, 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := bp.IO(false, true, true, 0xA5); err != nil {
		t.Fatal(err)
	}
	v, err := bp.IO(true, false, true, 0)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0x90 {
		t.Errorf("read = %#02x, want 0x90", v)
	}
	if _, err := bp.IO(true, false, false, 0); err != nil {
		t.Fatal(err)
	}
	if err := bp.SetBacklight(false); err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestBackpackDriver(t *testing.T) {
	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			// Clear, high nibble 0x0 then low nibble 0x1, each as
			// setup / enable / release with the backlight on.
			{Addr: 0x27, W: []byte{0x08}},
			{Addr: 0x27, W: []byte{0x0C}},
			{Addr: 0x27, W: []byte{0x08}},
			{Addr: 0x27, W: []byte{0x18}},
			{Addr: 0x27, W: []byte{0x1C}},
			{Addr: 0x27, W: []byte{0x18}},
		},
		DontPanic: true,
	}
	bp, err := NewBackpack(bus, 0x27)
	if err != nil {
		t.Fatal(err)
	}
	f := &fakeBus{}
	d, err := New(bp, f, &Opts{Width: 16, Height: 2, WriteOnly: true})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Clear(); err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}

	// The playback is exhausted, so the next transfer fails.
	err = d.Clear()
	if !errors.Is(err, unix.EIO) {
		t.Errorf("Clear() on a failing bus = %v, want EIO", err)
	}
	if err := d.SetBacklight(true); !errors.Is(err, unix.EIO) {
		t.Errorf("SetBacklight() on a failing bus = %v, want EIO", err)
	}
}

func TestNewI2CRejects8Bit(t *testing.T) {
	if _, err := NewI2C(&i2ctest.Playback{DontPanic: true}, 0, &Opts{Width: 16, Height: 2, EightBit: true}); err == nil {
		t.Error("NewI2C() accepted an 8-bit display")
	}
}
