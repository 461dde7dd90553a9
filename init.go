/*
Copyright 2024 Tim St. Pierre
Power on initialization by instruction
*/
package hd44780

const (
	// Settle times after the reset pulses, from the HD44780 datasheet.
	resetSettleFirst  = 5000
	resetSettleSecond = 100
	// Extra settle after the 4-bit request.
	busWidthSettle = 100
)

// Init resets the controller from any state into the configured bus width,
// line count and font, then clears the display. The controller is left in
// its default entry mode and the cursor at (0,0).
func (d *Driver) Init() error {
	d.log.Infof("initializing %s", d)

	var err error
	if d.fourBit {
		err = d.init4Bit()
	} else {
		err = d.init8Bit()
	}
	if err != nil {
		return err
	}
	if err := d.Clear(); err != nil {
		return err
	}
	d.forward = true
	d.log.Info("display ready")
	return nil
}

// reset sends function set (8-bit) three times. Whatever the controller
// was doing, and whatever its bus width, it ends up in 8-bit mode.
func (d *Driver) reset() error {
	cmd := FunctionSet(true, false, false)
	if err := d.pulse(cmd, resetSettleFirst); err != nil {
		return err
	}
	if err := d.pulse(cmd, resetSettleSecond); err != nil {
		return err
	}
	return d.pulse(cmd, d.timing.EnableHold)
}

func (d *Driver) init4Bit() error {
	if err := d.reset(); err != nil {
		return err
	}
	// Still in 8-bit mode, only the high nibble is latched.
	if err := d.pulse(FunctionSet(false, false, false), d.timing.DataHold+busWidthSettle); err != nil {
		return err
	}
	return d.Command(FunctionSet(false, d.height > 1, d.largeFont))
}

func (d *Driver) init8Bit() error {
	if err := d.reset(); err != nil {
		return err
	}
	return d.Command(FunctionSet(true, d.height > 1, d.largeFont))
}
