/*
Copyright 2024 Tim St. Pierre
Command and data dispatch with busy flag handshake
*/
package hd44780

// Command sends an instruction byte and waits for the controller to
// finish it.
func (d *Driver) Command(cmd byte) error {
	d.log.Debugf("command %#08b", cmd)
	return d.send(false, cmd)
}

// WriteData writes a byte to display or character generator RAM, whichever
// the address counter currently points into.
func (d *Driver) WriteData(b byte) error {
	return d.send(true, b)
}

func (d *Driver) send(rs bool, b byte) error {
	if err := d.transaction(rs, b); err != nil {
		return err
	}
	if d.writeOnly {
		hold := d.timing.BusyHoldShort
		if !rs && isLongCommand(b) {
			hold = d.timing.BusyHoldLong
		}
		return d.delay(hold)
	}
	return d.waitReady()
}

// waitReady polls the busy flag until it clears, then drops the bus back
// to write mode. It blocks for as long as the controller reports busy.
func (d *Driver) waitReady() error {
	if _, err := d.io(busRead, false, false, 0); err != nil {
		return err
	}
	if err := d.delay(d.timing.AddressSetup); err != nil {
		return err
	}
	for {
		if err := d.delay(d.timing.BusyInterval); err != nil {
			return err
		}
		status, err := d.readStatus()
		if err != nil {
			return err
		}
		if status&busyFlag == 0 {
			break
		}
	}
	_, err := d.io(busWrite, false, false, 0)
	return err
}

// Status is the controller status register.
type Status struct {
	Busy    bool
	Address byte
}

// ReadStatus reads the busy flag and the address counter once.
func (d *Driver) ReadStatus() (Status, error) {
	if d.writeOnly {
		return Status{}, ErrWriteOnly
	}
	if _, err := d.io(busRead, false, false, 0); err != nil {
		return Status{}, err
	}
	if err := d.delay(d.timing.AddressSetup); err != nil {
		return Status{}, err
	}
	v, err := d.readStatus()
	if err != nil {
		return Status{}, err
	}
	if _, err := d.io(busWrite, false, false, 0); err != nil {
		return Status{}, err
	}
	return Status{Busy: v&busyFlag != 0, Address: v &^ busyFlag}, nil
}
