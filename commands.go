/*
Copyright 2024 Tim St. Pierre
HD44780 instruction set encoding
*/
package hd44780

const (
	// Commands
	CMD_Clear_Display        = 0x01
	CMD_Return_Home          = 0x02
	CMD_Entry_Mode           = 0x04
	CMD_Display_Control      = 0x08
	CMD_Cursor_Display_Shift = 0x10
	CMD_Function_Set         = 0x20
	CMD_CGRAM_Set            = 0x40
	CMD_DDRAM_Set            = 0x80

	// Options
	OPT_Increment      = 0x02 // CMD_Entry_Mode
	OPT_Entry_Shift    = 0x01 // CMD_Entry_Mode
	OPT_Enable_Display = 0x04 // CMD_Display_Control
	OPT_Enable_Cursor  = 0x02 // CMD_Display_Control
	OPT_Enable_Blink   = 0x01 // CMD_Display_Control
	OPT_Display_Shift  = 0x08 // CMD_Cursor_Display_Shift
	OPT_Shift_Right    = 0x04 // CMD_Cursor_Display_Shift 0 = Left
	OPT_8_Bit          = 0x10 // CMD_Function_Set 0 = 4 bit
	OPT_2_Lines        = 0x08 // CMD_Function_Set 0 = 1 line
	OPT_5x10_Dots      = 0x04 // CMD_Function_Set 0 = 5x8 dots

	// Status
	busyFlag = 0x80
)

// Clear returns the clear display instruction.
func Clear() byte {
	return CMD_Clear_Display
}

// Home returns the return home instruction.
func Home() byte {
	return CMD_Return_Home
}

// EntryMode returns the entry mode set instruction. forward selects address
// increment, shift makes the display follow the cursor.
func EntryMode(forward, shift bool) byte {
	return CMD_Entry_Mode | flag(forward, OPT_Increment) | flag(shift, OPT_Entry_Shift)
}

// DisplayControl returns the display on/off control instruction.
func DisplayControl(display, cursor, blink bool) byte {
	return CMD_Display_Control |
		flag(display, OPT_Enable_Display) |
		flag(cursor, OPT_Enable_Cursor) |
		flag(blink, OPT_Enable_Blink)
}

// CursorShift moves the cursor, or the whole display when display is true.
func CursorShift(display, right bool) byte {
	return CMD_Cursor_Display_Shift | flag(display, OPT_Display_Shift) | flag(right, OPT_Shift_Right)
}

// FunctionSet returns the function set instruction for the given bus
// width, line count and font.
func FunctionSet(eightBit, twoLines, largeFont bool) byte {
	return CMD_Function_Set |
		flag(eightBit, OPT_8_Bit) |
		flag(twoLines, OPT_2_Lines) |
		flag(largeFont, OPT_5x10_Dots)
}

// SetCGRAMAddress points the address counter into character generator RAM.
func SetCGRAMAddress(addr byte) byte {
	return CMD_CGRAM_Set | addr&0x3F
}

// SetDDRAMAddress points the address counter into display data RAM.
func SetDDRAMAddress(addr byte) byte {
	return CMD_DDRAM_Set | addr&0x7F
}

// isLongCommand reports whether cmd is one of the slow instructions (clear
// and home, including the don't-care low bit of home).
func isLongCommand(cmd byte) bool {
	return cmd == CMD_Clear_Display || cmd&^0x01 == CMD_Return_Home
}

func flag(v bool, mask byte) byte {
	if v {
		return mask
	}
	return 0
}
