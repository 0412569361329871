package input

import (
	"io"
	"strconv"
)

// Terminal mouse reporting: button press/release (1000) in SGR encoding (1006).
const (
	mouseOn  = "\x1b[?1000h\x1b[?1006h"
	mouseOff = "\x1b[?1006l\x1b[?1000l"
)

// maxEscapeLen bounds how long an unterminated sequence may grow before it is dropped.
const maxEscapeLen = 32

// Mouse is the last mouse report seen on the stream.
type Mouse struct {
	Col, Row int  // 1-based terminal cell
	Down     bool // Primary button held
	Valid    bool // At least one report has arrived
}

// EnableMouse asks the terminal to report mouse buttons.
func EnableMouse(w io.Writer) error {
	_, err := io.WriteString(w, mouseOn)
	return err
}

// DisableMouse turns mouse reporting back off.
func DisableMouse(w io.Writer) error {
	_, err := io.WriteString(w, mouseOff)
	return err
}

type escKind int

const (
	escKey escKind = iota // Bare Escape key
	escArrowUp
	escArrowDown
	escArrowRight
	escArrowLeft
	escMouse
	escUnknown
)

type escEvent struct {
	kind  escKind
	mouse Mouse
}

// parseEscape decodes the escape sequence at the start of buf (buf[0] == ESC).
// It returns how many bytes the sequence spans and whether it was complete.
// Incomplete sequences report the whole buffer as escUnknown.
func parseEscape(buf []byte) (int, escEvent, bool) {
	if len(buf) == 1 {
		return 1, escEvent{kind: escKey}, true
	}
	if buf[1] != '[' && buf[1] != 'O' {
		return 1, escEvent{kind: escKey}, true
	}
	if len(buf) == 2 {
		return len(buf), escEvent{kind: escUnknown}, false
	}

	switch buf[2] {
	case 'A':
		return 3, escEvent{kind: escArrowUp}, true
	case 'B':
		return 3, escEvent{kind: escArrowDown}, true
	case 'C':
		return 3, escEvent{kind: escArrowRight}, true
	case 'D':
		return 3, escEvent{kind: escArrowLeft}, true
	}

	if buf[1] == '[' && buf[2] == '<' {
		return parseSGRMouse(buf)
	}

	// Any other CSI: skip to its final byte.
	for j := 2; j < len(buf) && j < maxEscapeLen; j++ {
		if buf[j] >= 0x40 && buf[j] <= 0x7e {
			return j + 1, escEvent{kind: escUnknown}, true
		}
	}
	return incomplete(buf)
}

// parseSGRMouse decodes ESC [ < b ; x ; y (M|m).
func parseSGRMouse(buf []byte) (int, escEvent, bool) {
	var fields [3]int
	field := 0
	start := 3
	for j := 3; j < len(buf) && j < maxEscapeLen; j++ {
		c := buf[j]
		switch {
		case c >= '0' && c <= '9':
			continue
		case c == ';' || c == 'M' || c == 'm':
			if field > 2 {
				return j + 1, escEvent{kind: escUnknown}, true
			}
			v, err := strconv.Atoi(string(buf[start:j]))
			if err != nil {
				return j + 1, escEvent{kind: escUnknown}, true
			}
			fields[field] = v
			field++
			start = j + 1
			if c == ';' {
				continue
			}
			if field != 3 {
				return j + 1, escEvent{kind: escUnknown}, true
			}
			code := fields[0]
			down := c == 'M' && code&0x03 == 0 && code&0x40 == 0
			return j + 1, escEvent{
				kind: escMouse,
				mouse: Mouse{
					Col:   fields[1],
					Row:   fields[2],
					Down:  down,
					Valid: true,
				},
			}, true
		default:
			return j + 1, escEvent{kind: escUnknown}, true
		}
	}
	return incomplete(buf)
}

func incomplete(buf []byte) (int, escEvent, bool) {
	if len(buf) >= maxEscapeLen {
		// Garbage; drop it rather than wait forever.
		return len(buf), escEvent{kind: escUnknown}, true
	}
	return len(buf), escEvent{kind: escUnknown}, false
}
