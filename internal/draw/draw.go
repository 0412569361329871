// Package draw renders to ANSI terminals using a half-block pixel canvas.
package draw

import "strconv"

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ANSI text attributes used by overlays.
const (
	ColorReset      = "\033[0m"
	ColorBold       = "\033[1m"
	ColorBrightCyan = "\033[96m"
	ColorReverse    = "\033[7m"
)

// Ink is the colour of a canvas pixel. InkNone is an unset pixel.
type Ink uint8

const (
	InkNone Ink = iota
	InkWhite
	InkGray
	InkCyan
	InkRed
	InkOrange
	InkYellow
	InkBrown
	InkDark
)

// xterm-256 palette index per ink.
var inkPalette = [...]int{
	InkNone:   0,
	InkWhite:  15,
	InkGray:   245,
	InkCyan:   51,
	InkRed:    196,
	InkOrange: 208,
	InkYellow: 226,
	InkBrown:  130,
	InkDark:   238,
}

// Palette256 returns the xterm-256 colour index for the ink.
func (i Ink) Palette256() int {
	if int(i) >= len(inkPalette) {
		return inkPalette[InkWhite]
	}
	return inkPalette[i]
}

// appendFG appends the SGR sequence selecting ink as foreground.
func appendFG(buf []byte, i Ink) []byte {
	buf = append(buf, "\033[38;5;"...)
	buf = strconv.AppendInt(buf, int64(i.Palette256()), 10)
	return append(buf, 'm')
}

// appendBG appends the SGR sequence selecting ink as background.
func appendBG(buf []byte, i Ink) []byte {
	buf = append(buf, "\033[48;5;"...)
	buf = strconv.AppendInt(buf, int64(i.Palette256()), 10)
	return append(buf, 'm')
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
