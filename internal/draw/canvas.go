package draw

import (
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// cell is one rendered terminal character.
type cell struct {
	r      rune
	fg, bg Ink
}

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical coordinates to actual terminal pixels and only
// re-emits the cells that changed since the previous Render.
type Canvas struct {
	termWidth      int   // Actual terminal columns
	termHeight     int   // Actual terminal rows
	subPixelHeight int   // termHeight * 2
	pixels         []Ink // Flat slice: [y * termWidth + x]
	ink            Ink   // Pen used by drawing calls

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	// Diff state: what the terminal currently shows.
	prev      []cell
	textDirty []bool // Cells overwritten by text overlays since the last Render
	redraw    bool

	// Reusable buffers to reduce allocations
	renderBuf       []byte
	scaledBuf       []Point
	intersectionBuf []float64
	polygonBuf      []Point
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by the game.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
		ink:           InkWhite,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]Ink, c.subPixelHeight*termWidth)
		c.prev = make([]cell, termWidth*termHeight)
		c.textDirty = make([]bool, termWidth*termHeight)
		c.redraw = true
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.redraw = true
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// ForceRedraw makes the next Render emit every cell, e.g. after the screen was cleared.
func (c *Canvas) ForceRedraw() {
	c.redraw = true
}

// MarkTextDirty records that a text overlay covered n cells starting at the
// 1-based canvas position (col, row), so the next Render repaints them.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	row--
	if row < 0 || row >= c.termHeight {
		return
	}
	for x := col - 1; x < col-1+n; x++ {
		if x >= 0 && x < c.termWidth {
			c.textDirty[row*c.termWidth+x] = true
		}
	}
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// SetInk selects the colour used by subsequent drawing calls.
func (c *Canvas) SetInk(i Ink) {
	c.ink = i
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = c.ink
	}
}

// SetFloat sets a pixel using float logical coordinates (applies scaling).
func (c *Canvas) SetFloat(x, y float64) {
	c.setPixel(int(math.Floor(x*c.scaleX)), int(math.Floor(y*c.scaleY)))
}

// Pixel reports the ink at pixel (x, y), InkNone outside the canvas.
func (c *Canvas) Pixel(x, y int) Ink {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return InkNone
	}
	return c.pixels[y*c.termWidth+x]
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point) {
	x1 := int(math.Floor(p1.X * c.scaleX))
	y1 := int(math.Floor(p1.Y * c.scaleY))
	x2 := int(math.Floor(p2.X * c.scaleX))
	y2 := int(math.Floor(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws a polygon on the canvas.
// If filled is true, the interior is filled using scanline algorithm.
func (c *Canvas) DrawPolygon(points []Point, filled bool) {
	if len(points) < 3 {
		return
	}

	if filled {
		c.fillPolygon(points)
	}

	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n])
	}
}

// fillPolygon fills a polygon using scanline algorithm in pixel space.
func (c *Canvas) fillPolygon(points []Point) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]

	for i, p := range points {
		scaled[i] = Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	yStart := max(int(math.Floor(minY)), 0)
	yEnd := min(int(math.Ceil(maxY)), c.subPixelHeight-1)

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]
		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Floor(intersections[i]))
			xEnd := int(math.Floor(intersections[i+1]))
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y)
			}
		}
	}
}

// DrawCircle draws a circle of logical radius r around (cx, cy). Non-uniform
// scaling turns it into an ellipse in pixel space. A circle smaller than a
// pixel still marks its centre.
func (c *Canvas) DrawCircle(cx, cy, r float64, filled bool) {
	px, py := cx*c.scaleX, cy*c.scaleY
	rx, ry := r*c.scaleX, r*c.scaleY

	c.setPixel(int(math.Floor(px)), int(math.Floor(py)))
	if rx <= 0 || ry <= 0 {
		return
	}

	if filled {
		yStart := max(int(math.Floor(py-ry)), 0)
		yEnd := min(int(math.Ceil(py+ry)), c.subPixelHeight-1)
		for y := yStart; y <= yEnd; y++ {
			dy := (float64(y) + 0.5 - py) / ry
			if dy*dy > 1 {
				continue
			}
			half := rx * math.Sqrt(1-dy*dy)
			for x := int(math.Floor(px - half)); x <= int(math.Floor(px+half)); x++ {
				c.setPixel(x, y)
			}
		}
		return
	}

	// Enough steps to leave no gaps along the longer axis.
	steps := max(int(2*math.Pi*max(rx, ry))*2, 8)
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		c.setPixel(int(math.Floor(px+rx*math.Cos(a))), int(math.Floor(py+ry*math.Sin(a))))
	}
}

// cellAt composes the character shown for terminal cell (col, row), 0-based.
func (c *Canvas) cellAt(col, row int) cell {
	top := c.pixels[row*2*c.termWidth+col]
	bottom := c.pixels[(row*2+1)*c.termWidth+col]

	switch {
	case top == InkNone && bottom == InkNone:
		return cell{r: BlockEmpty}
	case top == bottom:
		return cell{r: BlockFull, fg: top}
	case bottom == InkNone:
		return cell{r: BlockUpperHalf, fg: top}
	case top == InkNone:
		return cell{r: BlockLowerHalf, fg: bottom}
	default:
		return cell{r: BlockUpperHalf, fg: top, bg: bottom}
	}
}

// EachCell calls fn for every non-empty cell with its 0-based canvas position.
func (c *Canvas) EachCell(fn func(col, row int, r rune, fg, bg Ink)) {
	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			cl := c.cellAt(col, row)
			if cl.r == BlockEmpty {
				continue
			}
			fn(col, row, cl.r, cl.fg, cl.bg)
		}
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render writes the cells that changed since the previous Render.
func (c *Canvas) Render(w io.Writer) error {
	buf := c.renderBuf[:0]
	var curFG, curBG Ink
	colored := false

	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			idx := row*c.termWidth + col
			cl := c.cellAt(col, row)
			if !c.redraw && !c.textDirty[idx] && c.prev[idx] == cl {
				continue
			}
			c.prev[idx] = cl
			c.textDirty[idx] = false

			buf = append(buf, "\033["...)
			buf = strconv.AppendInt(buf, int64(row+1+c.offsetRow), 10)
			buf = append(buf, ';')
			buf = strconv.AppendInt(buf, int64(col+1+c.offsetCol), 10)
			buf = append(buf, 'H')

			if cl.fg != curFG || cl.bg != curBG || !colored {
				buf = append(buf, ColorReset...)
				if cl.fg != InkNone {
					buf = appendFG(buf, cl.fg)
				}
				if cl.bg != InkNone {
					buf = appendBG(buf, cl.bg)
				}
				curFG, curBG, colored = cl.fg, cl.bg, true
			}
			buf = utf8.AppendRune(buf, cl.r)
		}
	}
	if colored {
		buf = append(buf, ColorReset...)
	}
	c.redraw = false
	c.renderBuf = buf

	return writeChunked(w, buf)
}

// writeChunked writes data in maxChunkSize pieces.
func writeChunked(w io.Writer, data []byte) error {
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := w.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// RenderBorder draws a frame around the canvas area when the terminal
// exceeds the max render resolution on either axis.
func (c *Canvas) RenderBorder(w io.Writer) error {
	hasH := c.offsetCol >= 1 // Room for left/right bars
	hasV := c.offsetRow >= 1 // Room for top/bottom bars
	if !hasH && !hasV {
		return nil
	}

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1
	line := strings.Repeat("─", c.termWidth)

	var b strings.Builder
	moveTo := func(col, row int) {
		b.WriteString("\033[")
		b.WriteString(strconv.Itoa(row))
		b.WriteByte(';')
		b.WriteString(strconv.Itoa(col))
		b.WriteByte('H')
	}

	if hasV {
		for _, edge := range []struct {
			row         int
			first, last string
		}{{top, "┌", "┐"}, {bottom, "└", "┘"}} {
			if hasH {
				moveTo(left, edge.row)
				b.WriteString(edge.first + line + edge.last)
			} else {
				moveTo(c.offsetCol+1, edge.row)
				b.WriteString(line)
			}
		}
	}

	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			moveTo(left, row)
			b.WriteString("│")
			moveTo(right, row)
			b.WriteString("│")
		}
	}

	return writeChunked(w, []byte(b.String()))
}

// LogicalWidth returns the logical width (target resolution).
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height.
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the canvas width in terminal columns.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the canvas height in terminal rows.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to a 1-based canvas position (col, row).
// Used for placing text overlays next to canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	return px + 1, py/2 + 1
}

// ScreenToLogical converts a 1-based absolute terminal position (as reported
// by mouse events) to the logical coordinates at the centre of that cell.
// ok is false when the position lies outside the canvas.
func (c *Canvas) ScreenToLogical(col, row int) (x, y float64, ok bool) {
	cx := col - 1 - c.offsetCol
	cy := row - 1 - c.offsetRow
	if cx < 0 || cx >= c.termWidth || cy < 0 || cy >= c.termHeight {
		return 0, 0, false
	}
	x = (float64(cx) + 0.5) / c.scaleX
	y = (float64(cy)*2 + 1) / c.scaleY
	return x, y, true
}

// BorrowPoints returns a reusable slice of Points with the given length.
// The returned slice is only valid until the next call to BorrowPoints.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}
