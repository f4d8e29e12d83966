package draw

import (
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/asteroid-waves/internal/physics"
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical coordinates to actual terminal pixels.
type Canvas struct {
	termWidth      int    // Actual terminal columns
	termHeight     int    // Actual terminal rows
	subPixelHeight int    // termHeight * 2
	pixels         []bool // Flat slice: [y * termWidth + x] - true if pixel is set
	last           []rune // Cell written by the previous Render; 0 forces a write

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// 0-based terminal offset of the canvas' top-left cell.
	offsetCol int
	offsetRow int

	// Reusable buffers to reduce allocations
	renderBuf       strings.Builder
	numBuf          [20]byte
	scaledBuf       []mgl64.Vec2
	intersectionBuf []float64
	circleBuf       []mgl64.Vec2
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space drawn into.
// termWidth/Height are the terminal cells the canvas covers.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{logicalWidth: logicalWidth, logicalHeight: logicalHeight}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth, termHeight = max(termWidth, 0), max(termHeight, 0)
	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]bool, c.subPixelHeight*termWidth)
		c.last = make([]rune, termHeight*termWidth)
	}
	if c.logicalWidth > 0 {
		c.scaleX = float64(termWidth) / c.logicalWidth
	}
	if c.logicalHeight > 0 {
		c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
	}
}

// SetOffset places the canvas: its first cell is drawn at (col+1, row+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.ForceRedraw()
	}
	c.offsetCol = col
	c.offsetRow = row
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render write every cell, blank or not.
func (c *Canvas) ForceRedraw() {
	clear(c.last)
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = true
	}
}

// toPixel scales a logical point.
func (c *Canvas) toPixel(p mgl64.Vec2) (int, int) {
	return int(math.Round(p[0] * c.scaleX)), int(math.Round(p[1] * c.scaleY))
}

// Set sets the pixel under a logical point.
func (c *Canvas) Set(p mgl64.Vec2) {
	c.setPixel(c.toPixel(p))
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 mgl64.Vec2) {
	x1, y1 := c.toPixel(p1)
	x2, y2 := c.toPixel(p2)

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

// DrawPolygon draws a closed polygon.
// If filled is true, the interior is filled using scanline algorithm.
func (c *Canvas) DrawPolygon(points []mgl64.Vec2, filled bool) {
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

// DrawCircle approximates a circle with a regular polygon of the given side count.
func (c *Canvas) DrawCircle(center mgl64.Vec2, radius float64, sides int, filled bool) {
	if sides < 3 {
		sides = 3
	}
	if cap(c.circleBuf) < sides {
		c.circleBuf = make([]mgl64.Vec2, sides)
	}
	pts := c.circleBuf[:sides]
	for i := range pts {
		pts[i] = center.Add(physics.Heading(2 * math.Pi * float64(i) / float64(sides)).Mul(radius))
	}
	c.DrawPolygon(pts, filled)
}

// fillPolygon fills a polygon using scanline algorithm.
// Works in pixel space for proper scaling.
func (c *Canvas) fillPolygon(points []mgl64.Vec2) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]mgl64.Vec2, len(points))
	}
	scaled := c.scaledBuf[:len(points)]
	for i, p := range points {
		scaled[i] = mgl64.Vec2{p[0] * c.scaleX, p[1] * c.scaleY}
	}

	minY, maxY := scaled[0][1], scaled[0][1]
	for _, p := range scaled {
		minY = min(minY, p[1])
		maxY = max(maxY, p[1])
	}

	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]
		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]
			if (p1[1] <= scanY && p2[1] > scanY) || (p2[1] <= scanY && p1[1] > scanY) {
				t := (scanY - p1[1]) / (p2[1] - p1[1])
				intersections = append(intersections, p1[0]+t*(p2[0]-p1[0]))
			}
		}
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			for x := int(math.Ceil(intersections[i])); x <= int(math.Floor(intersections[i+1])); x++ {
				c.setPixel(x, y)
			}
		}
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// Stays under a typical 1500-byte MTU for smooth SSH/network transmission.
const maxChunkSize = 1400

// cellRune maps the two sub-pixels of a cell to a half-block character.
func cellRune(top, bottom bool) rune {
	switch {
	case top && bottom:
		return BlockFull
	case top:
		return BlockUpperHalf
	case bottom:
		return BlockLowerHalf
	default:
		return ' '
	}
}

// Render writes every cell that changed since the previous Render.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			ch := cellRune(c.pixels[topOffset+col], c.pixels[bottomOffset+col])
			cell := row*c.termWidth + col
			if c.last[cell] == ch {
				continue
			}
			c.last[cell] = ch

			c.renderBuf.WriteString("\033[")
			c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row+1+c.offsetRow), 10))
			c.renderBuf.WriteByte(';')
			c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col+1+c.offsetCol), 10))
			c.renderBuf.WriteByte('H')
			c.renderBuf.WriteRune(ch)
		}
	}

	// Write output in chunks for optimal network flow
	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

// TerminalWidth returns the canvas' column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the canvas' row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalSize returns the logical coordinate space.
func (c *Canvas) LogicalSize() mgl64.Vec2 {
	return mgl64.Vec2{c.logicalWidth, c.logicalHeight}
}

// LogicalToTerminal converts logical coordinates to a 1-based terminal position (col, row).
// This is useful for placing text overlays at positions matching canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(p mgl64.Vec2) (col, row int) {
	px, py := c.toPixel(p)
	return px + 1 + c.offsetCol, py/2 + 1 + c.offsetRow
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// MarkTextDirty forces the cells under a text overlay to be rewritten by the
// next Render. col and row are 1-based terminal positions.
func (c *Canvas) MarkTextDirty(col, row, width int) {
	r := row - 1 - c.offsetRow
	if r < 0 || r >= c.termHeight {
		return
	}
	start := max(col-1-c.offsetCol, 0)
	end := min(col-1-c.offsetCol+width, c.termWidth)
	for x := start; x < end; x++ {
		c.last[r*c.termWidth+x] = 0
	}
}
