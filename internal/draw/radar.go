package draw

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/asteroid-waves/internal/physics"
)

// Mark is what a radar cell shows. Higher marks win a shared cell.
type Mark byte

const (
	MarkNone Mark = iota
	MarkAsteroid
	MarkEnemy
	MarkPowerUp
	MarkSelf
)

var markColors = [...]string{
	MarkAsteroid: ColorDim,
	MarkEnemy:    ColorRed,
	MarkPowerUp:  ColorYellow,
	MarkSelf:     ColorBrightCyan,
}

// Radar is a whole-world overview drawn with half-block characters, so every
// terminal row holds two sub-rows.
type Radar struct {
	cols, subRows int
	grid          []Mark
	bounds        physics.Bounds
}

// NewRadar creates a radar of cols x rows terminal cells covering bounds.
func NewRadar(cols, rows int, bounds physics.Bounds) *Radar {
	return &Radar{
		cols:    cols,
		subRows: rows * 2,
		grid:    make([]Mark, cols*rows*2),
		bounds:  bounds,
	}
}

// Clear empties the grid.
func (r *Radar) Clear() {
	clear(r.grid)
}

// Plot marks the cell containing world position p.
func (r *Radar) Plot(p mgl64.Vec2, m Mark) {
	col, sub, ok := r.cell(p)
	if !ok {
		return
	}
	if i := sub*r.cols + col; m > r.grid[i] {
		r.grid[i] = m
	}
}

// At returns the mark of a cell.
func (r *Radar) At(col, subRow int) Mark {
	return r.grid[subRow*r.cols+col]
}

func (r *Radar) cell(p mgl64.Vec2) (col, sub int, ok bool) {
	size := r.bounds.Size()
	if size[0] <= 0 || size[1] <= 0 || r.cols == 0 || r.subRows == 0 {
		return 0, 0, false
	}
	p = r.bounds.Wrap(p)
	col = int((p[0] - r.bounds.Min[0]) / size[0] * float64(r.cols))
	sub = int((p[1] - r.bounds.Min[1]) / size[1] * float64(r.subRows))
	return min(col, r.cols-1), min(sub, r.subRows-1), true
}

// Size returns the framed radar's width and height in cells.
func (r *Radar) Size() (int, int) {
	return r.cols + 2, r.subRows/2 + 2
}

// Render writes the framed radar with its top-left corner at (col, row).
func (r *Radar) Render(cw *ChunkWriter, col, row int) {
	cw.WriteAt(col, row, "┌"+strings.Repeat("─", r.cols)+"┐")

	for termRow := 0; termRow < r.subRows/2; termRow++ {
		cw.WriteAt(col, row+1+termRow, "│")
		curColor := ""
		for x := 0; x < r.cols; x++ {
			top := r.At(x, termRow*2)
			bot := r.At(x, termRow*2+1)
			ch := cellRune(top != MarkNone, bot != MarkNone)
			if ch == ' ' {
				if curColor != "" {
					cw.WriteString(ColorReset)
					curColor = ""
				}
				cw.WriteRune(ch)
				continue
			}
			if want := markColors[max(top, bot)]; want != curColor {
				cw.WriteString(ColorReset)
				cw.WriteString(want)
				curColor = want
			}
			cw.WriteRune(ch)
		}
		if curColor != "" {
			cw.WriteString(ColorReset)
		}
		cw.WriteString("│")
	}

	cw.WriteAt(col, row+1+r.subRows/2, "└"+strings.Repeat("─", r.cols)+"┘")
}
