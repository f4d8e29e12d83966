package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SpatialGrid is a uniform grid for broad-phase collision detection in a wrapping world.
// Bodies are inserted by position and index, then nearby bodies can be queried
// in O(1) per cell via a 3x3 neighborhood lookup.
//
// Cells are never smaller than the requested cell size, which must be >= the
// maximum interaction distance between any two bodies so that all potential
// contacts are found within the 3x3 neighborhood.
type SpatialGrid struct {
	bounds     Bounds
	invCellW   float64 // 1 / cell width (precomputed to avoid division)
	invCellH   float64
	cols, rows int
	cells      []gridCell
}

// gridCell stores the indices of bodies that fall within a grid cell.
// The slice is reused between steps (reset to [:0]) to avoid allocations.
type gridCell struct {
	items []int
}

// NewSpatialGrid creates a spatial grid covering bounds.
// The world is split into whole cells at least minCellSize wide, so a world
// whose size is not a multiple of minCellSize never gets a narrow last cell.
func NewSpatialGrid(bounds Bounds, minCellSize float64) *SpatialGrid {
	size := bounds.Size()
	cols := max(int(math.Floor(size[0]/minCellSize)), 1)
	rows := max(int(math.Floor(size[1]/minCellSize)), 1)

	return &SpatialGrid{
		bounds:   bounds,
		invCellW: float64(cols) / size[0],
		invCellH: float64(rows) / size[1],
		cols:     cols,
		rows:     rows,
		cells:    make([]gridCell, cols*rows),
	}
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert adds an item (identified by index) at the given world position.
func (g *SpatialGrid) Insert(p mgl64.Vec2, index int) {
	col, row := g.posToCell(p)
	idx := row*g.cols + col
	g.cells[idx].items = append(g.cells[idx].items, index)
}

// QueryAround calls fn for each item index in the 3x3 cell neighborhood
// around the given world position. Handles wrapping at world edges.
// Small grids visit each distinct cell once.
// If fn returns true, iteration stops early (useful for "find first" queries).
func (g *SpatialGrid) QueryAround(p mgl64.Vec2, fn func(index int) bool) {
	col, row := g.posToCell(p)

	var visited [9]int
	n := 0
	for dr := -1; dr <= 1; dr++ {
		r := (row + dr + g.rows) % g.rows
		rowOffset := r * g.cols

		for dc := -1; dc <= 1; dc++ {
			c := (col + dc + g.cols) % g.cols
			cell := rowOffset + c

			seen := false
			for _, v := range visited[:n] {
				if v == cell {
					seen = true
					break
				}
			}
			if seen {
				continue
			}
			visited[n] = cell
			n++

			for _, itemIdx := range g.cells[cell].items {
				if fn(itemIdx) {
					return
				}
			}
		}
	}
}

// posToCell converts world coordinates to grid cell coordinates.
// Clamps to valid range to handle edge cases with floating point.
func (g *SpatialGrid) posToCell(p mgl64.Vec2) (col, row int) {
	col = int((p[0] - g.bounds.Min[0]) * g.invCellW)
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = int((p[1] - g.bounds.Min[1]) * g.invCellH)
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}
