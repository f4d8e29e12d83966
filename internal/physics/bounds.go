package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Bounds is an axis-aligned world rectangle. Positions wrap around its edges
// (Asteroids-style).
type Bounds struct {
	Min, Max mgl64.Vec2
}

// CenteredBounds returns a square of the given size centred on the origin.
func CenteredBounds(size float64) Bounds {
	h := size / 2
	return Bounds{Min: mgl64.Vec2{-h, -h}, Max: mgl64.Vec2{h, h}}
}

// Size returns the width and height.
func (b Bounds) Size() mgl64.Vec2 {
	return b.Max.Sub(b.Min)
}

// Contains reports whether p lies inside the bounds (max edge exclusive).
func (b Bounds) Contains(p mgl64.Vec2) bool {
	return p[0] >= b.Min[0] && p[0] < b.Max[0] && p[1] >= b.Min[1] && p[1] < b.Max[1]
}

// Wrap maps p back into the bounds.
func (b Bounds) Wrap(p mgl64.Vec2) mgl64.Vec2 {
	size := b.Size()
	for i := 0; i < 2; i++ {
		if size[i] <= 0 {
			continue
		}
		v := math.Mod(p[i]-b.Min[i], size[i])
		if v < 0 {
			v += size[i]
		}
		p[i] = b.Min[i] + v
	}
	return p
}

// Delta returns the shortest displacement from a to b, taking wrapping into account.
func (b Bounds) Delta(a, c mgl64.Vec2) mgl64.Vec2 {
	d := c.Sub(a)
	size := b.Size()
	for i := 0; i < 2; i++ {
		if size[i] <= 0 {
			continue
		}
		if d[i] > size[i]/2 {
			d[i] -= size[i]
		} else if d[i] < -size[i]/2 {
			d[i] += size[i]
		}
	}
	return d
}

// Corners returns the four corners, counter-clockwise from Min.
func (b Bounds) Corners() [4]mgl64.Vec2 {
	return [4]mgl64.Vec2{
		b.Min,
		{b.Max[0], b.Min[1]},
		b.Max,
		{b.Min[0], b.Max[1]},
	}
}

// FarthestCorner returns the corner with the greatest straight-line distance from p.
func (b Bounds) FarthestCorner(p mgl64.Vec2) mgl64.Vec2 {
	corners := b.Corners()
	best := corners[0]
	bestDist := DistanceSquared(p, best)
	for _, c := range corners[1:] {
		if d := DistanceSquared(p, c); d > bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
