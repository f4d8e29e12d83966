package spawn

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/asteroid-waves/internal/physics"
)

// RandomPoint draws a uniform point inside b (x first, then y).
func RandomPoint(src Source, b physics.Bounds) mgl64.Vec2 {
	size := b.Size()
	x := b.Min[0] + src.Float64()*size[0]
	y := b.Min[1] + src.Float64()*size[1]
	return mgl64.Vec2{x, y}
}

// RandomPointAwayFromPlayer samples points until one is at least minDistance
// from player, giving up after maxAttempts samples. On give-up it returns the
// corner of b farthest from the player and ok=false.
func RandomPointAwayFromPlayer(src Source, b physics.Bounds, player mgl64.Vec2, minDistance float64, maxAttempts int) (p mgl64.Vec2, ok bool) {
	minSq := minDistance * minDistance
	for range max(maxAttempts, 1) {
		p = RandomPoint(src, b)
		if physics.DistanceSquared(p, player) >= minSq {
			return p, true
		}
	}
	return b.FarthestCorner(player), false
}

// scatter draws a point within radius of origin (angle first, then distance).
func scatter(src Source, origin mgl64.Vec2, radius float64) mgl64.Vec2 {
	angle := src.Float64() * 2 * math.Pi
	dist := src.Float64() * radius
	return origin.Add(physics.Heading(angle).Mul(dist))
}

// pushAway moves p directly away from player until it is at least minDistance away.
func pushAway(p, player mgl64.Vec2, minDistance float64) mgl64.Vec2 {
	d := p.Sub(player)
	dist := d.Len()
	if dist >= minDistance {
		return p
	}
	if dist == 0 {
		d, dist = mgl64.Vec2{1, 0}, 1
	}
	return player.Add(d.Mul(minDistance / dist))
}
