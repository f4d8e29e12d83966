// Package physics is the rigid-body collaborator the game core talks to: it moves
// circle bodies, wraps them around the world and reports pairs that start touching.
// It does not resolve contacts.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Distance calculates the Euclidean distance between two points.
func Distance(a, b mgl64.Vec2) float64 {
	return b.Sub(a).Len()
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b mgl64.Vec2) float64 {
	d := b.Sub(a)
	return d.Dot(d)
}

// PointInCircle checks if a point is within radius of a target position.
func PointInCircle(p, center mgl64.Vec2, radius float64) bool {
	return DistanceSquared(p, center) <= radius*radius
}

// CirclesOverlap checks if two circles overlap.
func CirclesOverlap(p1 mgl64.Vec2, r1 float64, p2 mgl64.Vec2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(p1, p2) < minDist*minDist
}

// Heading returns the unit vector for a rotation in radians (0 points along +X).
func Heading(rotation float64) mgl64.Vec2 {
	return mgl64.Vec2{math.Cos(rotation), math.Sin(rotation)}
}

// Angle returns the rotation whose heading is v.
func Angle(v mgl64.Vec2) float64 {
	return math.Atan2(v[1], v[0])
}

// NormalizeAngle maps an angle to [-π, π].
func NormalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
