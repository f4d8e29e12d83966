package physics

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/asteroid-waves/internal/entity"
)

// Layer is a collision group bit.
type Layer uint16

const (
	LayerAsteroid Layer = 1 << iota
	LayerEnemy
	LayerPlayer
	LayerShield
	LayerPlayerShot
	LayerEnemyShot
	LayerPowerUp

	LayerAll Layer = 1<<iota - 1
)

// Body is a circle collider moved by the world. Callers set velocities and
// mass at spawn and may steer bodies between steps; the world never resolves
// contacts.
type Body struct {
	Handle          entity.Handle
	Position        mgl64.Vec2
	Velocity        mgl64.Vec2
	Rotation        float64 // Radians
	AngularVelocity float64
	Radius          float64
	Mass            float64
	Damping         float64 // Fraction of velocity lost per second

	Layer Layer // Groups this body belongs to
	Mask  Layer // Groups this body collides with

	Disabled bool          // Collider off; the body still moves
	Parent   entity.Handle // Non-zero: position and rotation follow the parent
}

// Interacts reports whether two bodies' collision groups allow a contact.
func (b *Body) Interacts(o *Body) bool {
	return b.Layer&o.Mask != 0 && o.Layer&b.Mask != 0
}

// Contact is a pair of bodies that started touching during a step.
// A is always the body added to the world first.
type Contact struct {
	A, B entity.Handle
}

type pairKey struct {
	a, b entity.Handle
}

func keyOf(a, b entity.Handle) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}

// World owns every body, integrates them at a fixed step and reports
// collision-started pairs.
type World struct {
	bounds   Bounds
	bodies   []*Body // Insertion order; drives contact order
	byHandle map[entity.Handle]*Body

	grid     *SpatialGrid
	cellSize float64
	touching map[pairKey]struct{}

	candidates []int
}

// NewWorld creates an empty world. cellSize is the broad-phase cell size; it
// grows automatically when a body larger than half of it is added.
func NewWorld(bounds Bounds, cellSize float64) *World {
	return &World{
		bounds:   bounds,
		byHandle: make(map[entity.Handle]*Body),
		grid:     NewSpatialGrid(bounds, cellSize),
		cellSize: cellSize,
		touching: make(map[pairKey]struct{}),
	}
}

// Bounds returns the world rectangle.
func (w *World) Bounds() Bounds {
	return w.bounds
}

// Add inserts a body. The position is wrapped into the world.
// Adding a handle twice replaces the earlier body.
func (w *World) Add(b *Body) {
	if _, ok := w.byHandle[b.Handle]; ok {
		w.Remove(b.Handle)
	}
	b.Position = w.bounds.Wrap(b.Position)
	w.bodies = append(w.bodies, b)
	w.byHandle[b.Handle] = b

	if need := 2 * b.Radius; need > w.cellSize {
		w.cellSize = need
		w.grid = NewSpatialGrid(w.bounds, need)
	}
}

// Remove deletes the body with handle h and forgets its contacts.
func (w *World) Remove(h entity.Handle) bool {
	if _, ok := w.byHandle[h]; !ok {
		return false
	}
	delete(w.byHandle, h)
	w.bodies = slices.DeleteFunc(w.bodies, func(b *Body) bool { return b.Handle == h })
	for k := range w.touching {
		if k.a == h || k.b == h {
			delete(w.touching, k)
		}
	}
	return true
}

// Body returns the body with handle h.
func (w *World) Body(h entity.Handle) (*Body, bool) {
	b, ok := w.byHandle[h]
	return b, ok
}

// Position returns the position of h.
func (w *World) Position(h entity.Handle) (mgl64.Vec2, bool) {
	if b, ok := w.byHandle[h]; ok {
		return b.Position, true
	}
	return mgl64.Vec2{}, false
}

// Len returns the number of bodies.
func (w *World) Len() int {
	return len(w.bodies)
}

// SetEnabled turns the collider of h on or off.
func (w *World) SetEnabled(h entity.Handle, enabled bool) {
	if b, ok := w.byHandle[h]; ok {
		b.Disabled = !enabled
	}
}

// Each calls fn for every body in insertion order.
func (w *World) Each(fn func(b *Body)) {
	for _, b := range w.bodies {
		fn(b)
	}
}

// Step advances the world by dt seconds and returns the pairs that started
// touching, in deterministic order. Pairs that stay in contact are reported once.
func (w *World) Step(dt float64) []Contact {
	w.integrate(dt)
	return w.detect()
}

func (w *World) integrate(dt float64) {
	for _, b := range w.bodies {
		if b.Parent != 0 {
			continue
		}
		if b.Damping > 0 {
			b.Velocity = b.Velocity.Mul(max(0, 1-b.Damping*dt))
		}
		b.Position = w.bounds.Wrap(b.Position.Add(b.Velocity.Mul(dt)))
		b.Rotation = NormalizeAngle(b.Rotation + b.AngularVelocity*dt)
	}
	for _, b := range w.bodies {
		if b.Parent == 0 {
			continue
		}
		if p, ok := w.byHandle[b.Parent]; ok {
			b.Position = p.Position
			b.Rotation = p.Rotation
			b.Velocity = p.Velocity
		}
	}
}

func (w *World) detect() []Contact {
	w.grid.Clear()
	for i, b := range w.bodies {
		if !b.Disabled {
			w.grid.Insert(b.Position, i)
		}
	}

	var started []Contact
	now := make(map[pairKey]struct{}, len(w.touching))
	for i, a := range w.bodies {
		if a.Disabled {
			continue
		}
		w.candidates = w.candidates[:0]
		w.grid.QueryAround(a.Position, func(j int) bool {
			if j > i {
				w.candidates = append(w.candidates, j)
			}
			return false
		})
		slices.Sort(w.candidates)

		for _, j := range w.candidates {
			b := w.bodies[j]
			if !a.Interacts(b) || a.Parent == b.Handle || b.Parent == a.Handle {
				continue
			}
			d := w.bounds.Delta(a.Position, b.Position)
			r := a.Radius + b.Radius
			if d.Dot(d) >= r*r {
				continue
			}
			k := keyOf(a.Handle, b.Handle)
			now[k] = struct{}{}
			if _, was := w.touching[k]; !was {
				started = append(started, Contact{A: a.Handle, B: b.Handle})
			}
		}
	}
	w.touching = now
	return started
}
