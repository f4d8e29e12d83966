package loop

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/asteroid-waves/internal/entity"
	"github.com/tomz197/asteroid-waves/internal/physics"
)

// Blip is one body as presentation layers see it.
type Blip struct {
	Handle   entity.Handle
	Kind     entity.Kind
	Position mgl64.Vec2
	Rotation float64
	Radius   float64
	Vertices []mgl64.Vec2 // Asteroid polygon in local space; shared, never mutated
}

// Snapshot is an immutable copy of the game's presentation state.
type Snapshot struct {
	Tick      uint64
	State     State
	Wave      int
	Score     uint64
	Asteroids int
	Enemies   int
	PowerUps  int
	Bounds    physics.Bounds

	PlayerAlive    bool
	PlayerPosition mgl64.Vec2
	PlayerRotation float64
	WeaponLevel    int
	ShieldStrength int16
	ShieldMax      int16

	Blips []Blip
}

// ShieldRatio is the shield's strength relative to its maximum, 0 without a shield.
func (s *Snapshot) ShieldRatio() float64 {
	if s.ShieldMax <= 0 || s.ShieldStrength <= 0 {
		return 0
	}
	return float64(s.ShieldStrength) / float64(s.ShieldMax)
}

// Snapshot copies the current state. buf is reused for the blips when it is
// large enough.
func (g *Game) Snapshot(buf []Blip) *Snapshot {
	s := &Snapshot{
		Tick:      g.tick,
		State:     g.state,
		Wave:      g.director.Wave(),
		Score:     g.score.Total(),
		Asteroids: g.asteroids,
		Enemies:   g.reg.Count(entity.KindEnemy),
		PowerUps:  g.reg.Count(entity.KindPowerUp),
		Bounds:    g.world.Bounds(),
	}

	if pe, p, ok := g.reg.Player(); ok {
		s.PlayerAlive = true
		s.WeaponLevel = p.WeaponLevel
		if b, ok := g.world.Body(pe.Handle); ok {
			s.PlayerPosition = b.Position
			s.PlayerRotation = b.Rotation
		}
		if se, ok := g.reg.Lookup(entity.KindShield, p.Shield); ok && !se.Despawned() {
			sh := se.Payload.(*entity.Shield)
			s.ShieldStrength, s.ShieldMax = sh.Strength, sh.MaxStrength
		}
	}

	blips := buf[:0]
	g.world.Each(func(b *physics.Body) {
		e, ok := g.reg.Get(b.Handle)
		if !ok || e.Despawned() {
			return
		}
		blip := Blip{
			Handle:   b.Handle,
			Kind:     e.Kind(),
			Position: b.Position,
			Rotation: b.Rotation,
			Radius:   b.Radius,
		}
		if a, ok := e.Payload.(*entity.Asteroid); ok {
			blip.Vertices = a.Vertices
		}
		blips = append(blips, blip)
	})
	s.Blips = blips
	return s
}
