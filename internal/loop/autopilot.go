package loop

import (
	"math"

	"github.com/tomz197/asteroid-waves/internal/entity"
	"github.com/tomz197/asteroid-waves/internal/input"
	"github.com/tomz197/asteroid-waves/internal/physics"
)

// Autopilot tuning.
const (
	autopilotAimTolerance  = 0.05 // Radians; inside this the ship stops turning
	autopilotFireTolerance = 0.3  // Radians; inside this the ship fires
	autopilotApproach      = 250.0
)

// Autopilot produces the input of a simple deterministic pilot: it turns
// toward the nearest asteroid or enemy, fires once roughly aimed and closes
// in when the target is far. When dead it restarts the run.
func (g *Game) Autopilot() input.Input {
	switch g.state {
	case StateDead:
		// Alternate so the restart key produces an edge.
		return input.Input{Enter: g.tick%2 == 0}
	case StatePlaying:
	default:
		return input.Input{}
	}

	pe, _, ok := g.reg.Player()
	if !ok {
		return input.Input{}
	}
	b, ok := g.world.Body(pe.Handle)
	if !ok {
		return input.Input{}
	}

	bounds := g.world.Bounds()
	best, bestDist := b.Position, math.Inf(1)
	for _, k := range []entity.Kind{entity.KindAsteroid, entity.KindEnemy} {
		g.reg.Each(k, func(e *entity.Entity) bool {
			pos, ok := g.world.Position(e.Handle)
			if !ok {
				return true
			}
			if d := bounds.Delta(b.Position, pos).Len(); d < bestDist {
				best, bestDist = pos, d
			}
			return true
		})
	}
	if math.IsInf(bestDist, 1) {
		return input.Input{}
	}

	d := bounds.Delta(b.Position, best)
	diff := physics.NormalizeAngle(physics.Angle(d) - b.Rotation)
	return input.Input{
		Left:  diff < -autopilotAimTolerance,
		Right: diff > autopilotAimTolerance,
		Up:    bestDist > autopilotApproach && math.Abs(diff) < autopilotFireTolerance,
		Space: math.Abs(diff) < autopilotFireTolerance,
	}
}
