// Package loop runs one game: the per-tick orchestration of spawning,
// physics, collision resolution and event delivery, and the outer state
// machine around it (starting, playing, paused, dead).
package loop

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/asteroid-waves/internal/ai"
	"github.com/tomz197/asteroid-waves/internal/collision"
	"github.com/tomz197/asteroid-waves/internal/config"
	"github.com/tomz197/asteroid-waves/internal/damage"
	"github.com/tomz197/asteroid-waves/internal/entity"
	"github.com/tomz197/asteroid-waves/internal/event"
	"github.com/tomz197/asteroid-waves/internal/input"
	"github.com/tomz197/asteroid-waves/internal/loadout"
	"github.com/tomz197/asteroid-waves/internal/physics"
	"github.com/tomz197/asteroid-waves/internal/score"
	"github.com/tomz197/asteroid-waves/internal/spawn"
	"github.com/tomz197/asteroid-waves/internal/wave"
)

// State is the outer game state.
type State int

const (
	StateStarting State = iota // Reset the run and make sure there is a player
	StatePlaying               // Waves advance
	StatePaused                // Simulation frozen
	StateDead                  // Player destroyed, waiting for a restart
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateDead:
		return "dead"
	default:
		return "starting"
	}
}

// Game owns the registry and the physics world and runs every core component
// once per tick. It is driven by a single goroutine.
type Game struct {
	reg      *entity.Registry
	world    *physics.World
	queue    event.Queue
	spawner  *spawn.Spawner
	resolver *collision.Resolver
	damage   *damage.Tracker
	director *wave.Director
	score    score.Tracker
	loadout  *loadout.Loadout
	ai       *ai.Controller
	log      *log.Logger

	state     State
	tick      uint64
	asteroids int // Running total of AsteroidCountChanged deltas
	prev      input.Input
	outcomes  []event.Event
}

// NewGame creates a game in StateStarting; the first Update starts the run.
// A nil logger discards diagnostics.
func NewGame(settings config.Settings, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	g := &Game{
		reg:   entity.NewRegistry(),
		world: physics.NewWorld(physics.CenteredBounds(config.WorldSize), config.PhysicsCellSize),
		log:   logger.WithPrefix("game"),
	}
	src := spawn.NewSource(settings.Seed)
	g.spawner = spawn.New(g.reg, g.world, src, &g.queue, settings, logger)
	g.resolver = collision.NewResolver(g.reg, g.world, &g.queue, logger)
	g.damage = damage.NewTracker(g.reg, g.world, &g.queue, logger)
	g.director = wave.NewDirector(settings.WeaponPowerUpEvery, &g.queue, logger)
	g.loadout = loadout.New(g.reg, g.spawner, g.world, &g.queue, logger)
	g.ai = ai.NewController(g.reg, g.world, g.spawner, logger)
	return g
}

// Update advances the game by dt seconds with the given input and returns the
// outcome events of the tick in emission order.
func (g *Game) Update(in input.Input, dt float64) []event.Event {
	g.tick++
	g.outcomes = nil

	g.spawner.Flush()
	g.controls(in)
	if g.state == StateStarting {
		g.start()
	}
	if g.state != StatePaused {
		g.simulate(in, dt)
	}
	g.drain()
	return g.outcomes
}

// simulate runs one tick of the world: steering, AI, ageing, physics, collision
// resolution, event delivery, compaction and finally the wave director.
func (g *Game) simulate(in input.Input, dt float64) {
	if g.state == StatePlaying {
		g.steer(in, dt)
	}
	g.ai.Update(dt)
	g.age(dt)

	for _, c := range g.world.Step(dt) {
		g.resolver.Resolve(c.A, c.B)
	}
	g.drain()
	g.compact()

	if g.state == StatePlaying {
		g.director.Update(g.reg.WaveScoped())
	}
}

// drain delivers every queued event, including those pushed by the handlers
// themselves, and collects the outcomes.
func (g *Game) drain() {
	for {
		e, ok := g.queue.Pop()
		if !ok {
			return
		}
		g.spawner.Handle(e)
		g.damage.Handle(e)
		g.loadout.Handle(e)
		g.score.Handle(e)

		switch ev := e.(type) {
		case event.PlayerDestroyed:
			g.playerDestroyed(ev)
		case event.AsteroidCountChanged:
			g.asteroids += ev.Delta
		}

		if e.Type().Outcome() {
			g.outcomes = append(g.outcomes, e)
		}
	}
}

// compact removes despawned entities from the registry and their bodies from
// the world.
func (g *Game) compact() {
	asteroids := 0
	for _, e := range g.reg.Compact() {
		g.world.Remove(e.Handle)
		if e.Kind() == entity.KindAsteroid {
			asteroids++
		}
	}
	if asteroids > 0 {
		g.queue.Push(event.AsteroidCountChanged{Delta: -asteroids})
	}
}

// despawn marks h for removal and takes its body out of collision detection
// for the rest of the tick.
func (g *Game) despawn(h entity.Handle) bool {
	if !g.reg.Despawn(h) {
		return false
	}
	g.world.SetEnabled(h, false)
	return true
}

// age accumulates projectile life time and despawns expired shots.
func (g *Game) age(dt float64) {
	g.reg.Each(entity.KindProjectile, func(e *entity.Entity) bool {
		pr := e.Payload.(*entity.Projectile)
		pr.LifeTime += dt
		if pr.Expired() {
			g.despawn(e.Handle)
		}
		return true
	})
}

// steer applies the player's rotation, thrust and fire input.
func (g *Game) steer(in input.Input, dt float64) {
	pe, p, ok := g.reg.Player()
	if !ok {
		return
	}
	b, ok := g.world.Body(pe.Handle)
	if !ok {
		return
	}

	if in.Left {
		b.Rotation -= config.PlayerRotationSpeed * dt
	}
	if in.Right {
		b.Rotation += config.PlayerRotationSpeed * dt
	}
	b.Rotation = physics.NormalizeAngle(b.Rotation)

	heading := physics.Heading(b.Rotation)
	if in.Up {
		b.Damping = 0
		b.Velocity = b.Velocity.Add(heading.Mul(config.PlayerThrust * dt))
		if speed := b.Velocity.Len(); speed > config.PlayerMaxSpeed {
			b.Velocity = b.Velocity.Mul(config.PlayerMaxSpeed / speed)
		}
	} else {
		b.Damping = config.PlayerDrag
	}

	if p.FireCooldown > 0 {
		p.FireCooldown -= dt
	}
	if in.Space && p.FireCooldown <= 0 {
		g.fire(p, b, heading)
		p.FireCooldown = config.PlayerFireCooldown
	}
}

// fire spawns one projectile per muzzle of the player's weapon level.
func (g *Game) fire(p *entity.Player, b *physics.Body, heading mgl64.Vec2) {
	side := mgl64.Vec2{-heading[1], heading[0]}
	for _, m := range loadout.Muzzles(p.WeaponLevel) {
		pos := b.Position.Add(heading.Mul(m[0])).Add(side.Mul(m[1]))
		g.spawner.SpawnProjectile(entity.KindPlayer, pos, heading, spawn.PlayerShot)
	}
}

// controls handles the edge-triggered state transitions and debug triggers.
func (g *Game) controls(in input.Input) {
	pressed := func(now, before bool) bool { return now && !before }

	switch g.state {
	case StatePlaying:
		switch {
		case pressed(in.Escape, g.prev.Escape):
			g.enter(StatePaused)
		case pressed(in.NextWave, g.prev.NextWave):
			g.skipWave()
		case pressed(in.PowerUps, g.prev.PowerUps):
			g.dropPowerUps()
		}
	case StatePaused:
		if pressed(in.Escape, g.prev.Escape) {
			g.enter(StatePlaying)
		}
	case StateDead:
		if pressed(in.Enter, g.prev.Enter) || pressed(in.Space, g.prev.Space) {
			g.enter(StateStarting)
		}
	}
	g.prev = in
}

func (g *Game) enter(s State) {
	if s == g.state {
		return
	}
	g.log.Info("state", "from", g.state, "to", s)
	g.queue.Push(event.StateChanged{From: g.state.String(), To: s.String()})
	g.state = s
}

// start resets the run: the field is cleared of everything but the player,
// wave, score and loadout go back to their initial values and a player is
// spawned if there is none.
func (g *Game) start() {
	for _, k := range []entity.Kind{entity.KindAsteroid, entity.KindEnemy, entity.KindProjectile, entity.KindPowerUp} {
		g.reg.Each(k, func(e *entity.Entity) bool {
			g.despawn(e.Handle)
			if k == entity.KindPowerUp {
				g.queue.Push(event.IndicatorRemoved{Target: e.Handle})
			}
			return true
		})
	}
	g.director.Reset()
	g.score.Reset()

	if _, _, ok := g.reg.Player(); !ok {
		g.spawner.SpawnPlayer(mgl64.Vec2{})
		g.spawner.Flush()
	}
	g.loadout.Reset()
	g.compact()
	g.enter(StatePlaying)
}

// playerDestroyed takes the player's shield with it and ends the run.
func (g *Game) playerDestroyed(ev event.PlayerDestroyed) {
	if pe, ok := g.reg.Get(ev.Entity); ok {
		if p, ok := pe.Payload.(*entity.Player); ok && p.Shield != 0 {
			if se, ok := g.reg.Get(p.Shield); ok {
				damage.Destroy(g.reg, g.world, se)
			}
		}
	}
	g.enter(StateDead)
}

// skipWave despawns every wave-scoped entity so the next wave follows.
func (g *Game) skipWave() {
	n := 0
	for _, k := range []entity.Kind{entity.KindAsteroid, entity.KindEnemy} {
		g.reg.Each(k, func(e *entity.Entity) bool {
			if g.despawn(e.Handle) {
				n++
			}
			return true
		})
	}
	g.log.Info("wave skipped", "wave", g.director.Wave(), "despawned", n)
}

func (g *Game) dropPowerUps() {
	for _, t := range []entity.PowerUpType{entity.PowerUpShield, entity.PowerUpWeapon} {
		g.queue.Push(event.SpawnRequested{Kind: entity.KindPowerUp, PowerUpType: t, Placement: event.PlaceAwayFromPlayer})
	}
	g.log.Info("power-ups dropped")
}

// State returns the outer game state.
func (g *Game) State() State {
	return g.state
}

// Tick returns the number of completed updates.
func (g *Game) Tick() uint64 {
	return g.tick
}

// Wave returns the current wave number.
func (g *Game) Wave() int {
	return g.director.Wave()
}

// Score returns the run's score.
func (g *Game) Score() uint64 {
	return g.score.Total()
}

// Asteroids returns the asteroid count as reported by AsteroidCountChanged.
func (g *Game) Asteroids() int {
	return g.asteroids
}
