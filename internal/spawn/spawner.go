package spawn

import (
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/asteroid-waves/internal/config"
	"github.com/tomz197/asteroid-waves/internal/entity"
	"github.com/tomz197/asteroid-waves/internal/event"
	"github.com/tomz197/asteroid-waves/internal/physics"
)

// Spawner materializes entities: it queues them in the registry, prepares their
// bodies and adds those bodies to the physics world when the registry is flushed.
type Spawner struct {
	reg   *entity.Registry
	world *physics.World
	src   Source
	queue *event.Queue
	log   *log.Logger

	maxAttempts         int
	fragmentMinDistance float64

	bodies map[entity.Handle]*physics.Body // Bodies of entities not yet flushed
}

// New creates a spawner. A nil logger discards diagnostics.
func New(reg *entity.Registry, world *physics.World, src Source, queue *event.Queue, settings config.Settings, logger *log.Logger) *Spawner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Spawner{
		reg:                 reg,
		world:               world,
		src:                 src,
		queue:               queue,
		log:                 logger.WithPrefix("spawn"),
		maxAttempts:         settings.PlacementMaxAttempts,
		fragmentMinDistance: settings.FragmentMinPlayerDistance,
		bodies:              make(map[entity.Handle]*physics.Body),
	}
}

// Flush makes queued entities live, adds their bodies to the world and
// reports new asteroids. Entities despawned while queued never get a body.
func (s *Spawner) Flush() []*entity.Entity {
	added := s.reg.Flush()
	asteroids := 0
	for _, e := range added {
		if b, ok := s.bodies[e.Handle]; ok {
			s.world.Add(b)
		}
		if e.Kind() == entity.KindAsteroid {
			asteroids++
		}
	}
	clear(s.bodies)
	if asteroids > 0 {
		s.queue.Push(event.AsteroidCountChanged{Delta: asteroids})
	}
	return added
}

// PlayerPosition returns the live player's position, or the world origin when
// there is no player.
func (s *Spawner) PlayerPosition() mgl64.Vec2 {
	if p, _, ok := s.reg.Player(); ok {
		if b, ok := s.world.Body(p.Handle); ok {
			return b.Position
		}
	}
	return mgl64.Vec2{}
}

// AwayFromPlayer picks a spawn point at least minDistance from the player.
func (s *Spawner) AwayFromPlayer(minDistance float64) mgl64.Vec2 {
	player := s.PlayerPosition()
	p, ok := RandomPointAwayFromPlayer(s.src, s.world.Bounds(), player, minDistance, s.maxAttempts)
	if !ok {
		s.log.Warn("placement fell back to farthest corner", "min_distance", minDistance, "attempts", s.maxAttempts, "point", p)
	}
	return p
}

// Handle consumes the spawn-side requests of a tick.
func (s *Spawner) Handle(e event.Event) {
	switch ev := e.(type) {
	case event.SpawnRequested:
		s.handleRequest(ev)
	case event.AsteroidDestroyed:
		s.SpawnFragments(ev.Category, ev.Origin)
	}
}

func (s *Spawner) handleRequest(req event.SpawnRequested) {
	switch req.Kind {
	case entity.KindAsteroid:
		pos := req.Position
		if req.Placement == event.PlaceAwayFromPlayer {
			pos = s.AwayFromPlayer(config.AsteroidMinDistance)
		}
		s.SpawnAsteroid(req.Category, pos)
	case entity.KindEnemy:
		pos := req.Position
		if req.Placement == event.PlaceAwayFromPlayer {
			pos = s.AwayFromPlayer(EnemyBlueprintOf(req.EnemyClass).MinDistance)
		}
		s.SpawnEnemy(req.EnemyClass, pos)
	case entity.KindPowerUp:
		pos := req.Position
		if req.Placement == event.PlaceAwayFromPlayer {
			pos = s.AwayFromPlayer(config.PowerUpMinDistance)
		}
		s.SpawnPowerUp(req.PowerUpType, pos)
	default:
		s.log.Error("spawn request for unsupported kind", "kind", req.Kind)
	}
}

// SpawnAsteroid spawns an asteroid of the given category at pos.
func (s *Spawner) SpawnAsteroid(category entity.Size, pos mgl64.Vec2) *entity.Entity {
	bp := NewAsteroid(s.src, category)
	a := bp.Asteroid
	e := s.reg.Spawn(a, &entity.ImpactInfo{
		ImpactCategory: a.Category,
		DeathCategory:  a.Category,
		Substance:      entity.SubstanceRock,
	})
	s.bodies[e.Handle] = &physics.Body{
		Handle:          e.Handle,
		Position:        pos,
		Velocity:        bp.Velocity,
		AngularVelocity: bp.AngularVelocity,
		Radius:          a.ColliderRadius,
		Mass:            a.AdditionalMass,
		Layer:           physics.LayerAsteroid,
		Mask:            asteroidMask,
	}
	s.log.Debug("asteroid", "handle", e.Handle, "category", a.Category, "sides", len(a.Vertices), "pos", pos)
	return e
}

// SpawnFragments replaces a destroyed asteroid of category c with 2-3 asteroids
// one tier smaller, scattered around origin and kept clear of the player.
// S is terminal and spawns nothing. It returns the number of fragments.
func (s *Spawner) SpawnFragments(c entity.Size, origin mgl64.Vec2) int {
	smaller, ok := c.Smaller()
	if !ok {
		return 0
	}
	player := s.PlayerPosition()
	n := config.FragmentCountMin + s.src.IntN(config.FragmentCountMax-config.FragmentCountMin+1)
	for range n {
		p := scatter(s.src, origin, config.FragmentSpread)
		if _, _, alive := s.reg.Player(); alive {
			p = pushAway(p, player, s.fragmentMinDistance)
		}
		s.SpawnAsteroid(smaller, p)
	}
	return n
}

// SpawnEnemy spawns an enemy of class c at pos.
func (s *Spawner) SpawnEnemy(c entity.EnemyClass, pos mgl64.Vec2) *entity.Entity {
	bp := EnemyBlueprintOf(c)
	en := &entity.Enemy{
		Class:         c,
		HealthPoints:  bp.Health,
		MovementSpeed: bp.Speed,
		ScorePoints:   bp.Score,
		ContactDamage: bp.ContactDamage,
		FireInterval:  bp.FireInterval,
		FireCooldown:  bp.FireInterval,
	}
	if c == entity.EnemyBoss {
		en.Boss = &entity.Boss{Phase: entity.BossIdling}
	}
	impact := bp.Impact
	e := s.reg.Spawn(en, &impact)
	s.bodies[e.Handle] = &physics.Body{
		Handle:          e.Handle,
		Position:        pos,
		AngularVelocity: bp.Spin,
		Radius:          bp.Collider,
		Mass:            bp.Mass,
		Layer:           physics.LayerEnemy,
		Mask:            enemyMask,
	}
	s.log.Info("enemy", "handle", e.Handle, "class", c, "pos", pos)
	return e
}

// SpawnPowerUp spawns a power-up at pos and points an indicator at it.
func (s *Spawner) SpawnPowerUp(t entity.PowerUpType, pos mgl64.Vec2) *entity.Entity {
	impact := PowerUpImpact
	e := s.reg.Spawn(&entity.PowerUp{Type: t}, &impact)
	s.bodies[e.Handle] = &physics.Body{
		Handle:   e.Handle,
		Position: pos,
		Radius:   config.PowerUpCollider,
		Layer:    physics.LayerPowerUp,
		Mask:     powerUpMask,
	}
	s.queue.Push(event.IndicatorAttached{Target: e.Handle, Point: pos})
	s.log.Info("power-up", "handle", e.Handle, "type", t, "pos", pos)
	return e
}

// SpawnProjectile fires a shot owned by owner (KindPlayer or KindEnemy) from
// pos along dir, which need not be normalized.
func (s *Spawner) SpawnProjectile(owner entity.Kind, pos, dir mgl64.Vec2, spec ProjectileSpec) *entity.Entity {
	if dir.Len() == 0 {
		dir = mgl64.Vec2{1, 0}
	}
	dir = dir.Normalize()

	layer, mask := physics.LayerPlayerShot, playerShotMask
	if owner == entity.KindEnemy {
		layer, mask = physics.LayerEnemyShot, enemyShotMask
	}

	impact := ProjectileImpact
	e := s.reg.Spawn(&entity.Projectile{
		Damage:      spec.Damage,
		MaxLifeTime: spec.Lifetime,
		Owner:       owner,
	}, &impact)
	s.bodies[e.Handle] = &physics.Body{
		Handle:   e.Handle,
		Position: pos,
		Velocity: dir.Mul(spec.Speed),
		Rotation: physics.Angle(dir),
		Radius:   spec.Collider,
		Layer:    layer,
		Mask:     mask,
	}
	return e
}

// SpawnPlayer spawns the player's ship with a fresh loadout.
func (s *Spawner) SpawnPlayer(pos mgl64.Vec2) *entity.Entity {
	impact := PlayerImpact
	e := s.reg.Spawn(&entity.Player{WeaponLevel: 1}, &impact)
	s.bodies[e.Handle] = &physics.Body{
		Handle:   e.Handle,
		Position: pos,
		Rotation: -math.Pi / 2, // Facing up on screen
		Radius:   config.PlayerCollider,
		Mass:     config.PlayerMass,
		Damping:  config.PlayerDrag,
		Layer:    physics.LayerPlayer,
		Mask:     playerMask,
	}
	s.log.Info("player", "handle", e.Handle, "pos", pos)
	return e
}

// SpawnShield attaches a full-strength shield to owner.
func (s *Spawner) SpawnShield(owner *entity.Entity) *entity.Entity {
	impact := ShieldImpact
	e := s.reg.Spawn(&entity.Shield{
		Strength:    config.ShieldMaxStrength,
		MaxStrength: config.ShieldMaxStrength,
		Owner:       owner.Handle,
	}, &impact)
	var pos mgl64.Vec2
	if b, ok := s.body(owner.Handle); ok {
		pos = b.Position
	}
	s.bodies[e.Handle] = &physics.Body{
		Handle:   e.Handle,
		Position: pos,
		Radius:   config.ShieldCollider,
		Layer:    physics.LayerShield,
		Mask:     shieldMask,
		Parent:   owner.Handle,
	}
	return e
}

// body finds a live or not yet flushed body.
func (s *Spawner) body(h entity.Handle) (*physics.Body, bool) {
	if b, ok := s.world.Body(h); ok {
		return b, true
	}
	b, ok := s.bodies[h]
	return b, ok
}
