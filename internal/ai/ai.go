// Package ai steers enemies: UFOs chase and shoot at the player, the morph
// boss runs its charge cycle.
package ai

import (
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/asteroid-waves/internal/config"
	"github.com/tomz197/asteroid-waves/internal/entity"
	"github.com/tomz197/asteroid-waves/internal/physics"
	"github.com/tomz197/asteroid-waves/internal/spawn"
)

// Shooter spawns projectiles.
type Shooter interface {
	SpawnProjectile(owner entity.Kind, pos, dir mgl64.Vec2, spec spawn.ProjectileSpec) *entity.Entity
}

// Controller updates every live enemy once per tick.
type Controller struct {
	reg   *entity.Registry
	world *physics.World
	shoot Shooter
	log   *log.Logger
}

// NewController creates an enemy controller. A nil logger discards diagnostics.
func NewController(reg *entity.Registry, world *physics.World, shoot Shooter, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{reg: reg, world: world, shoot: shoot, log: logger.WithPrefix("ai")}
}

// target is the player's position, if there is a player.
type target struct {
	pos   mgl64.Vec2
	found bool
}

// Update steers and fires for dt seconds.
func (c *Controller) Update(dt float64) {
	var tgt target
	if p, _, ok := c.reg.Player(); ok {
		tgt.pos, tgt.found = c.world.Position(p.Handle)
	}

	c.reg.Each(entity.KindEnemy, func(e *entity.Entity) bool {
		b, ok := c.world.Body(e.Handle)
		if !ok {
			return true
		}
		en := e.Payload.(*entity.Enemy)
		if en.Boss != nil {
			c.boss(e.Handle, en, b, tgt, dt)
			return true
		}
		c.ufo(en, b, tgt, dt)
		return true
	})
}

// toward returns the shortest displacement from b to the target.
func (c *Controller) toward(b *physics.Body, tgt target) mgl64.Vec2 {
	return c.world.Bounds().Delta(b.Position, tgt.pos)
}

func (c *Controller) ufo(en *entity.Enemy, b *physics.Body, tgt target, dt float64) {
	dir := physics.Heading(b.Rotation)
	if tgt.found {
		if d := c.toward(b, tgt); d.Len() > 0 {
			dir = d.Normalize()
		}
		b.Velocity = dir.Mul(en.MovementSpeed)
	}

	if en.FireInterval <= 0 {
		return
	}
	// Without a player there is nothing to aim at; the cooldown keeps running.
	if en.FireCooldown <= 0 && tgt.found {
		c.shoot.SpawnProjectile(entity.KindEnemy, b.Position.Add(dir.Mul(config.EnemyMuzzleOffset)), dir, spawn.EnemyShot)
		en.FireCooldown = en.FireInterval
	}
	if en.FireCooldown > 0 {
		en.FireCooldown -= dt
	}
}

func (c *Controller) boss(h entity.Handle, en *entity.Enemy, b *physics.Body, tgt target, dt float64) {
	st := en.Boss
	st.PhaseTimer += dt

	switch st.Phase {
	case entity.BossIdling:
		if !tgt.found {
			return
		}
		d := c.toward(b, tgt)
		c.chase(en, b, d)
		if d.Len() < config.BossRotatingThreshold {
			b.AngularVelocity = 0
			c.enter(h, st, entity.BossRotating)
		}

	case entity.BossRotating:
		if !tgt.found {
			c.idle(h, st, b)
			return
		}
		d := c.toward(b, tgt)
		c.chase(en, b, d)
		if math.Abs(turnToward(b, d)) < config.BossAimTolerance {
			c.enter(h, st, entity.BossMorphing)
		}

	case entity.BossMorphing:
		if tgt.found {
			turnToward(b, c.toward(b, tgt))
		}
		if st.PhaseTimer >= config.BossMorphSeconds {
			c.enter(h, st, entity.BossAttacking)
		}

	case entity.BossAttacking:
		if !tgt.found {
			c.idle(h, st, b)
			return
		}
		accel := physics.Heading(b.Rotation).Mul(en.MovementSpeed * config.BossAttackMultiplier)
		b.Velocity = b.Velocity.Add(accel.Mul(dt))
		if c.toward(b, tgt).Len() > config.BossRevertingThreshold {
			c.enter(h, st, entity.BossReverting)
		}

	case entity.BossReverting:
		if st.PhaseTimer >= config.BossRevertSeconds {
			c.idle(h, st, b)
		}
	}
}

func (c *Controller) chase(en *entity.Enemy, b *physics.Body, d mgl64.Vec2) {
	if d.Len() == 0 {
		return
	}
	b.Velocity = d.Normalize().Mul(en.MovementSpeed)
}

func (c *Controller) idle(h entity.Handle, st *entity.Boss, b *physics.Body) {
	b.AngularVelocity = config.BossIdleAngularVelocity
	c.enter(h, st, entity.BossIdling)
}

func (c *Controller) enter(h entity.Handle, st *entity.Boss, phase entity.BossPhase) {
	c.log.Debug("boss phase", "handle", h, "from", st.Phase, "to", phase)
	st.Phase = phase
	st.PhaseTimer = 0
}

// turnToward eases the body's rotation a tenth of the way toward d and
// returns the remaining difference before the turn.
func turnToward(b *physics.Body, d mgl64.Vec2) float64 {
	diff := physics.NormalizeAngle(physics.Angle(d) - b.Rotation)
	b.Rotation = physics.NormalizeAngle(b.Rotation + diff*0.1)
	return diff
}
