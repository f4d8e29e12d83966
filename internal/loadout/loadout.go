// Package loadout applies collected power-ups to the player: shields and weapon levels.
package loadout

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/asteroid-waves/internal/config"
	"github.com/tomz197/asteroid-waves/internal/damage"
	"github.com/tomz197/asteroid-waves/internal/entity"
	"github.com/tomz197/asteroid-waves/internal/event"
)

// ShieldSpawner materializes a shield attached to its owner.
type ShieldSpawner interface {
	SpawnShield(owner *entity.Entity) *entity.Entity
}

// Loadout consumes PowerUpCollected.
type Loadout struct {
	reg     *entity.Registry
	spawner ShieldSpawner
	bodies  damage.Bodies
	queue   *event.Queue
	log     *log.Logger
}

// New creates a loadout handler. A nil logger discards diagnostics.
func New(reg *entity.Registry, spawner ShieldSpawner, bodies damage.Bodies, queue *event.Queue, logger *log.Logger) *Loadout {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loadout{reg: reg, spawner: spawner, bodies: bodies, queue: queue, log: logger.WithPrefix("loadout")}
}

// Handle applies collected power-ups to the live player.
func (l *Loadout) Handle(e event.Event) {
	ev, ok := e.(event.PowerUpCollected)
	if !ok {
		return
	}
	l.queue.Push(event.IndicatorRemoved{Target: ev.Entity})

	pe, p, ok := l.reg.Player()
	if !ok {
		l.log.Debug("power-up collected without a player", "type", ev.PowerUpType)
		return
	}
	pos, _ := l.bodies.Position(pe.Handle)

	switch ev.PowerUpType {
	case entity.PowerUpShield:
		if sh, ok := l.shield(p); ok {
			Upgrade(sh)
			l.queue.Push(event.ShieldChanged{
				Entity:       p.Shield,
				Strength:     sh.Strength,
				MaxStrength:  sh.MaxStrength,
				Transparency: config.ShieldDefaultTransparency * sh.Ratio(),
			})
			l.explode(pos, entity.SizeS)
			l.log.Info("shield upgraded", "strength", sh.Strength, "max", sh.MaxStrength)
			return
		}
		se := l.spawner.SpawnShield(pe)
		p.Shield = se.Handle
		l.bodies.SetEnabled(pe.Handle, false)
		l.queue.Push(event.ShieldChanged{
			Entity:       se.Handle,
			Strength:     config.ShieldMaxStrength,
			MaxStrength:  config.ShieldMaxStrength,
			Transparency: config.ShieldDefaultTransparency,
		})
		l.explode(pos, entity.SizeL)
		l.log.Info("shield attached", "handle", se.Handle)

	case entity.PowerUpWeapon:
		from := p.WeaponLevel
		p.WeaponLevel = min(p.WeaponLevel+1, config.WeaponMaxLevel)
		l.queue.Push(event.WeaponUpgraded{Level: p.WeaponLevel})
		l.explode(pos, entity.SizeL)
		l.log.Info("weapon upgraded", "from", from, "to", p.WeaponLevel)
	}
}

// Reset strips the player's loadout: weapon back to level 1, shield removed.
func (l *Loadout) Reset() {
	pe, p, ok := l.reg.Player()
	if !ok {
		return
	}
	p.WeaponLevel = 1
	p.FireCooldown = 0
	if p.Shield != 0 {
		se, ok := l.reg.Get(p.Shield)
		if !ok {
			se, ok = l.reg.Queued(p.Shield)
		}
		if ok {
			damage.Destroy(l.reg, l.bodies, se)
		}
		p.Shield = 0
	}
	l.bodies.SetEnabled(pe.Handle, true)
}

// shield returns the player's attached shield if it is still alive.
func (l *Loadout) shield(p *entity.Player) (*entity.Shield, bool) {
	if p.Shield == 0 {
		return nil, false
	}
	se, ok := l.reg.Lookup(entity.KindShield, p.Shield)
	if !ok {
		// Attached this tick; not yet flushed.
		se, ok = l.reg.Queued(p.Shield)
	}
	if !ok || se.Despawned() || se.Kind() != entity.KindShield {
		return nil, false
	}
	return se.Payload.(*entity.Shield), true
}

func (l *Loadout) explode(at mgl64.Vec2, c entity.Size) {
	l.queue.Push(event.ExplosionRequested{Origin: at, Category: c, Substance: entity.SubstanceEnergy})
}

// Upgrade raises a shield by one power-up: strength grows by the default
// maximum, and the maximum grows with it whenever it would be exceeded.
func Upgrade(sh *entity.Shield) {
	if sh.Strength+config.ShieldMaxStrength > sh.MaxStrength {
		sh.MaxStrength += config.ShieldMaxStrength
	}
	sh.Strength += config.ShieldMaxStrength
}

// Muzzles returns the muzzle offsets of a weapon level as (forward, lateral) pairs.
func Muzzles(level int) []mgl64.Vec2 {
	f := config.MuzzleForwardOffset
	switch {
	case level <= 1:
		return []mgl64.Vec2{{f, 0}}
	case level == 2:
		return []mgl64.Vec2{{f, 5}, {f, -5}}
	default:
		return []mgl64.Vec2{{f, 6}, {f, 0}, {f, -6}}
	}
}
