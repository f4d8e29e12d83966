// Package damage applies enemy and shield damage and their death side effects.
package damage

import (
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/asteroid-waves/internal/config"
	"github.com/tomz197/asteroid-waves/internal/entity"
	"github.com/tomz197/asteroid-waves/internal/event"
)

// Bodies is the part of the physics world damage tracking needs.
type Bodies interface {
	Position(h entity.Handle) (mgl64.Vec2, bool)
	SetEnabled(h entity.Handle, enabled bool)
}

// Tracker consumes EnemyDamage and ShieldDamage. Each event is applied on
// its own, in delivery order.
type Tracker struct {
	reg    *entity.Registry
	bodies Bodies
	queue  *event.Queue
	log    *log.Logger
}

// NewTracker creates a tracker. A nil logger discards diagnostics.
func NewTracker(reg *entity.Registry, bodies Bodies, queue *event.Queue, logger *log.Logger) *Tracker {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Tracker{reg: reg, bodies: bodies, queue: queue, log: logger.WithPrefix("damage")}
}

// Handle applies damage events and ignores everything else.
func (t *Tracker) Handle(e event.Event) {
	switch ev := e.(type) {
	case event.EnemyDamage:
		t.damageEnemy(ev)
	case event.ShieldDamage:
		t.damageShield(ev)
	}
}

func (t *Tracker) damageEnemy(ev event.EnemyDamage) {
	e, ok := t.reg.Lookup(entity.KindEnemy, ev.Entity)
	if !ok {
		t.log.Debug("damage for missing enemy", "handle", ev.Entity)
		return
	}
	en := e.Payload.(*entity.Enemy)
	if en.HealthPoints <= 0 || e.Despawned() {
		return
	}

	en.HealthPoints = subtract(en.HealthPoints, ev.Amount)
	if en.HealthPoints > 0 {
		t.log.Debug("enemy hit", "handle", ev.Entity, "amount", ev.Amount, "health", en.HealthPoints)
		return
	}

	if !t.reg.Despawn(ev.Entity) {
		return
	}
	t.queue.Push(event.ScoreChanged{Delta: en.ScorePoints})
	pos, _ := t.bodies.Position(ev.Entity)
	if e.Impact == nil {
		t.log.Error("missing impact info, explosion skipped", "handle", ev.Entity)
	} else {
		t.queue.Push(event.ExplosionRequested{Origin: pos, Category: e.Impact.DeathCategory, Substance: e.Impact.Substance})
	}
	t.log.Info("enemy destroyed", "handle", ev.Entity, "class", en.Class, "score", en.ScorePoints)
}

func (t *Tracker) damageShield(ev event.ShieldDamage) {
	e, ok := t.reg.Lookup(entity.KindShield, ev.Entity)
	if !ok || e.Despawned() {
		t.log.Debug("damage for missing shield", "handle", ev.Entity)
		return
	}
	sh := e.Payload.(*entity.Shield)
	pos, _ := t.bodies.Position(ev.Entity)

	sh.Strength = max(subtract(sh.Strength, ev.Amount), 0)
	if sh.Strength > 0 {
		t.queue.Push(event.ShieldChanged{
			Entity:       ev.Entity,
			Strength:     sh.Strength,
			MaxStrength:  sh.MaxStrength,
			Transparency: config.ShieldDefaultTransparency * sh.Ratio(),
		})
		t.queue.Push(event.ExplosionRequested{Origin: pos, Category: entity.SizeS, Substance: entity.SubstanceEnergy})
		t.log.Debug("shield hit", "amount", ev.Amount, "strength", sh.Strength, "max", sh.MaxStrength)
		return
	}

	Destroy(t.reg, t.bodies, e)
	t.queue.Push(event.ShieldChanged{Entity: ev.Entity, MaxStrength: sh.MaxStrength})
	t.queue.Push(event.ExplosionRequested{Origin: pos, Category: entity.SizeL, Substance: entity.SubstanceEnergy})
	t.log.Info("shield destroyed")
}

// Destroy removes a shield and restores its owner's collider.
func Destroy(reg *entity.Registry, bodies Bodies, shield *entity.Entity) {
	sh, ok := shield.Payload.(*entity.Shield)
	if !ok || !reg.Despawn(shield.Handle) {
		return
	}
	sh.Strength = 0
	if owner, ok := reg.Lookup(entity.KindPlayer, sh.Owner); ok {
		if p := owner.Payload.(*entity.Player); p.Shield == shield.Handle {
			p.Shield = 0
		}
		bodies.SetEnabled(sh.Owner, true)
	}
}

// subtract lowers v by amount without wrapping below math.MinInt16.
func subtract(v int16, amount uint16) int16 {
	r := int32(v) - int32(amount)
	if r < math.MinInt16 {
		return math.MinInt16
	}
	return int16(r)
}
