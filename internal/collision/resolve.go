package collision

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroid-waves/internal/entity"
	"github.com/tomz197/asteroid-waves/internal/event"
)

// Resolver applies the per-kind collision rules and pushes their outcomes.
type Resolver struct {
	classifier *Classifier
	reg        *entity.Registry
	queue      *event.Queue
	log        *log.Logger
}

// NewResolver creates a resolver. A nil logger discards diagnostics.
func NewResolver(reg *entity.Registry, loc Locator, queue *event.Queue, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Resolver{
		classifier: NewClassifier(reg, loc),
		reg:        reg,
		queue:      queue,
		log:        logger.WithPrefix("collision"),
	}
}

// Resolve classifies the pair (a, b) and applies each side's rule once.
// A pair with an unclassifiable side produces nothing.
func (r *Resolver) Resolve(a, b entity.Handle) {
	pa, pb := r.classifier.Classify(a, b)
	if pa.Kind == entity.KindUnknown || pb.Kind == entity.KindUnknown {
		r.log.Warn("unclassifiable collision party", "a", a, "a_kind", pa.Kind, "b", b, "b_kind", pb.Kind)
		return
	}
	if pa.Kind == pb.Kind {
		r.log.Debug("same-kind contact ignored", "kind", pa.Kind, "a", a, "b", b)
		return
	}
	r.log.Debug("contact", "a", a, "a_kind", pa.Kind, "b", b, "b_kind", pb.Kind)
	r.apply(pa)
	r.apply(pb)
}

func (r *Resolver) apply(p Party) {
	if p.self.Despawned() {
		r.log.Debug("party already despawned", "handle", p.Handle, "kind", p.Kind)
		return
	}
	if p.self.Kind() != p.Kind {
		r.log.Error("resolver type mismatch", "handle", p.Handle, "classified", p.Kind, "payload", p.self.Kind())
		return
	}

	switch self := p.self.Payload.(type) {
	case *entity.Asteroid:
		r.asteroid(p, self)
	case *entity.Projectile:
		r.projectile(p)
	case *entity.Player:
		r.player(p)
	case *entity.Enemy:
		r.enemy(p)
	case *entity.Shield:
		r.shield(p)
	case *entity.PowerUp:
		r.powerUp(p, self)
	default:
		r.log.Error("no collision rule for payload", "handle", p.Handle, "kind", p.Kind)
	}
}

func (r *Resolver) asteroid(p Party, a *entity.Asteroid) {
	if p.OtherKind == entity.KindPowerUp {
		return
	}
	if !r.reg.Despawn(p.Handle) {
		return
	}
	r.queue.Push(event.ScoreChanged{Delta: a.Score})
	r.queue.Push(event.ExplosionRequested{Origin: p.Position, Category: a.Category, Substance: entity.SubstanceRock})
	r.queue.Push(event.AsteroidDestroyed{Category: a.Category, Origin: p.Position})
}

func (r *Resolver) projectile(p Party) {
	if !r.reg.Despawn(p.Handle) {
		return
	}
	r.explode(p)
}

func (r *Resolver) player(p Party) {
	if p.OtherKind == entity.KindPowerUp {
		return
	}
	if !r.reg.Despawn(p.Handle) {
		return
	}
	r.queue.Push(event.ScoreChanged{Delta: 0})
	r.explode(p)
	r.queue.Push(event.PlayerDestroyed{Entity: p.Handle, Origin: p.Position})
	r.log.Info("player destroyed", "by", p.OtherKind, "pos", p.Position)
}

func (r *Resolver) enemy(p Party) {
	if p.OtherKind == entity.KindShield {
		return
	}
	r.queue.Push(event.EnemyDamage{Entity: p.Handle, Amount: p.DamageDealt(), By: p.OtherKind})
	r.explode(p)
}

func (r *Resolver) shield(p Party) {
	if p.OtherKind == entity.KindPowerUp {
		return
	}
	r.queue.Push(event.ShieldDamage{Entity: p.Handle, Amount: p.DamageDealt()})
}

func (r *Resolver) powerUp(p Party, pu *entity.PowerUp) {
	if p.OtherKind == entity.KindAsteroid {
		return
	}
	if !r.reg.Despawn(p.Handle) {
		return
	}
	r.queue.Push(event.PowerUpCollected{Entity: p.Handle, PowerUpType: pu.Type})
	r.explode(p)
	r.log.Info("power-up collected", "handle", p.Handle, "type", pu.Type)
}

// explode requests the party's impact explosion. Missing impact info only
// loses the effect.
func (r *Resolver) explode(p Party) {
	if p.Impact == nil {
		r.log.Error("missing impact info, explosion skipped", "handle", p.Handle, "kind", p.Kind)
		return
	}
	r.queue.Push(event.ExplosionRequested{
		Origin:    p.Position,
		Category:  p.Impact.ImpactCategory,
		Substance: p.Impact.Substance,
	})
}
