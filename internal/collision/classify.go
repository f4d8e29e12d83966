// Package collision turns collision-started pairs into outcome events.
//
// Every pair is classified once and then resolved from each side's point of
// view: a side's rule only looks at its own kind and the kind of the other
// party, and only ever acts on its own entity.
package collision

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/asteroid-waves/internal/entity"
)

// Party is one side of a classified collision.
type Party struct {
	Handle    entity.Handle
	Kind      entity.Kind // KindUnknown when the handle is not in the registry
	Impact    *entity.ImpactInfo
	OtherKind entity.Kind
	Position  mgl64.Vec2

	self  *entity.Entity
	other *entity.Entity
}

// Locator reads positions from the physics collaborator.
type Locator interface {
	Position(h entity.Handle) (mgl64.Vec2, bool)
}

// Classifier resolves handles against the registry.
type Classifier struct {
	reg *entity.Registry
	loc Locator
}

// NewClassifier creates a classifier reading reg and positions from loc.
func NewClassifier(reg *entity.Registry, loc Locator) *Classifier {
	return &Classifier{reg: reg, loc: loc}
}

// Lookup tries h against every kind in classification order.
// Entities already marked for removal are still found.
func (c *Classifier) Lookup(h entity.Handle) (*entity.Entity, entity.Kind) {
	for _, k := range entity.ClassificationOrder {
		if e, ok := c.reg.Lookup(k, h); ok {
			return e, k
		}
	}
	return nil, entity.KindUnknown
}

// Classify returns both parties of the pair (a, b).
func (c *Classifier) Classify(a, b entity.Handle) (Party, Party) {
	pa := c.party(a)
	pb := c.party(b)
	pa.OtherKind, pa.other = pb.Kind, pb.self
	pb.OtherKind, pb.other = pa.Kind, pa.self
	return pa, pb
}

func (c *Classifier) party(h entity.Handle) Party {
	e, k := c.Lookup(h)
	p := Party{Handle: h, Kind: k, self: e}
	if e != nil {
		p.Impact = e.Impact
	}
	if pos, ok := c.loc.Position(h); ok {
		p.Position = pos
	}
	return p
}

// DamageDealt is the damage the other party inflicts on p: a projectile's
// damage, else the other entity's contact damage, else 1.
func (p Party) DamageDealt() uint16 {
	if p.other == nil {
		return 1
	}
	var dmg uint16
	switch o := p.other.Payload.(type) {
	case *entity.Projectile:
		dmg = o.Damage
	case *entity.Asteroid:
		dmg = o.ContactDamage
	case *entity.Enemy:
		dmg = o.ContactDamage
	}
	if dmg == 0 {
		return 1
	}
	return dmg
}
