package entity

import "github.com/go-gl/mathgl/mgl64"

// Payload is the kind-specific data of an entity. The set of payloads is closed:
// only the types in this file implement it, so a type switch over Payload is exhaustive.
type Payload interface {
	Kind() Kind
	sealed()
}

// Asteroid is a destructible space rock. Its polygon and collider are fixed at spawn.
type Asteroid struct {
	Category       Size
	Score          uint16
	ColliderRadius float64
	AdditionalMass float64
	ContactDamage  uint16
	Vertices       []mgl64.Vec2 // Polygon in local space, generated once
}

// BossPhase is the behaviour state of the morph boss.
type BossPhase int

const (
	BossIdling    BossPhase = iota // Drift toward the player, spinning
	BossRotating                   // Turn to face the player
	BossMorphing                   // Timed wind-up
	BossAttacking                  // Charge along the heading
	BossReverting                  // Timed cool-down
)

func (p BossPhase) String() string {
	switch p {
	case BossRotating:
		return "rotating"
	case BossMorphing:
		return "morphing"
	case BossAttacking:
		return "attacking"
	case BossReverting:
		return "reverting"
	default:
		return "idling"
	}
}

// Boss is the boss-specific sub-state of an enemy.
type Boss struct {
	Phase      BossPhase
	PhaseTimer float64 // Seconds spent in the current phase
}

// Enemy is a hostile ship. HealthPoints only decreases; the enemy is removed
// exactly once when it reaches zero.
type Enemy struct {
	Class         EnemyClass
	HealthPoints  int16
	MovementSpeed float64
	ScorePoints   uint16
	ContactDamage uint16
	FireInterval  float64
	FireCooldown  float64 // Seconds until the next shot
	Boss          *Boss   // Non-nil for the morph boss
}

// Projectile is a shot. LifeTime accumulates until it exceeds MaxLifeTime.
type Projectile struct {
	Damage      uint16
	LifeTime    float64
	MaxLifeTime float64
	Owner       Kind // KindPlayer or KindEnemy
}

// Expired reports whether the projectile outlived its maximum life time.
func (p *Projectile) Expired() bool {
	return p.LifeTime > p.MaxLifeTime
}

// PowerUp is consumed on first contact with the player.
type PowerUp struct {
	Type PowerUpType
}

// Shield is attached to the player. 0 < Strength <= MaxStrength while alive.
type Shield struct {
	Strength    int16
	MaxStrength int16
	Owner       Handle
}

// Ratio is Strength/MaxStrength clamped to [0, 1].
func (s *Shield) Ratio() float64 {
	if s.MaxStrength <= 0 || s.Strength <= 0 {
		return 0
	}
	if s.Strength >= s.MaxStrength {
		return 1
	}
	return float64(s.Strength) / float64(s.MaxStrength)
}

// Player is the player's ship and its loadout.
type Player struct {
	WeaponLevel  int
	FireCooldown float64
	Shield       Handle // Zero when no shield is attached
}

func (*Asteroid) Kind() Kind   { return KindAsteroid }
func (*Enemy) Kind() Kind      { return KindEnemy }
func (*Projectile) Kind() Kind { return KindProjectile }
func (*PowerUp) Kind() Kind    { return KindPowerUp }
func (*Shield) Kind() Kind     { return KindShield }
func (*Player) Kind() Kind     { return KindPlayer }

func (*Asteroid) sealed()   {}
func (*Enemy) sealed()      {}
func (*Projectile) sealed() {}
func (*PowerUp) sealed()    {}
func (*Shield) sealed()     {}
func (*Player) sealed()     {}
