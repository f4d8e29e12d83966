// Package entity holds the live set of simulation entities and their kind-specific payloads.
package entity

// Kind classifies an entity for collision dispatch.
type Kind int

const (
	KindUnknown    Kind = iota // Not present in the registry (physics prop, stale handle)
	KindAsteroid               // Wave-scoped space rock
	KindProjectile             // Player or enemy shot
	KindEnemy                  // UFO or boss, wave-scoped
	KindShield                 // Child of the player while a shield power-up is active
	KindPlayer                 // The player's ship
	KindPowerUp                // Collectible
	kindCount
)

// ClassificationOrder is the precedence in which a handle is tried against the registry.
// Kinds are mutually exclusive, so the order only makes lookups deterministic.
var ClassificationOrder = [...]Kind{
	KindAsteroid,
	KindProjectile,
	KindEnemy,
	KindShield,
	KindPlayer,
	KindPowerUp,
}

func (k Kind) String() string {
	switch k {
	case KindAsteroid:
		return "asteroid"
	case KindProjectile:
		return "projectile"
	case KindEnemy:
		return "enemy"
	case KindShield:
		return "shield"
	case KindPlayer:
		return "player"
	case KindPowerUp:
		return "power_up"
	default:
		return "unknown"
	}
}

// WaveScoped reports whether entities of this kind keep the current wave alive.
func (k Kind) WaveScoped() bool {
	return k == KindAsteroid || k == KindEnemy
}

// Size is a category tier used for asteroid fragmentation and explosion intensity.
type Size int

const (
	SizeXL Size = iota
	SizeL
	SizeM
	SizeS
)

func (s Size) String() string {
	switch s {
	case SizeXL:
		return "XL"
	case SizeL:
		return "L"
	case SizeM:
		return "M"
	case SizeS:
		return "S"
	default:
		return "?"
	}
}

// Smaller returns the next tier down. S is terminal.
func (s Size) Smaller() (Size, bool) {
	switch s {
	case SizeXL:
		return SizeL, true
	case SizeL:
		return SizeM, true
	case SizeM:
		return SizeS, true
	default:
		return s, false
	}
}

// Substance is the cosmetic material of an impact; it never affects gameplay math.
type Substance int

const (
	SubstanceUndefined Substance = iota
	SubstanceRock
	SubstanceMetal
	SubstanceEnergy
	SubstanceMagic
)

func (s Substance) String() string {
	switch s {
	case SubstanceRock:
		return "rock"
	case SubstanceMetal:
		return "metal"
	case SubstanceEnergy:
		return "energy"
	case SubstanceMagic:
		return "magic"
	default:
		return "undefined"
	}
}

// ImpactInfo selects the explosion and audio variant for an entity.
type ImpactInfo struct {
	ImpactCategory Size
	DeathCategory  Size
	Substance      Substance
}

// PowerUpType is the effect granted when a power-up is collected.
type PowerUpType int

const (
	PowerUpShield PowerUpType = iota
	PowerUpWeapon
)

func (t PowerUpType) String() string {
	if t == PowerUpWeapon {
		return "weapon"
	}
	return "shield"
}

// EnemyClass selects the fixed constants an enemy is spawned with.
type EnemyClass int

const (
	EnemySmall EnemyClass = iota // Small UFO
	EnemyLarge                   // Large UFO
	EnemyBoss                    // Morph boss
)

func (c EnemyClass) String() string {
	switch c {
	case EnemyLarge:
		return "large"
	case EnemyBoss:
		return "boss"
	default:
		return "small"
	}
}
