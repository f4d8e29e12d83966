// Package event defines the plain-data notifications exchanged during a tick.
package event

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/asteroid-waves/internal/entity"
)

// Type identifies an event.
type Type int

const (
	// TypeExplosionRequested asks presentation to play an explosion
	// Trigger: collision resolver, damage tracker, loadout | Consumer: renderer/audio
	TypeExplosionRequested Type = iota

	// TypeScoreChanged adds to the run's score
	// Trigger: asteroid destroyed, enemy killed, player destroyed (delta 0) | Consumer: score tracker, UI
	TypeScoreChanged

	// TypeAsteroidCountChanged reports asteroids entering or leaving the world
	// Trigger: registry flush/compaction | Consumer: UI
	TypeAsteroidCountChanged

	// TypeWaveStarted announces a new wave and its composition
	// Trigger: spawn director | Consumer: UI, audio
	TypeWaveStarted

	// TypePowerUpCollected reports a consumed power-up
	// Trigger: collision resolver | Consumer: loadout, indicator UI
	TypePowerUpCollected

	// TypePlayerDestroyed ends the run
	// Trigger: collision resolver | Consumer: outer state machine
	TypePlayerDestroyed

	// TypeAsteroidDestroyed carries the category and origin of a destroyed asteroid
	// Trigger: collision resolver | Consumer: asteroid spawner (fragments)
	TypeAsteroidDestroyed

	// TypeEnemyDamage applies damage to one enemy
	// Trigger: collision resolver | Consumer: damage tracker
	TypeEnemyDamage

	// TypeShieldDamage applies damage to one shield
	// Trigger: collision resolver | Consumer: damage tracker
	TypeShieldDamage

	// TypeSpawnRequested asks a spawner to materialize an entity
	// Trigger: spawn director, loadout, debug triggers | Consumer: spawner
	TypeSpawnRequested

	// TypeShieldChanged reports a new shield strength and its transparency
	// Trigger: damage tracker, loadout | Consumer: renderer
	TypeShieldChanged

	// TypeWeaponUpgraded reports a new weapon level
	// Trigger: loadout | Consumer: UI
	TypeWeaponUpgraded

	// TypeIndicatorAttached points a static indicator from the player to a target
	// Trigger: power-up spawner | Consumer: UI
	TypeIndicatorAttached

	// TypeIndicatorRemoved removes the indicator of a collected target
	// Trigger: loadout | Consumer: UI
	TypeIndicatorRemoved

	// TypeStateChanged reports an outer game state transition
	// Trigger: game loop | Consumer: UI
	TypeStateChanged
)

var typeNames = [...]string{
	TypeExplosionRequested:   "explosion_requested",
	TypeScoreChanged:         "score_changed",
	TypeAsteroidCountChanged: "asteroid_count_changed",
	TypeWaveStarted:          "wave_started",
	TypePowerUpCollected:     "power_up_collected",
	TypePlayerDestroyed:      "player_destroyed",
	TypeAsteroidDestroyed:    "asteroid_destroyed",
	TypeEnemyDamage:          "enemy_damage",
	TypeShieldDamage:         "shield_damage",
	TypeSpawnRequested:       "spawn_requested",
	TypeShieldChanged:        "shield_changed",
	TypeWeaponUpgraded:       "weapon_upgraded",
	TypeIndicatorAttached:    "indicator_attached",
	TypeIndicatorRemoved:     "indicator_removed",
	TypeStateChanged:         "state_changed",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "unknown"
	}
	return typeNames[t]
}

// Outcome reports whether events of this type leave the core for presentation layers.
// The rest are requests consumed inside the tick.
func (t Type) Outcome() bool {
	switch t {
	case TypeAsteroidDestroyed, TypeEnemyDamage, TypeShieldDamage, TypeSpawnRequested:
		return false
	default:
		return true
	}
}

// Event is a plain data notification with no behaviour.
type Event interface {
	Type() Type
}

// ExplosionRequested asks for an explosion of the given intensity and material.
type ExplosionRequested struct {
	Origin    mgl64.Vec2       `json:"origin" msgpack:"origin"`
	Category  entity.Size      `json:"category" msgpack:"category"`
	Substance entity.Substance `json:"substance" msgpack:"substance"`
}

// ScoreChanged adds Delta to the score. Deltas are never negative.
type ScoreChanged struct {
	Delta uint16 `json:"delta" msgpack:"delta"`
}

// AsteroidCountChanged reports asteroids added (positive) or removed (negative).
type AsteroidCountChanged struct {
	Delta int `json:"delta" msgpack:"delta"`
}

// Composition is what a wave spawns.
type Composition struct {
	Asteroids     int  `json:"asteroids" msgpack:"asteroids"`
	SmallEnemies  int  `json:"small_enemies" msgpack:"small_enemies"`
	LargeEnemies  int  `json:"large_enemies" msgpack:"large_enemies"`
	Boss          bool `json:"boss" msgpack:"boss"`
	ShieldPowerUp bool `json:"shield_power_up" msgpack:"shield_power_up"`
	WeaponPowerUp bool `json:"weapon_power_up" msgpack:"weapon_power_up"`
}

// WaveStarted announces wave number Wave.
type WaveStarted struct {
	Wave        int         `json:"wave" msgpack:"wave"`
	Composition Composition `json:"composition" msgpack:"composition"`
}

// PowerUpCollected reports that Entity was consumed.
type PowerUpCollected struct {
	Entity      entity.Handle      `json:"entity" msgpack:"entity"`
	PowerUpType entity.PowerUpType `json:"power_up_type" msgpack:"power_up_type"`
}

// PlayerDestroyed ends the run.
type PlayerDestroyed struct {
	Entity entity.Handle `json:"entity" msgpack:"entity"`
	Origin mgl64.Vec2    `json:"origin" msgpack:"origin"`
}

// AsteroidDestroyed drives fragmentation.
type AsteroidDestroyed struct {
	Category entity.Size `json:"category" msgpack:"category"`
	Origin   mgl64.Vec2  `json:"origin" msgpack:"origin"`
}

// EnemyDamage removes Amount health from Entity.
type EnemyDamage struct {
	Entity entity.Handle `json:"entity" msgpack:"entity"`
	Amount uint16        `json:"amount" msgpack:"amount"`
	By     entity.Kind   `json:"by" msgpack:"by"`
}

// ShieldDamage removes Amount strength from Entity.
type ShieldDamage struct {
	Entity entity.Handle `json:"entity" msgpack:"entity"`
	Amount uint16        `json:"amount" msgpack:"amount"`
}

// Placement says how a spawner chooses the position of a requested entity.
type Placement int

const (
	PlaceAt                Placement = iota // Use Position as is
	PlaceAwayFromPlayer                     // Sample a point at least the kind's minimum distance from the player
	PlaceAttachedToPlayer                   // Child of the player (shield)
)

// SpawnRequested asks a spawner to materialize one entity.
type SpawnRequested struct {
	Kind        entity.Kind        `json:"kind" msgpack:"kind"`
	Category    entity.Size        `json:"category" msgpack:"category"`
	EnemyClass  entity.EnemyClass  `json:"enemy_class" msgpack:"enemy_class"`
	PowerUpType entity.PowerUpType `json:"power_up_type" msgpack:"power_up_type"`
	Position    mgl64.Vec2         `json:"position" msgpack:"position"`
	Placement   Placement          `json:"placement" msgpack:"placement"`
}

// ShieldChanged reports a shield's strength and the transparency it should be drawn with.
type ShieldChanged struct {
	Entity       entity.Handle `json:"entity" msgpack:"entity"`
	Strength     int16         `json:"strength" msgpack:"strength"`
	MaxStrength  int16         `json:"max_strength" msgpack:"max_strength"`
	Transparency float64       `json:"transparency" msgpack:"transparency"`
}

// WeaponUpgraded reports the player's new weapon level.
type WeaponUpgraded struct {
	Level int `json:"level" msgpack:"level"`
}

// IndicatorAttached points from the player toward Target at Point.
type IndicatorAttached struct {
	Target entity.Handle `json:"target" msgpack:"target"`
	Point  mgl64.Vec2    `json:"point" msgpack:"point"`
}

// IndicatorRemoved removes the indicator for Target.
type IndicatorRemoved struct {
	Target entity.Handle `json:"target" msgpack:"target"`
}

// StateChanged reports an outer state transition. States are named for the wire.
type StateChanged struct {
	From string `json:"from" msgpack:"from"`
	To   string `json:"to" msgpack:"to"`
}

func (ExplosionRequested) Type() Type   { return TypeExplosionRequested }
func (ScoreChanged) Type() Type         { return TypeScoreChanged }
func (AsteroidCountChanged) Type() Type { return TypeAsteroidCountChanged }
func (WaveStarted) Type() Type          { return TypeWaveStarted }
func (PowerUpCollected) Type() Type     { return TypePowerUpCollected }
func (PlayerDestroyed) Type() Type      { return TypePlayerDestroyed }
func (AsteroidDestroyed) Type() Type    { return TypeAsteroidDestroyed }
func (EnemyDamage) Type() Type          { return TypeEnemyDamage }
func (ShieldDamage) Type() Type         { return TypeShieldDamage }
func (SpawnRequested) Type() Type       { return TypeSpawnRequested }
func (ShieldChanged) Type() Type        { return TypeShieldChanged }
func (WeaponUpgraded) Type() Type       { return TypeWeaponUpgraded }
func (IndicatorAttached) Type() Type    { return TypeIndicatorAttached }
func (IndicatorRemoved) Type() Type     { return TypeIndicatorRemoved }
func (StateChanged) Type() Type         { return TypeStateChanged }
