package spawn

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/asteroid-waves/internal/config"
	"github.com/tomz197/asteroid-waves/internal/entity"
	"github.com/tomz197/asteroid-waves/internal/physics"
)

// asteroidClass holds the fixed ranges and constants of one asteroid category.
type asteroidClass struct {
	sidesMin, sidesMax   int
	radiusMin, radiusMax float64
	collider, mass       float64
	score, contactDamage uint16
}

// asteroidClassOf returns the constants for category c. XL is built as L.
func asteroidClassOf(c entity.Size) (entity.Size, asteroidClass) {
	switch c {
	case entity.SizeM:
		return c, asteroidClass{
			config.AsteroidSidesMinM, config.AsteroidSidesMaxM,
			config.AsteroidRadiusMinM, config.AsteroidRadiusMaxM,
			config.AsteroidColliderM, config.AsteroidMassM,
			config.ScoreMediumAsteroid, config.AsteroidContactDamageM,
		}
	case entity.SizeS:
		return c, asteroidClass{
			config.AsteroidSidesMinS, config.AsteroidSidesMaxS,
			config.AsteroidRadiusMinS, config.AsteroidRadiusMaxS,
			config.AsteroidColliderS, config.AsteroidMassS,
			config.ScoreSmallAsteroid, config.AsteroidContactDamageS,
		}
	default:
		return entity.SizeL, asteroidClass{
			config.AsteroidSidesMinL, config.AsteroidSidesMaxL,
			config.AsteroidRadiusMinL, config.AsteroidRadiusMaxL,
			config.AsteroidColliderL, config.AsteroidMassL,
			config.ScoreLargeAsteroid, config.AsteroidContactDamageL,
		}
	}
}

// AsteroidBlueprint is a fully drawn asteroid ready to be spawned.
type AsteroidBlueprint struct {
	Asteroid        *entity.Asteroid
	Velocity        mgl64.Vec2
	AngularVelocity float64
}

// NewAsteroid draws an asteroid of the given category. Draw order is fixed:
// side count, each vertex radius in index order, velocity x, velocity y,
// angular velocity.
func NewAsteroid(src Source, category entity.Size) AsteroidBlueprint {
	category, class := asteroidClassOf(category)

	sides := intRange(src, class.sidesMin, class.sidesMax)
	vertices := make([]mgl64.Vec2, sides)
	for i := range vertices {
		r := uniform(src, class.radiusMin, class.radiusMax)
		angle := 2 * math.Pi * float64(i) / float64(sides)
		vertices[i] = physics.Heading(angle).Mul(r)
	}

	vx := uniform(src, -config.AsteroidMaxLinearSpeed, config.AsteroidMaxLinearSpeed)
	vy := uniform(src, -config.AsteroidMaxLinearSpeed, config.AsteroidMaxLinearSpeed)
	av := uniform(src, -config.AsteroidMaxAngularSpeed, config.AsteroidMaxAngularSpeed)

	return AsteroidBlueprint{
		Asteroid: &entity.Asteroid{
			Category:       category,
			Score:          class.score,
			ColliderRadius: class.collider,
			AdditionalMass: class.mass,
			ContactDamage:  class.contactDamage,
			Vertices:       vertices,
		},
		Velocity:        mgl64.Vec2{vx, vy},
		AngularVelocity: av,
	}
}

// EnemyBlueprint is the fixed constant set of one enemy class.
type EnemyBlueprint struct {
	Health        int16
	Speed         float64
	Score         uint16
	Collider      float64
	Mass          float64
	ContactDamage uint16
	MinDistance   float64
	FireInterval  float64 // Zero: never fires
	Spin          float64
	Impact        entity.ImpactInfo
}

// EnemyBlueprintOf returns the constants for class c.
func EnemyBlueprintOf(c entity.EnemyClass) EnemyBlueprint {
	switch c {
	case entity.EnemyLarge:
		return EnemyBlueprint{
			Health:        config.LargeEnemyHealth,
			Speed:         config.LargeEnemySpeed,
			Score:         config.LargeEnemyScore,
			Collider:      config.LargeEnemyCollider,
			Mass:          config.LargeEnemyMass,
			ContactDamage: config.LargeEnemyContactDamage,
			MinDistance:   config.LargeEnemyMinDistance,
			FireInterval:  config.EnemyFireCooldown,
			Spin:          1,
			Impact:        entity.ImpactInfo{ImpactCategory: entity.SizeM, DeathCategory: entity.SizeL, Substance: entity.SubstanceMetal},
		}
	case entity.EnemyBoss:
		return EnemyBlueprint{
			Health:        config.BossHealth,
			Speed:         config.BossSpeed,
			Score:         config.BossScore,
			Collider:      config.BossCollider,
			Mass:          config.BossMass,
			ContactDamage: config.BossContactDamage,
			MinDistance:   config.BossMinDistance,
			Spin:          config.BossIdleAngularVelocity,
			Impact:        entity.ImpactInfo{ImpactCategory: entity.SizeM, DeathCategory: entity.SizeXL, Substance: entity.SubstanceMagic},
		}
	default:
		return EnemyBlueprint{
			Health:        config.SmallEnemyHealth,
			Speed:         config.SmallEnemySpeed,
			Score:         config.SmallEnemyScore,
			Collider:      config.SmallEnemyCollider,
			Mass:          config.SmallEnemyMass,
			ContactDamage: config.SmallEnemyContactDamage,
			MinDistance:   config.SmallEnemyMinDistance,
			FireInterval:  config.EnemyFireCooldown,
			Spin:          1,
			Impact:        entity.ImpactInfo{ImpactCategory: entity.SizeS, DeathCategory: entity.SizeM, Substance: entity.SubstanceMetal},
		}
	}
}

// ProjectileSpec describes a shot.
type ProjectileSpec struct {
	Damage   uint16
	Speed    float64
	Lifetime float64
	Collider float64
}

// PlayerShot is the player's projectile.
var PlayerShot = ProjectileSpec{
	Damage:   config.PlayerProjectileDamage,
	Speed:    config.PlayerProjectileSpeed,
	Lifetime: config.PlayerProjectileLifetime,
	Collider: config.PlayerProjectileCollider,
}

// EnemyShot is the UFO projectile.
var EnemyShot = ProjectileSpec{
	Damage:   config.EnemyProjectileDamage,
	Speed:    config.EnemyProjectileSpeed,
	Lifetime: config.EnemyProjectileLifetime,
	Collider: config.PlayerProjectileCollider,
}

// Impact variants of the kinds that don't derive theirs from a category.
var (
	PlayerImpact     = entity.ImpactInfo{ImpactCategory: entity.SizeM, DeathCategory: entity.SizeL, Substance: entity.SubstanceMetal}
	ShieldImpact     = entity.ImpactInfo{ImpactCategory: entity.SizeM, DeathCategory: entity.SizeM, Substance: entity.SubstanceEnergy}
	ProjectileImpact = entity.ImpactInfo{ImpactCategory: entity.SizeS, DeathCategory: entity.SizeS, Substance: entity.SubstanceEnergy}
	PowerUpImpact    = entity.ImpactInfo{ImpactCategory: entity.SizeS, DeathCategory: entity.SizeM, Substance: entity.SubstanceEnergy}
)

// Collision groups per kind.
const (
	asteroidMask   = physics.LayerAll
	enemyMask      = physics.LayerAll &^ physics.LayerEnemyShot
	playerMask     = physics.LayerAll &^ physics.LayerPlayerShot
	shieldMask     = physics.LayerAll &^ physics.LayerPlayerShot
	playerShotMask = physics.LayerAsteroid | physics.LayerEnemy
	enemyShotMask  = physics.LayerAsteroid | physics.LayerPlayer | physics.LayerShield
	powerUpMask    = physics.LayerPlayer | physics.LayerShield
)
