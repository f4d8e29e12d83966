package config

import "time"

// Game configuration constants.
// All tunable game parameters are centralized here for easy adjustment.

// World dimensions - square world centred on the origin, wrapping at the edges.
const (
	WorldSize       = 1000.0
	WorldHalfSize   = WorldSize / 2
	PhysicsCellSize = 64.0 // Broad-phase cell; >= the largest pair of collider radii
)

// Simulation tick rate
const (
	ServerTickRate = 60
	ServerTickTime = time.Second / ServerTickRate
)

// Hosting
const (
	ClientEventBuffer = 256 // Outcome events buffered per client before dropping
	InputBuffer       = 256 // Pending client inputs before dropping
	FeedPingInterval  = 2 * time.Second
	FeedWriteTimeout  = 5 * time.Second
)

// Client rendering
const (
	ClientTargetFPS         = 30
	ClientTargetFrameTime   = time.Second / ClientTargetFPS
	ViewWidth               = 480.0 // Viewport width in world units
	ViewHeight              = 270.0 // Viewport height in world units
	MaxTermWidth            = 200   // Larger terminals render at this width
	MaxTermHeight           = 60
	RadarCols               = 24  // Radar width in terminal cells
	RadarRows               = 12  // Radar height in terminal cells (two sub-rows each)
	EventLogLines           = 6   // Recent outcome lines kept by the HUD
	ExplosionDisplaySeconds = 0.4 // How long an explosion ring stays on screen
)

// Shutdown and inactivity
const (
	ShutdownDisplaySeconds   = 10.0 // Seconds to show the shutdown notice before disconnecting
	InactivityWarnUser       = 90   // Seconds
	InactivityDisconnectUser = 120  // Seconds
)

// Asteroid shape ranges. Side counts and vertex radii are half-open [min, max).
const (
	AsteroidSidesMinL = 12
	AsteroidSidesMaxL = 19
	AsteroidSidesMinM = 7
	AsteroidSidesMaxM = 14
	AsteroidSidesMinS = 5
	AsteroidSidesMaxS = 9

	AsteroidRadiusMinL = 20.0
	AsteroidRadiusMaxL = 40.0
	AsteroidRadiusMinM = 10.0
	AsteroidRadiusMaxM = 20.0
	AsteroidRadiusMinS = 5.0
	AsteroidRadiusMaxS = 10.0
)

// Asteroid physics and scoring per category
const (
	AsteroidColliderL = 28.0
	AsteroidColliderM = 14.0
	AsteroidColliderS = 7.0

	AsteroidMassL = 10.0
	AsteroidMassM = 5.0
	AsteroidMassS = 2.0

	ScoreLargeAsteroid  = 5
	ScoreMediumAsteroid = 10
	ScoreSmallAsteroid  = 20

	AsteroidContactDamageL = 3
	AsteroidContactDamageM = 2
	AsteroidContactDamageS = 1

	AsteroidMaxLinearSpeed  = 50.0 // Each velocity component drawn from [-max, max)
	AsteroidMaxAngularSpeed = 2.5
	AsteroidMinDistance     = 150.0 // Wave asteroids never spawn closer to the player
)

// Fragmentation
const (
	FragmentCountMin = 2   // Inclusive
	FragmentCountMax = 3   // Inclusive
	FragmentSpread   = 20.0 // Max offset from the destroyed asteroid's origin
)

// Enemy classes
const (
	SmallEnemyHealth        = 10
	SmallEnemySpeed         = 50.0
	SmallEnemyScore         = 100
	SmallEnemyCollider      = 9.0
	SmallEnemyMass          = 4.0
	SmallEnemyContactDamage = 5
	SmallEnemyMinDistance   = 200.0

	LargeEnemyHealth        = 30
	LargeEnemySpeed         = 40.0
	LargeEnemyScore         = 250
	LargeEnemyCollider      = 18.0
	LargeEnemyMass          = 10.0
	LargeEnemyContactDamage = 10
	LargeEnemyMinDistance   = 300.0

	BossHealth        = 150
	BossSpeed         = 80.0
	BossScore         = 500
	BossCollider      = 17.0
	BossMass          = 40.0
	BossContactDamage = 20
	BossMinDistance   = 300.0
)

// Boss behaviour
const (
	BossRotatingThreshold   = 200.0 // Distance to the player that starts the wind-up
	BossRevertingThreshold  = 100.0 // Distance beyond which a charge is abandoned
	BossAttackMultiplier    = 10.0  // Acceleration multiplier while charging
	BossMorphSeconds        = 0.7
	BossRevertSeconds       = 0.6
	BossIdleAngularVelocity = 2.0
	BossAimTolerance        = 0.1 // Radians
)

// Enemy weapons
const (
	EnemyProjectileDamage   = 5
	EnemyProjectileSpeed    = 100.0
	EnemyProjectileLifetime = 3.5
	EnemyFireCooldown       = 1.0
	EnemyMuzzleOffset       = 15.0
)

// Player
const (
	PlayerCollider      = 10.0
	PlayerMass          = 1.0
	PlayerThrust        = 150.0 // Acceleration units per second²
	PlayerRotationSpeed = 4.0   // Radians per second
	PlayerMaxSpeed      = 220.0
	PlayerDrag          = 0.5 // Fraction of velocity lost per second while not thrusting
)

// Player weapon
const (
	PlayerProjectileDamage   = 5
	PlayerProjectileSpeed    = 400.0
	PlayerProjectileLifetime = 1.2
	PlayerProjectileCollider = 1.5
	PlayerFireCooldown       = 0.2
	WeaponMaxLevel           = 3
	MuzzleForwardOffset      = 20.0
)

// Shield
const (
	ShieldMaxStrength         = 15
	ShieldCollider            = 14.0
	ShieldDefaultTransparency = 0.4
)

// Power-ups
const (
	PowerUpCollider    = 20.0
	PowerUpMinDistance = 300.0
)

// Placement
const (
	DefaultPlacementMaxAttempts      = 32
	DefaultFragmentMinPlayerDistance = 60.0
	DefaultWeaponPowerUpEvery        = 3
)
