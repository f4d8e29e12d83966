// Package wave is the spawn director: it advances the wave counter when the
// current wave is cleared and requests the next wave's entities.
package wave

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroid-waves/internal/entity"
	"github.com/tomz197/asteroid-waves/internal/event"
)

// Describe computes what wave n spawns. weaponEvery is the weapon power-up
// cadence in waves; 0 disables weapon power-ups.
func Describe(n, weaponEvery int) event.Composition {
	large := 0
	if n%3 == 0 {
		large = 1
	}
	return event.Composition{
		Asteroids:     n * 2,
		SmallEnemies:  int(math.Round(float64(n) * 0.45)),
		LargeEnemies:  large,
		Boss:          n%4 == 0,
		ShieldPowerUp: (n+1)%2 == 0,
		WeaponPowerUp: weaponEvery > 0 && n%weaponEvery == 0,
	}
}

// Director owns the wave counter.
//
// It fires at most once per clearing: after a wave starts it stays disarmed
// until it has seen that wave's entities, so requests still waiting to be
// materialized never trigger another wave.
type Director struct {
	wave        int
	armed       bool
	weaponEvery int
	queue       *event.Queue
	log         *log.Logger
}

// NewDirector creates a director at wave 0. A nil logger discards diagnostics.
func NewDirector(weaponEvery int, queue *event.Queue, logger *log.Logger) *Director {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Director{
		armed:       true,
		weaponEvery: weaponEvery,
		queue:       queue,
		log:         logger.WithPrefix("wave"),
	}
}

// Wave returns the current wave number.
func (d *Director) Wave() int {
	return d.wave
}

// Update is called once per Playing tick with the number of live and queued
// wave-scoped entities. It reports whether a new wave started.
func (d *Director) Update(scoped int) bool {
	if scoped > 0 {
		d.armed = true
		return false
	}
	if !d.armed {
		return false
	}
	d.armed = false
	d.wave++

	c := Describe(d.wave, d.weaponEvery)
	d.queue.Push(event.WaveStarted{Wave: d.wave, Composition: c})
	d.request(c)
	d.log.Info("wave started", "wave", d.wave, "asteroids", c.Asteroids,
		"small", c.SmallEnemies, "large", c.LargeEnemies, "boss", c.Boss,
		"shield", c.ShieldPowerUp, "weapon", c.WeaponPowerUp)
	return true
}

func (d *Director) request(c event.Composition) {
	away := event.PlaceAwayFromPlayer
	for range c.Asteroids {
		d.queue.Push(event.SpawnRequested{Kind: entity.KindAsteroid, Category: entity.SizeL, Placement: away})
	}
	for range c.SmallEnemies {
		d.queue.Push(event.SpawnRequested{Kind: entity.KindEnemy, EnemyClass: entity.EnemySmall, Placement: away})
	}
	for range c.LargeEnemies {
		d.queue.Push(event.SpawnRequested{Kind: entity.KindEnemy, EnemyClass: entity.EnemyLarge, Placement: away})
	}
	if c.Boss {
		d.queue.Push(event.SpawnRequested{Kind: entity.KindEnemy, EnemyClass: entity.EnemyBoss, Placement: away})
	}
	if c.ShieldPowerUp {
		d.queue.Push(event.SpawnRequested{Kind: entity.KindPowerUp, PowerUpType: entity.PowerUpShield, Placement: away})
	}
	if c.WeaponPowerUp {
		d.queue.Push(event.SpawnRequested{Kind: entity.KindPowerUp, PowerUpType: entity.PowerUpWeapon, Placement: away})
	}
}

// Reset returns to wave 0, ready to start wave 1.
func (d *Director) Reset() {
	d.wave = 0
	d.armed = true
}
