package wave

import (
	"testing"

	"github.com/tomz197/asteroid-waves/internal/entity"
	"github.com/tomz197/asteroid-waves/internal/event"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		wave int
		want event.Composition
	}{
		{1, event.Composition{Asteroids: 2, SmallEnemies: 0, ShieldPowerUp: true}},
		{2, event.Composition{Asteroids: 4, SmallEnemies: 1}},
		{3, event.Composition{Asteroids: 6, SmallEnemies: 1, LargeEnemies: 1, ShieldPowerUp: true, WeaponPowerUp: true}},
		{4, event.Composition{Asteroids: 8, SmallEnemies: 2, Boss: true}},
		{6, event.Composition{Asteroids: 12, SmallEnemies: 3, LargeEnemies: 1, WeaponPowerUp: true}},
		{12, event.Composition{Asteroids: 24, SmallEnemies: 5, LargeEnemies: 1, Boss: true, WeaponPowerUp: true}},
	}
	for _, tt := range tests {
		if got := Describe(tt.wave, 3); got != tt.want {
			t.Errorf("Describe(%d) = %+v, want %+v", tt.wave, got, tt.want)
		}
	}
}

func TestDescribeWeaponCadence(t *testing.T) {
	for n := 1; n <= 12; n++ {
		if Describe(n, 0).WeaponPowerUp {
			t.Errorf("wave %d: weapon power-up with cadence disabled", n)
		}
		if got, want := Describe(n, 2).WeaponPowerUp, n%2 == 0; got != want {
			t.Errorf("wave %d, cadence 2: weapon = %v, want %v", n, got, want)
		}
	}
}

func count(events []event.Event) (waves []event.WaveStarted, requests map[entity.Kind]int) {
	requests = map[entity.Kind]int{}
	for _, e := range events {
		switch ev := e.(type) {
		case event.WaveStarted:
			waves = append(waves, ev)
		case event.SpawnRequested:
			requests[ev.Kind]++
		}
	}
	return waves, requests
}

func TestUpdateFiresOncePerClearing(t *testing.T) {
	q := &event.Queue{}
	d := NewDirector(3, q, nil)

	if !d.Update(0) {
		t.Fatal("first empty tick did not start wave 1")
	}
	if d.Update(0) || d.Update(0) {
		t.Fatal("wave fired again before its entities were seen")
	}
	waves, requests := count(q.Drain())
	if len(waves) != 1 || waves[0].Wave != 1 {
		t.Fatalf("waves = %v, want only wave 1", waves)
	}
	if requests[entity.KindAsteroid] != 2 || requests[entity.KindPowerUp] != 1 || requests[entity.KindEnemy] != 0 {
		t.Errorf("requests = %v, want 2 asteroids and 1 power-up", requests)
	}

	d.Update(2)
	d.Update(1)
	if d.Wave() != 1 {
		t.Fatalf("wave = %d while entities remain, want 1", d.Wave())
	}
	if !d.Update(0) || d.Wave() != 2 {
		t.Fatalf("wave = %d after clearing, want 2", d.Wave())
	}
}

func TestWaveIsMonotonicAndResets(t *testing.T) {
	q := &event.Queue{}
	d := NewDirector(3, q, nil)

	prev := d.Wave()
	for range 10 {
		d.Update(0)
		if d.Wave() != prev+1 {
			t.Fatalf("wave = %d, want %d", d.Wave(), prev+1)
		}
		prev = d.Wave()
		d.Update(5)
	}
	q.Reset()

	d.Reset()
	if d.Wave() != 0 {
		t.Fatalf("wave after Reset = %d, want 0", d.Wave())
	}
	if !d.Update(0) || d.Wave() != 1 {
		t.Fatalf("wave after restart = %d, want 1", d.Wave())
	}
}

func TestBossAndLargeEnemyRequests(t *testing.T) {
	q := &event.Queue{}
	d := NewDirector(0, q, nil)
	for range 3 {
		d.Update(0)
		d.Update(1)
	}
	q.Reset()
	d.Update(0) // wave 4

	boss := 0
	for _, e := range q.Drain() {
		if r, ok := e.(event.SpawnRequested); ok && r.Kind == entity.KindEnemy && r.EnemyClass == entity.EnemyBoss {
			boss++
			if r.Placement != event.PlaceAwayFromPlayer {
				t.Errorf("boss placement = %v, want away from player", r.Placement)
			}
		}
	}
	if boss != 1 {
		t.Errorf("boss requests = %d, want 1", boss)
	}
}
