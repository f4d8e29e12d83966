package loop

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/asteroid-waves/internal/config"
	"github.com/tomz197/asteroid-waves/internal/entity"
	"github.com/tomz197/asteroid-waves/internal/event"
	"github.com/tomz197/asteroid-waves/internal/input"
	"github.com/tomz197/asteroid-waves/internal/spawn"
)

const dt = 1.0 / 60

func newTestGame(t *testing.T, seed uint64) *Game {
	t.Helper()
	s := config.DefaultSettings()
	s.Seed = seed
	return NewGame(s, nil)
}

func find[T event.Event](events []event.Event) []T {
	var out []T
	for _, e := range events {
		if v, ok := e.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// clearField removes every asteroid, enemy and power-up without side effects.
func clearField(g *Game) {
	g.skipWave()
	g.reg.Each(entity.KindPowerUp, func(e *entity.Entity) bool {
		g.reg.Despawn(e.Handle)
		return true
	})
	g.compact()
}

// started returns a game in its first wave with every wave entity live.
func started(t *testing.T) *Game {
	t.Helper()
	g := newTestGame(t, 7)
	g.Update(input.Input{}, dt)
	g.Update(input.Input{}, dt)
	return g
}

func playerPos(t *testing.T, g *Game) mgl64.Vec2 {
	t.Helper()
	pe, _, ok := g.reg.Player()
	if !ok {
		t.Fatal("no player")
	}
	pos, _ := g.world.Position(pe.Handle)
	return pos
}

func TestFirstUpdateStartsFirstWave(t *testing.T) {
	g := newTestGame(t, 1)
	out := g.Update(input.Input{}, dt)

	if g.State() != StatePlaying {
		t.Fatalf("state = %v, want playing", g.State())
	}
	sc := find[event.StateChanged](out)
	if len(sc) != 1 || sc[0] != (event.StateChanged{From: "starting", To: "playing"}) {
		t.Errorf("state changes = %v", sc)
	}
	ws := find[event.WaveStarted](out)
	if len(ws) != 1 || ws[0].Wave != 1 || ws[0].Composition.Asteroids != 2 || !ws[0].Composition.ShieldPowerUp {
		t.Fatalf("wave started = %+v", ws)
	}
	if n := len(find[event.IndicatorAttached](out)); n != 1 {
		t.Errorf("indicators = %d, want 1 for the shield power-up", n)
	}
	for _, e := range out {
		if !e.Type().Outcome() {
			t.Errorf("request %v leaked into the outcomes", e.Type())
		}
	}
	if got := g.reg.WaveScoped(); got != 2 {
		t.Errorf("wave-scoped = %d, want the 2 queued asteroids", got)
	}

	out = g.Update(input.Input{}, dt)
	if g.Asteroids() != 2 || g.reg.Count(entity.KindAsteroid) != 2 {
		t.Errorf("asteroids = %d (registry %d), want 2", g.Asteroids(), g.reg.Count(entity.KindAsteroid))
	}
	if len(find[event.WaveStarted](out)) != 0 {
		t.Error("a second wave started while the first is alive")
	}
}

func TestProjectileSplitsLargeAsteroid(t *testing.T) {
	g := started(t)
	clearField(g)

	at := mgl64.Vec2{300, 300}
	a := g.spawner.SpawnAsteroid(entity.SizeL, at)
	g.spawner.SpawnProjectile(entity.KindPlayer, at, mgl64.Vec2{1, 0}, spawn.PlayerShot)

	out := g.Update(input.Input{}, dt)

	if e, ok := g.reg.Get(a.Handle); ok && !e.Despawned() {
		t.Fatal("asteroid survived the hit")
	}
	if g.Score() != config.ScoreLargeAsteroid {
		t.Errorf("score = %d, want %d", g.Score(), config.ScoreLargeAsteroid)
	}
	if n := g.reg.Pending(entity.KindAsteroid); n < 2 || n > 3 {
		t.Fatalf("fragments = %d, want 2 or 3", n)
	}
	if len(find[event.WaveStarted](out)) != 0 {
		t.Error("wave advanced while fragments were queued")
	}
	explosions := find[event.ExplosionRequested](out)
	if len(explosions) != 2 {
		t.Errorf("explosions = %d, want asteroid and projectile", len(explosions))
	}

	g.Update(input.Input{}, dt)
	g.reg.Each(entity.KindAsteroid, func(e *entity.Entity) bool {
		if c := e.Payload.(*entity.Asteroid).Category; c != entity.SizeM {
			t.Errorf("fragment category = %v, want M", c)
		}
		return true
	})
	if g.Asteroids() != g.reg.Count(entity.KindAsteroid) {
		t.Errorf("asteroid count %d drifted from registry %d", g.Asteroids(), g.reg.Count(entity.KindAsteroid))
	}
	if g.Wave() != 1 {
		t.Errorf("wave = %d, want 1", g.Wave())
	}
}

func TestClearedFieldStartsNextWave(t *testing.T) {
	g := started(t)
	clearField(g)

	out := g.Update(input.Input{}, dt)
	ws := find[event.WaveStarted](out)
	if len(ws) != 1 || ws[0].Wave != 2 {
		t.Fatalf("wave started = %+v, want wave 2", ws)
	}
	if got := g.reg.WaveScoped(); got != 5 {
		t.Errorf("wave-scoped = %d, want 4 asteroids and 1 small enemy queued", got)
	}
}

func TestDebugNextWave(t *testing.T) {
	g := started(t)
	g.Update(input.Input{NextWave: true}, dt)
	if g.Wave() != 2 {
		t.Errorf("wave = %d, want 2 after skipping", g.Wave())
	}
	// Still held: no second skip.
	g.Update(input.Input{NextWave: true}, dt)
	if g.Wave() != 2 {
		t.Errorf("wave = %d, want 2 while the key is held", g.Wave())
	}
}

func TestPlayerDeathAndRestart(t *testing.T) {
	g := started(t)
	clearField(g)

	g.spawner.SpawnAsteroid(entity.SizeS, playerPos(t, g))
	out := g.Update(input.Input{}, dt)

	if g.State() != StateDead {
		t.Fatalf("state = %v, want dead", g.State())
	}
	if len(find[event.PlayerDestroyed](out)) != 1 {
		t.Error("no PlayerDestroyed outcome")
	}
	if _, _, ok := g.reg.Player(); ok {
		t.Error("player still alive")
	}
	scoreAtDeath := g.Score()
	if scoreAtDeath == 0 {
		t.Error("the small asteroid should have scored")
	}

	wave := g.Wave()
	for range 5 {
		g.Update(input.Input{}, dt)
	}
	if g.Wave() != wave {
		t.Errorf("wave advanced from %d to %d while dead", wave, g.Wave())
	}

	out = g.Update(input.Input{Enter: true}, dt)
	if g.State() != StatePlaying {
		t.Fatalf("state = %v, want playing after restart", g.State())
	}
	var path []string
	for _, sc := range find[event.StateChanged](out) {
		path = append(path, sc.From+">"+sc.To)
	}
	if len(path) != 2 || path[0] != "dead>starting" || path[1] != "starting>playing" {
		t.Errorf("transitions = %v", path)
	}
	if g.Score() != 0 || g.Wave() != 1 {
		t.Errorf("score %d wave %d, want a fresh run on wave 1", g.Score(), g.Wave())
	}
	_, p, ok := g.reg.Player()
	if !ok || p.WeaponLevel != 1 || p.Shield != 0 {
		t.Errorf("player = %+v, want a fresh loadout", p)
	}
}

func TestPauseFreezesWorld(t *testing.T) {
	g := started(t)
	var h entity.Handle
	g.reg.Each(entity.KindAsteroid, func(e *entity.Entity) bool {
		h = e.Handle
		return false
	})
	before, _ := g.world.Position(h)

	g.Update(input.Input{Escape: true}, dt)
	if g.State() != StatePaused {
		t.Fatalf("state = %v, want paused", g.State())
	}
	for range 10 {
		g.Update(input.Input{}, dt)
	}
	if after, _ := g.world.Position(h); after != before {
		t.Errorf("asteroid moved from %v to %v while paused", before, after)
	}

	g.Update(input.Input{Escape: true}, dt)
	if g.State() != StatePlaying {
		t.Errorf("state = %v, want playing", g.State())
	}
}

func TestPlayerFiresOneShotPerMuzzle(t *testing.T) {
	g := started(t)
	clearField(g)

	g.Update(input.Input{Space: true}, dt)
	if n := g.reg.Pending(entity.KindProjectile); n != 1 {
		t.Fatalf("shots = %d, want 1 at weapon level 1", n)
	}
	g.Update(input.Input{Space: true}, dt)
	if n := g.reg.Pending(entity.KindProjectile); n != 0 {
		t.Errorf("fired again within the cooldown")
	}

	_, p, _ := g.reg.Player()
	p.WeaponLevel = config.WeaponMaxLevel
	p.FireCooldown = 0
	g.Update(input.Input{Space: true}, dt)
	if n := g.reg.Pending(entity.KindProjectile); n != 3 {
		t.Errorf("shots = %d, want 3 at max weapon level", n)
	}
}

func TestProjectilesExpire(t *testing.T) {
	g := started(t)
	clearField(g)
	pr := g.spawner.SpawnProjectile(entity.KindPlayer, mgl64.Vec2{200, 200}, mgl64.Vec2{0, 1}, spawn.PlayerShot)

	ticks := int(spawn.PlayerShot.Lifetime/dt) + 3
	for range ticks {
		g.Update(input.Input{}, dt)
	}
	if _, ok := g.reg.Get(pr.Handle); ok {
		t.Errorf("projectile %d outlived its %vs life time", pr.Handle, spawn.PlayerShot.Lifetime)
	}
}

func TestExpiredShotDoesNotHit(t *testing.T) {
	g := started(t)
	clearField(g)

	at := mgl64.Vec2{300, 300}
	a := g.spawner.SpawnAsteroid(entity.SizeL, at)
	pr := g.spawner.SpawnProjectile(entity.KindPlayer, at, mgl64.Vec2{1, 0}, spawn.PlayerShot)
	shot := pr.Payload.(*entity.Projectile)
	shot.LifeTime = shot.MaxLifeTime
	score := g.Score()

	out := g.Update(input.Input{}, dt)

	if e, ok := g.reg.Get(a.Handle); !ok || e.Despawned() {
		t.Fatal("asteroid destroyed by a shot that expired this tick")
	}
	if g.Score() != score {
		t.Errorf("score = %d, want %d", g.Score(), score)
	}
	if n := g.reg.Pending(entity.KindAsteroid); n != 0 {
		t.Errorf("fragments = %d, want none", n)
	}
	if ex := find[event.ExplosionRequested](out); len(ex) != 0 {
		t.Errorf("explosions = %+v, want none", ex)
	}
	if _, ok := g.reg.Get(pr.Handle); ok {
		t.Error("expired projectile still registered")
	}
}

func TestSkippedWaveCannotKillPlayer(t *testing.T) {
	g := started(t)
	clearField(g)

	g.spawner.SpawnAsteroid(entity.SizeS, playerPos(t, g))
	out := g.Update(input.Input{NextWave: true}, dt)

	if n := len(find[event.PlayerDestroyed](out)); n != 0 {
		t.Fatal("player destroyed by a skipped asteroid")
	}
	if _, _, ok := g.reg.Player(); !ok {
		t.Error("player gone")
	}
	if g.State() != StatePlaying {
		t.Errorf("state = %v, want playing", g.State())
	}
}

func TestAutopilotRunKeepsInvariants(t *testing.T) {
	g := newTestGame(t, 42)
	var lastScore uint64
	lastWave := 0
	for range 3000 {
		out := g.Update(g.Autopilot(), dt)

		if g.Asteroids() != g.reg.Count(entity.KindAsteroid) {
			t.Fatalf("tick %d: asteroid count %d, registry %d", g.Tick(), g.Asteroids(), g.reg.Count(entity.KindAsteroid))
		}
		restarted := false
		for _, sc := range find[event.StateChanged](out) {
			if sc.To == "starting" {
				restarted = true
			}
		}
		if !restarted {
			if g.Score() < lastScore {
				t.Fatalf("tick %d: score dropped from %d to %d", g.Tick(), lastScore, g.Score())
			}
			if g.Wave() < lastWave {
				t.Fatalf("tick %d: wave dropped from %d to %d", g.Tick(), lastWave, g.Wave())
			}
		}
		lastScore, lastWave = g.Score(), g.Wave()

		g.reg.Each(entity.KindShield, func(e *entity.Entity) bool {
			sh := e.Payload.(*entity.Shield)
			if sh.Strength <= 0 || sh.Strength > sh.MaxStrength {
				t.Fatalf("tick %d: shield %d/%d", g.Tick(), sh.Strength, sh.MaxStrength)
			}
			return true
		})
		g.reg.Each(entity.KindEnemy, func(e *entity.Entity) bool {
			if hp := e.Payload.(*entity.Enemy).HealthPoints; hp <= 0 {
				t.Fatalf("tick %d: live enemy with %d health", g.Tick(), hp)
			}
			return true
		})
	}
	if g.Tick() != 3000 {
		t.Errorf("tick = %d, want 3000", g.Tick())
	}
}

func TestSnapshot(t *testing.T) {
	g := started(t)
	s := g.Snapshot(nil)

	if !s.PlayerAlive || s.WeaponLevel != 1 || s.State != StatePlaying || s.Wave != 1 {
		t.Fatalf("snapshot = %+v", s)
	}
	kinds := map[entity.Kind]int{}
	for _, b := range s.Blips {
		kinds[b.Kind]++
		if b.Kind == entity.KindAsteroid && len(b.Vertices) == 0 {
			t.Error("asteroid blip without a polygon")
		}
	}
	if kinds[entity.KindPlayer] != 1 || kinds[entity.KindAsteroid] != 2 || kinds[entity.KindPowerUp] != 1 {
		t.Errorf("blips by kind = %v", kinds)
	}
	if s.ShieldRatio() != 0 {
		t.Errorf("shield ratio = %v without a shield", s.ShieldRatio())
	}
}
