package ai

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/asteroid-waves/internal/config"
	"github.com/tomz197/asteroid-waves/internal/entity"
	"github.com/tomz197/asteroid-waves/internal/physics"
	"github.com/tomz197/asteroid-waves/internal/spawn"
)

type shot struct {
	pos, dir mgl64.Vec2
}

type fakeShooter struct {
	shots []shot
}

func (f *fakeShooter) SpawnProjectile(owner entity.Kind, pos, dir mgl64.Vec2, spec spawn.ProjectileSpec) *entity.Entity {
	f.shots = append(f.shots, shot{pos, dir})
	return &entity.Entity{}
}

type scene struct {
	reg   *entity.Registry
	world *physics.World
	shoot *fakeShooter
	ctl   *Controller
}

func newScene() *scene {
	s := &scene{
		reg:   entity.NewRegistry(),
		world: physics.NewWorld(physics.CenteredBounds(config.WorldSize), config.PhysicsCellSize),
		shoot: &fakeShooter{},
	}
	s.ctl = NewController(s.reg, s.world, s.shoot, nil)
	return s
}

func (s *scene) add(p entity.Payload, at mgl64.Vec2) (*entity.Entity, *physics.Body) {
	e := s.reg.Spawn(p, nil)
	s.reg.Flush()
	b := &physics.Body{Handle: e.Handle, Position: at, Radius: 5}
	s.world.Add(b)
	return e, b
}

func TestUFOChasesAndShootsAtPlayer(t *testing.T) {
	s := newScene()
	s.add(&entity.Player{WeaponLevel: 1}, mgl64.Vec2{100, 0})
	en := &entity.Enemy{MovementSpeed: 50, FireInterval: 1, FireCooldown: 0.5}
	_, b := s.add(en, mgl64.Vec2{})

	s.ctl.Update(0.25)
	if !b.Velocity.ApproxEqual(mgl64.Vec2{50, 0}) {
		t.Errorf("velocity = %v, want [50 0]", b.Velocity)
	}
	if len(s.shoot.shots) != 0 {
		t.Fatal("fired before the cooldown elapsed")
	}

	s.ctl.Update(0.25)
	s.ctl.Update(0.25)
	if len(s.shoot.shots) != 1 {
		t.Fatalf("shots = %d, want 1", len(s.shoot.shots))
	}
	got := s.shoot.shots[0]
	if !got.dir.ApproxEqual(mgl64.Vec2{1, 0}) || !got.pos.ApproxEqual(mgl64.Vec2{config.EnemyMuzzleOffset, 0}) {
		t.Errorf("shot = %+v, want along +X from the muzzle", got)
	}
	if en.FireCooldown <= 0 || en.FireCooldown > en.FireInterval {
		t.Errorf("cooldown = %v, want reset to (0, %v]", en.FireCooldown, en.FireInterval)
	}
}

func TestUFOHoldsFireWithoutPlayer(t *testing.T) {
	s := newScene()
	en := &entity.Enemy{MovementSpeed: 50, FireInterval: 0.5}
	_, b := s.add(en, mgl64.Vec2{})

	for range 10 {
		s.ctl.Update(0.25)
	}
	if len(s.shoot.shots) != 0 {
		t.Fatalf("shots = %d, want none with no player", len(s.shoot.shots))
	}

	s.add(&entity.Player{}, b.Position.Add(mgl64.Vec2{0, 100}))
	s.ctl.Update(0.25)
	if len(s.shoot.shots) != 1 {
		t.Fatalf("shots = %d, want 1 once a player appears", len(s.shoot.shots))
	}
	if got := s.shoot.shots[0].dir; !got.ApproxEqual(mgl64.Vec2{0, 1}) {
		t.Errorf("shot direction = %v, want toward the player", got)
	}
}

func TestUFOChasesAcrossWrapEdge(t *testing.T) {
	s := newScene()
	s.add(&entity.Player{}, mgl64.Vec2{-490, 0})
	_, b := s.add(&entity.Enemy{MovementSpeed: 10}, mgl64.Vec2{490, 0})

	s.ctl.Update(0.1)
	if b.Velocity[0] <= 0 {
		t.Errorf("velocity = %v, want +X through the wrap edge", b.Velocity)
	}
}

func TestBossChargeCycle(t *testing.T) {
	s := newScene()
	_, pb := s.add(&entity.Player{}, mgl64.Vec2{80, 0})
	boss := &entity.Enemy{MovementSpeed: config.BossSpeed, Boss: &entity.Boss{}}
	_, b := s.add(boss, mgl64.Vec2{})
	b.Rotation = math.Pi / 2
	b.AngularVelocity = config.BossIdleAngularVelocity

	step := func(dt float64) entity.BossPhase {
		s.ctl.Update(dt)
		return boss.Boss.Phase
	}

	if got := step(0.01); got != entity.BossRotating {
		t.Fatalf("phase = %v, want rotating within %v", got, config.BossRotatingThreshold)
	}
	if b.AngularVelocity != 0 {
		t.Errorf("angular velocity = %v, want 0 while aiming", b.AngularVelocity)
	}

	for i := 0; i < 200 && boss.Boss.Phase == entity.BossRotating; i++ {
		step(0.01)
	}
	if boss.Boss.Phase != entity.BossMorphing {
		t.Fatalf("phase = %v, want morphing once aimed", boss.Boss.Phase)
	}

	for i := 0; i < 100 && boss.Boss.Phase == entity.BossMorphing; i++ {
		step(0.1)
	}
	if boss.Boss.Phase != entity.BossAttacking {
		t.Fatalf("phase = %v, want attacking after the morph", boss.Boss.Phase)
	}

	before := b.Velocity.Len()
	step(0.1)
	if b.Velocity.Len() <= before {
		t.Errorf("speed %v -> %v, want acceleration while charging", before, b.Velocity.Len())
	}

	pb.Position = mgl64.Vec2{400, 0}
	if got := step(0.01); got != entity.BossReverting {
		t.Fatalf("phase = %v, want reverting beyond %v", got, config.BossRevertingThreshold)
	}
	for i := 0; i < 100 && boss.Boss.Phase == entity.BossReverting; i++ {
		step(0.1)
	}
	if boss.Boss.Phase != entity.BossIdling || b.AngularVelocity != config.BossIdleAngularVelocity {
		t.Fatalf("phase = %v spin %v, want idling and spinning", boss.Boss.Phase, b.AngularVelocity)
	}
}

func TestBossWithoutPlayerFallsBackToIdle(t *testing.T) {
	for _, phase := range []entity.BossPhase{entity.BossRotating, entity.BossAttacking} {
		t.Run(phase.String(), func(t *testing.T) {
			s := newScene()
			boss := &entity.Enemy{MovementSpeed: config.BossSpeed, Boss: &entity.Boss{Phase: phase}}
			s.add(boss, mgl64.Vec2{})

			s.ctl.Update(0.1)
			if boss.Boss.Phase != entity.BossIdling {
				t.Errorf("phase = %v, want idling", boss.Boss.Phase)
			}
		})
	}
}
