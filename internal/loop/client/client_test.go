package client

import (
	"bufio"
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/asteroid-waves/internal/config"
	"github.com/tomz197/asteroid-waves/internal/entity"
	"github.com/tomz197/asteroid-waves/internal/event"
	"github.com/tomz197/asteroid-waves/internal/input"
	"github.com/tomz197/asteroid-waves/internal/loop"
	"github.com/tomz197/asteroid-waves/internal/loop/server"
	"github.com/tomz197/asteroid-waves/internal/physics"
)

type fakeServer struct {
	mu           sync.Mutex
	handle       *server.ClientHandle
	snap         *loop.Snapshot
	inputs       int
	unregistered bool
}

func newFakeServer() *fakeServer {
	return &fakeServer{snap: &loop.Snapshot{
		State:          loop.StatePlaying,
		Wave:           2,
		Bounds:         physics.CenteredBounds(config.WorldSize),
		PlayerAlive:    true,
		PlayerPosition: mgl64.Vec2{10, 20},
		Blips: []loop.Blip{
			{Handle: 1, Kind: entity.KindPlayer, Position: mgl64.Vec2{10, 20}, Radius: 6},
			{Handle: 2, Kind: entity.KindAsteroid, Position: mgl64.Vec2{60, 20}, Radius: 10,
				Vertices: []mgl64.Vec2{{10, 0}, {0, 10}, {-10, 0}, {0, -10}}},
		},
	}}
}

func (f *fakeServer) RegisterClient(username string) *server.ClientHandle {
	f.handle = &server.ClientHandle{ID: 1, Username: username, EventsCh: make(chan server.ClientEvent, 16)}
	return f.handle
}

func (f *fakeServer) UnregisterClient(int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unregistered = true
}

func (f *fakeServer) SendInput(int, input.Input) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs++
}

func (f *fakeServer) GetSnapshot() *loop.Snapshot { return f.snap }

func fixedSize() (int, int, error) { return 120, 40, nil }

func newTestClient(gs server.GameServer, keys string, out *bytes.Buffer) *Client {
	r := bufio.NewReader(strings.NewReader(keys))
	return NewClient(gs, r, out, ClientOptions{TermSizeFunc: fixedSize, Username: "tester"})
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		ev   event.Event
		want string
	}{
		{"wave", event.WaveStarted{Wave: 3, Composition: event.Composition{Asteroids: 4, SmallEnemies: 1, LargeEnemies: 1}}, "wave 3: 4 asteroids, 2 ufo"},
		{"boss wave", event.WaveStarted{Wave: 8, Composition: event.Composition{Asteroids: 6, Boss: true}}, "wave 8: 6 asteroids, boss"},
		{"power-up", event.PowerUpCollected{PowerUpType: entity.PowerUpWeapon}, "picked up weapon"},
		{"death", event.PlayerDestroyed{}, "ship destroyed"},
		{"weapon", event.WeaponUpgraded{Level: 2}, "weapon level 2"},
		{"shield", event.ShieldChanged{Strength: 3, MaxStrength: 5}, "shield 3/5"},
		{"shield down", event.ShieldChanged{Strength: 0, MaxStrength: 5}, "shield down"},
		{"paused", event.StateChanged{From: "playing", To: "paused"}, "paused"},
		{"resumed", event.StateChanged{From: "paused", To: "playing"}, ""},
		{"score is silent", event.ScoreChanged{Delta: 5}, ""},
		{"count is silent", event.AsteroidCountChanged{Delta: 2}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := describe(tt.ev); got != tt.want {
				t.Errorf("describe() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApplyTracksIndicatorsAndLog(t *testing.T) {
	var out bytes.Buffer
	c := newTestClient(newFakeServer(), "", &out)

	c.apply(event.IndicatorAttached{Target: 7, Point: mgl64.Vec2{1, 2}})
	if _, ok := c.state.indicators[7]; !ok {
		t.Fatal("indicator not attached")
	}
	c.apply(event.IndicatorRemoved{Target: 7})
	if len(c.state.indicators) != 0 {
		t.Errorf("indicators = %v after removal", c.state.indicators)
	}

	for i := 0; i < config.EventLogLines+3; i++ {
		c.apply(event.WeaponUpgraded{Level: i})
	}
	if len(c.state.events) != config.EventLogLines {
		t.Fatalf("log has %d lines, want %d", len(c.state.events), config.EventLogLines)
	}
	if last := c.state.events[len(c.state.events)-1]; last != "weapon level 8" {
		t.Errorf("newest line = %q", last)
	}

	c.apply(event.ExplosionRequested{Category: entity.SizeL})
	if len(c.state.explosions) != 1 {
		t.Fatal("explosion not recorded")
	}
	c.update(config.ExplosionDisplaySeconds + 0.1)
	if len(c.state.explosions) != 0 {
		t.Error("explosion did not expire")
	}
}

func TestShutdownCountdown(t *testing.T) {
	var out bytes.Buffer
	fs := newFakeServer()
	c := newTestClient(fs, "", &out)

	fs.handle.EventsCh <- server.ClientEvent{Type: server.EventServerShutdown}
	c.processServerEvents()
	if !c.state.shuttingDown {
		t.Fatal("shutdown not noticed")
	}
	c.update(config.ShutdownDisplaySeconds / 2)
	if !c.state.Running {
		t.Fatal("stopped before the countdown ended")
	}
	c.update(config.ShutdownDisplaySeconds)
	if c.state.Running {
		t.Error("still running after the countdown")
	}
}

func TestClosedEventsStopClient(t *testing.T) {
	var out bytes.Buffer
	fs := newFakeServer()
	c := newTestClient(fs, "", &out)
	close(fs.handle.EventsCh)
	c.processServerEvents()
	if c.state.Running {
		t.Error("client keeps running after the server closed its events")
	}
}

func TestRunQuitsAndUnregisters(t *testing.T) {
	var out bytes.Buffer
	fs := newFakeServer()
	c := newTestClient(fs, "q", &out)

	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	if !fs.unregistered {
		t.Error("client did not unregister")
	}
	if fs.inputs == 0 {
		t.Error("no input forwarded")
	}
	if !strings.Contains(out.String(), "WAVE 2") {
		t.Error("HUD never drawn")
	}
}

func TestDrawFrameFromServer(t *testing.T) {
	settings := config.DefaultSettings()
	settings.Seed = 11
	srv := server.NewServer(settings, nil)

	var out bytes.Buffer
	c := newTestClient(srv, "", &out)
	srv.Step(1.0 / 60)
	c.processServerEvents()
	c.update(0)

	if err := c.drawFrame(); err != nil {
		t.Fatal(err)
	}
	frame := out.String()
	for _, want := range []string{"WAVE 1", "wave 1: 2 asteroids", "┌"} {
		if !strings.Contains(frame, want) {
			t.Errorf("frame missing %q", want)
		}
	}
	if len(c.state.indicators) != 1 {
		t.Errorf("indicators = %d, want the wave's shield power-up", len(c.state.indicators))
	}
}

func TestClampTermSize(t *testing.T) {
	w, h, col, row := clampTermSize(config.MaxTermWidth+20, 30)
	if w != config.MaxTermWidth || h != 30 || col != 10 || row != 0 {
		t.Errorf("clampTermSize = %d %d %d %d", w, h, col, row)
	}
}
