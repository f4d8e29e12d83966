package server

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroid-waves/internal/config"
	"github.com/tomz197/asteroid-waves/internal/event"
	"github.com/tomz197/asteroid-waves/internal/input"
	"github.com/tomz197/asteroid-waves/internal/loop"
)

// GameServer is the interface clients use to communicate with the game server.
// Decouples the Client from the concrete Server implementation, enabling
// testing and potential network-based server implementations.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	SendInput(clientID int, in input.Input)
	GetSnapshot() *loop.Snapshot
}

// Server runs one shared game and fans its outcomes out to every client.
type Server struct {
	game         *loop.Game
	snapshot     atomic.Pointer[loop.Snapshot]
	clients      map[int]*ClientHandle
	nextClientID int
	inputChan    chan ClientInput
	registerCh   chan *ClientHandle
	unregisterCh chan int
	mu           sync.RWMutex
	autopilot    bool
	log          *log.Logger
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// NewServer creates a server around a fresh game. A nil logger discards diagnostics.
func NewServer(settings config.Settings, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		game:         loop.NewGame(settings, logger),
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		inputChan:    make(chan ClientInput, config.InputBuffer),
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
		autopilot:    settings.Autopilot,
		log:          logger.WithPrefix("server"),
	}

	// Create initial snapshot
	s.snapshot.Store(s.game.Snapshot(nil))
	return s
}

// Run starts the fixed-tick server loop. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	dt := config.ServerTickTime.Seconds()
	s.log.Info("running", "tick", config.ServerTickTime, "autopilot", s.autopilot)

	for {
		select {
		case <-ctx.Done():
			s.log.Info("stopped", "ticks", s.game.Tick())
			return
		default:
		}

		frameStart := time.Now()
		s.Step(dt)

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ServerTickTime {
			time.Sleep(config.ServerTickTime - elapsed)
		}
	}
}

// Step runs one tick: registrations, inputs, game update, event fan-out and
// a new snapshot.
func (s *Server) Step(dt float64) {
	s.processRegistrations()
	in := s.collectInputs()
	if s.autopilot {
		in = in.Merge(s.game.Autopilot())
	}

	outcomes := s.game.Update(in, dt)
	s.broadcast(s.game.Tick(), outcomes)
	s.createSnapshot()
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	// Notify all connected clients about the shutdown
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			s.log.Warn("shutdown timed out", "clients", s.Clients())
			return
		case <-ticker.C:
			s.processRegistrations()
			if s.Clients() == 0 {
				return
			}
		}
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	handle := &ClientHandle{
		ID:       id,
		Username: username,
		EventsCh: make(chan ClientEvent, config.ClientEventBuffer),
	}

	s.registerCh <- handle
	return handle
}

// UnregisterClient removes a client from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// SendInput sends input from a client to the server.
func (s *Server) SendInput(clientID int, in input.Input) {
	select {
	case s.inputChan <- ClientInput{ClientID: clientID, Input: in}:
	default:
		// Input channel full, drop input
	}
}

// GetSnapshot returns the current snapshot.
func (s *Server) GetSnapshot() *loop.Snapshot {
	return s.snapshot.Load()
}

// Clients returns the number of registered clients.
func (s *Server) Clients() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// processRegistrations handles pending client registrations/unregistrations.
func (s *Server) processRegistrations() {
	for {
		select {
		case handle := <-s.registerCh:
			s.mu.Lock()
			s.clients[handle.ID] = handle
			s.mu.Unlock()
			s.log.Info("client joined", "id", handle.ID, "user", handle.Username)
		case clientID := <-s.unregisterCh:
			s.mu.Lock()
			if handle, ok := s.clients[clientID]; ok {
				close(handle.EventsCh)
				delete(s.clients, clientID)
				s.log.Info("client left", "id", clientID, "user", handle.Username, "dropped", handle.Dropped())
			}
			s.mu.Unlock()
		default:
			return
		}
	}
}

// collectInputs gathers pending inputs and returns the union of every
// client's latest input.
func (s *Server) collectInputs() input.Input {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		select {
		case ci := <-s.inputChan:
			if handle, ok := s.clients[ci.ClientID]; ok {
				handle.Input = ci.Input
			}
		default:
			var merged input.Input
			for _, handle := range s.clients {
				merged = merged.Merge(handle.Input)
			}
			return merged
		}
	}
}

// broadcast sends the tick's outcomes to every client without blocking.
// A client whose buffer is full misses the event.
func (s *Server) broadcast(tick uint64, outcomes []event.Event) {
	if len(outcomes) == 0 {
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, handle := range s.clients {
		for _, e := range outcomes {
			select {
			case handle.EventsCh <- ClientEvent{Type: EventOutcome, Tick: tick, Event: e}:
			default:
				handle.dropped.Add(1)
			}
		}
	}
}

// createSnapshot publishes an immutable copy of the game for readers.
func (s *Server) createSnapshot() {
	prev := s.snapshot.Load()
	s.snapshot.Store(s.game.Snapshot(make([]loop.Blip, 0, len(prev.Blips))))
}
