// Package server hosts one game for any number of terminal or feed clients:
// it ticks the game at a fixed rate, merges client inputs and publishes
// snapshots and outcome events.
package server

import (
	"sync/atomic"

	"github.com/tomz197/asteroid-waves/internal/event"
	"github.com/tomz197/asteroid-waves/internal/input"
)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string // Display name for this client
	Input    input.Input
	EventsCh chan ClientEvent // Events sent to client; closed on unregister

	dropped atomic.Uint64
}

// Dropped returns how many events the client missed because its buffer was full.
func (h *ClientHandle) Dropped() uint64 {
	return h.dropped.Load()
}

// ClientInput represents input from a specific client.
type ClientInput struct {
	ClientID int
	Input    input.Input
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventOutcome ClientEventType = iota
	EventServerShutdown
)

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type  ClientEventType
	Tick  uint64      // Tick that produced Event
	Event event.Event // Set for EventOutcome
}
