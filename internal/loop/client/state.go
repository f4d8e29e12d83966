package client

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/asteroid-waves/internal/draw"
	"github.com/tomz197/asteroid-waves/internal/entity"
	"github.com/tomz197/asteroid-waves/internal/input"
	"github.com/tomz197/asteroid-waves/internal/loop"
)

// explosion is a ring that grows until it fades out.
type explosion struct {
	origin mgl64.Vec2
	radius float64 // Final radius
	age    float64 // Seconds since requested
}

// ClientState holds what one connection shows: the outcomes it has seen,
// its camera and its screen phase. The game itself lives on the server.
type ClientState struct {
	Input         input.Input
	Camera        mgl64.Vec2 // World point at the centre of the view
	Running       bool       // Client loop running
	shuttingDown  bool       // Server announced shutdown
	shutdownTimer float64    // Countdown before auto-disconnect on shutdown
	isInactive    bool       // Whether the client is in inactive warning state
	wasInactive   bool
	prevGameState loop.State
	prevShutdown  bool
	delta         time.Duration // Frame delta time (client-side)
	termSizeFunc  draw.TermSizeFunc

	lastTick   uint64                       // Tick of the newest outcome seen
	events     []string                     // Event log, oldest first
	indicators map[entity.Handle]mgl64.Vec2 // Power-up targets pointed at from the ship
	explosions []explosion
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Running:    true,
		indicators: make(map[entity.Handle]mgl64.Vec2),
	}
}
