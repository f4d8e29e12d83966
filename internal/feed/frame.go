// Package feed streams a game's outcome events to websocket subscribers as
// JSON text or msgpack binary frames.
package feed

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tomz197/asteroid-waves/internal/loop"
)

// Format selects the frame encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatMsgpack
)

// ParseFormat maps a query value to a Format. The empty string means JSON.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "json":
		return FormatJSON, nil
	case "msgpack":
		return FormatMsgpack, nil
	default:
		return FormatJSON, fmt.Errorf("unknown feed format %q", s)
	}
}

func (f Format) String() string {
	if f == FormatMsgpack {
		return "msgpack"
	}
	return "json"
}

// Frame types that are not event type names.
const (
	TypeHello    = "hello"
	TypeShutdown = "server_shutdown"
)

// Frame is one message on the feed. Type is an event type name or one of the
// Type constants above.
type Frame struct {
	Tick uint64 `json:"tick" msgpack:"tick"`
	Type string `json:"type" msgpack:"type"`
	Data any    `json:"data,omitempty" msgpack:"data,omitempty"`
}

// Hello is the first frame's payload: where the game stands when a
// subscriber joins.
type Hello struct {
	State     string `json:"state" msgpack:"state"`
	Wave      int    `json:"wave" msgpack:"wave"`
	Score     uint64 `json:"score" msgpack:"score"`
	Asteroids int    `json:"asteroids" msgpack:"asteroids"`
	Enemies   int    `json:"enemies" msgpack:"enemies"`
}

// HelloFrame summarizes a snapshot.
func HelloFrame(s *loop.Snapshot) Frame {
	return Frame{
		Tick: s.Tick,
		Type: TypeHello,
		Data: Hello{
			State:     s.State.String(),
			Wave:      s.Wave,
			Score:     s.Score,
			Asteroids: s.Asteroids,
			Enemies:   s.Enemies,
		},
	}
}

// Encode serializes a frame and returns the websocket message type to send it as.
func Encode(f Format, fr Frame) (int, []byte, error) {
	switch f {
	case FormatMsgpack:
		b, err := msgpack.Marshal(fr)
		if err != nil {
			return 0, nil, fmt.Errorf("encode %s frame: %w", fr.Type, err)
		}
		return websocket.BinaryMessage, b, nil
	default:
		b, err := json.Marshal(fr)
		if err != nil {
			return 0, nil, fmt.Errorf("encode %s frame: %w", fr.Type, err)
		}
		return websocket.TextMessage, b, nil
	}
}
