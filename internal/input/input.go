// Package input turns a raw terminal byte stream into per-frame key state.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
const keyHoldDuration = 30 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Quit     bool
	Left     bool
	Right    bool
	Up       bool
	Space    bool
	Enter    bool
	Escape   bool
	NextWave bool // Debug: clear the current wave
	PowerUps bool // Debug: drop a shield and a weapon power-up
	Pressed  []byte
}

// Merge returns the union of two inputs. Pressed bytes are not merged.
func (in Input) Merge(o Input) Input {
	return Input{
		Quit:     in.Quit || o.Quit,
		Left:     in.Left || o.Left,
		Right:    in.Right || o.Right,
		Up:       in.Up || o.Up,
		Space:    in.Space || o.Space,
		Enter:    in.Enter || o.Enter,
		Escape:   in.Escape || o.Escape,
		NextWave: in.NextWave || o.NextWave,
		PowerUps: in.PowerUps || o.PowerUps,
	}
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit     time.Time
	left     time.Time
	right    time.Time
	up       time.Time
	space    time.Time
	enter    time.Time
	escape   time.Time
	nextWave time.Time
	powerUps time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch    chan byte
	state keyState
	now   func() time.Time
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch:  make(chan byte, 128),
		now: time.Now,
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Reset forgets every held key, so a key that started the game does not
// also fire on the first playing frame.
func (s *Stream) Reset() {
	s.state = keyState{}
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and accumulates all pressed keys.
// Uses key state persistence to allow detecting simultaneous key combinations.
func ReadInput(s *Stream) Input {
	now := s.now()
	var buf []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.state.quit = now
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	parse(&s.state, buf, now)

	held := func(t time.Time) bool { return now.Sub(t) < keyHoldDuration }
	return Input{
		Quit:     held(s.state.quit),
		Left:     held(s.state.left),
		Right:    held(s.state.right),
		Up:       held(s.state.up),
		Space:    held(s.state.space),
		Enter:    held(s.state.enter),
		Escape:   held(s.state.escape),
		NextWave: held(s.state.nextWave),
		PowerUps: held(s.state.powerUps),
		Pressed:  buf,
	}
}

// parse updates key timestamps from a chunk of raw bytes.
func parse(state *keyState, buf []byte, now time.Time) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				state.up = now
				i += 2
				continue
			case 'C':
				state.right = now
				i += 2
				continue
			case 'D':
				state.left = now
				i += 2
				continue
			case 'B':
				i += 2
				continue
			}
		}

		applyByteToState(state, b, now)
	}
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q':
		state.quit = now
	case 'a', 'A', 'j', 'J':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'i', 'I':
		state.up = now
	case ' ':
		state.space = now
	case '\n', '\r':
		state.enter = now
	case '\x1b':
		state.escape = now
	case 'n', 'N':
		state.nextWave = now
	case 'p', 'P':
		state.powerUps = now
	}
}
