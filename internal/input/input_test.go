package input

import (
	"testing"
	"time"
)

func newTestStream(now *time.Time) *Stream {
	return &Stream{
		ch:  make(chan byte, 64),
		now: func() time.Time { return *now },
	}
}

func TestReadInputKeys(t *testing.T) {
	tests := []struct {
		name  string
		bytes string
		check func(Input) bool
	}{
		{"arrow up", "\x1b[A", func(in Input) bool { return in.Up && !in.Escape }},
		{"arrow left", "\x1b[D", func(in Input) bool { return in.Left }},
		{"arrow right", "\x1b[C", func(in Input) bool { return in.Right }},
		{"bare escape", "\x1b", func(in Input) bool { return in.Escape }},
		{"fire and thrust", " w", func(in Input) bool { return in.Space && in.Up }},
		{"enter", "\r", func(in Input) bool { return in.Enter }},
		{"next wave", "n", func(in Input) bool { return in.NextWave }},
		{"power-ups", "P", func(in Input) bool { return in.PowerUps }},
		{"quit", "q", func(in Input) bool { return in.Quit }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := time.Unix(100, 0)
			s := newTestStream(&now)
			for _, b := range []byte(tt.bytes) {
				s.ch <- b
			}
			in := ReadInput(s)
			if !tt.check(in) {
				t.Errorf("ReadInput(%q) = %+v", tt.bytes, in)
			}
			if string(in.Pressed) != tt.bytes {
				t.Errorf("Pressed = %q, want %q", in.Pressed, tt.bytes)
			}
		})
	}
}

func TestKeyHoldExpires(t *testing.T) {
	now := time.Unix(100, 0)
	s := newTestStream(&now)
	s.ch <- ' '

	if !ReadInput(s).Space {
		t.Fatal("space not pressed")
	}
	now = now.Add(keyHoldDuration / 2)
	if !ReadInput(s).Space {
		t.Error("space released within the hold window")
	}
	now = now.Add(keyHoldDuration)
	if ReadInput(s).Space {
		t.Error("space still held after the hold window")
	}
}

func TestResetForgetsHeldKeys(t *testing.T) {
	now := time.Unix(100, 0)
	s := newTestStream(&now)
	s.ch <- '\r'
	ReadInput(s)

	s.Reset()
	if ReadInput(s).Enter {
		t.Error("enter survived Reset")
	}
}

func TestClosedStreamQuits(t *testing.T) {
	now := time.Unix(100, 0)
	s := newTestStream(&now)
	close(s.ch)
	if !ReadInput(s).Quit {
		t.Error("closed stream should read as quit")
	}
}

func TestMerge(t *testing.T) {
	got := Input{Left: true, Pressed: []byte("a")}.Merge(Input{Space: true, Escape: true})
	want := Input{Left: true, Space: true, Escape: true}
	if got.Left != want.Left || got.Space != want.Space || got.Escape != want.Escape || got.Right || got.Pressed != nil {
		t.Errorf("Merge = %+v, want %+v", got, want)
	}
}
