package score

import (
	"testing"

	"github.com/tomz197/asteroid-waves/internal/event"
)

func TestScoreOnlyIncreases(t *testing.T) {
	var tr Tracker
	events := []event.Event{
		event.ScoreChanged{Delta: 5},
		event.ScoreChanged{Delta: 0},
		event.WaveStarted{Wave: 1},
		event.AsteroidCountChanged{Delta: -3},
		event.ScoreChanged{Delta: 65535},
	}
	prev := tr.Total()
	for _, e := range events {
		tr.Handle(e)
		if tr.Total() < prev {
			t.Fatalf("score dropped from %d to %d on %v", prev, tr.Total(), e)
		}
		prev = tr.Total()
	}
	if tr.Total() != 65540 {
		t.Errorf("Total() = %d, want 65540", tr.Total())
	}

	tr.Reset()
	if tr.Total() != 0 {
		t.Errorf("Total() after Reset = %d, want 0", tr.Total())
	}
}
