// Package score accumulates the run's score.
package score

import "github.com/tomz197/asteroid-waves/internal/event"

// Tracker is the run's score. It only ever grows until Reset.
type Tracker struct {
	total uint64
}

// Handle adds ScoreChanged deltas.
func (t *Tracker) Handle(e event.Event) {
	if sc, ok := e.(event.ScoreChanged); ok {
		t.total += uint64(sc.Delta)
	}
}

// Total returns the score.
func (t *Tracker) Total() uint64 {
	return t.total
}

// Reset sets the score back to zero.
func (t *Tracker) Reset() {
	t.total = 0
}
