package event

// Queue is the tick's FIFO of events. Handlers may push while the queue is
// being drained; those events are delivered in the same drain, after
// everything that was already queued.
//
// Single consumer (the simulation thread); not safe for concurrent use.
type Queue struct {
	events []Event
	head   int
}

// Push appends an event.
func (q *Queue) Push(e Event) {
	q.events = append(q.events, e)
}

// Pop removes and returns the oldest event.
func (q *Queue) Pop() (Event, bool) {
	if q.head >= len(q.events) {
		q.Reset()
		return nil, false
	}
	e := q.events[q.head]
	q.events[q.head] = nil
	q.head++
	return e, true
}

// Len returns the number of undelivered events.
func (q *Queue) Len() int {
	return len(q.events) - q.head
}

// Drain returns all undelivered events in order and empties the queue.
func (q *Queue) Drain() []Event {
	if q.Len() == 0 {
		q.Reset()
		return nil
	}
	out := make([]Event, q.Len())
	copy(out, q.events[q.head:])
	q.Reset()
	return out
}

// Reset discards everything, keeping the backing array.
func (q *Queue) Reset() {
	clear(q.events)
	q.events = q.events[:0]
	q.head = 0
}
