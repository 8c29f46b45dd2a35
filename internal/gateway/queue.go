package gateway

import (
	"sync"

	"github.com/roach88/morf/internal/morph"
)

// eventQueue is a thread-safe FIFO of pending engine events.
type eventQueue struct {
	mu     sync.Mutex
	events []morph.Event
}

func newEventQueue() *eventQueue {
	return &eventQueue{
		events: make([]morph.Event, 0, 16),
	}
}

// Enqueue adds events to the back of the queue.
func (q *eventQueue) Enqueue(events ...morph.Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, events...)
}

// TryDequeue removes and returns the front event.
// Returns (nil, false) if the queue is empty.
func (q *eventQueue) TryDequeue() (morph.Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) == 0 {
		return nil, false
	}

	e := q.events[0]

	// Nil out the slot so the backing array does not pin candidate slices.
	q.events[0] = nil

	if len(q.events) == 1 {
		q.events = q.events[:0]
	} else {
		q.events = q.events[1:]
	}

	return e, true
}

// Len returns the current queue length.
func (q *eventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Reset drops every pending event.
func (q *eventQueue) Reset() {
	q.mu.Lock()
	defer q.mu.Unlock()
	clear(q.events)
	q.events = q.events[:0]
}
