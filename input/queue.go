package input

import (
	"sync"

	"github.com/jonboulle/clockwork"

	"go-turnlight/debug"
)

// DefaultQueueSize bounds the backlog between a backend and the game loop
const DefaultQueueSize = 64

// Queue is a bounded Source fed by backend goroutines
type Queue struct {
	events  chan Event
	clock   clockwork.Clock
	mu      sync.Mutex
	held    map[int]bool
	dropped int
}

// NewQueue creates a queue stamping events with clock (real clock when nil)
func NewQueue(size int, clock clockwork.Clock) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Queue{
		events: make(chan Event, size),
		clock:  clock,
		held:   make(map[int]bool),
	}
}

// Push enqueues e without blocking. A full queue drops the event and Held
// keeps reporting the last delivered state.
func (q *Queue) Push(e Event) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	select {
	case q.events <- e:
	default:
		q.dropped++
		debug.Log("input", "queue full, dropped %s (total %d)", e, q.dropped)
		return false
	}

	switch e.Kind {
	case Pressed:
		q.held[e.Key] = true
	case Released:
		delete(q.held, e.Key)
	}
	return true
}

// Press enqueues a Pressed event stamped now
func (q *Queue) Press(key int) bool {
	return q.Push(Event{Key: key, Kind: Pressed, Timestamp: q.clock.Now()})
}

// Release enqueues a Released event stamped now
func (q *Queue) Release(key int) bool {
	return q.Push(Event{Key: key, Kind: Released, Timestamp: q.clock.Now()})
}

// Poll returns the next event, or false when the queue is empty
func (q *Queue) Poll() (Event, bool) {
	select {
	case e := <-q.events:
		return e, true
	default:
		return Event{}, false
	}
}

// Reset discards the backlog. Buttons still physically down stay Held, and
// their eventual release is delivered as usual.
func (q *Queue) Reset() {
	for {
		select {
		case <-q.events:
		default:
			return
		}
	}
}

// Held reports whether key is currently down
func (q *Queue) Held(key int) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.held[key]
}

// Dropped is the number of events lost to overflow
func (q *Queue) Dropped() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}
