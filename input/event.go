// Package input carries seat button events from a backend to the game loop.
package input

import (
	"fmt"
	"time"
)

// Kind is the edge of a button event
type Kind int

const (
	Pressed Kind = iota
	Released
)

func (k Kind) String() string {
	switch k {
	case Pressed:
		return "pressed"
	case Released:
		return "released"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Event is one debounced button edge
type Event struct {
	Key       int // seat index
	Kind      Kind
	Timestamp time.Time
}

func (e Event) String() string {
	return fmt.Sprintf("key %d %s at %s", e.Key, e.Kind, e.Timestamp.Format("15:04:05.000"))
}

// Source is polled by the game loop. Poll never blocks; it returns false when
// nothing is pending. Reset discards any backlog.
type Source interface {
	Poll() (Event, bool)
	Reset()
}
