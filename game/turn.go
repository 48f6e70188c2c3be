package game

import (
	"fmt"
	"time"

	"go-turnlight/debug"
	"go-turnlight/fade"
	"go-turnlight/input"
	"go-turnlight/strip"
	"go-turnlight/theme"
)

// DefaultLongPress is how long a button must be held to reset the game
const DefaultLongPress = 3 * time.Second

// Turn runs the game: the active seat passes the turn by pressing its own
// button, and any button held for LongPress resets to selection.
type Turn struct {
	seats     []*Seat
	strip     *strip.Strip
	source    input.Source
	style     fade.Style
	longPress time.Duration

	active    int
	pressed   map[int]time.Time
	resetting bool
}

func NewTurn(seats []*Seat, s *strip.Strip, source input.Source, style fade.Style, longPress time.Duration) *Turn {
	if longPress <= 0 {
		longPress = DefaultLongPress
	}
	return &Turn{
		seats:     seats,
		strip:     s,
		source:    source,
		style:     style,
		longPress: longPress,
		active:    -1,
		pressed:   make(map[int]time.Time),
	}
}

// Active is the seat whose turn it is, or -1 before Begin
func (t *Turn) Active() int {
	return t.active
}

// Begin starts play with first as the active seat
func (t *Turn) Begin(first int, now time.Time) error {
	if first < 0 || first >= len(t.seats) {
		return unknownKey(first, len(t.seats))
	}
	inGame := 0
	for _, seat := range t.seats {
		if seat.InGame {
			inGame++
		}
	}
	if inGame == 0 {
		return ErrNoSeatsInGame
	}
	if !t.seats[first].InGame {
		return fmt.Errorf("first player %d is not in game", first)
	}

	for _, seat := range t.seats {
		if seat.Index == first {
			seat.MakeActive()
		} else {
			seat.MakeInactive()
		}
	}
	t.active = first
	t.retargetAll(now)

	t.pressed = make(map[int]time.Time)
	t.resetting = false
	t.source.Reset()
	debug.Log("turn", "game started, seat %d first", first)
	return nil
}

// Step consumes pending events, draws one frame and checks for a long press.
// It returns PhaseResetting while waiting for buttons to be released after a
// long press, then PhaseSelecting once they all are.
func (t *Turn) Step(now time.Time) (Phase, error) {
	if t.resetting {
		return t.stepReset()
	}

	advanced := false
drain:
	for {
		e, ok := t.source.Poll()
		if !ok {
			break
		}
		if err := t.track(e); err != nil {
			return PhasePlaying, err
		}
		if e.Kind == input.Pressed && e.Key == t.active {
			if err := t.advance(now); err != nil {
				return PhasePlaying, err
			}
			advanced = true
			// show the new turn before reading more input
			break drain
		}
	}

	for _, seat := range t.seats {
		seat.Render(PhasePlaying, now)
	}

	// After an advance the queue may still hold releases, so the held set
	// is only trusted on frames that drained everything.
	if advanced {
		return PhasePlaying, nil
	}
	if key, ok := t.longPressed(now); ok {
		debug.Log("turn", "key %d held for %v, resetting", key, t.longPress)
		t.resetting = true
		t.strip.Fill(theme.Black)
		return t.stepReset()
	}
	return PhasePlaying, nil
}

// stepReset drains events, tracking presses and releases, and finishes only
// when nothing is pending and no button is held
func (t *Turn) stepReset() (Phase, error) {
	for {
		e, ok := t.source.Poll()
		if !ok {
			break
		}
		if err := t.track(e); err != nil {
			return PhaseResetting, err
		}
	}
	if len(t.pressed) > 0 {
		return PhaseResetting, nil
	}
	t.resetting = false
	debug.Log("turn", "all buttons released, back to selection")
	return PhaseSelecting, nil
}

func (t *Turn) track(e input.Event) error {
	if e.Key < 0 || e.Key >= len(t.seats) {
		return unknownKey(e.Key, len(t.seats))
	}
	switch e.Kind {
	case input.Pressed:
		t.pressed[e.Key] = e.Timestamp
	case input.Released:
		delete(t.pressed, e.Key)
	}
	return nil
}

// advance passes the turn to the next in-game seat after the active one,
// wrapping around. A lone player gets the turn back.
func (t *Turn) advance(now time.Time) error {
	n := len(t.seats)
	t.seats[t.active].MakeInactive()
	for i := 1; i <= n; i++ {
		next := (t.active + i) % n
		if t.seats[next].InGame {
			t.seats[next].MakeActive()
			debug.Log("turn", "seat %d -> seat %d", t.active, next)
			t.active = next
			t.retargetAll(now)
			return nil
		}
	}
	return ErrNoSeatsInGame
}

func (t *Turn) retargetAll(now time.Time) {
	color := t.seats[t.active].Color
	for _, seat := range t.seats {
		seat.Retarget(color, t.style, now)
	}
}

func (t *Turn) longPressed(now time.Time) (int, bool) {
	for key, ts := range t.pressed {
		if now.Sub(ts) >= t.longPress {
			return key, true
		}
	}
	return -1, false
}
