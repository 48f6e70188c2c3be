package game

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"go-turnlight/anim"
	"go-turnlight/debug"
	"go-turnlight/input"
	"go-turnlight/strip"
	"go-turnlight/theme"
)

// Chooser picks the first player among seats released together.
// candidates is sorted ascending and never empty.
type Chooser func(candidates []int) int

// ChooseLowest always starts with the lowest seat index
func ChooseLowest(candidates []int) int {
	return candidates[0]
}

// ChooseRandom picks uniformly. A nil source uses the global generator.
func ChooseRandom(r *rand.Rand) Chooser {
	return func(candidates []int) int {
		if r == nil {
			return candidates[rand.IntN(len(candidates))]
		}
		return candidates[r.IntN(len(candidates))]
	}
}

// ChooserByName maps the first_player setting to a Chooser
func ChooserByName(name string) (Chooser, error) {
	switch name {
	case "", "random":
		return ChooseRandom(nil), nil
	case "lowest":
		return ChooseLowest, nil
	}
	return nil, fmt.Errorf("unknown first player rule %q (want random or lowest)", name)
}

// Selection finds out which seats are taken. Players hold their buttons
// together; when the last one lets go the phase ends and one of them starts.
type Selection struct {
	seats  []*Seat
	strip  *strip.Strip
	source input.Source
	idle   anim.Animation
	choose Chooser

	pressed  map[int]bool
	selected map[int]bool
}

func NewSelection(seats []*Seat, s *strip.Strip, source input.Source, idle anim.Animation, choose Chooser) *Selection {
	if choose == nil {
		choose = ChooseRandom(nil)
	}
	return &Selection{
		seats:    seats,
		strip:    s,
		source:   source,
		idle:     idle,
		choose:   choose,
		pressed:  make(map[int]bool),
		selected: make(map[int]bool),
	}
}

// Begin resets every seat and the input source for a fresh round
func (sel *Selection) Begin() {
	for _, seat := range sel.seats {
		seat.Reset()
	}
	sel.idle.Reset()
	sel.source.Reset()
	sel.pressed = make(map[int]bool)
	sel.selected = make(map[int]bool)
}

// Step consumes pending events and draws one frame. It returns PhasePlaying
// and the first player once everyone who pressed has released.
func (sel *Selection) Step(now time.Time) (Phase, int, error) {
	for {
		e, ok := sel.source.Poll()
		if !ok {
			break
		}
		if e.Key < 0 || e.Key >= len(sel.seats) {
			return PhaseSelecting, -1, unknownKey(e.Key, len(sel.seats))
		}

		switch e.Kind {
		case input.Pressed:
			debug.Log("select", "key %d pressed", e.Key)
			sel.pressed[e.Key] = true
			if len(sel.selected) == 0 {
				sel.strip.Fill(theme.Black)
			}
			sel.selected[e.Key] = true
			sel.seats[e.Key].Select()
		case input.Released:
			debug.Log("select", "key %d released", e.Key)
			delete(sel.pressed, e.Key)
		}
	}

	switch {
	case len(sel.pressed) == 0 && len(sel.selected) == 0:
		sel.idle.Animate(now)
	case len(sel.pressed) == 0:
		candidates := sortedKeys(sel.selected)
		first := sel.choose(candidates)
		debug.Log("select", "seats %v taken, first player %d", candidates, first)
		return PhasePlaying, first, nil
	default:
		for _, seat := range sel.seats {
			seat.Render(PhaseSelecting, now)
		}
	}
	return PhaseSelecting, -1, nil
}

func sortedKeys(m map[int]bool) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
