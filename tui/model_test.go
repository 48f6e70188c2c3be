package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"

	"go-turnlight/game"
	"go-turnlight/input"
	"go-turnlight/theme"
)

func newTestModel(t *testing.T) (Model, *input.Queue, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	q := input.NewQueue(32, clock)
	ctrl, err := game.New(game.Options{
		Seats: []game.SeatSpec{
			{Name: "North", Color: theme.RGB{255, 0, 0}, Pixels: 4},
			{Name: "South", Color: theme.RGB{0, 0, 255}, Pixels: 4},
		},
		Source:  q,
		Clock:   clock,
		Chooser: game.ChooseLowest,
	})
	if err != nil {
		t.Fatalf("game.New: %v", err)
	}
	return NewModel(ctrl, q, theme.New(theme.Rainbow(8)), 60), q, clock
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestNumberKeysToggleHeld(t *testing.T) {
	m, q, _ := newTestModel(t)

	m = update(m, key("2"))
	if !q.Held(1) {
		t.Fatal("seat 2 should be held")
	}
	m = update(m, key("2"))
	if q.Held(1) {
		t.Fatal("second press should release seat 2")
	}

	// out of range seats are ignored
	m = update(m, key("9"))
	if q.Held(8) {
		t.Fatal("seat 9 does not exist")
	}

	var kinds []input.Kind
	for {
		e, ok := q.Poll()
		if !ok {
			break
		}
		kinds = append(kinds, e.Kind)
	}
	if len(kinds) != 2 || kinds[0] != input.Pressed || kinds[1] != input.Released {
		t.Fatalf("events = %v", kinds)
	}
}

func TestReleaseAll(t *testing.T) {
	m, q, _ := newTestModel(t)
	m = update(m, key("1"))
	m = update(m, key("2"))
	m = update(m, key("r"))
	if q.Held(0) || q.Held(1) {
		t.Fatal("r should release every seat")
	}
}

func TestFramesDriveTheGame(t *testing.T) {
	m, _, clock := newTestModel(t)

	frame := func() {
		clock.Advance(16 * time.Millisecond)
		next, cmd := m.Update(FrameMsg(clock.Now()))
		m = next.(Model)
		if cmd == nil {
			t.Fatal("frame should schedule the next tick")
		}
	}

	frame()
	m = update(m, key("1"))
	frame()
	m = update(m, key("1"))
	frame()

	snap := m.Controller.Snapshot()
	if snap.Phase != game.PhasePlaying || snap.Active != 0 {
		t.Fatalf("phase=%v active=%d, want playing seat 0", snap.Phase, snap.Active)
	}
	view := m.View()
	if !strings.Contains(view, "playing") || !strings.Contains(view, "North") {
		t.Fatalf("view missing state:\n%s", view)
	}
}

func TestQuit(t *testing.T) {
	m, _, clock := newTestModel(t)
	for _, msg := range []tea.Msg{FrameMsg{}, key("1"), FrameMsg{}, key("1"), FrameMsg{}} {
		clock.Advance(16 * time.Millisecond)
		m = update(m, msg)
	}
	if !m.Controller.Snapshot().Seats[0].Lamp {
		t.Fatal("seat 1 should be active before quitting")
	}

	next, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if next.(Model).View() != "" {
		t.Fatal("view should be empty after quit")
	}
	// the program owner shuts the controller down once the program exits
	if !m.Controller.Snapshot().Seats[0].Lamp {
		t.Fatal("quitting should not shut the controller down")
	}
}
