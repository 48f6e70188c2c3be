package game

import (
	"time"

	"go-turnlight/anim"
	"go-turnlight/debug"
	"go-turnlight/fade"
	"go-turnlight/strip"
	"go-turnlight/theme"
)

// Lamp is the indicator light next to a seat's button
type Lamp interface {
	Set(on bool) error
}

type nopLamp struct{}

func (nopLamp) Set(bool) error { return nil }

// NopLamp is used for seats without an indicator
var NopLamp Lamp = nopLamp{}

// Seat is one player position: a button, a lamp and a run of pixels
type Seat struct {
	Index int
	Name  string
	Color theme.RGB

	InGame bool
	Active bool
	Fade   fade.Transition
	fading bool

	px    *strip.Subset
	lamp  Lamp
	comet anim.Animation
	lit   bool
}

func newSeat(index int, name string, color theme.RGB, px *strip.Subset, lamp Lamp, period time.Duration) *Seat {
	if lamp == nil {
		lamp = NopLamp
	}
	return &Seat{
		Index: index,
		Name:  name,
		Color: color,
		px:    px,
		lamp:  lamp,
		comet: anim.NewComet(px, color, px.Len(), true, true, period),
	}
}

// Range is the seat's slice of the strip
func (s *Seat) Range() strip.Range {
	return s.px.Range()
}

// Lit reports the last value written to the lamp
func (s *Seat) Lit() bool {
	return s.lit
}

// Reset returns the seat to its power-on state
func (s *Seat) Reset() {
	s.InGame = false
	s.fading = false
	s.Fade = fade.Transition{}
	s.comet.Reset()
	s.setActive(false)
}

// Select marks the seat as taken
func (s *Seat) Select() {
	s.InGame = true
}

func (s *Seat) MakeActive() {
	s.setActive(true)
}

func (s *Seat) MakeInactive() {
	s.setActive(false)
}

func (s *Seat) setActive(on bool) {
	s.Active = on
	s.lit = on
	if err := s.lamp.Set(on); err != nil {
		debug.Error("lamp", err, "set seat lamp")
	}
}

// Retarget starts a fade from whatever the seat shows now toward color,
// bright when the seat is active and dim otherwise
func (s *Seat) Retarget(color theme.RGB, style fade.Style, now time.Time) {
	target := style.Target(color, s.Active)
	s.Fade = style.Begin(s.px.At(0), target, now)
	s.fading = true
}

// Frame is the solid color the seat shows while playing
func (s *Seat) Frame(now time.Time) theme.RGB {
	if !s.fading {
		return theme.Black
	}
	return s.Fade.At(now)
}

// Render draws one frame of the seat for phase. It does not flush the strip.
func (s *Seat) Render(phase Phase, now time.Time) {
	switch phase {
	case PhaseSelecting:
		if s.InGame {
			s.comet.Animate(now)
		} else {
			s.px.Fill(theme.Black)
		}
	case PhasePlaying:
		s.px.Fill(s.Frame(now))
	default:
		s.px.Fill(theme.Black)
	}
}
