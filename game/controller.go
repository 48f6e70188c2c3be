package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"go-turnlight/anim"
	"go-turnlight/debug"
	"go-turnlight/fade"
	"go-turnlight/input"
	"go-turnlight/strip"
	"go-turnlight/theme"
)

// DefaultFrameRate is how often the loop runs when driven by Run
const DefaultFrameRate = 60

// SeatSpec describes one configured seat
type SeatSpec struct {
	Name   string
	Color  theme.RGB
	Pixels int
	Lamp   Lamp
}

// Options wires a Controller to its collaborators. Zero values get defaults.
type Options struct {
	Seats     []SeatSpec
	Driver    strip.Driver
	Source    input.Source
	Clock     clockwork.Clock
	Style     fade.Style
	LongPress time.Duration
	Chooser   Chooser
	Palette   *theme.Palette
	FrameRate int
	// AnimPeriod is the step time of the selection animations
	AnimPeriod time.Duration
}

// Controller owns the seats, the strip and the current phase
type Controller struct {
	mu sync.Mutex

	clock     clockwork.Clock
	strip     *strip.Strip
	seats     []*Seat
	source    input.Source
	selection *Selection
	turn      *Turn
	phase     Phase
	frameRate int
	started   bool
	frames    uint64
	faults    int
}

// New builds the seats from opts and partitions the strip between them
func New(opts Options) (*Controller, error) {
	if len(opts.Seats) == 0 {
		return nil, fmt.Errorf("no seats configured")
	}
	if opts.Source == nil {
		return nil, fmt.Errorf("no input source")
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	style := opts.Style
	if style.Duration <= 0 {
		style.Duration = fade.DefaultDuration
	}
	frameRate := opts.FrameRate
	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}

	lengths := make([]int, len(opts.Seats))
	for i, spec := range opts.Seats {
		lengths[i] = spec.Pixels
	}
	ranges, err := strip.Partition(lengths)
	if err != nil {
		return nil, err
	}
	total := ranges[len(ranges)-1].End

	s := strip.New(total, opts.Driver)
	s.OnError(func(err error) {
		debug.LogEvery(100, "strip", "write failed: %v", err)
	})

	seats := make([]*Seat, len(opts.Seats))
	for i, spec := range opts.Seats {
		name := spec.Name
		if name == "" {
			name = fmt.Sprintf("Seat %d", i+1)
		}
		seats[i] = newSeat(i, name, spec.Color, s.Subset(ranges[i]), spec.Lamp, opts.AnimPeriod)
	}

	idle := anim.NewRainbowComet(s, opts.Palette, 5, opts.AnimPeriod)

	return &Controller{
		clock:     clock,
		strip:     s,
		seats:     seats,
		source:    opts.Source,
		selection: NewSelection(seats, s, opts.Source, idle, opts.Chooser),
		turn:      NewTurn(seats, s, opts.Source, style, opts.LongPress),
		phase:     PhaseSelecting,
		frameRate: frameRate,
	}, nil
}

// Seats returns the seats in index order
func (c *Controller) Seats() []*Seat {
	return c.seats
}

// Strip returns the shared pixel buffer
func (c *Controller) Strip() *strip.Strip {
	return c.strip
}

// Phase returns the current phase
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Step runs one iteration of the current phase and flushes the strip
func (c *Controller) Step() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		c.restart()
		c.started = true
	}

	now := c.clock.Now()
	switch c.phase {
	case PhaseSelecting:
		next, first, err := c.selection.Step(now)
		if err != nil {
			c.fail(err)
			break
		}
		if next == PhasePlaying {
			if err := c.turn.Begin(first, now); err != nil {
				c.fail(err)
				break
			}
			c.phase = PhasePlaying
		}
	case PhasePlaying, PhaseResetting:
		next, err := c.turn.Step(now)
		if err != nil {
			c.fail(err)
			break
		}
		if next == PhaseSelecting {
			c.restart()
		} else {
			c.phase = next
		}
	}

	c.strip.Show()
	c.frames++
}

// restart returns to seat selection with everything cleared
func (c *Controller) restart() {
	c.strip.Fill(theme.Black)
	c.selection.Begin()
	c.phase = PhaseSelecting
}

// fail handles a defect (bad key, empty game) by starting over rather than
// stopping the device
func (c *Controller) fail(err error) {
	c.faults++
	debug.Error("game", err, "resetting to seat selection")
	c.restart()
}

// Run steps at the frame rate until ctx is done, then blanks the strip
func (c *Controller) Run(ctx context.Context) error {
	ticker := c.clock.NewTicker(time.Second / time.Duration(c.frameRate))
	defer ticker.Stop()

	debug.Log("game", "running %d seats, %d pixels at %d fps", len(c.seats), c.strip.Len(), c.frameRate)
	c.Step()
	for {
		select {
		case <-ctx.Done():
			c.Shutdown()
			return nil
		case <-ticker.Chan():
			c.Step()
		}
	}
}

// Shutdown blanks the strip and turns every lamp off
func (c *Controller) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, seat := range c.seats {
		seat.MakeInactive()
	}
	c.strip.Fill(theme.Black)
	c.strip.Show()
}

// SeatState is a copy of one seat for display
type SeatState struct {
	Index  int
	Name   string
	Color  theme.RGB
	Range  strip.Range
	InGame bool
	Active bool
	Lamp   bool
}

// Snapshot is a consistent copy of the controller state
type Snapshot struct {
	Phase  Phase
	Active int
	Seats  []SeatState
	Pixels []theme.RGB
	Frames uint64
	Faults int
}

// Snapshot copies the current state; safe to call from another goroutine
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		Phase:  c.phase,
		Active: -1,
		Seats:  make([]SeatState, len(c.seats)),
		Pixels: c.strip.Pixels(),
		Frames: c.frames,
		Faults: c.faults,
	}
	if c.phase != PhaseSelecting {
		snap.Active = c.turn.Active()
	}
	for i, seat := range c.seats {
		snap.Seats[i] = SeatState{
			Index:  seat.Index,
			Name:   seat.Name,
			Color:  seat.Color,
			Range:  seat.Range(),
			InGame: seat.InGame,
			Active: seat.Active,
			Lamp:   seat.Lit(),
		}
	}
	return snap
}
