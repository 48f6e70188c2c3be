// Package anim holds the decorative frames shown while seats are being chosen.
// The game treats them as opaque: it only calls Animate once per loop.
package anim

import (
	"time"

	"go-turnlight/theme"
)

// DefaultPeriod is the time between animation steps
const DefaultPeriod = 100 * time.Millisecond

// Surface is anything an animation can draw on (a whole strip or one seat)
type Surface interface {
	Len() int
	Fill(c theme.RGB)
	Set(i int, c theme.RGB)
}

// Animation draws its next frame when its period has elapsed and reports
// whether it drew anything
type Animation interface {
	Animate(now time.Time) bool
	Reset()
}

// stepper gates frames to a fixed period
type stepper struct {
	period time.Duration
	last   time.Time
}

func (s *stepper) due(now time.Time) bool {
	if !s.last.IsZero() && now.Sub(s.last) < s.period {
		return false
	}
	s.last = now
	return true
}

func (s *stepper) reset() {
	s.last = time.Time{}
}
