// Package fade computes time-eased color transitions for seat highlights.
package fade

import (
	"time"

	"go-turnlight/theme"
)

// DefaultDuration is the highlight transition time
const DefaultDuration = 500 * time.Millisecond

// Style holds the transition settings shared by every seat
type Style struct {
	Duration time.Duration
	Ease     Easing
	Gamma    *theme.Gamma
	Bright   float64 // brightness of the active seat
	Dim      float64 // brightness of every other seat
}

// DefaultStyle is a half second linear fade, full bright, 10% dim
func DefaultStyle() Style {
	return Style{
		Duration: DefaultDuration,
		Ease:     Linear,
		Gamma:    theme.NewGamma(theme.DefaultGamma),
		Bright:   1.0,
		Dim:      0.1,
	}
}

// Target gamma-corrects c at the bright or dim level
func (s Style) Target(c theme.RGB, bright bool) theme.RGB {
	level := s.Dim
	if bright {
		level = s.Bright
	}
	g := s.Gamma
	if g == nil {
		return theme.GammaAdjust(c, level)
	}
	return g.Adjust(c, level)
}

// Begin starts a transition from the currently displayed color to target
func (s Style) Begin(from, target theme.RGB, now time.Time) Transition {
	return Transition{
		Start:     from,
		End:       target,
		StartedAt: now,
		Duration:  s.Duration,
		Ease:      s.Ease,
	}
}

// Transition is an in-flight color change
type Transition struct {
	Start     theme.RGB
	End       theme.RGB
	StartedAt time.Time
	Duration  time.Duration
	Ease      Easing
}

// Elapsed is the time since the transition began, capped at its duration
func (tr Transition) Elapsed(now time.Time) time.Duration {
	elapsed := now.Sub(tr.StartedAt)
	if elapsed < 0 {
		return 0
	}
	if elapsed > tr.Duration {
		return tr.Duration
	}
	return elapsed
}

// Done reports whether the transition has reached its end color
func (tr Transition) Done(now time.Time) bool {
	return tr.Elapsed(now) == tr.Duration
}

// At returns the color to display at now. Once Done it always returns End.
func (tr Transition) At(now time.Time) theme.RGB {
	elapsed := tr.Elapsed(now)
	if elapsed == tr.Duration {
		return tr.End
	}
	ease := tr.Ease
	if ease == nil {
		ease = Linear
	}
	progress := ease(float64(elapsed) / float64(tr.Duration))
	return theme.Mix(tr.Start, tr.End, progress)
}
