package anim

import (
	"time"

	"go-turnlight/theme"
)

// Comet is a single color head with a fading tail
type Comet struct {
	stepper
	surf    Surface
	color   theme.RGB
	tail    int
	bounce  bool
	reverse bool

	pos int
	dir int
}

// NewComet moves a comet across surf. With bounce it turns around at the
// ends; otherwise it wraps. Reverse starts it at the far end moving back.
func NewComet(surf Surface, color theme.RGB, tail int, bounce, reverse bool, period time.Duration) *Comet {
	if tail < 1 {
		tail = 1
	}
	if period <= 0 {
		period = DefaultPeriod
	}
	c := &Comet{
		stepper: stepper{period: period},
		surf:    surf,
		color:   color,
		tail:    tail,
		bounce:  bounce,
		reverse: reverse,
	}
	c.Reset()
	return c
}

func (c *Comet) Reset() {
	c.stepper.reset()
	if c.reverse {
		c.pos = c.surf.Len() - 1
		c.dir = -1
	} else {
		c.pos = 0
		c.dir = 1
	}
}

// Head returns the current head position
func (c *Comet) Head() int {
	return c.pos
}

func (c *Comet) Animate(now time.Time) bool {
	if !c.due(now) {
		return false
	}
	n := c.surf.Len()
	if n == 0 {
		return true
	}

	c.surf.Fill(theme.Black)
	for k := 0; k < c.tail; k++ {
		i := c.pos - c.dir*k
		if c.bounce {
			if i < 0 || i >= n {
				break
			}
		} else {
			i = ((i % n) + n) % n
		}
		c.surf.Set(i, c.color.Scale(1-float64(k)/float64(c.tail)))
	}

	c.pos += c.dir
	if c.bounce {
		if c.pos >= n {
			c.pos = n - 1
			c.dir = -1
		} else if c.pos < 0 {
			c.pos = 0
			c.dir = 1
		}
	} else {
		c.pos = ((c.pos % n) + n) % n
	}
	return true
}

// RainbowComet runs a short multicolor comet around the whole strip as a ring
type RainbowComet struct {
	stepper
	surf    Surface
	palette *theme.Palette
	tail    int
	pos     int
}

func NewRainbowComet(surf Surface, palette *theme.Palette, tail int, period time.Duration) *RainbowComet {
	if tail < 1 {
		tail = 1
	}
	if period <= 0 {
		period = DefaultPeriod
	}
	if palette == nil {
		palette = theme.Rainbow(32)
	}
	return &RainbowComet{
		stepper: stepper{period: period},
		surf:    surf,
		palette: palette,
		tail:    tail,
	}
}

func (r *RainbowComet) Reset() {
	r.stepper.reset()
	r.pos = 0
}

func (r *RainbowComet) Animate(now time.Time) bool {
	if !r.due(now) {
		return false
	}
	n := r.surf.Len()
	if n == 0 {
		return true
	}

	r.surf.Fill(theme.Black)
	for k := 0; k < r.tail && k < n; k++ {
		i := ((r.pos-k)%n + n) % n
		c := r.palette.Cycle(float64(k) / float64(r.tail))
		r.surf.Set(i, c.Scale(1-float64(k)/float64(r.tail)))
	}
	r.pos = (r.pos + 1) % n
	return true
}
