// Package strip models a linear addressable LED strip shared by all seats.
package strip

import (
	"fmt"

	"go-turnlight/theme"
)

// Range is a half-open span [Start, End) of pixel indices
type Range struct {
	Start int
	End   int
}

func (r Range) Len() int {
	return r.End - r.Start
}

func (r Range) Contains(i int) bool {
	return i >= r.Start && i < r.End
}

func (r Range) Overlaps(o Range) bool {
	return r.Start < o.End && o.Start < r.End
}

// Partition lays lengths out back to back starting at pixel 0
func Partition(lengths []int) ([]Range, error) {
	ranges := make([]Range, len(lengths))
	start := 0
	for i, n := range lengths {
		if n <= 0 {
			return nil, fmt.Errorf("seat %d: pixel count must be positive, got %d", i, n)
		}
		ranges[i] = Range{Start: start, End: start + n}
		start += n
	}
	return ranges, nil
}

// Driver pushes a full frame to hardware
type Driver interface {
	Write(pixels []theme.RGB) error
}

// Discard is a Driver that drops every frame
var Discard Driver = discard{}

type discard struct{}

func (discard) Write([]theme.RGB) error { return nil }

// Strip is the shared pixel buffer and its driver
type Strip struct {
	pixels []theme.RGB
	driver Driver
	onErr  func(error)
}

// New allocates a black strip of n pixels
func New(n int, driver Driver) *Strip {
	if driver == nil {
		driver = Discard
	}
	return &Strip{
		pixels: make([]theme.RGB, n),
		driver: driver,
	}
}

// OnError sets a callback for driver write failures
func (s *Strip) OnError(fn func(error)) {
	s.onErr = fn
}

func (s *Strip) Len() int {
	return len(s.pixels)
}

// Fill sets every pixel
func (s *Strip) Fill(c theme.RGB) {
	for i := range s.pixels {
		s.pixels[i] = c
	}
}

// Set sets pixel i. Out of range is ignored.
func (s *Strip) Set(i int, c theme.RGB) {
	if i < 0 || i >= len(s.pixels) {
		return
	}
	s.pixels[i] = c
}

// At returns pixel i
func (s *Strip) At(i int) theme.RGB {
	return s.pixels[i]
}

// Pixels returns a copy of the buffer
func (s *Strip) Pixels() []theme.RGB {
	out := make([]theme.RGB, len(s.pixels))
	copy(out, s.pixels)
	return out
}

// Show flushes the whole buffer through the driver
func (s *Strip) Show() error {
	if err := s.driver.Write(s.pixels); err != nil {
		err = fmt.Errorf("strip write: %w", err)
		if s.onErr != nil {
			s.onErr(err)
		}
		return err
	}
	return nil
}

// Subset returns a view over r. It panics if r falls outside the strip.
func (s *Strip) Subset(r Range) *Subset {
	if r.Start < 0 || r.End > len(s.pixels) || r.Start > r.End {
		panic(fmt.Sprintf("strip: range [%d,%d) outside %d pixels", r.Start, r.End, len(s.pixels)))
	}
	return &Subset{strip: s, r: r}
}

// Subset is a seat's exclusive window onto the strip
type Subset struct {
	strip *Strip
	r     Range
}

func (ss *Subset) Range() Range {
	return ss.r
}

func (ss *Subset) Len() int {
	return ss.r.Len()
}

// Fill sets every pixel in the subset
func (ss *Subset) Fill(c theme.RGB) {
	for i := ss.r.Start; i < ss.r.End; i++ {
		ss.strip.pixels[i] = c
	}
}

// Set sets pixel i relative to the subset start. Out of range is ignored.
func (ss *Subset) Set(i int, c theme.RGB) {
	if i < 0 || i >= ss.r.Len() {
		return
	}
	ss.strip.pixels[ss.r.Start+i] = c
}

// At reads pixel i relative to the subset start
func (ss *Subset) At(i int) theme.RGB {
	return ss.strip.pixels[ss.r.Start+i]
}

// Show flushes the parent strip
func (ss *Subset) Show() error {
	return ss.strip.Show()
}
