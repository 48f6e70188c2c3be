package anim

import (
	"testing"
	"time"

	"go-turnlight/strip"
	"go-turnlight/theme"
)

func lit(s *strip.Strip) []int {
	var out []int
	for i := 0; i < s.Len(); i++ {
		if !s.At(i).IsBlack() {
			out = append(out, i)
		}
	}
	return out
}

func TestCometBounces(t *testing.T) {
	s := strip.New(4, nil)
	red := theme.RGB{255, 0, 0}
	c := NewComet(s, red, 1, true, true, 100*time.Millisecond)
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// reverse starts at the far end and bounces off 0
	want := []int{3, 2, 1, 0, 0, 1, 2, 3, 3}
	for step, w := range want {
		if !c.Animate(t0.Add(time.Duration(step) * 100 * time.Millisecond)) {
			t.Fatalf("step %d: expected a frame", step)
		}
		got := lit(s)
		if len(got) != 1 || got[0] != w {
			t.Fatalf("step %d: lit %v, want [%d]", step, got, w)
		}
		if s.At(w) != red {
			t.Fatalf("step %d: head color %v", step, s.At(w))
		}
	}
}

func TestCometRespectsPeriod(t *testing.T) {
	s := strip.New(5, nil)
	c := NewComet(s, theme.RGB{0, 255, 0}, 2, true, false, 100*time.Millisecond)
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	if !c.Animate(t0) {
		t.Fatal("first call should draw")
	}
	if c.Animate(t0.Add(50 * time.Millisecond)) {
		t.Fatal("call inside the period should not draw")
	}
	if !c.Animate(t0.Add(100 * time.Millisecond)) {
		t.Fatal("call after the period should draw")
	}
	if c.Head() != 2 {
		t.Fatalf("head = %d, want 2", c.Head())
	}
}

func TestCometTailFades(t *testing.T) {
	s := strip.New(6, nil)
	c := NewComet(s, theme.RGB{200, 200, 200}, 3, true, false, time.Millisecond)
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		c.Animate(t0.Add(time.Duration(i) * time.Millisecond))
	}
	// head at 2, tail at 1 and 0
	if !(s.At(2)[0] > s.At(1)[0] && s.At(1)[0] > s.At(0)[0] && s.At(0)[0] > 0) {
		t.Fatalf("tail not fading: %v %v %v", s.At(2), s.At(1), s.At(0))
	}
}

func TestRainbowCometWraps(t *testing.T) {
	s := strip.New(3, nil)
	r := NewRainbowComet(s, nil, 2, time.Millisecond)
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	r.Animate(t0)
	if got := lit(s); len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Fatalf("lit %v, want head 0 with tail wrapped to 2", got)
	}
	r.Reset()
	r.Animate(t0)
	if s.At(0).IsBlack() {
		t.Fatal("reset should restart at pixel 0")
	}
}
