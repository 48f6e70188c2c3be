package debug

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLogWritesCategory(t *testing.T) {
	var buf bytes.Buffer
	EnableTo(&buf)
	defer Disable()

	Log("turn", "seat %d active", 3)
	Error("strip", errors.New("bus gone"), "write failed")

	out := buf.String()
	for _, want := range []string{"category=turn", "seat 3 active", "category=strip", "bus gone", "write failed"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestDisabledIsSilent(t *testing.T) {
	var buf bytes.Buffer
	EnableTo(&buf)
	Disable()
	n := buf.Len()

	Log("turn", "ignored")
	if buf.Len() != n {
		t.Fatal("log written while disabled")
	}
	if Enabled() {
		t.Fatal("Enabled() after Disable")
	}
}

func TestLogEvery(t *testing.T) {
	var buf bytes.Buffer
	EnableTo(&buf)
	defer Disable()

	for i := 0; i < 9; i++ {
		LogEvery(3, "frame", "tick")
	}
	if got := strings.Count(buf.String(), "tick (every 3"); got != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", got, buf.String())
	}
}
