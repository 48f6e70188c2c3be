package input

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestQueuePollOrder(t *testing.T) {
	clock := clockwork.NewFakeClock()
	q := NewQueue(8, clock)

	q.Press(1)
	clock.Advance(10 * time.Millisecond)
	q.Press(3)
	q.Release(1)

	want := []struct {
		key  int
		kind Kind
	}{{1, Pressed}, {3, Pressed}, {1, Released}}

	for i, w := range want {
		e, ok := q.Poll()
		if !ok {
			t.Fatalf("event %d missing", i)
		}
		if e.Key != w.key || e.Kind != w.kind {
			t.Fatalf("event %d = %v, want key %d %s", i, e, w.key, w.kind)
		}
	}
	if _, ok := q.Poll(); ok {
		t.Fatal("expected empty queue")
	}
}

func TestQueueStampsWithClock(t *testing.T) {
	clock := clockwork.NewFakeClock()
	q := NewQueue(4, clock)
	start := clock.Now()

	clock.Advance(250 * time.Millisecond)
	q.Press(0)

	e, _ := q.Poll()
	if got := e.Timestamp.Sub(start); got != 250*time.Millisecond {
		t.Fatalf("timestamp offset = %v", got)
	}
}

func TestQueueOverflowDrops(t *testing.T) {
	q := NewQueue(2, clockwork.NewFakeClock())

	if !q.Press(0) || !q.Press(1) {
		t.Fatal("first two pushes should fit")
	}
	if q.Press(2) {
		t.Fatal("third push should be dropped")
	}
	if q.Dropped() != 1 {
		t.Fatalf("Dropped() = %d", q.Dropped())
	}
	if q.Held(2) {
		t.Fatal("dropped press should not count as held")
	}
}

func TestQueueDroppedReleaseKeepsHeld(t *testing.T) {
	q := NewQueue(1, clockwork.NewFakeClock())

	q.Press(4)
	if q.Release(4) {
		t.Fatal("release should not fit behind the press")
	}
	if !q.Held(4) {
		t.Fatal("key 4 should still be held after its release was dropped")
	}

	q.Poll()
	if !q.Release(4) || q.Held(4) {
		t.Fatal("retried release should be delivered and clear held")
	}
}

func TestQueueResetDiscardsBacklog(t *testing.T) {
	q := NewQueue(8, clockwork.NewFakeClock())

	q.Press(2)
	q.Press(0)
	q.Press(1)
	q.Release(1)
	q.Reset()

	if e, ok := q.Poll(); ok {
		t.Fatalf("unexpected %v after reset", e)
	}
	if !q.Held(2) || !q.Held(0) || q.Held(1) {
		t.Fatal("reset should not forget buttons that are still down")
	}

	q.Release(2)
	e, ok := q.Poll()
	if !ok || e.Key != 2 || e.Kind != Released {
		t.Fatalf("got %v, want key 2 released", e)
	}
}
