package gpio

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	pgpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"go-turnlight/input"
	"go-turnlight/theme"
)

func waitEvent(t *testing.T, q *input.Queue) input.Event {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if e, ok := q.Poll(); ok {
			return e
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("no event")
	return input.Event{}
}

func TestWatcherDebouncesEdges(t *testing.T) {
	q := input.NewQueue(8, clockwork.NewFakeClock())
	pin := &gpiotest.Pin{N: "GPIO20", EdgesChan: make(chan pgpio.Level)}

	ctx, cancel := context.WithCancel(context.Background())
	w := NewWatcher(q, 20*time.Millisecond)
	if err := w.Start(ctx, []Button{{Key: 3, Pin: pin}}); err != nil {
		t.Fatalf("Start: %v", err)
	}

	// contact bounce settles low
	pin.EdgesChan <- pgpio.Low
	pin.EdgesChan <- pgpio.High
	pin.EdgesChan <- pgpio.Low

	e := waitEvent(t, q)
	if e.Key != 3 || e.Kind != input.Pressed {
		t.Fatalf("got %v, want key 3 pressed", e)
	}
	if !q.Held(3) {
		t.Fatal("key 3 should be held")
	}

	pin.EdgesChan <- pgpio.High
	e = waitEvent(t, q)
	if e.Kind != input.Released {
		t.Fatalf("got %v, want release", e)
	}

	cancel()
	w.Wait()
	if e, ok := q.Poll(); ok {
		t.Fatalf("unexpected event %v", e)
	}
}

func TestWatcherIgnoresGlitch(t *testing.T) {
	q := input.NewQueue(8, clockwork.NewFakeClock())
	pin := &gpiotest.Pin{N: "GPIO21", EdgesChan: make(chan pgpio.Level)}

	ctx, cancel := context.WithCancel(context.Background())
	w := NewWatcher(q, 50*time.Millisecond)
	if err := w.Start(ctx, []Button{{Key: 0, Pin: pin}}); err != nil {
		t.Fatal(err)
	}

	pin.EdgesChan <- pgpio.Low
	pin.EdgesChan <- pgpio.High
	time.Sleep(150 * time.Millisecond)

	cancel()
	w.Wait()
	if e, ok := q.Poll(); ok {
		t.Fatalf("glitch reported as %v", e)
	}
}

func TestLamp(t *testing.T) {
	pin := &gpiotest.Pin{N: "GPIO5"}
	lamp := &Lamp{Pin: pin}

	if err := lamp.Set(true); err != nil {
		t.Fatal(err)
	}
	if pin.Read() != pgpio.High {
		t.Fatal("lamp on should drive high")
	}
	lamp.Set(false)
	if pin.Read() != pgpio.Low {
		t.Fatal("lamp off should drive low")
	}
}

func TestEncode(t *testing.T) {
	buf := make([]byte, 0, 6)
	got := encode(buf, []theme.RGB{{1, 2, 3}, {250, 0, 7}})
	if !bytes.Equal(got, []byte{1, 2, 3, 250, 0, 7}) {
		t.Fatalf("encode = %v", got)
	}
	got = encode(got, []theme.RGB{{9, 9, 9}})
	if !bytes.Equal(got, []byte{9, 9, 9}) {
		t.Fatalf("encode reuse = %v", got)
	}
}

func TestBoardCloseStopsWatchers(t *testing.T) {
	q := input.NewQueue(8, clockwork.NewFakeClock())
	button := &gpiotest.Pin{N: "GPIO20", EdgesChan: make(chan pgpio.Level)}
	lampPin := &gpiotest.Pin{N: "GPIO5"}
	b := &Board{
		Buttons: []Button{{Key: 0, Pin: button}},
		Lamps:   []*Lamp{{Pin: lampPin}, nil},
		watcher: NewWatcher(q, 0),
	}
	if err := b.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	b.Lamps[0].Set(true)

	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if lampPin.Read() != pgpio.Low {
		t.Fatal("lamp should be off after Close")
	}
	select {
	case button.EdgesChan <- pgpio.Low:
		t.Fatal("watcher still running after Close")
	default:
	}
}
