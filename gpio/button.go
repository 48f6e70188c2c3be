// Package gpio drives a seat table wired to a Raspberry Pi: push buttons and
// indicator lamps on GPIO pins, and a WS2812 strip on an SPI port.
package gpio

import (
	"context"
	"fmt"
	"sync"
	"time"

	pgpio "periph.io/x/conn/v3/gpio"

	"go-turnlight/debug"
	"go-turnlight/input"
)

// DefaultDebounce is how long a pin must stay put before a change is reported
const DefaultDebounce = 10 * time.Millisecond

// idlePoll bounds each wait so watchers notice cancellation
const idlePoll = 250 * time.Millisecond

// Button is an active-low push button for one seat
type Button struct {
	Key int
	Pin pgpio.PinIn
}

// Watcher feeds button edges into a queue, one goroutine per pin
type Watcher struct {
	queue    *input.Queue
	debounce time.Duration
	wg       sync.WaitGroup
}

// NewWatcher creates a watcher; debounce <= 0 uses DefaultDebounce
func NewWatcher(queue *input.Queue, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{queue: queue, debounce: debounce}
}

// Start configures each pin with a pull-up and starts watching it until ctx
// is cancelled.
func (w *Watcher) Start(ctx context.Context, buttons []Button) error {
	for _, btn := range buttons {
		if err := btn.Pin.In(pgpio.PullUp, pgpio.BothEdges); err != nil {
			return fmt.Errorf("button %s: %w", btn.Pin, err)
		}
	}
	for _, btn := range buttons {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			w.watch(ctx, btn)
		}()
	}
	return nil
}

// Wait blocks until every watcher has stopped
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) watch(ctx context.Context, btn Button) {
	pressed := btn.Pin.Read() == pgpio.Low
	newPressed := pressed
	for ctx.Err() == nil {
		// Wait for an edge, or only for the debounce timeout once the
		// level has changed.
		timeout := idlePoll
		if newPressed != pressed {
			timeout = w.debounce
		}
		if btn.Pin.WaitForEdge(timeout) {
			newPressed = btn.Pin.Read() == pgpio.Low
			continue
		}
		if newPressed == pressed {
			continue
		}
		pressed = newPressed
		debug.Log("gpio", "%s key %d pressed=%v", btn.Pin, btn.Key, pressed)
		if pressed {
			w.queue.Press(btn.Key)
		} else {
			w.queue.Release(btn.Key)
		}
	}
}
