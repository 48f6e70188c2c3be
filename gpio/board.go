package gpio

import (
	"context"
	"fmt"

	pgpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"go-turnlight/config"
	"go-turnlight/debug"
	"go-turnlight/input"
)

// Board is the wired hardware for one table
type Board struct {
	Buttons []Button
	Lamps   []*Lamp // nil for seats without a lamp
	Strip   *Strip

	watcher *Watcher
	cancel  context.CancelFunc
}

// Open initialises the host and resolves every configured pin
func Open(cfg *config.Config, queue *input.Queue) (*Board, error) {
	state, err := host.Init()
	if err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	for _, d := range state.Loaded {
		debug.Log("gpio", "loaded driver %s", d)
	}

	b := &Board{
		Lamps:   make([]*Lamp, len(cfg.Seats)),
		watcher: NewWatcher(queue, DefaultDebounce),
	}
	for i, s := range cfg.Seats {
		pin, err := lookup(s.Button.Pin)
		if err != nil {
			return nil, fmt.Errorf("seat %d button: %w", i, err)
		}
		b.Buttons = append(b.Buttons, Button{Key: i, Pin: pin})

		if s.Lamp != nil && s.Lamp.Pin != "" {
			lp, err := lookup(s.Lamp.Pin)
			if err != nil {
				return nil, fmt.Errorf("seat %d lamp: %w", i, err)
			}
			b.Lamps[i] = &Lamp{Pin: lp}
		}
	}

	strip, err := OpenStrip(cfg.SPIPort, cfg.TotalPixels())
	if err != nil {
		return nil, err
	}
	b.Strip = strip
	return b, nil
}

func lookup(name string) (pgpio.PinIO, error) {
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("no gpio pin %q", name)
	}
	return pin, nil
}

// Start begins watching the buttons until ctx is done or Close is called
func (b *Board) Start(ctx context.Context) error {
	ctx, b.cancel = context.WithCancel(ctx)
	return b.watcher.Start(ctx, b.Buttons)
}

// Close stops the button watchers, turns the lamps off and releases the strip
func (b *Board) Close() error {
	if b.cancel != nil {
		b.cancel()
		b.watcher.Wait()
	}
	for _, l := range b.Lamps {
		if l != nil {
			l.Set(false)
		}
	}
	if b.Strip != nil {
		return b.Strip.Close()
	}
	return nil
}
