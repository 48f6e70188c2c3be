package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"go-turnlight/anim"
	"go-turnlight/config"
	"go-turnlight/gpio"
	"go-turnlight/input"
	"go-turnlight/midi"
	"go-turnlight/strip"
	"go-turnlight/theme"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	var err error
	switch os.Args[1] {
	case "list":
		err = listPorts()
	case "leds":
		err = withHardware(testLEDs)
	case "buttons":
		err = withHardware(testButtons)
	case "lamps":
		err = withHardware(testLamps)
	default:
		usage()
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Seat hardware test scripts")
	fmt.Println("")
	fmt.Println("Usage: padtest <command> [launchpad|gpio]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list     - List all MIDI ports")
	fmt.Println("  leds     - Run a rainbow comet over the strip")
	fmt.Println("  buttons  - Print seat button presses")
	fmt.Println("  lamps    - Light each seat lamp in turn")
	fmt.Println("")
	fmt.Println("Seats and pins come from ~/.config/turnlight/config.yaml")
}

func listPorts() error {
	fmt.Println("=== MIDI Input Ports ===")
	fmt.Printf("(waiting up to %v...)\n", midi.ScanTimeout)

	ports, err := midi.Scan()
	if err != nil {
		fmt.Println("\nTIMEOUT! CoreMIDI is hung.")
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
		return err
	}
	ins, outs := ports.Names()
	for i, name := range ins {
		fmt.Printf("  %d: %s\n", i, name)
	}
	fmt.Println("\n=== MIDI Output Ports ===")
	for i, name := range outs {
		fmt.Printf("  %d: %s\n", i, name)
	}

	if in, _, err := ports.FindLaunchpad(""); err == nil {
		fmt.Printf("\nLaunchpad detected: %s\n", in.String())
	} else {
		fmt.Println("\nLaunchpad not found")
	}
	return nil
}

// hardware is one opened backend
type hardware struct {
	cfg    *config.Config
	queue  *input.Queue
	driver strip.Driver
	lamps  []func(bool) error
	start  func(ctx context.Context) error
}

func withHardware(fn func(ctx context.Context, hw *hardware) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if len(os.Args) > 2 {
		cfg.Backend = config.Backend(os.Args[2])
	} else if cfg.Backend == config.BackendSim {
		cfg.Backend = config.BackendLaunchpad
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	hw := &hardware{cfg: cfg, queue: input.NewQueue(input.DefaultQueueSize, nil)}
	var closer io.Closer

	switch cfg.Backend {
	case config.BackendLaunchpad:
		lp, err := midi.Open(cfg, hw.queue)
		if err != nil {
			return err
		}
		fmt.Printf("Using %s\n", lp.Name())
		hw.driver = lp
		for _, l := range lp.Lamps(cfg) {
			if l != nil {
				hw.lamps = append(hw.lamps, l.Set)
			}
		}
		hw.start = func(context.Context) error { return nil }
		closer = lp
	case config.BackendGPIO:
		board, err := gpio.Open(cfg, hw.queue)
		if err != nil {
			return err
		}
		hw.driver = board.Strip
		for _, l := range board.Lamps {
			if l != nil {
				hw.lamps = append(hw.lamps, l.Set)
			}
		}
		hw.start = board.Start
		closer = board
	default:
		return fmt.Errorf("backend %q has no hardware", cfg.Backend)
	}
	defer closer.Close()

	return fn(ctx, hw)
}

func testLEDs(ctx context.Context, hw *hardware) error {
	s := strip.New(hw.cfg.TotalPixels(), hw.driver)
	comet := anim.NewRainbowComet(s, theme.Rainbow(32), 5, anim.DefaultPeriod)

	fmt.Printf("Running comet over %d pixels for 10s (Ctrl+C to stop)...\n", s.Len())
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.Fill(theme.Black)
			fmt.Println("Done!")
			return s.Show()
		case now := <-ticker.C:
			if comet.Animate(now) {
				if err := s.Show(); err != nil {
					return err
				}
			}
		}
	}
}

func testButtons(ctx context.Context, hw *hardware) error {
	if err := hw.start(ctx); err != nil {
		return err
	}
	fmt.Println("Press seat buttons. Ctrl+C to exit.")

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			for {
				e, ok := hw.queue.Poll()
				if !ok {
					break
				}
				name := "?"
				if e.Key >= 0 && e.Key < len(hw.cfg.Seats) {
					name = hw.cfg.Seats[e.Key].Name
				}
				fmt.Printf("[%s] %-10s %s\n", e.Timestamp.Format("15:04:05.000"), name, e.Kind)
			}
		}
	}
}

func testLamps(ctx context.Context, hw *hardware) error {
	if len(hw.lamps) == 0 {
		fmt.Println("No lamps configured")
		return nil
	}
	fmt.Printf("Cycling %d lamps...\n", len(hw.lamps))
	for _, set := range hw.lamps {
		if err := set(true); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
		case <-time.After(500 * time.Millisecond):
		}
		set(false)
		if ctx.Err() != nil {
			break
		}
	}
	fmt.Println("Done!")
	return nil
}
