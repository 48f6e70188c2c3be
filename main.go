package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"go-turnlight/config"
	"go-turnlight/debug"
	"go-turnlight/game"
	"go-turnlight/gpio"
	"go-turnlight/input"
	"go-turnlight/midi"
	"go-turnlight/theme"
	"go-turnlight/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional
	_ = godotenv.Load()

	configPath := flag.String("config", os.Getenv("TURNLIGHT_CONFIG"), "config file (default ~/.config/turnlight/config.yaml)")
	backend := flag.String("backend", os.Getenv("TURNLIGHT_BACKEND"), "sim, launchpad or gpio (overrides config)")
	debugFlag := flag.Bool("debug", false, "write ~/.config/turnlight/debug.log")
	saveConfig := flag.Bool("save-config", false, "write the effective config back and exit")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *backend != "" {
		cfg.Backend = config.Backend(*backend)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if *saveConfig {
		return writeConfig(cfg, *configPath)
	}

	if *debugFlag || cfg.Debug {
		if err := debug.Enable(); err != nil {
			return err
		}
		defer debug.Disable()
	}

	style, err := cfg.Style()
	if err != nil {
		return err
	}
	chooser, err := game.ChooserByName(cfg.FirstPlayer)
	if err != nil {
		return err
	}
	palette, err := theme.LoadOrRainbow(cfg.Palette)
	if err != nil {
		return fmt.Errorf("palette: %w", err)
	}

	queue := input.NewQueue(input.DefaultQueueSize, nil)
	opts := game.Options{
		Source:    queue,
		Style:     style,
		LongPress: cfg.LongPress,
		Chooser:   chooser,
		Palette:   palette,
		FrameRate: cfg.FrameRate,
	}
	lamps := make([]game.Lamp, len(cfg.Seats))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.Backend {
	case config.BackendLaunchpad:
		lp, err := midi.Open(cfg, queue)
		if err != nil {
			return err
		}
		defer lp.Close()
		opts.Driver = lp
		for i, l := range lp.Lamps(cfg) {
			if l != nil {
				lamps[i] = l
			}
		}
	case config.BackendGPIO:
		board, err := gpio.Open(cfg, queue)
		if err != nil {
			return err
		}
		defer board.Close()
		if err := board.Start(ctx); err != nil {
			return err
		}
		opts.Driver = board.Strip
		for i, l := range board.Lamps {
			if l != nil {
				lamps[i] = l
			}
		}
	}

	for i, s := range cfg.Seats {
		color, err := theme.ParseHex(s.Color)
		if err != nil {
			return err
		}
		opts.Seats = append(opts.Seats, game.SeatSpec{
			Name:   s.Name,
			Color:  color,
			Pixels: s.Pixels,
			Lamp:   lamps[i],
		})
	}

	ctrl, err := game.New(opts)
	if err != nil {
		return err
	}
	debug.Log("main", "backend=%s seats=%d pixels=%d", cfg.Backend, len(cfg.Seats), cfg.TotalPixels())

	if cfg.Backend == config.BackendSim {
		m := tui.NewModel(ctrl, queue, theme.New(palette), cfg.FrameRate)
		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return err
		}
		ctrl.Shutdown()
		return nil
	}

	fmt.Printf("turnlight: %d seats on %s, Ctrl+C to stop\n", len(cfg.Seats), cfg.Backend)
	return ctrl.Run(ctx)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}

func writeConfig(cfg *config.Config, path string) error {
	if path == "" {
		if err := cfg.Save(); err != nil {
			return err
		}
		path, _ = config.ConfigPath()
	} else if err := cfg.SaveFile(path); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
