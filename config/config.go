package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"go-turnlight/fade"
	"go-turnlight/theme"
)

// Backend identifies the hardware the controller drives
type Backend string

const (
	BackendSim       Backend = "sim"
	BackendLaunchpad Backend = "launchpad"
	BackendGPIO      Backend = "gpio"
)

// Pad addresses a button or lamp. Launchpad uses Row/Col (row 8 is the top
// control row, col 8 the right-hand scene column); GPIO uses Pin.
type Pad struct {
	Row int    `yaml:"row,omitempty"`
	Col int    `yaml:"col,omitempty"`
	Pin string `yaml:"pin,omitempty"`
}

// SeatConfig is one player position
type SeatConfig struct {
	Name   string `yaml:"name,omitempty"`
	Pixels int    `yaml:"pixels"`
	Color  string `yaml:"color"`
	Button Pad    `yaml:"button"`
	Lamp   *Pad   `yaml:"lamp,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Backend          Backend       `yaml:"backend"`
	Seats            []SeatConfig  `yaml:"seats"`
	Transition       time.Duration `yaml:"transition"`
	Easing           string        `yaml:"easing"`
	BrightnessBright float64       `yaml:"brightness_bright"`
	BrightnessDim    float64       `yaml:"brightness_dim"`
	Gamma            float64       `yaml:"gamma"`
	LongPress        time.Duration `yaml:"long_press"`
	FrameRate        int           `yaml:"frame_rate"`
	FirstPlayer      string        `yaml:"first_player"`
	Palette          string        `yaml:"palette,omitempty"`
	MIDIPort         string        `yaml:"midi_port,omitempty"`
	SPIPort          string        `yaml:"spi_port,omitempty"`
	Debug            bool          `yaml:"debug,omitempty"`
}

// DefaultConfig returns a six seat table on the Launchpad top row
func DefaultConfig() *Config {
	colors := []string{"#ff0000", "#00ff00", "#0000ff", "#ffff00", "#ff00ff", "#00ffff"}
	seats := make([]SeatConfig, len(colors))
	for i, c := range colors {
		seats[i] = SeatConfig{
			Name:   fmt.Sprintf("Seat %d", i+1),
			Pixels: 10,
			Color:  c,
			Button: Pad{Row: 8, Col: i},
			Lamp:   &Pad{Row: 7 - i, Col: 8},
		}
	}
	return &Config{
		Backend:          BackendSim,
		Seats:            seats,
		Transition:       fade.DefaultDuration,
		Easing:           "linear",
		BrightnessBright: 1.0,
		BrightnessDim:    0.1,
		Gamma:            theme.DefaultGamma,
		LongPress:        3 * time.Second,
		FrameRate:        60,
		FirstPlayer:      "random",
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "turnlight"), nil
}

// ConfigPath returns the full path to config.yaml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the default config file, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads path, or returns defaults if it does not exist. Fields
// missing from the file keep their default values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to the default path
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path, creating its directory
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks the config before the controller is built
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSim, BackendLaunchpad, BackendGPIO:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if len(c.Seats) == 0 {
		return errors.New("no seats configured")
	}

	buttons := make(map[Pad]int)
	for i, s := range c.Seats {
		if s.Pixels <= 0 {
			return fmt.Errorf("seat %d: pixels must be positive, got %d", i, s.Pixels)
		}
		if _, err := theme.ParseHex(s.Color); err != nil {
			return fmt.Errorf("seat %d: %w", i, err)
		}
		if prev, ok := buttons[s.Button]; ok {
			return fmt.Errorf("seat %d: button %+v already used by seat %d", i, s.Button, prev)
		}
		buttons[s.Button] = i
		if c.Backend == BackendGPIO && s.Button.Pin == "" {
			return fmt.Errorf("seat %d: gpio backend needs a button pin", i)
		}
	}

	if _, err := fade.EasingByName(c.Easing); err != nil {
		return err
	}
	if c.BrightnessBright < 0 || c.BrightnessBright > 1 {
		return fmt.Errorf("brightness_bright %v outside [0,1]", c.BrightnessBright)
	}
	if c.BrightnessDim < 0 || c.BrightnessDim > 1 {
		return fmt.Errorf("brightness_dim %v outside [0,1]", c.BrightnessDim)
	}
	if c.Transition <= 0 {
		return fmt.Errorf("transition must be positive, got %v", c.Transition)
	}
	if c.LongPress <= 0 {
		return fmt.Errorf("long_press must be positive, got %v", c.LongPress)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("frame_rate must be positive, got %d", c.FrameRate)
	}
	switch c.FirstPlayer {
	case "", "random", "lowest":
	default:
		return fmt.Errorf("unknown first_player %q", c.FirstPlayer)
	}
	return nil
}

// TotalPixels is the strip length implied by the seats
func (c *Config) TotalPixels() int {
	n := 0
	for _, s := range c.Seats {
		n += s.Pixels
	}
	return n
}

// Style builds the fade settings
func (c *Config) Style() (fade.Style, error) {
	ease, err := fade.EasingByName(c.Easing)
	if err != nil {
		return fade.Style{}, err
	}
	return fade.Style{
		Duration: c.Transition,
		Ease:     ease,
		Gamma:    theme.NewGamma(c.Gamma),
		Bright:   c.BrightnessBright,
		Dim:      c.BrightnessDim,
	}, nil
}

// SeatByButton finds the seat whose button is at pad
func (c *Config) SeatByButton(pad Pad) (int, bool) {
	for i, s := range c.Seats {
		if s.Button == pad {
			return i, true
		}
	}
	return -1, false
}
