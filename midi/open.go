package midi

import (
	"go-turnlight/config"
	"go-turnlight/input"
	"go-turnlight/theme"
)

// Open finds the Launchpad named by cfg.MIDIPort (or the first one) and binds
// each seat's button pad to its index.
func Open(cfg *config.Config, queue *input.Queue) (*Launchpad, error) {
	buttons := make(map[Pad]int, len(cfg.Seats))
	for i, s := range cfg.Seats {
		buttons[Pad{Row: s.Button.Row, Col: s.Button.Col}] = i
	}
	return OpenLaunchpad(cfg.MIDIPort, buttons, queue)
}

// Lamps returns one lamp per seat, nil where the seat has none
func (lp *Launchpad) Lamps(cfg *config.Config) []*Lamp {
	lamps := make([]*Lamp, len(cfg.Seats))
	for i, s := range cfg.Seats {
		if s.Lamp == nil {
			continue
		}
		color, err := theme.ParseHex(s.Color)
		if err != nil {
			color = theme.RGB{255, 255, 255}
		}
		lamps[i] = lp.LampAt(s.Lamp.Row, s.Lamp.Col, color)
	}
	return lamps
}
