package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme styles the terminal simulator chrome. Seat pixels are drawn in their
// real strip colors, not from the theme.
type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	Pixel    rune // ■ lit pixel
	PixelOff rune // · dark pixel
	LampOn   rune // ● indicator lamp on
	LampOff  rune // ○ indicator lamp off
	Held     rune // ▼ button currently held
}

func New(palette *Palette) *Theme {
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			Pixel:    '■',
			PixelOff: '·',
			LampOn:   '●',
			LampOff:  '○',
			Held:     '▼',
		},
	}
}

// Chrome colors
var (
	chromeFG     = RGB{0xc8, 0xc8, 0xd0}
	chromeMuted  = RGB{0x60, 0x60, 0x70}
	chromeAccent = RGB{0xff, 0xb0, 0x40}
	chromeWarn   = RGB{0xff, 0x50, 0x50}
)

func (t *Theme) FG() lipgloss.Color {
	return Lipgloss(chromeFG)
}

func (t *Theme) Muted() lipgloss.Color {
	return Lipgloss(chromeMuted)
}

func (t *Theme) Accent() lipgloss.Color {
	return Lipgloss(chromeAccent)
}

func (t *Theme) Warning() lipgloss.Color {
	return Lipgloss(chromeWarn)
}

// Color returns the palette color for a normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return Lipgloss(t.Palette.Lookup(norm))
}

// Lipgloss converts an RGB to a lipgloss color
func Lipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(c.Hex())
}
