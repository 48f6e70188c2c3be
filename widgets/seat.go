package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-turnlight/theme"
)

// RenderPixel renders a single strip pixel in its own color. Black pixels
// are drawn as a dim dot so the strip layout stays visible.
func RenderPixel(th *theme.Theme, c theme.RGB) string {
	if c.IsBlack() {
		return lipgloss.NewStyle().Foreground(th.Muted()).Render(string(th.Symbols.PixelOff))
	}
	return lipgloss.NewStyle().Foreground(theme.Lipgloss(c)).Render(string(th.Symbols.Pixel))
}

// RenderPixels renders a run of pixels with spacing
func RenderPixels(th *theme.Theme, pixels []theme.RGB) string {
	var out strings.Builder
	for i, c := range pixels {
		if i > 0 {
			out.WriteString(" ")
		}
		out.WriteString(RenderPixel(th, c))
	}
	return out.String()
}

// SeatRow is everything drawn on one seat's line
type SeatRow struct {
	Key    string // keyboard key bound to the seat button
	Name   string
	Color  theme.RGB
	Pixels []theme.RGB
	Lamp   bool
	Held   bool
	InGame bool
	Active bool
}

// RenderSeatRow renders "1 ▼ ● Seat 1    ■ ■ ■ ·"
func RenderSeatRow(th *theme.Theme, row SeatRow, nameWidth int) string {
	held := " "
	if row.Held {
		held = lipgloss.NewStyle().Foreground(th.Accent()).Render(string(th.Symbols.Held))
	}

	lamp := lipgloss.NewStyle().Foreground(th.Muted()).Render(string(th.Symbols.LampOff))
	if row.Lamp {
		lamp = lipgloss.NewStyle().Foreground(theme.Lipgloss(row.Color)).Render(string(th.Symbols.LampOn))
	}

	nameStyle := lipgloss.NewStyle().Foreground(th.Muted()).Width(nameWidth)
	switch {
	case row.Active:
		nameStyle = nameStyle.Foreground(theme.Lipgloss(row.Color)).Bold(true)
	case row.InGame:
		nameStyle = nameStyle.Foreground(th.FG())
	}

	return fmt.Sprintf("%s %s %s %s %s", row.Key, held, lamp, nameStyle.Render(row.Name), RenderPixels(th, row.Pixels))
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}
