package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-turnlight/game"
	"go-turnlight/input"
	"go-turnlight/theme"
	"go-turnlight/widgets"
)

// maxSeatKeys is how many seats the number keys can reach (1-9)
const maxSeatKeys = 9

// titleCycleFrames is one sweep of the title color through the palette
const titleCycleFrames = 180

// Model is the terminal simulator: it steps the controller on every frame
// and stands in for the seat buttons.
type Model struct {
	Controller *game.Controller
	Queue      *input.Queue
	Theme      *theme.Theme
	interval   time.Duration
	showHelp   bool
	quitting   bool
}

// FrameMsg asks for one controller step
type FrameMsg time.Time

func NewModel(ctrl *game.Controller, queue *input.Queue, th *theme.Theme, frameRate int) Model {
	if frameRate <= 0 {
		frameRate = game.DefaultFrameRate
	}
	return Model{
		Controller: ctrl,
		Queue:      queue,
		Theme:      th,
		interval:   time.Second / time.Duration(frameRate),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "r":
			m.releaseAll()

		case "?":
			m.showHelp = !m.showHelp

		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			m.toggle(int(key[0] - '1'))
		}

	case FrameMsg:
		if m.quitting {
			return m, nil
		}
		m.Controller.Step()
		return m, m.tick()
	}

	return m, nil
}

// toggle flips a seat button. Terminals only report key presses, so each
// keystroke alternates between holding and releasing.
func (m Model) toggle(seat int) {
	if seat < 0 || seat >= len(m.Controller.Seats()) {
		return
	}
	if m.Queue.Held(seat) {
		m.Queue.Release(seat)
	} else {
		m.Queue.Press(seat)
	}
}

func (m Model) releaseAll() {
	for i := range m.Controller.Seats() {
		if m.Queue.Held(i) {
			m.Queue.Release(i)
		}
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.Controller.Snapshot()

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	warnStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())

	status := snap.Phase.String()
	if snap.Active >= 0 && snap.Active < len(snap.Seats) {
		status += "  turn: " + snap.Seats[snap.Active].Name
	}
	title := headerStyle.Render("turnlight")
	if snap.Phase == game.PhaseSelecting {
		// title cycles through the idle palette while waiting for players
		norm := float64(snap.Frames%titleCycleFrames) / titleCycleFrames
		title = lipgloss.NewStyle().Foreground(m.Theme.Color(norm)).Render("turnlight")
	}
	header := title + headerStyle.Render("  "+status)
	if snap.Faults > 0 {
		header += warnStyle.Render(fmt.Sprintf("  faults:%d", snap.Faults))
	}

	nameWidth := 0
	for _, s := range snap.Seats {
		nameWidth = max(nameWidth, lipgloss.Width(s.Name))
	}

	var rows []string
	for i, s := range snap.Seats {
		key := " "
		if i < maxSeatKeys {
			key = fmt.Sprintf("%d", i+1)
		}
		rows = append(rows, widgets.RenderSeatRow(m.Theme, widgets.SeatRow{
			Key:    key,
			Name:   s.Name,
			Color:  s.Color,
			Pixels: snap.Pixels[s.Range.Start:s.Range.End],
			Lamp:   s.Lamp,
			Held:   m.Queue.Held(i),
			InGame: s.InGame,
			Active: s.Active,
		}, nameWidth))
	}

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(strings.Join(rows, "\n"))
	out.WriteString("\n\n")
	if m.showHelp {
		out.WriteString(dimStyle.Render(widgets.RenderKeyHelp(helpSections)))
	} else {
		out.WriteString(dimStyle.Render("1-9:hold/release seat  r:release all  ?:help  q:quit"))
	}
	return out.String()
}

var helpSections = []widgets.KeySection{
	{Title: "Seat buttons", Keys: []widgets.KeyBinding{
		{Key: "1-9", Desc: "press, press again to release"},
		{Key: "r", Desc: "release every held button"},
	}},
	{Title: "Game", Keys: []widgets.KeyBinding{
		{Key: "hold seats", Desc: "join, release them all to start"},
		{Key: "active key", Desc: "pass the turn"},
		{Key: "hold 3s", Desc: "end the game"},
	}},
	{Title: "", Keys: []widgets.KeyBinding{
		{Key: "?", Desc: "toggle this help"},
		{Key: "q", Desc: "quit"},
	}},
}
