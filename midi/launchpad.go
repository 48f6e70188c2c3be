package midi

import (
	"fmt"
	"sync"
	"sync/atomic"

	"go-turnlight/debug"
	"go-turnlight/input"
	"go-turnlight/theme"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// Launchpad X SysEx header: F0 00 20 29 02 0C ...
var sysexHeader = []byte{0x00, 0x20, 0x29, 0x02, 0x0C}

const (
	sysexProgrammer = 0x00
	sysexLighting   = 0x03
	sysexBrightness = 0x08
	sysexFeedback   = 0x0A

	lightingRGB = 0x03
)

// Pad is a row/col position on the Launchpad
type Pad struct {
	Row, Col int
}

// Launchpad drives a Novation Launchpad X as a seat table: top-row (or any
// configured) pads are seat buttons, the 8x8 grid shows the strip and the
// side column carries the seat lamps.
type Launchpad struct {
	name     string
	buttons  map[Pad]int
	queue    *input.Queue
	stopFunc func()

	mu    sync.Mutex
	send  func(msg gomidi.Message) error
	shown map[uint8]theme.RGB
	sent  uint64
}

// NewLaunchpad opens the given ports. buttons maps pads to seat indices;
// presses on other pads are ignored. Either port may be nil.
func NewLaunchpad(name string, inPort drivers.In, outPort drivers.Out, buttons map[Pad]int, queue *input.Queue) (*Launchpad, error) {
	lp := &Launchpad{
		name:    name,
		buttons: buttons,
		queue:   queue,
		shown:   make(map[uint8]theme.RGB),
	}

	if outPort != nil {
		send, err := gomidi.SendTo(outPort)
		if err != nil {
			return nil, fmt.Errorf("open output: %w", err)
		}
		lp.send = send

		// Programmer mode, full brightness, external LED feedback
		lp.sysex(sysexProgrammer, 0x7F)
		lp.sysex(sysexBrightness, 0x7F)
		lp.sysex(sysexFeedback, 0x01, 0x01)
	}

	if inPort != nil {
		stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
			lp.handle(msg)
		})
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		lp.stopFunc = stop
	}

	debug.Log("midi", "launchpad %q ready (%d buttons)", name, len(buttons))
	return lp, nil
}

func (lp *Launchpad) Name() string {
	return lp.name
}

func (lp *Launchpad) sysex(cmd byte, args ...byte) error {
	if lp.send == nil {
		return nil
	}
	data := append(append([]byte{}, sysexHeader...), cmd)
	data = append(data, args...)
	return lp.send(gomidi.SysEx(data))
}

// handle turns pad messages into seat button events
func (lp *Launchpad) handle(msg gomidi.Message) {
	var channel, note, velocity, cc, value uint8

	row, col := -1, -1
	var kind input.Kind

	switch {
	case msg.GetNoteStart(&channel, &note, &velocity):
		row, col = noteToRowCol(note)
		kind = input.Pressed
	case msg.GetNoteEnd(&channel, &note):
		row, col = noteToRowCol(note)
		kind = input.Released
	case msg.GetControlChange(&channel, &cc, &value):
		row, col = ccToRowCol(cc)
		kind = input.Pressed
		if value == 0 {
			kind = input.Released
		}
	default:
		return
	}
	if row < 0 {
		return
	}

	seat, ok := lp.buttons[Pad{Row: row, Col: col}]
	if !ok {
		debug.Log("midi", "unbound pad %d,%d %s", row, col, kind)
		return
	}
	if kind == input.Pressed {
		lp.queue.Press(seat)
	} else {
		lp.queue.Release(seat)
	}
}

// Write draws the strip onto the grid. Only pads whose color changed since
// the last frame are sent, batched into one RGB lighting SysEx.
func (lp *Launchpad) Write(pixels []theme.RGB) error {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	var data []byte
	n := 0
	for i, c := range pixels {
		row, col, ok := pixelToRowCol(i)
		if !ok {
			break
		}
		note := rowColToNote(row, col)
		if prev, seen := lp.shown[note]; seen && prev == c {
			continue
		}
		lp.shown[note] = c
		// Launchpad RGB components are 7 bit
		data = append(data, lightingRGB, note, c[0]>>1, c[1]>>1, c[2]>>1)
		n++
	}
	if n == 0 || lp.send == nil {
		return nil
	}

	msg := append(append([]byte{}, sysexHeader...), sysexLighting)
	msg = append(msg, data...)
	if err := lp.send(gomidi.SysEx(msg)); err != nil {
		return fmt.Errorf("launchpad %s: %w", lp.name, err)
	}

	count := atomic.AddUint64(&lp.sent, uint64(n))
	debug.LogEvery(600, "lp-send", "sent %d pads (total %d)", n, count)
	return nil
}

// SetPad lights a single pad with the nearest palette color
func (lp *Launchpad) SetPad(row, col int, c theme.RGB) error {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	if lp.send == nil {
		return nil
	}
	return lp.send(gomidi.NoteOn(ChannelStatic, rowColToNote(row, col), nearestPaletteColor(c)))
}

// Lamp is a side pad used as a seat indicator
type Lamp struct {
	lp       *Launchpad
	row, col int
	color    theme.RGB
}

// LampAt returns an indicator on the given pad lit in color
func (lp *Launchpad) LampAt(row, col int, color theme.RGB) *Lamp {
	return &Lamp{lp: lp, row: row, col: col, color: color}
}

func (l *Lamp) Set(on bool) error {
	c := theme.Black
	if on {
		c = l.color
	}
	return l.lp.SetPad(l.row, l.col, c)
}

// Close blanks every LED and stops listening
func (lp *Launchpad) Close() error {
	lp.mu.Lock()
	if lp.send != nil {
		for row := 0; row < 9; row++ {
			for col := 0; col < 9; col++ {
				if row == 8 && col == 8 {
					continue // no LED at 8,8
				}
				lp.send(gomidi.NoteOn(ChannelStatic, rowColToNote(row, col), ColorOff))
			}
		}
	}
	lp.shown = make(map[uint8]theme.RGB)
	lp.mu.Unlock()

	if lp.stopFunc != nil {
		lp.stopFunc()
	}
	return nil
}
