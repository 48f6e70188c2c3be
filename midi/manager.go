package midi

import (
	"errors"
	"fmt"
	"strings"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"go-turnlight/debug"
	"go-turnlight/input"
)

// ScanTimeout bounds port enumeration (CoreMIDI can hang)
const ScanTimeout = 3 * time.Second

// ErrScanTimeout is returned when the MIDI driver did not list its ports in time
var ErrScanTimeout = errors.New("midi port scan timed out")

// ErrNotFound is returned when no matching Launchpad port is connected
var ErrNotFound = errors.New("no launchpad found")

// Ports is a snapshot of the system's MIDI ports
type Ports struct {
	In  []drivers.In
	Out []drivers.Out
}

// Scan lists MIDI ports, giving up after ScanTimeout
func Scan() (Ports, error) {
	ch := make(chan Ports, 1)
	go func() {
		ch <- Ports{In: gomidi.GetInPorts(), Out: gomidi.GetOutPorts()}
	}()

	select {
	case p := <-ch:
		return p, nil
	case <-time.After(ScanTimeout):
		// User needs to run: sudo killall coreaudiod midiserver
		debug.Log("midi", "port scan timed out after %v", ScanTimeout)
		return Ports{}, ErrScanTimeout
	}
}

// Names returns the input and output port names
func (p Ports) Names() (in, out []string) {
	for _, port := range p.In {
		in = append(in, port.String())
	}
	for _, port := range p.Out {
		out = append(out, port.String())
	}
	return in, out
}

// FindLaunchpad picks the input/output pair of the first Launchpad. When
// match is non-empty only ports whose name contains it are considered.
func (p Ports) FindLaunchpad(match string) (drivers.In, drivers.Out, error) {
	match = strings.ToLower(match)
	for _, in := range p.In {
		name := strings.ToLower(in.String())
		if !isLaunchpad(name) || (match != "" && !strings.Contains(name, match)) {
			continue
		}
		for _, out := range p.Out {
			if strings.ToLower(out.String()) == name {
				return in, out, nil
			}
		}
		return in, nil, nil
	}
	return nil, nil, ErrNotFound
}

// OpenLaunchpad scans for a Launchpad and opens it
func OpenLaunchpad(match string, buttons map[Pad]int, queue *input.Queue) (*Launchpad, error) {
	ports, err := Scan()
	if err != nil {
		return nil, err
	}
	in, out, err := ports.FindLaunchpad(match)
	if err != nil {
		return nil, err
	}
	lp, err := NewLaunchpad(in.String(), in, out, buttons, queue)
	if err != nil {
		return nil, fmt.Errorf("launchpad %s: %w", in.String(), err)
	}
	return lp, nil
}

func isLaunchpad(name string) bool {
	name = strings.ToLower(name)
	return strings.Contains(name, "launchpad") && strings.Contains(name, "midi")
}
