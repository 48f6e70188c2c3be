package theme

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette is an ordered list of colors sampled by the idle animation
type Palette struct {
	Name   string
	Colors []RGB
}

// Rainbow builds an n-step HSV wheel at full saturation and value
func Rainbow(n int) *Palette {
	if n < 2 {
		n = 2
	}
	p := &Palette{Name: "rainbow", Colors: make([]RGB, n)}
	for i := 0; i < n; i++ {
		hue := 360 * float64(i) / float64(n)
		p.Colors[i] = FromColorful(colorful.Hsv(hue, 1, 1))
	}
	return p
}

// LoadGPL reads a GIMP palette file
func LoadGPL(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p := &Palette{}
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "Name:") {
			p.Name = strings.TrimSpace(strings.TrimPrefix(line, "Name:"))
			continue
		}

		// Skip headers and comments
		if line == "" || line[0] == '#' || strings.HasPrefix(line, "GIMP") || strings.HasPrefix(line, "Columns") {
			continue
		}

		// First 3 fields are R G B
		fields := strings.Fields(line)
		if len(fields) >= 3 {
			r, err1 := strconv.Atoi(fields[0])
			g, err2 := strconv.Atoi(fields[1])
			b, err3 := strconv.Atoi(fields[2])
			if err1 == nil && err2 == nil && err3 == nil {
				p.Colors = append(p.Colors, RGB{uint8(r), uint8(g), uint8(b)})
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(p.Colors) == 0 {
		return nil, fmt.Errorf("no colors found in palette %s", path)
	}

	return p, nil
}

// LoadOrRainbow loads path, or returns a rainbow when path is empty
func LoadOrRainbow(path string) (*Palette, error) {
	if path == "" {
		return Rainbow(32), nil
	}
	return LoadGPL(path)
}

// Lookup returns interpolated color for normalized value 0-1
func (p *Palette) Lookup(norm float64) RGB {
	if norm <= 0 {
		return p.Colors[0]
	}
	if norm >= 1 {
		return p.Colors[len(p.Colors)-1]
	}

	pos := norm * float64(len(p.Colors)-1)
	i := int(pos)
	return Mix(p.Colors[i], p.Colors[i+1], pos-float64(i))
}

// Cycle samples the palette as a ring: norm wraps and the last color blends
// back into the first
func (p *Palette) Cycle(norm float64) RGB {
	n := len(p.Colors)
	norm -= float64(int(norm))
	if norm < 0 {
		norm++
	}
	pos := norm * float64(n)
	i := int(pos) % n
	return Mix(p.Colors[i], p.Colors[(i+1)%n], pos-float64(int(pos)))
}
