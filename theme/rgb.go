package theme

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit per channel color as written to the strip
type RGB [3]uint8

var Black = RGB{0, 0, 0}

// ParseHex parses "#rrggbb" (or "#rgb") into an RGB
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		// colorful only accepts the 6 digit form
		if len(s) == 4 && s[0] == '#' {
			return ParseHex(fmt.Sprintf("#%c%c%c%c%c%c", s[1], s[1], s[2], s[2], s[3], s[3]))
		}
		return Black, fmt.Errorf("parse color %q: %w", s, err)
	}
	return FromColorful(c), nil
}

// FromColorful converts a colorful color (clamped) to RGB
func FromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{r, g, b}
}

// Colorful returns the normalized float color
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c[0]) / 255,
		G: float64(c[1]) / 255,
		B: float64(c[2]) / 255,
	}
}

// Hex returns "#rrggbb"
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

func (c RGB) IsBlack() bool {
	return c == Black
}

// Mix blends a toward b by weight w (0 = a, 1 = b), channel-wise in the
// stored (gamma encoded) space. w is clamped to [0,1].
func Mix(a, b RGB, w float64) RGB {
	if w <= 0 {
		return a
	}
	if w >= 1 {
		return b
	}
	return FromColorful(a.Colorful().BlendRgb(b.Colorful(), w))
}

// Scale multiplies every channel by k (clamped to [0,1])
func (c RGB) Scale(k float64) RGB {
	if k <= 0 {
		return Black
	}
	if k >= 1 {
		return c
	}
	return RGB{
		uint8(float64(c[0])*k + 0.5),
		uint8(float64(c[1])*k + 0.5),
		uint8(float64(c[2])*k + 0.5),
	}
}
