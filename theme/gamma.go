package theme

import "math"

// DefaultGamma matches the usual WS2812 correction curve
const DefaultGamma = 2.5

// Gamma holds a precomputed curve: lut[v] = (v/255)^gamma
type Gamma struct {
	value float64
	lut   [256]float64
}

var defaultGamma = NewGamma(DefaultGamma)

// NewGamma builds the lookup table for the given exponent.
// Non-positive exponents fall back to DefaultGamma.
func NewGamma(g float64) *Gamma {
	if g <= 0 {
		g = DefaultGamma
	}
	t := &Gamma{value: g}
	for i := 0; i < 256; i++ {
		t.lut[i] = math.Pow(float64(i)/255, g)
	}
	return t
}

func (g *Gamma) Value() float64 {
	return g.value
}

// Adjust applies the curve to each channel and scales by brightness
func (g *Gamma) Adjust(c RGB, brightness float64) RGB {
	if brightness < 0 {
		brightness = 0
	}
	if brightness > 1 {
		brightness = 1
	}
	var out RGB
	for i := range c {
		v := g.lut[c[i]] * brightness * 255
		out[i] = uint8(math.Min(255, v+0.5))
	}
	return out
}

// GammaAdjust uses the default curve
func GammaAdjust(c RGB, brightness float64) RGB {
	return defaultGamma.Adjust(c, brightness)
}
