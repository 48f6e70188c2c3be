package gpio

import (
	"fmt"

	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"

	"go-turnlight/theme"
)

// Strip writes frames to a WS2812 chain through an SPI port
type Strip struct {
	port spi.PortCloser
	dev  *nrzled.Dev
	buf  []byte
}

// OpenStrip opens the named SPI port ("" for the first one) for n pixels
func OpenStrip(name string, n int) (*Strip, error) {
	port, err := spireg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open spi %q: %w", name, err)
	}
	opts := nrzled.DefaultOpts
	opts.NumPixels = n
	opts.Channels = 3
	dev, err := nrzled.NewSPI(port, &opts)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	return &Strip{port: port, dev: dev, buf: make([]byte, 3*n)}, nil
}

// Write sends one frame
func (s *Strip) Write(pixels []theme.RGB) error {
	s.buf = encode(s.buf, pixels)
	_, err := s.dev.Write(s.buf)
	return err
}

// Close blanks the strip and releases the port
func (s *Strip) Close() error {
	s.dev.Halt()
	return s.port.Close()
}

// encode packs pixels as consecutive R, G, B bytes, reusing buf
func encode(buf []byte, pixels []theme.RGB) []byte {
	buf = buf[:0]
	for _, c := range pixels {
		buf = append(buf, c[0], c[1], c[2])
	}
	return buf
}
