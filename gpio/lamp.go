package gpio

import (
	pgpio "periph.io/x/conn/v3/gpio"
)

// Lamp is an indicator LED on an output pin, lit when driven high
type Lamp struct {
	Pin pgpio.PinOut
}

func (l *Lamp) Set(on bool) error {
	level := pgpio.Low
	if on {
		level = pgpio.High
	}
	return l.Pin.Out(level)
}
