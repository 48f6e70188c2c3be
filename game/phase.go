// Package game runs seat selection and turn passing for the indicator.
package game

import (
	"errors"
	"fmt"
)

// Phase is the controller's current mode
type Phase int

const (
	// PhaseSelecting waits for players to press and release their buttons
	PhaseSelecting Phase = iota
	// PhasePlaying lights the active seat and passes turns
	PhasePlaying
	// PhaseResetting blanks the strip and waits for every button to be released
	PhaseResetting
)

func (p Phase) String() string {
	switch p {
	case PhaseSelecting:
		return "selecting"
	case PhasePlaying:
		return "playing"
	case PhaseResetting:
		return "resetting"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

var (
	// ErrUnknownKey is returned when an event names a key with no seat
	ErrUnknownKey = errors.New("unknown key")
	// ErrNoSeatsInGame is returned when play starts with nobody seated
	ErrNoSeatsInGame = errors.New("no seats in game")
)

func unknownKey(key, seats int) error {
	return fmt.Errorf("%w: %d (have %d seats)", ErrUnknownKey, key, seats)
}
