package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lk16/flippy/reversi/internal/ai"
	"github.com/lk16/flippy/reversi/internal/othello"
)

var ErrUnknownMode = errors.New("unknown mode")

// Mode selects who plays the moves that are not played by a human.
type Mode int

const (
	// VsCPU lets a human play one color against the computer.
	VsCPU Mode = iota

	// Local lets two humans share the board.
	Local
)

func (m Mode) String() string {
	switch m {
	case VsCPU:
		return "cpu"
	case Local:
		return "local"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode parses "cpu" or "local".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cpu":
		return VsCPU, nil
	case "local":
		return Local, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// GameSettings holds everything the player can choose before and during a game.
type GameSettings struct {
	Mode  Mode
	Level ai.Level

	// HumanColor is the color of the human player in VsCPU mode.
	HumanColor othello.Color

	// ShowOpenness adds the openness to every valid move.
	ShowOpenness bool

	// Coaching grades every move of the human player in VsCPU mode.
	Coaching bool
}

// DefaultSettings returns the settings of a new player: black against the beginner level.
func DefaultSettings() GameSettings {
	return GameSettings{
		Mode:       VsCPU,
		Level:      ai.Beginner,
		HumanColor: othello.Black,
	}
}

// Validate checks that every field holds a known value.
func (s GameSettings) Validate() error {
	if s.Mode != VsCPU && s.Mode != Local {
		return fmt.Errorf("%w: %s", ErrUnknownMode, s.Mode)
	}

	if !s.Level.IsValid() {
		return fmt.Errorf("%w: %s", ai.ErrUnknownLevel, s.Level)
	}

	if s.HumanColor != othello.Black && s.HumanColor != othello.White {
		return fmt.Errorf("invalid human color: %s", s.HumanColor)
	}

	return nil
}
