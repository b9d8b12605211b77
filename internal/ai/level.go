package ai

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lk16/flippy/reversi/internal/evaluation"
	"github.com/lk16/flippy/reversi/internal/search"
)

var ErrUnknownLevel = errors.New("unknown level")

// Level is the difficulty tier of the computer player.
type Level int

const (
	Beginner Level = iota
	Elementary
	Intermediate
	SemiAdvanced
	Advanced
	Expert
)

var levelNames = [...]string{
	Beginner:     "beginner",
	Elementary:   "elementary",
	Intermediate: "intermediate",
	SemiAdvanced: "semi_advanced",
	Advanced:     "advanced",
	Expert:       "expert",
}

// Levels returns all levels from weakest to strongest.
func Levels() []Level {
	return []Level{Beginner, Elementary, Intermediate, SemiAdvanced, Advanced, Expert}
}

// IsValid checks if l is one of the defined levels.
func (l Level) IsValid() bool {
	return l >= Beginner && l <= Expert
}

func (l Level) String() string {
	if !l.IsValid() {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l]
}

// ParseLevel parses a level name. Matching is case-insensitive and accepts "-" in place of "_".
func ParseLevel(s string) (Level, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")

	for _, level := range Levels() {
		if levelNames[level] == name {
			return level, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// Searches reports if the level uses the search engine.
func (l Level) Searches() bool {
	return l >= SemiAdvanced && l <= Expert
}

// SearchConfig returns the search configuration of a searching level. It returns false for levels
// that pick moves with a heuristic.
func (l Level) SearchConfig() (search.Config, bool) {
	switch l {
	case SemiAdvanced:
		return search.Config{
			MaxDepth: 4,
			Profile:  evaluation.Standard,
		}, true
	case Advanced:
		return search.Config{
			MaxDepth:         6,
			Iterative:        true,
			DepthStep:        2,
			EndgameThreshold: 12,
			TimeBudget:       2000 * time.Millisecond,
			Profile:          evaluation.Standard,
		}, true
	case Expert:
		return search.Config{
			MaxDepth:         10,
			Iterative:        true,
			DepthStep:        1,
			EndgameThreshold: 16,
			TimeBudget:       4000 * time.Millisecond,
			OrderInterior:    true,
			Profile:          evaluation.Enhanced,
		}, true
	default:
		return search.Config{}, false
	}
}
