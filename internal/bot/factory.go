package bot

import (
	"fmt"
	"math/rand"
)

// Level names a bot strategy.
type Level string

const (
	LevelFirst  Level = "first"
	LevelRandom Level = "random"
)

// NewBrain creates a new brain for the given level. rng is only used by
// LevelRandom and may be nil.
func NewBrain(level Level, rng *rand.Rand) (Brain, error) {
	switch level {
	case LevelFirst, "":
		return FirstLegal{}, nil
	case LevelRandom:
		return RandomLegal{Rng: rng}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %s", level)
	}
}
