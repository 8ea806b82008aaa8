package pattern

import (
	"strings"

	"github.com/lixenwraith/rhythm-detective/constants"
)

// Pattern is one level of the game
// Patterns are immutable; Sequence must not be modified by holders
type Pattern struct {
	ID         int
	Sequence   []Cue
	Name       string
	Difficulty int
}

// Len returns the number of cues the player must reproduce
func (p Pattern) Len() int {
	return len(p.Sequence)
}

// Points returns the score awarded for reproducing the pattern
func (p Pattern) Points() int {
	return p.Difficulty * constants.PointsPerDifficulty
}

// Stars renders the difficulty as a row of stars
func (p Pattern) Stars() string {
	if p.Difficulty <= 0 {
		return ""
	}
	return strings.Repeat("*", p.Difficulty)
}

// Cues returns a copy of the sequence
func (p Pattern) Cues() []Cue {
	out := make([]Cue, len(p.Sequence))
	copy(out, p.Sequence)
	return out
}
