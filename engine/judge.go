package engine

import (
	"github.com/lixenwraith/rhythm-detective/constants"
	"github.com/lixenwraith/rhythm-detective/pattern"
)

// Verdict is the outcome of one judged round
type Verdict struct {
	Passed bool
	Delta  int // Score to add, 0 on fail
}

// Judge compares a reproduction against the expected sequence position by position
// No partial credit: any mismatch, including a length mismatch, fails
func Judge(expected, actual []pattern.Cue, difficulty int) Verdict {
	if !pattern.Equal(expected, actual) {
		return Verdict{}
	}
	return Verdict{Passed: true, Delta: difficulty * constants.PointsPerDifficulty}
}
