package event

import (
	"github.com/lixenwraith/rhythm-detective/pattern"
)

// GameStartedPayload carries the new playthrough identity
type GameStartedPayload struct {
	PlaythroughID string
	Levels        int
}

// PhaseChangedPayload carries phase names before and after a transition
type PhaseChangedPayload struct {
	From  string
	To    string
	Level int
}

// CuePayload carries one played or submitted cue
type CuePayload struct {
	Cue      pattern.Cue
	Level    int
	Position int // 0-based index in the sequence
}

// VerdictPayload carries the result of one judged round
type VerdictPayload struct {
	Level     int
	PatternID int
	Passed    bool
	Delta     int
	Score     int // Cumulative score after the verdict
}

// LevelPayload carries the level being entered
type LevelPayload struct {
	Level     int
	PatternID int
}

// CompletionPayload carries the final result of a playthrough
type CompletionPayload struct {
	PlaythroughID string
	Score         int
	MaxScore      int
}
