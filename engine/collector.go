package engine

import (
	"github.com/lixenwraith/rhythm-detective/audio"
	"github.com/lixenwraith/rhythm-detective/pattern"
)

// CollectorStatus reports what a submission did
type CollectorStatus int

const (
	CollectorIgnored      CollectorStatus = iota // Out of phase, nothing recorded
	CollectorAwaitingMore                        // Recorded, pattern not yet complete
	CollectorReadyToJudge                        // Recorded, input now matches pattern length
)

// String returns the status name
func (cs CollectorStatus) String() string {
	switch cs {
	case CollectorAwaitingMore:
		return "awaiting-more"
	case CollectorReadyToJudge:
		return "ready-to-judge"
	default:
		return "ignored"
	}
}

// CollectorResult carries the status and, when ready, the completed input
type CollectorResult struct {
	Status CollectorStatus
	Input  []pattern.Cue // Completed round, set only with CollectorReadyToJudge
}

// Collector accumulates player cues into the session
type Collector struct {
	audio audio.Player
}

// NewCollector creates a collector echoing cues through the given audio port
func NewCollector(player audio.Player) *Collector {
	return &Collector{audio: player}
}

// Submit records one cue
// The session input is cleared as soon as a round completes, whatever the verdict
func (c *Collector) Submit(s *Session, cue pattern.Cue) CollectorResult {
	expected := s.expectedLen()
	if !s.Phase.acceptsInput() || expected == 0 || !cue.Valid() {
		return CollectorResult{Status: CollectorIgnored}
	}

	c.audio.Play(soundFor(cue))
	s.Input = append(s.Input, cue)

	if len(s.Input) < expected {
		return CollectorResult{Status: CollectorAwaitingMore}
	}

	completed := s.Input
	s.Input = nil
	return CollectorResult{Status: CollectorReadyToJudge, Input: completed}
}

// soundFor maps a cue to its tone
func soundFor(cue pattern.Cue) audio.SoundType {
	if cue == pattern.CueStomp {
		return audio.SoundStomp
	}
	return audio.SoundClap
}
