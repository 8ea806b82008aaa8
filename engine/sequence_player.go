package engine

import (
	"time"

	"github.com/lixenwraith/rhythm-detective/audio"
	"github.com/lixenwraith/rhythm-detective/pattern"
)

// SequencePlayer demonstrates a pattern one cue at a time
// Steps are scheduler callbacks, so playback never blocks the event loop
type SequencePlayer struct {
	sched *Scheduler
	audio audio.Player
	delay time.Duration

	// OnCue is called after each cue is sounded
	OnCue func(cue pattern.Cue, position int)
}

// NewSequencePlayer creates a player with a fixed pause after every cue
func NewSequencePlayer(sched *Scheduler, player audio.Player, delay time.Duration) *SequencePlayer {
	return &SequencePlayer{
		sched: sched,
		audio: player,
		delay: delay,
	}
}

// Play starts playback of p into the session
// Returns false without side effects if a playback is already in flight
// A generation change (restart) or stopPlayback silently ends the remaining steps
func (sp *SequencePlayer) Play(s *Session, p pattern.Pattern) bool {
	if s.Playing || p.Len() == 0 {
		return false
	}

	s.Playing = true
	s.playbackSeq++
	gen, seq := s.Generation, s.playbackSeq
	cues := p.Cues()

	var step func(i int)
	step = func(i int) {
		if s.Generation != gen || s.playbackSeq != seq {
			return
		}
		if i == len(cues) {
			s.Playing = false
			return
		}
		sp.audio.Play(soundFor(cues[i]))
		if sp.OnCue != nil {
			sp.OnCue(cues[i], i)
		}
		sp.sched.After(sp.delay, func() { step(i + 1) })
	}
	step(0)
	return true
}
