package engine

import (
	"github.com/lixenwraith/rhythm-detective/pattern"
)

// Phase is the active screen of a playthrough
type Phase int

const (
	PhaseIntro     Phase = iota // Title screen, waiting for start
	PhaseWatch                  // Pattern is demonstrated
	PhasePractice               // Player reproduces the pattern
	PhaseChallenge              // Reserved: accepts input but no transition enters it
	PhaseComplete               // All levels solved
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case PhaseIntro:
		return "intro"
	case PhaseWatch:
		return "watch"
	case PhasePractice:
		return "practice"
	case PhaseChallenge:
		return "challenge"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// acceptsInput reports whether cue submissions are collected in this phase
func (p Phase) acceptsInput() bool {
	return p == PhasePractice || p == PhaseChallenge
}

// FeedbackKind classifies the transient feedback line
type FeedbackKind int

const (
	FeedbackNone FeedbackKind = iota
	FeedbackInfo
	FeedbackSuccess
	FeedbackFailure
)

// Session is the mutable state of one playthrough
// Owned by the event loop goroutine; Controller, Collector and SequencePlayer mutate it in place
type Session struct {
	Phase         Phase
	Level         int              // 1-based
	Pattern       *pattern.Pattern // Current level's pattern, nil in intro
	Input         []pattern.Cue    // Collected cues for the current round
	Score         int
	Playing       bool // A sequence playback is in flight
	Feedback      string
	FeedbackKind  FeedbackKind
	PlaythroughID string

	// Generation changes on every start and restart
	// Scheduled callbacks capture it and become inert once it moves on
	Generation uint64

	// AwaitingAdvance is set between a pass verdict and its delayed transition
	AwaitingAdvance bool

	feedbackSeq uint64 // Bumped on every feedback change
	playbackSeq uint64 // Bumped on every playback start and stop
}

// setFeedback replaces the feedback line
func (s *Session) setFeedback(msg string, kind FeedbackKind) uint64 {
	s.Feedback = msg
	s.FeedbackKind = kind
	s.feedbackSeq++
	return s.feedbackSeq
}

// clearFeedback empties the feedback line
func (s *Session) clearFeedback() {
	s.setFeedback("", FeedbackNone)
}

// stopPlayback ends any demonstration in flight; its pending steps go inert
func (s *Session) stopPlayback() {
	s.playbackSeq++
	s.Playing = false
}

// expectedLen returns the current pattern length, 0 without a pattern
func (s *Session) expectedLen() int {
	if s.Pattern == nil {
		return 0
	}
	return s.Pattern.Len()
}

// Snapshot is a read-only copy of the session for rendering
type Snapshot struct {
	Phase           Phase
	Level           int
	Levels          int
	Pattern         *pattern.Pattern
	Input           []pattern.Cue
	Score           int
	MaxScore        int
	Playing         bool
	Feedback        string
	FeedbackKind    FeedbackKind
	PlaythroughID   string
	AwaitingAdvance bool
}

// snapshot copies the session so callers cannot alias engine state
func (s *Session) snapshot() Snapshot {
	snap := Snapshot{
		Phase:           s.Phase,
		Level:           s.Level,
		Levels:          pattern.Count(),
		Score:           s.Score,
		MaxScore:        pattern.MaxScore(),
		Playing:         s.Playing,
		Feedback:        s.Feedback,
		FeedbackKind:    s.FeedbackKind,
		PlaythroughID:   s.PlaythroughID,
		AwaitingAdvance: s.AwaitingAdvance,
	}
	if s.Pattern != nil {
		p := *s.Pattern
		p.Sequence = s.Pattern.Cues()
		snap.Pattern = &p
	}
	if len(s.Input) > 0 {
		snap.Input = make([]pattern.Cue, len(s.Input))
		copy(snap.Input, s.Input)
	}
	return snap
}
