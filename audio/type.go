package audio

import (
	"errors"
)

// SoundType represents the four feedback tones
type SoundType int

const (
	SoundClap    SoundType = iota // Primary cue
	SoundStomp                    // Secondary cue
	SoundSuccess                  // Pattern reproduced
	SoundFailure                  // Pattern missed
	soundTypeCount
)

// String returns the sound name used in config keys and logs
func (st SoundType) String() string {
	switch st {
	case SoundClap:
		return "clap"
	case SoundStomp:
		return "stomp"
	case SoundSuccess:
		return "success"
	case SoundFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// ParseSoundType maps a config key back to its SoundType
func ParseSoundType(s string) (SoundType, bool) {
	for st := SoundType(0); st < soundTypeCount; st++ {
		if st.String() == s {
			return st, true
		}
	}
	return 0, false
}

// Player is the audio port used by the game engine
// Play returns false when nothing was emitted; it never fails the caller
type Player interface {
	Play(SoundType) bool
}

// Sentinel errors
var (
	ErrNoAudioDevice = errors.New("no audio output device available")
)

// NopPlayer discards every sound
type NopPlayer struct{}

// Play implements Player
func (NopPlayer) Play(SoundType) bool { return false }
