package constants

import "time"

// Audio Engine
const (
	// DefaultSampleRate is the speaker sample rate in Hz
	DefaultSampleRate = 44100

	// SpeakerBufferDuration is the speaker buffer length passed to speaker.Init
	SpeakerBufferDuration = 100 * time.Millisecond

	// DefaultMasterVolume is the initial master volume (0.0-1.0)
	DefaultMasterVolume = 0.8
)

// Clap Sound Timing
const (
	ClapSoundFreq     = 800.0
	ClapSoundDuration = 100 * time.Millisecond
	ClapSoundAttack   = 2 * time.Millisecond
	ClapSoundRelease  = 90 * time.Millisecond
)

// Stomp Sound Timing
const (
	StompSoundFreq     = 200.0
	StompSoundDuration = 200 * time.Millisecond
	StompSoundAttack   = 5 * time.Millisecond
	StompSoundRelease  = 180 * time.Millisecond
)

// Success Sound Timing (three-note arpeggio, C5 E5 G5)
const (
	SuccessNote1Freq    = 523.25
	SuccessNote2Freq    = 659.25
	SuccessNote3Freq    = 783.99
	SuccessNoteDuration = 100 * time.Millisecond
	SuccessNoteAttack   = 5 * time.Millisecond
	SuccessNoteRelease  = 60 * time.Millisecond
)

// Failure Sound Timing
const (
	FailureSoundFreq     = 150.0
	FailureSoundDuration = 300 * time.Millisecond
	FailureSoundAttack   = 10 * time.Millisecond
	FailureSoundRelease  = 250 * time.Millisecond
)
