package audio

import (
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/rhythm-detective/constants"
)

// backend is the output device a Synth writes to
type backend interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Close()
}

// speakerBackend routes streamers through one shared beep mixer on the system speaker
type speakerBackend struct {
	mixer *beep.Mixer
}

func (b *speakerBackend) Init(sr beep.SampleRate, bufferSize int) error {
	if err := speaker.Init(sr, bufferSize); err != nil {
		return err
	}
	speaker.Play(b.mixer)
	return nil
}

func (b *speakerBackend) Play(s beep.Streamer) {
	speaker.Lock()
	b.mixer.Add(s)
	speaker.Unlock()
}

func (b *speakerBackend) Close() {
	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
}

type synthState int

const (
	synthIdle   synthState = iota // Device not yet acquired
	synthReady                    // Device acquired on first Play
	synthSilent                   // Acquisition failed; every Play is a no-op
)

// Synth renders feedback tones on the speaker
// The device is acquired lazily on the first Play and kept for the process lifetime
type Synth struct {
	mu      sync.Mutex
	config  *AudioConfig
	backend backend
	state   synthState
	muted   atomic.Bool
	log     zerolog.Logger
}

// NewSynth creates a synth; no device is touched until the first Play
func NewSynth(cfg *AudioConfig, log zerolog.Logger) *Synth {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	s := &Synth{
		config:  cfg.Clone(),
		backend: &speakerBackend{mixer: &beep.Mixer{}},
		log:     log,
	}
	s.muted.Store(!cfg.Enabled)
	return s
}

// Play implements Player
func (s *Synth) Play(st SoundType) bool {
	if s.muted.Load() {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.acquireLocked() {
		return false
	}

	streamer := GetSoundEffect(st, s.config)
	if streamer == nil {
		return false
	}
	s.backend.Play(streamer)
	return true
}

// acquireLocked initializes the device once; failures switch to silent mode
func (s *Synth) acquireLocked() bool {
	switch s.state {
	case synthReady:
		return true
	case synthSilent:
		return false
	}

	sr := beep.SampleRate(s.config.SampleRate)
	if err := s.backend.Init(sr, sr.N(constants.SpeakerBufferDuration)); err != nil {
		s.state = synthSilent
		s.log.Warn().Err(err).Msg("audio unavailable, continuing silently")
		return false
	}

	s.state = synthReady
	s.log.Debug().Int("sample_rate", s.config.SampleRate).Msg("audio device acquired")
	return true
}

// ToggleMute flips mute, returns true if sound is now on
func (s *Synth) ToggleMute() bool {
	newMute := !s.muted.Load()
	s.muted.Store(newMute)
	return !newMute
}

// IsMuted returns current mute state
func (s *Synth) IsMuted() bool {
	return s.muted.Load()
}

// IsSilent returns true when the device could not be acquired
func (s *Synth) IsSilent() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == synthSilent
}

// SetVolume updates master volume (0.0-1.0)
func (s *Synth) SetVolume(vol float64) {
	s.mu.Lock()
	s.config.MasterVolume = clampUnit(vol)
	s.mu.Unlock()
}

// Close drops any queued sounds; the device itself stays with the process
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == synthReady {
		s.backend.Close()
	}
}
