package audio

import (
	"github.com/rs/zerolog"
)

// AudioService wraps Synth as a service.Service
// Audio never blocks startup: a missing device only silences the synth
type AudioService struct {
	config *AudioConfig
	synth  *Synth
	log    zerolog.Logger
}

// NewService creates a new audio service
func NewService(cfg *AudioConfig, log zerolog.Logger) *AudioService {
	return &AudioService{config: cfg, log: log}
}

// Name implements Service
func (s *AudioService) Name() string {
	return "audio"
}

// Dependencies implements Service
func (s *AudioService) Dependencies() []string {
	return nil
}

// Init implements Service
func (s *AudioService) Init(args ...any) error {
	s.synth = NewSynth(s.config, s.log)
	return nil
}

// Start implements Service
// The device is acquired lazily by the first Play, not here
func (s *AudioService) Start() error {
	return nil
}

// Stop implements Service
func (s *AudioService) Stop() error {
	if s.synth != nil {
		s.synth.Close()
	}
	return nil
}

// Player returns the port used by the engine
// Returns NopPlayer before Init so callers never hold nil
func (s *AudioService) Player() Player {
	if s.synth == nil {
		return NopPlayer{}
	}
	return s.synth
}

// Synth returns the underlying synth (nil before Init)
func (s *AudioService) Synth() *Synth {
	return s.synth
}
