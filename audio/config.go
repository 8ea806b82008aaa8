package audio

import (
	"github.com/lixenwraith/rhythm-detective/constants"
)

// AudioConfig holds synthesis settings
type AudioConfig struct {
	Enabled       bool
	MasterVolume  float64
	SampleRate    int
	EffectVolumes map[SoundType]float64
}

// DefaultAudioConfig returns the built-in audio settings
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: constants.DefaultMasterVolume,
		SampleRate:   constants.DefaultSampleRate,
		EffectVolumes: map[SoundType]float64{
			SoundClap:    0.3,
			SoundStomp:   0.4,
			SoundSuccess: 0.3,
			SoundFailure: 0.2,
		},
	}
}

// Clone returns a deep copy
func (c *AudioConfig) Clone() *AudioConfig {
	out := *c
	out.EffectVolumes = make(map[SoundType]float64, len(c.EffectVolumes))
	for k, v := range c.EffectVolumes {
		out.EffectVolumes[k] = v
	}
	return &out
}

// effectVolume returns the effective gain of one sound
func (c *AudioConfig) effectVolume(st SoundType) float64 {
	vol, ok := c.EffectVolumes[st]
	if !ok {
		vol = 1
	}
	return clampUnit(vol) * clampUnit(c.MasterVolume)
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
