package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/rhythm-detective/constants"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
)

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and an exponential release
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s over duration with the given attack and release
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	if att+rel > total {
		rel = total - att
		if rel < 0 {
			att, rel = total, 0
		}
	}
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		} else if e.releaseSamples > 0 && e.position >= releaseStart {
			// Exponential decay to ~1% over the release window
			progress := float64(e.position-releaseStart) / float64(e.releaseSamples)
			vol = math.Pow(0.01, progress)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain
// math.Log2(0) is -Inf, so zero volume maps to a silent stream
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateClapSound generates a short bright square burst
func CreateClapSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	osc := NewOscillator(constants.ClapSoundFreq, constants.ClapSoundDuration, WaveSquare, rate)
	shaped := NewEnvelope(osc, constants.ClapSoundDuration, constants.ClapSoundAttack, constants.ClapSoundRelease, rate)

	return newVolume(shaped, cfg.effectVolume(SoundClap))
}

// CreateStompSound generates a low sine thump with a longer tail
func CreateStompSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	osc := NewOscillator(constants.StompSoundFreq, constants.StompSoundDuration, WaveSine, rate)
	shaped := NewEnvelope(osc, constants.StompSoundDuration, constants.StompSoundAttack, constants.StompSoundRelease, rate)

	return newVolume(shaped, cfg.effectVolume(SoundStomp))
}

// CreateSuccessSound generates a rising three-note arpeggio
func CreateSuccessSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	notes := []float64{constants.SuccessNote1Freq, constants.SuccessNote2Freq, constants.SuccessNote3Freq}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, freq := range notes {
		osc := NewOscillator(freq, constants.SuccessNoteDuration, WaveSine, rate)
		parts = append(parts, NewEnvelope(osc, constants.SuccessNoteDuration, constants.SuccessNoteAttack, constants.SuccessNoteRelease, rate))
	}

	return newVolume(beep.Seq(parts...), cfg.effectVolume(SoundSuccess))
}

// CreateFailureSound generates a low sawtooth buzz
func CreateFailureSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	osc := NewOscillator(constants.FailureSoundFreq, constants.FailureSoundDuration, WaveSaw, rate)
	shaped := NewEnvelope(osc, constants.FailureSoundDuration, constants.FailureSoundAttack, constants.FailureSoundRelease, rate)

	return newVolume(shaped, cfg.effectVolume(SoundFailure))
}

// GetSoundEffect returns the streamer for the given sound type
func GetSoundEffect(st SoundType, cfg *AudioConfig) beep.Streamer {
	switch st {
	case SoundClap:
		return CreateClapSound(cfg)
	case SoundStomp:
		return CreateStompSound(cfg)
	case SoundSuccess:
		return CreateSuccessSound(cfg)
	case SoundFailure:
		return CreateFailureSound(cfg)
	default:
		return nil
	}
}
