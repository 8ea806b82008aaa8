package audio

import (
	"errors"
	"testing"

	"github.com/gopxl/beep"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type fakeBackend struct {
	initErr   error
	initCalls int
	played    int
	closed    bool
}

func (f *fakeBackend) Init(beep.SampleRate, int) error {
	f.initCalls++
	return f.initErr
}

func (f *fakeBackend) Play(beep.Streamer) { f.played++ }

func (f *fakeBackend) Close() { f.closed = true }

func newTestSynth(b *fakeBackend) *Synth {
	s := NewSynth(DefaultAudioConfig(), zerolog.Nop())
	s.backend = b
	return s
}

func TestSynthAcquiresDeviceLazilyOnce(t *testing.T) {
	b := &fakeBackend{}
	s := newTestSynth(b)
	assert.Zero(t, b.initCalls, "no device before first play")

	assert.True(t, s.Play(SoundClap))
	assert.True(t, s.Play(SoundStomp))
	assert.True(t, s.Play(SoundSuccess))

	assert.Equal(t, 1, b.initCalls)
	assert.Equal(t, 3, b.played)

	s.Close()
	assert.True(t, b.closed)
}

func TestSynthDegradesSilently(t *testing.T) {
	b := &fakeBackend{initErr: errors.New("no device")}
	s := newTestSynth(b)

	assert.False(t, s.Play(SoundClap))
	assert.False(t, s.Play(SoundFailure))
	assert.True(t, s.IsSilent())
	assert.Equal(t, 1, b.initCalls, "failed acquisition is not retried")
	assert.Zero(t, b.played)

	s.Close()
	assert.False(t, b.closed)
}

func TestSynthMute(t *testing.T) {
	b := &fakeBackend{}
	s := newTestSynth(b)

	assert.False(t, s.ToggleMute())
	assert.True(t, s.IsMuted())
	assert.False(t, s.Play(SoundClap))
	assert.Zero(t, b.initCalls)

	assert.True(t, s.ToggleMute())
	assert.True(t, s.Play(SoundClap))
}

func TestSynthDisabledByConfig(t *testing.T) {
	cfg := DefaultAudioConfig()
	cfg.Enabled = false
	s := NewSynth(cfg, zerolog.Nop())
	b := &fakeBackend{}
	s.backend = b

	assert.False(t, s.Play(SoundClap))
	assert.Zero(t, b.initCalls)
}

func TestAudioServicePlayerBeforeInit(t *testing.T) {
	svc := NewService(DefaultAudioConfig(), zerolog.Nop())
	_, isNop := svc.Player().(NopPlayer)
	assert.True(t, isNop)

	assert.NoError(t, svc.Init())
	assert.NotNil(t, svc.Synth())
	assert.NoError(t, svc.Start())
	assert.NoError(t, svc.Stop())
}
