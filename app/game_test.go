package app

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/lixenwraith/rhythm-detective/audio"
	"github.com/lixenwraith/rhythm-detective/engine"
	"github.com/lixenwraith/rhythm-detective/metrics"
	"github.com/lixenwraith/rhythm-detective/pattern"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

type completion struct {
	id       string
	score    int
	maxScore int
}

// listener records completions; safe for use from the Run goroutine
type listener struct {
	mu    sync.Mutex
	calls []completion
}

func (l *listener) NotifyCompletion(id string, score, maxScore int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, completion{id, score, maxScore})
}

func (l *listener) snapshot() []completion {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]completion(nil), l.calls...)
}

// fakeSound is a SoundControl and audio.Player
type fakeSound struct {
	muted  bool
	played []audio.SoundType
}

func (f *fakeSound) Play(st audio.SoundType) bool {
	f.played = append(f.played, st)
	return !f.muted
}
func (f *fakeSound) ToggleMute() bool { f.muted = !f.muted; return f.muted }
func (f *fakeSound) IsMuted() bool    { return f.muted }
func (f *fakeSound) IsSilent() bool   { return false }

type fixture struct {
	t        *testing.T
	screen   tcell.SimulationScreen
	clock    *engine.MockTimeProvider
	sound    *fakeSound
	listener *listener
	metrics  *metrics.Metrics
	game     *Game
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, nil)
}

// newFixtureWith lets a test adjust the game options before construction
func newFixtureWith(t *testing.T, adjust func(*Options)) *fixture {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(80, 25)
	t.Cleanup(s.Fini)

	f := &fixture{
		t:        t,
		screen:   s,
		clock:    engine.NewMockTimeProvider(epoch),
		sound:    &fakeSound{},
		listener: &listener{},
		metrics:  metrics.New(),
	}
	opts := Options{
		Screen:   s,
		Clock:    f.clock,
		Audio:    f.sound,
		Sound:    f.sound,
		Listener: f.listener,
		Metrics:  f.metrics,
		Logger:   zerolog.Nop(),
		NewID:    func() string { return "run-1" },
	}
	if adjust != nil {
		adjust(&opts)
	}
	g, err := New(opts)
	require.NoError(t, err)
	f.game = g
	return f
}

func (f *fixture) key(k tcell.Key) bool {
	quit := f.game.HandleEvent(tcell.NewEventKey(k, 0, tcell.ModNone))
	f.game.Step()
	f.game.Draw()
	return quit
}

func (f *fixture) press(r rune) bool {
	quit := f.game.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	f.game.Step()
	f.game.Draw()
	return quit
}

func (f *fixture) advance(d time.Duration) {
	f.clock.Advance(d)
	f.game.Step()
	f.game.Draw()
}

func (f *fixture) text() string {
	w, h := f.screen.Size()
	var b strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, _, _, _ := f.screen.GetContent(x, y)
			if r == 0 {
				r = ' '
			}
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// answer types the current pattern with the default bindings
func (f *fixture) answer(cues []pattern.Cue) {
	for _, c := range cues {
		if c == pattern.CueClap {
			f.press('a')
		} else {
			f.key(tcell.KeyRight)
		}
	}
}

func TestNewRequiresScreen(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestIntroScreenOnStart(t *testing.T) {
	f := newFixture(t)
	f.game.Draw()
	assert.Contains(t, f.text(), "RHYTHM DETECTIVE")
	assert.Equal(t, engine.PhaseIntro, f.game.Controller().Phase())
}

func TestKeyboardPlaythrough(t *testing.T) {
	f := newFixture(t)
	timing := engine.DefaultTiming()

	f.key(tcell.KeyEnter)
	require.Equal(t, engine.PhaseWatch, f.game.Controller().Phase())
	assert.Contains(t, f.text(), "Mystery #1: Double Clap")

	// Auto-play demonstrates both cues
	f.advance(timing.AutoPlay)
	assert.Contains(t, f.text(), "Playing...")
	f.advance(2 * timing.InterCue)
	assert.Contains(t, f.text(), "I'm ready!")

	for level := 1; level <= pattern.Count(); level++ {
		require.Equal(t, engine.PhaseWatch, f.game.Controller().Phase(), "level %d", level)
		f.press(' ')
		require.Equal(t, engine.PhasePractice, f.game.Controller().Phase())

		p, ok := pattern.At(level)
		require.True(t, ok)
		f.answer(p.Sequence)
		assert.Contains(t, f.text(), "Perfect")
		f.advance(timing.Feedback)
	}

	require.Equal(t, engine.PhaseComplete, f.game.Controller().Phase())
	out := f.text()
	assert.Contains(t, out, "Final Score: 120 points")
	assert.Equal(t, []completion{{"run-1", 120, 120}}, f.listener.snapshot())

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.PlaythroughsCompleted))
	assert.Equal(t, 120.0, testutil.ToFloat64(f.metrics.CurrentScore))

	// Enter on the completion screen returns to intro
	f.key(tcell.KeyEnter)
	assert.Equal(t, engine.PhaseIntro, f.game.Controller().Phase())
	assert.Contains(t, f.text(), "Press Enter to start")
}

func TestWrongAnswerShowsFailure(t *testing.T) {
	f := newFixture(t)
	f.key(tcell.KeyEnter)
	f.press(' ')

	// Level 1 is two claps
	f.press('l')
	f.press('l')
	assert.Contains(t, f.text(), "Not quite")
	assert.Equal(t, engine.PhasePractice, f.game.Controller().Phase())

	f.advance(engine.DefaultTiming().Feedback)
	assert.NotContains(t, f.text(), "Not quite")
	assert.Zero(t, f.game.Controller().Snapshot().Score)
}

func TestPracticePatternVisibility(t *testing.T) {
	f := newFixture(t)
	f.key(tcell.KeyEnter)
	f.press(' ')
	assert.Contains(t, f.text(), "Your Turn")
	assert.Contains(t, f.text(), "CLAP  CLAP", "pattern stays on screen while reproducing")

	hidden := newFixtureWith(t, func(o *Options) { o.HidePattern = true })
	hidden.key(tcell.KeyEnter)
	hidden.press(' ')
	assert.Contains(t, hidden.text(), "Your pattern:  ?  ?")
	assert.NotContains(t, hidden.text(), "CLAP  CLAP")
}

func TestInputOutsidePhaseIsIgnored(t *testing.T) {
	f := newFixture(t)
	f.press('a')
	f.press(' ')
	f.press('r')
	assert.Equal(t, engine.PhaseIntro, f.game.Controller().Phase())
	assert.Empty(t, f.sound.played)
}

func TestReplayKey(t *testing.T) {
	f := newFixture(t)
	f.key(tcell.KeyEnter)
	f.press('r')
	assert.True(t, f.game.Controller().Snapshot().Playing)
	assert.Equal(t, []audio.SoundType{audio.SoundClap}, f.sound.played)
}

func TestMuteToggle(t *testing.T) {
	f := newFixture(t)
	f.press('m')
	assert.True(t, f.sound.IsMuted())
	assert.Contains(t, f.text(), "[m] muted")
	f.press('m')
	assert.False(t, f.sound.IsMuted())
}

func TestQuitKeys(t *testing.T) {
	for _, k := range []tcell.Key{tcell.KeyCtrlC, tcell.KeyCtrlQ, tcell.KeyEscape} {
		f := newFixture(t)
		assert.True(t, f.key(k), tcell.KeyNames[k])
	}
	f := newFixture(t)
	assert.True(t, f.press('q'))
}

func TestRunQuitsOnKey(t *testing.T) {
	f := newFixture(t)
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	events := make(chan tcell.Event, 4)
	events <- tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)
	events <- tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)

	done := make(chan error, 1)
	go func() { done <- f.game.Run(context.Background(), events) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after quit")
	}
	assert.Equal(t, engine.PhaseWatch, f.game.Controller().Phase())
}

func TestRunStopsOnContext(t *testing.T) {
	f := newFixture(t)
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.game.Run(ctx, make(chan tcell.Event)) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunStopsOnClosedEvents(t *testing.T) {
	f := newFixture(t)
	events := make(chan tcell.Event)
	close(events)
	assert.NoError(t, f.game.Run(context.Background(), events))
}
