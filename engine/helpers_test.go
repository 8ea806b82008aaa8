package engine

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/rhythm-detective/audio"
	"github.com/lixenwraith/rhythm-detective/event"
	"github.com/lixenwraith/rhythm-detective/pattern"
)

// soundRecorder is an audio.Player capturing every requested sound
type soundRecorder struct {
	sounds []audio.SoundType
}

func (r *soundRecorder) Play(st audio.SoundType) bool {
	r.sounds = append(r.sounds, st)
	return true
}

func (r *soundRecorder) reset() { r.sounds = nil }

type completion struct {
	id       string
	score    int
	maxScore int
}

// completionRecorder is a CompletionListener capturing notifications
type completionRecorder struct {
	calls []completion
}

func (r *completionRecorder) NotifyCompletion(id string, score, maxScore int) {
	r.calls = append(r.calls, completion{id: id, score: score, maxScore: maxScore})
}

type harness struct {
	t        *testing.T
	clock    *MockTimeProvider
	sched    *Scheduler
	sound    *soundRecorder
	listener *completionRecorder
	queue    *event.EventQueue
	ctrl     *Controller
	timing   Timing
	ids      int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newTimedHarness(t, DefaultTiming())
}

func newTimedHarness(t *testing.T, timing Timing) *harness {
	t.Helper()
	h := &harness{
		t:        t,
		clock:    NewMockTimeProvider(epoch),
		sound:    &soundRecorder{},
		listener: &completionRecorder{},
		queue:    event.NewEventQueue(),
		timing:   timing,
	}
	h.sched = NewScheduler(h.clock)

	ctrl, err := NewController(Options{
		Scheduler: h.sched,
		Audio:     h.sound,
		Listener:  h.listener,
		Queue:     h.queue,
		Timing:    timing,
		Logger:    zerolog.Nop(),
		NewID: func() string {
			h.ids++
			return "run-" + string(rune('0'+h.ids))
		},
	})
	require.NoError(t, err)
	h.ctrl = ctrl
	return h
}

// advance moves the clock and runs every due callback
func (h *harness) advance(d time.Duration) {
	h.clock.Advance(d)
	h.sched.RunDue()
}

// submitAll feeds a whole sequence
func (h *harness) submitAll(cues []pattern.Cue) CollectorResult {
	var res CollectorResult
	for _, c := range cues {
		res = h.ctrl.Submit(c)
	}
	return res
}

// solveCurrent goes from watch to the next level (or complete) with a correct answer
func (h *harness) solveCurrent() {
	h.t.Helper()
	require.Equal(h.t, PhaseWatch, h.ctrl.Phase())
	require.True(h.t, h.ctrl.Ready())
	p := h.ctrl.Snapshot().Pattern
	require.NotNil(h.t, p)
	res := h.submitAll(p.Sequence)
	require.Equal(h.t, CollectorReadyToJudge, res.Status)
	h.advance(h.timing.Feedback)
}

// eventTypes drains the queue and returns event types in order
func (h *harness) eventTypes() []event.EventType {
	var out []event.EventType
	for _, ev := range h.queue.Consume() {
		out = append(out, ev.Type)
	}
	return out
}

// flip returns a copy of seq with one position changed
func flip(seq []pattern.Cue, pos int) []pattern.Cue {
	out := make([]pattern.Cue, len(seq))
	copy(out, seq)
	if out[pos] == pattern.CueClap {
		out[pos] = pattern.CueStomp
	} else {
		out[pos] = pattern.CueClap
	}
	return out
}
