package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/rhythm-detective/audio"
	"github.com/lixenwraith/rhythm-detective/constants"
	"github.com/lixenwraith/rhythm-detective/engine/fsm"
	"github.com/lixenwraith/rhythm-detective/event"
	"github.com/lixenwraith/rhythm-detective/pattern"
)

// FSM triggers
const (
	TriggerStart   fsm.Trigger = "start"
	TriggerReady   fsm.Trigger = "ready"
	TriggerAdvance fsm.Trigger = "advance"
	TriggerFinish  fsm.Trigger = "finish"
	TriggerRestart fsm.Trigger = "restart"
)

// CompletionListener receives the final result of a solved playthrough
type CompletionListener interface {
	NotifyCompletion(playthroughID string, score, maxScore int)
}

// Timing holds the tunable delays of a round
type Timing struct {
	InterCue time.Duration // Pause after each demonstrated cue
	AutoPlay time.Duration // Delay between entering watch and automatic playback
	Feedback time.Duration // How long a verdict stays up before the session moves on
}

// DefaultTiming returns the standard round delays
func DefaultTiming() Timing {
	return Timing{
		InterCue: constants.InterCueDelay,
		AutoPlay: constants.AutoPlayDelay,
		Feedback: constants.FeedbackDelay,
	}
}

// Options configures a Controller
type Options struct {
	Scheduler *Scheduler         // required
	Audio     audio.Player       // nil = silent
	Listener  CompletionListener // nil = completion is only published as an event
	Queue     *event.EventQueue  // nil = events are dropped
	Timing    Timing             // zero value = DefaultTiming
	Logger    zerolog.Logger
	NewID     func() string // playthrough id generator, defaults to uuid
}

// Controller drives the phase state machine of one game
// Every method must be called from the event loop goroutine
type Controller struct {
	session   Session
	machine   *fsm.Machine[*Controller]
	sched     *Scheduler
	audio     audio.Player
	player    *SequencePlayer
	collector *Collector
	listener  CompletionListener
	queue     *event.EventQueue
	timing    Timing
	log       zerolog.Logger
	newID     func() string
}

// NewController builds the controller and enters intro
func NewController(opts Options) (*Controller, error) {
	if opts.Scheduler == nil {
		return nil, fmt.Errorf("controller: scheduler is required")
	}
	if opts.Audio == nil {
		opts.Audio = audio.NopPlayer{}
	}
	if opts.Timing == (Timing{}) {
		opts.Timing = DefaultTiming()
	}
	if opts.NewID == nil {
		opts.NewID = func() string { return uuid.NewString() }
	}

	c := &Controller{
		sched:     opts.Scheduler,
		audio:     opts.Audio,
		collector: NewCollector(opts.Audio),
		listener:  opts.Listener,
		queue:     opts.Queue,
		timing:    opts.Timing,
		log:       opts.Logger,
		newID:     opts.NewID,
	}
	c.player = NewSequencePlayer(c.sched, c.audio, c.timing.InterCue)
	c.player.OnCue = func(cue pattern.Cue, position int) {
		c.emit(event.EventCuePlayed, &event.CuePayload{Cue: cue, Level: c.session.Level, Position: position})
	}

	c.machine = c.buildMachine()
	if err := c.machine.Init(c); err != nil {
		return nil, err
	}
	return c, nil
}

// stateOf maps phases onto FSM states
func stateOf(p Phase) fsm.StateID {
	return fsm.StateID(p + 1)
}

// buildMachine wires the linear phase graph
func (c *Controller) buildMachine() *fsm.Machine[*Controller] {
	m := fsm.NewMachine[*Controller]()
	for _, p := range []Phase{PhaseIntro, PhaseWatch, PhasePractice, PhaseChallenge, PhaseComplete} {
		phase := p
		m.AddState(stateOf(phase), phase.String())
		m.OnEnter(stateOf(phase), func(c *Controller) { c.session.Phase = phase })
	}
	m.InitialStateID = stateOf(PhaseIntro)

	hasNext := func(c *Controller) bool { return c.session.Level < pattern.Count() }
	isLast := func(c *Controller) bool { return c.session.Level >= pattern.Count() }

	m.AddTransition(stateOf(PhaseIntro), fsm.Transition[*Controller]{
		Trigger: TriggerStart, TargetID: stateOf(PhaseWatch), Action: (*Controller).beginPlaythrough,
	})
	m.AddTransition(stateOf(PhaseWatch), fsm.Transition[*Controller]{
		Trigger: TriggerReady, TargetID: stateOf(PhasePractice),
	})
	// Practice and the reserved challenge phase resolve a pass the same way
	for _, from := range []Phase{PhasePractice, PhaseChallenge} {
		m.AddTransition(stateOf(from), fsm.Transition[*Controller]{
			Trigger: TriggerAdvance, TargetID: stateOf(PhaseWatch), Guard: hasNext, Action: (*Controller).loadNextLevel,
		})
		m.AddTransition(stateOf(from), fsm.Transition[*Controller]{
			Trigger: TriggerFinish, TargetID: stateOf(PhaseComplete), Guard: isLast, Action: (*Controller).completePlaythrough,
		})
	}
	m.AddTransition(stateOf(PhaseComplete), fsm.Transition[*Controller]{
		Trigger: TriggerRestart, TargetID: stateOf(PhaseIntro), Action: (*Controller).resetSession,
	})

	m.OnEnter(stateOf(PhaseWatch), (*Controller).scheduleAutoPlay)
	m.OnEnter(stateOf(PhasePractice), func(c *Controller) {
		c.session.setFeedback(constants.MessageYourTurn, FeedbackInfo)
	})

	return m
}

// fire runs a trigger and publishes the phase change
func (c *Controller) fire(trigger fsm.Trigger) bool {
	from := c.session.Phase
	if !c.machine.Fire(c, trigger) {
		return false
	}
	c.log.Debug().
		Str("trigger", string(trigger)).
		Stringer("from", from).
		Stringer("to", c.session.Phase).
		Int("level", c.session.Level).
		Msg("phase transition")
	c.emit(event.EventPhaseChanged, &event.PhaseChangedPayload{
		From:  from.String(),
		To:    c.session.Phase.String(),
		Level: c.session.Level,
	})
	return true
}

// emit queues a lifecycle event tagged with the current generation
func (c *Controller) emit(t event.EventType, payload any) {
	if c.queue == nil {
		return
	}
	c.queue.Push(event.GameEvent{Type: t, Payload: payload, Generation: c.session.Generation})
}

// === Actions ===

// Start begins a playthrough from intro
func (c *Controller) Start() bool {
	return c.fire(TriggerStart)
}

// Replay plays the current pattern again while watching
// Ignored while a playback is already running
func (c *Controller) Replay() bool {
	if c.session.Phase != PhaseWatch || c.session.Pattern == nil {
		return false
	}
	return c.player.Play(&c.session, *c.session.Pattern)
}

// Ready moves from watch to practice
func (c *Controller) Ready() bool {
	return c.fire(TriggerReady)
}

// Submit records one player cue and judges the round once it is complete
// Out-of-phase input, and input while a pass is waiting to advance, is ignored
func (c *Controller) Submit(cue pattern.Cue) CollectorResult {
	if c.session.AwaitingAdvance {
		return CollectorResult{Status: CollectorIgnored}
	}

	position := len(c.session.Input)
	res := c.collector.Submit(&c.session, cue)
	if res.Status == CollectorIgnored {
		return res
	}
	c.emit(event.EventCueSubmitted, &event.CuePayload{Cue: cue, Level: c.session.Level, Position: position})

	if res.Status == CollectorReadyToJudge {
		c.judgeRound(res.Input)
	}
	return res
}

// Restart returns from complete to intro
func (c *Controller) Restart() bool {
	return c.fire(TriggerRestart)
}

// Snapshot returns a read-only copy of the session
func (c *Controller) Snapshot() Snapshot {
	return c.session.snapshot()
}

// Phase returns the active phase
func (c *Controller) Phase() Phase {
	return c.session.Phase
}

// === Transition effects ===

// beginPlaythrough resets the session for level 1
func (c *Controller) beginPlaythrough() {
	first, _ := pattern.At(1)
	c.session = Session{
		Phase:         c.session.Phase,
		Level:         1,
		Pattern:       &first,
		PlaythroughID: c.newID(),
		Generation:    c.session.Generation + 1,
	}
	c.log.Info().Str("playthrough", c.session.PlaythroughID).Msg("playthrough started")
	c.emit(event.EventGameStarted, &event.GameStartedPayload{
		PlaythroughID: c.session.PlaythroughID,
		Levels:        pattern.Count(),
	})
}

// loadNextLevel selects the next catalog entry
func (c *Controller) loadNextLevel() {
	c.session.stopPlayback()
	c.session.Level++
	next, _ := pattern.At(c.session.Level)
	c.session.Pattern = &next
	c.session.Input = nil
	c.session.clearFeedback()
	c.emit(event.EventLevelAdvanced, &event.LevelPayload{Level: c.session.Level, PatternID: next.ID})
}

// completePlaythrough notifies the listener with the score shown to the player
func (c *Controller) completePlaythrough() {
	c.session.clearFeedback()
	score, maxScore := c.session.Score, pattern.MaxScore()

	c.log.Info().
		Str("playthrough", c.session.PlaythroughID).
		Int("score", score).
		Int("max_score", maxScore).
		Msg("playthrough completed")

	if c.listener != nil {
		c.listener.NotifyCompletion(c.session.PlaythroughID, score, maxScore)
	}
	c.emit(event.EventGameCompleted, &event.CompletionPayload{
		PlaythroughID: c.session.PlaythroughID,
		Score:         score,
		MaxScore:      maxScore,
	})
}

// resetSession discards the playthrough; the generation moves on so pending timers go inert
func (c *Controller) resetSession() {
	c.session = Session{
		Phase:      c.session.Phase,
		Generation: c.session.Generation + 1,
	}
	c.emit(event.EventGameRestarted, nil)
}

// scheduleAutoPlay demonstrates the pattern shortly after entering watch
func (c *Controller) scheduleAutoPlay() {
	gen, level := c.session.Generation, c.session.Level
	c.sched.After(c.timing.AutoPlay, func() {
		if c.session.Generation != gen || c.session.Level != level || c.session.Phase != PhaseWatch {
			return
		}
		if c.session.Pattern != nil {
			c.player.Play(&c.session, *c.session.Pattern)
		}
	})
}

// judgeRound scores a completed reproduction and schedules the follow-up
func (c *Controller) judgeRound(input []pattern.Cue) {
	p := c.session.Pattern
	verdict := Judge(p.Sequence, input, p.Difficulty)
	gen, level := c.session.Generation, c.session.Level

	if verdict.Passed {
		c.audio.Play(audio.SoundSuccess)
		c.session.Score += verdict.Delta
		c.session.setFeedback(constants.MessagePerfect, FeedbackSuccess)
		c.session.AwaitingAdvance = true

		c.sched.After(c.timing.Feedback, func() {
			if c.session.Generation != gen || c.session.Level != level {
				return
			}
			c.session.AwaitingAdvance = false
			if !c.fire(TriggerAdvance) {
				c.fire(TriggerFinish)
			}
		})
	} else {
		c.audio.Play(audio.SoundFailure)
		seq := c.session.setFeedback(constants.MessageNotQuite, FeedbackFailure)

		c.sched.After(c.timing.Feedback, func() {
			// Only clear the message this timer was armed for
			if c.session.Generation != gen || c.session.feedbackSeq != seq {
				return
			}
			c.session.clearFeedback()
		})
	}

	c.log.Info().
		Int("level", level).
		Int("pattern", p.ID).
		Bool("passed", verdict.Passed).
		Int("delta", verdict.Delta).
		Int("score", c.session.Score).
		Msg("round judged")
	c.emit(event.EventVerdict, &event.VerdictPayload{
		Level:     level,
		PatternID: p.ID,
		Passed:    verdict.Passed,
		Delta:     verdict.Delta,
		Score:     c.session.Score,
	})
}
