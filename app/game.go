package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/rhythm-detective/audio"
	"github.com/lixenwraith/rhythm-detective/constants"
	"github.com/lixenwraith/rhythm-detective/engine"
	"github.com/lixenwraith/rhythm-detective/event"
	"github.com/lixenwraith/rhythm-detective/input"
	"github.com/lixenwraith/rhythm-detective/metrics"
	"github.com/lixenwraith/rhythm-detective/pattern"
	"github.com/lixenwraith/rhythm-detective/render"
)

// SoundControl is the mute surface of the synth
type SoundControl interface {
	ToggleMute() bool
	IsMuted() bool
	IsSilent() bool
}

// Options wires a Game
type Options struct {
	Screen   tcell.Screen              // required
	Clock    engine.TimeProvider       // nil = monotonic wall clock
	Audio    audio.Player              // nil = silent
	Sound    SoundControl              // nil = mute toggle unavailable
	Listener engine.CompletionListener // completion sink, usually the notify dispatcher
	Metrics  *metrics.Metrics          // nil = no metrics
	Keys     *input.KeyTable           // nil = default bindings
	Timing   engine.Timing             // zero = default delays
	Logger   zerolog.Logger
	NewID    func() string // playthrough id generator, nil = uuid

	HidePattern bool // Practice shows only the player's input
}

// Game owns the event loop state: controller, scheduler, event router and renderer
// All methods run on the loop goroutine
type Game struct {
	ctrl     *engine.Controller
	sched    *engine.Scheduler
	clock    engine.TimeProvider
	queue    *event.EventQueue
	router   *event.Router[*Game]
	input    *input.Machine
	renderer *render.Renderer
	sound    SoundControl
	log      zerolog.Logger

	hidePattern bool
	dirty       bool // Screen content is stale
}

// New builds a game in the intro phase
func New(opts Options) (*Game, error) {
	if opts.Screen == nil {
		return nil, fmt.Errorf("app: screen is required")
	}
	if opts.Clock == nil {
		opts.Clock = engine.NewMonotonicTimeProvider()
	}

	g := &Game{
		clock:    opts.Clock,
		queue:    event.NewEventQueue(),
		input:    input.NewMachine(opts.Keys),
		renderer: render.NewRenderer(opts.Screen),
		sound:    opts.Sound,
		log:      opts.Logger,

		hidePattern: opts.HidePattern,
		dirty:       true,
	}
	g.sched = engine.NewScheduler(g.clock)
	g.router = event.NewRouter[*Game](g.queue)

	ctrl, err := engine.NewController(engine.Options{
		Scheduler: g.sched,
		Audio:     opts.Audio,
		Listener:  opts.Listener,
		Queue:     g.queue,
		Timing:    opts.Timing,
		Logger:    opts.Logger,
		NewID:     opts.NewID,
	})
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	g.ctrl = ctrl

	if opts.Metrics != nil {
		g.router.Register(metrics.Handler[*Game](opts.Metrics))
	}
	g.router.Register(eventLogger())
	return g, nil
}

// eventLogger traces every lifecycle event at debug level
func eventLogger() event.Handler[*Game] {
	return event.HandlerFunc[*Game]{
		Types: metrics.ObservedTypes(),
		Fn: func(g *Game, ev event.GameEvent) {
			g.log.Debug().
				Stringer("event", ev.Type).
				Uint64("generation", ev.Generation).
				Msg("game event")
		},
	}
}

// Controller exposes the phase controller
func (g *Game) Controller() *engine.Controller {
	return g.ctrl
}

// Scheduler exposes the cooperative scheduler
func (g *Game) Scheduler() *engine.Scheduler {
	return g.sched
}

// Router exposes the event router for additional handlers
func (g *Game) Router() *event.Router[*Game] {
	return g.router
}

// HandleEvent applies one terminal event; returns true when the player quits
func (g *Game) HandleEvent(ev tcell.Event) bool {
	intent := g.input.Process(ev)
	if intent.Type == input.IntentNone {
		return false
	}
	g.log.Debug().Stringer("intent", intent.Type).Str("key", intent.Key).Msg("input")

	switch intent.Type {
	case input.IntentQuit:
		return true
	case input.IntentResize:
		g.renderer.Sync()
	case input.IntentToggleMute:
		if g.sound != nil {
			muted := g.sound.ToggleMute()
			g.log.Info().Bool("muted", muted).Msg("sound toggled")
		}
	case input.IntentStart:
		// Enter doubles as "play again" on the completion screen
		if !g.ctrl.Start() {
			g.ctrl.Restart()
		}
	case input.IntentRestart:
		g.ctrl.Restart()
	case input.IntentReplay:
		g.ctrl.Replay()
	case input.IntentReady:
		g.ctrl.Ready()
	case input.IntentClap:
		g.ctrl.Submit(pattern.CueClap)
	case input.IntentStomp:
		g.ctrl.Submit(pattern.CueStomp)
	}
	g.dirty = true
	return false
}

// Step runs due timers and dispatches queued events; returns true if anything happened
func (g *Game) Step() bool {
	ran := g.sched.RunDue()
	dispatched := g.router.DispatchAll(g)
	if ran > 0 || dispatched > 0 {
		g.dirty = true
	}
	return ran > 0 || dispatched > 0
}

// Draw renders the current snapshot if it changed since the last draw
func (g *Game) Draw() {
	if !g.dirty {
		return
	}
	ctx := render.RenderContext{
		Snapshot: g.ctrl.Snapshot(),
		Keys:     g.input.KeyTable(),

		HidePattern: g.hidePattern,
	}
	if g.sound != nil {
		ctx.Muted = g.sound.IsMuted()
		ctx.Silent = g.sound.IsSilent()
	}
	g.renderer.Draw(ctx)
	g.dirty = false
}

// untilNext returns the wait before the next scheduled timer, capped by the idle wake interval
func (g *Game) untilNext() time.Duration {
	deadline, ok := g.sched.Next()
	if !ok {
		return constants.IdleWakeInterval
	}
	d := deadline.Sub(g.clock.Now())
	if d < 0 {
		return 0
	}
	if d > constants.IdleWakeInterval {
		return constants.IdleWakeInterval
	}
	return d
}

// Run is the event loop: terminal input, scheduler deadlines and frame redraws
// Returns nil on quit, on a closed event channel or when ctx ends
func (g *Game) Run(ctx context.Context, events <-chan tcell.Event) error {
	frameTicker := time.NewTicker(constants.FrameUpdateInterval)
	defer frameTicker.Stop()

	wake := time.NewTimer(g.untilNext())
	defer wake.Stop()

	g.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if g.HandleEvent(ev) {
				g.log.Info().Msg("quit requested")
				return nil
			}
			g.Step()
			g.Draw()

		case <-wake.C:
			g.Step()

		case <-frameTicker.C:
			g.Draw()
		}
		wake.Reset(g.untilNext())
	}
}
