package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/rhythm-detective/constants"
)

// Dispatcher runs deliveries off the event loop
// NotifyCompletion returns immediately; Stop waits for every in-flight delivery
type Dispatcher struct {
	notifier *Notifier
	timeout  time.Duration
	log      zerolog.Logger

	// OnDone is called after each delivery finishes, from the delivery goroutine
	OnDone func(playthroughID string, err error)

	mu      sync.Mutex
	stopped bool
	wg      sync.WaitGroup
}

// NewDispatcher wraps notifier; timeout bounds each delivery (0 = default)
func NewDispatcher(notifier *Notifier, timeout time.Duration, log zerolog.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = constants.DefaultNotifyTimeout
	}
	return &Dispatcher{notifier: notifier, timeout: timeout, log: log}
}

// NotifyCompletion schedules delivery of a finished playthrough
func (d *Dispatcher) NotifyCompletion(playthroughID string, score, maxScore int) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		d.log.Warn().Str("playthrough", playthroughID).Msg("dispatcher stopped, completion dropped")
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		err := d.notifier.Notify(ctx, playthroughID, score, maxScore)
		if err != nil && !errors.Is(err, ErrAlreadyNotified) {
			d.log.Error().Err(err).Str("playthrough", playthroughID).Msg("completion notification incomplete")
		}
		if d.OnDone != nil {
			d.OnDone(playthroughID, err)
		}
	}()
}

// Name implements Service
func (d *Dispatcher) Name() string {
	return "notify"
}

// Dependencies implements Service
func (d *Dispatcher) Dependencies() []string {
	return nil
}

// Init implements Service
func (d *Dispatcher) Init(args ...any) error {
	d.log.Info().Strs("sinks", d.notifier.SinkNames()).Msg("completion notifier ready")
	return nil
}

// Start implements Service
func (d *Dispatcher) Start() error {
	return nil
}

// Stop implements Service
// Idempotent; later completions are dropped
func (d *Dispatcher) Stop() error {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return nil
	}
	d.stopped = true
	d.mu.Unlock()

	d.wg.Wait()
	return d.notifier.Close()
}
