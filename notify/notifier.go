package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrAlreadyNotified is returned when a playthrough was already delivered
	ErrAlreadyNotified = errors.New("notify: playthrough already notified")
	// ErrRejected marks a sink that answered but refused the record
	ErrRejected = errors.New("notify: record rejected")
)

// Options configures a Notifier
type Options struct {
	BlockID string
	Sinks   []Sink
	Logger  zerolog.Logger
	Now     func() time.Time // defaults to time.Now

	// OnDelivery is called once per sink attempt with its outcome
	OnDelivery func(sink string, err error)
}

// Notifier delivers one completion record per playthrough to every sink
type Notifier struct {
	blockID    string
	sinks      []Sink
	log        zerolog.Logger
	now        func() time.Time
	onDelivery func(string, error)

	mu        sync.Mutex
	delivered map[string]struct{}
}

// NewNotifier creates a notifier over the given sinks
func NewNotifier(opts Options) *Notifier {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Notifier{
		blockID:    opts.BlockID,
		sinks:      opts.Sinks,
		log:        opts.Logger,
		now:        opts.Now,
		onDelivery: opts.OnDelivery,
		delivered:  make(map[string]struct{}),
	}
}

// Notify delivers the completion of playthroughID to every sink concurrently
// A second call for the same playthrough returns ErrAlreadyNotified without delivering
// Sink failures are logged and joined; one failing sink does not stop the others
func (n *Notifier) Notify(ctx context.Context, playthroughID string, score, maxScore int) error {
	if playthroughID == "" {
		return fmt.Errorf("notify: empty playthrough id")
	}

	n.mu.Lock()
	if _, done := n.delivered[playthroughID]; done {
		n.mu.Unlock()
		return ErrAlreadyNotified
	}
	n.delivered[playthroughID] = struct{}{}
	n.mu.Unlock()

	rec := NewRecord(n.blockID, playthroughID, score, maxScore, n.now())

	// Errors are collected per sink so errgroup never cancels siblings
	errs := make([]error, len(n.sinks))
	var g errgroup.Group
	for i, sink := range n.sinks {
		g.Go(func() error {
			err := sink.Deliver(ctx, rec)
			if err != nil {
				n.log.Warn().Err(err).Str("sink", sink.Name()).Str("playthrough", playthroughID).Msg("completion delivery failed")
			} else {
				n.log.Debug().Str("sink", sink.Name()).Str("playthrough", playthroughID).Msg("completion delivered")
			}
			if n.onDelivery != nil {
				n.onDelivery(sink.Name(), err)
			}
			errs[i] = err
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

// Delivered reports whether playthroughID has been claimed
func (n *Notifier) Delivered(playthroughID string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, ok := n.delivered[playthroughID]
	return ok
}

// SinkNames lists configured sinks in order
func (n *Notifier) SinkNames() []string {
	names := make([]string, len(n.sinks))
	for i, s := range n.sinks {
		names[i] = s.Name()
	}
	return names
}

// Close releases sinks holding connections
func (n *Notifier) Close() error {
	var errs []error
	for _, s := range n.sinks {
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
			}
		}
	}
	return errors.Join(errs...)
}
