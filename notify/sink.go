package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Sink is one delivery target for completion records
// Deliver must honor ctx cancellation and be safe for concurrent use
type Sink interface {
	Name() string
	Deliver(ctx context.Context, rec Record) error
}

// LogSink writes the record as a structured log line
type LogSink struct {
	log zerolog.Logger
}

// NewLogSink creates a sink writing to log
func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Deliver(_ context.Context, rec Record) error {
	s.log.Info().
		Str("type", rec.Type).
		Str("block_id", rec.BlockID).
		Str("playthrough", rec.PlaythroughID).
		Int("score", rec.Score).
		Int("max_score", rec.MaxScore).
		Time("completed_at", rec.CompletedAt).
		Msg("completion")
	return nil
}

// ChanSink hands records to an embedding host over a channel
// Delivery blocks until the host receives or ctx ends
type ChanSink struct {
	ch chan<- Record
}

// NewChanSink creates a sink sending on ch
func NewChanSink(ch chan<- Record) *ChanSink {
	return &ChanSink{ch: ch}
}

func (s *ChanSink) Name() string { return "chan" }

func (s *ChanSink) Deliver(ctx context.Context, rec Record) error {
	select {
	case s.ch <- rec:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("chan sink: %w", ctx.Err())
	}
}
