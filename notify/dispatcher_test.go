package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// blockingSink holds every delivery until released
type blockingSink struct {
	release chan struct{}
	done    chan Record
}

func (s *blockingSink) Name() string { return "blocking" }

func (s *blockingSink) Deliver(ctx context.Context, rec Record) error {
	select {
	case <-s.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	s.done <- rec
	return nil
}

func TestDispatcherDoesNotBlockCaller(t *testing.T) {
	defer goleak.VerifyNone(t)

	sink := &blockingSink{release: make(chan struct{}), done: make(chan Record, 1)}
	d := NewDispatcher(newTestNotifier(sink), time.Minute, zerolog.Nop())

	returned := make(chan struct{})
	go func() {
		d.NotifyCompletion("p-1", 120, 120)
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("NotifyCompletion blocked on delivery")
	}

	close(sink.release)
	require.NoError(t, d.Stop())
	rec := <-sink.done
	assert.Equal(t, "p-1", rec.PlaythroughID)
}

func TestDispatcherStopWaitsForInflight(t *testing.T) {
	defer goleak.VerifyNone(t)

	sink := &blockingSink{release: make(chan struct{}), done: make(chan Record, 1)}
	d := NewDispatcher(newTestNotifier(sink), time.Minute, zerolog.Nop())
	d.NotifyCompletion("p-1", 120, 120)

	stopped := make(chan struct{})
	go func() {
		_ = d.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned before delivery finished")
	case <-time.After(50 * time.Millisecond):
	}

	close(sink.release)
	<-stopped
	assert.Len(t, sink.done, 1)
}

func TestDispatcherTimeout(t *testing.T) {
	defer goleak.VerifyNone(t)

	sink := &blockingSink{release: make(chan struct{}), done: make(chan Record, 1)}
	d := NewDispatcher(newTestNotifier(sink), 20*time.Millisecond, zerolog.Nop())

	errCh := make(chan error, 1)
	d.OnDone = func(_ string, err error) { errCh <- err }
	d.NotifyCompletion("p-1", 120, 120)

	err := <-errCh
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	require.NoError(t, d.Stop())
}

func TestDispatcherDropsAfterStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := &recordingSink{name: "s"}
	d := NewDispatcher(newTestNotifier(s), 0, zerolog.Nop())
	require.NoError(t, d.Stop())
	require.NoError(t, d.Stop(), "stop is idempotent")

	d.NotifyCompletion("p-1", 120, 120)
	assert.Zero(t, s.count())
}

func TestDispatcherDuplicateCompletion(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := &recordingSink{name: "s"}
	d := NewDispatcher(newTestNotifier(s), 0, zerolog.Nop())

	results := make(chan error, 2)
	d.OnDone = func(_ string, err error) { results <- err }
	d.NotifyCompletion("p-1", 120, 120)
	d.NotifyCompletion("p-1", 120, 120)
	require.NoError(t, d.Stop())

	close(results)
	var dupes int
	for err := range results {
		if errors.Is(err, ErrAlreadyNotified) {
			dupes++
		}
	}
	assert.Equal(t, 1, dupes)
	assert.Equal(t, 1, s.count())
}

func TestNewFromSettings(t *testing.T) {
	ch := make(chan Record, 1)
	d, err := New(Settings{Sinks: []string{SinkChan}, Channel: ch}, zerolog.Nop(), nil)
	require.NoError(t, err)
	require.NoError(t, d.Init())

	d.NotifyCompletion("p-1", 120, 120)
	require.NoError(t, d.Stop())
	assert.Equal(t, "p-1", (<-ch).PlaythroughID)
	assert.Equal(t, "notify", d.Name())
}
