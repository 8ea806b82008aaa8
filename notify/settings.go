package notify

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Sink kinds accepted in configuration
const (
	SinkLog     = "log"
	SinkWebhook = "webhook"
	SinkRedis   = "redis"
	SinkChan    = "chan"
)

// ErrUnknownSink is returned for an unrecognized sink kind
var ErrUnknownSink = errors.New("notify: unknown sink")

// Settings selects and targets the sinks of a Notifier
type Settings struct {
	BlockID    string
	Sinks      []string
	WebhookURL string
	Origin     string
	Timeout    time.Duration
	Redis      RedisConfig
	Channel    chan<- Record // target of the chan sink, set by an embedding host
}

// BuildSinks creates one sink per configured kind
// Duplicates are collapsed; every target must be explicit
func BuildSinks(s Settings, log zerolog.Logger) ([]Sink, error) {
	seen := make(map[string]bool, len(s.Sinks))
	sinks := make([]Sink, 0, len(s.Sinks))

	for _, kind := range s.Sinks {
		if seen[kind] {
			continue
		}
		seen[kind] = true

		switch kind {
		case SinkLog:
			sinks = append(sinks, NewLogSink(log))
		case SinkWebhook:
			if s.WebhookURL == "" {
				return nil, fmt.Errorf("notify: webhook sink requires a url")
			}
			sinks = append(sinks, NewWebhookSink(s.WebhookURL, s.Origin, &http.Client{Timeout: s.Timeout}))
		case SinkRedis:
			if s.Redis.Addr == "" || s.Redis.Channel == "" {
				return nil, fmt.Errorf("notify: redis sink requires addr and channel")
			}
			sinks = append(sinks, NewRedisSink(s.Redis))
		case SinkChan:
			if s.Channel == nil {
				return nil, fmt.Errorf("notify: chan sink requires a channel")
			}
			sinks = append(sinks, NewChanSink(s.Channel))
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownSink, kind)
		}
	}
	return sinks, nil
}

// New builds sinks from s and returns a ready Dispatcher
func New(s Settings, log zerolog.Logger, onDelivery func(sink string, err error)) (*Dispatcher, error) {
	sinks, err := BuildSinks(s, log)
	if err != nil {
		return nil, err
	}
	n := NewNotifier(Options{
		BlockID:    s.BlockID,
		Sinks:      sinks,
		Logger:     log,
		OnDelivery: onDelivery,
	})
	return NewDispatcher(n, s.Timeout, log), nil
}
