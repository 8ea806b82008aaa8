package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/lixenwraith/rhythm-detective/event"
)

const namespace = "rhythm_detective"

// Metrics holds the game counters on a private registry
// Counters are written from the event loop; delivery outcomes arrive from notifier goroutines
type Metrics struct {
	registry *prometheus.Registry

	PlaythroughsStarted   prometheus.Counter
	PlaythroughsCompleted prometheus.Counter
	Restarts              prometheus.Counter
	Rounds                *prometheus.CounterVec // labels: level, result
	CuesPlayed            *prometheus.CounterVec // labels: cue
	CuesSubmitted         *prometheus.CounterVec // labels: cue
	PhaseTransitions      *prometheus.CounterVec // labels: from, to
	CurrentLevel          prometheus.Gauge
	CurrentScore          prometheus.Gauge
	FinalScore            prometheus.Histogram
	Notifications         *prometheus.CounterVec // labels: sink, outcome
}

// New creates the counters and registers them with Go runtime collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		PlaythroughsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "playthroughs_started_total",
			Help:      "Playthroughs begun from the intro screen",
		}),
		PlaythroughsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "playthroughs_completed_total",
			Help:      "Playthroughs that solved the final pattern",
		}),
		Restarts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "restarts_total",
			Help:      "Returns from the completion screen to intro",
		}),
		Rounds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_total",
			Help:      "Judged reproductions by level and result",
		}, []string{"level", "result"}),
		CuesPlayed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cues_played_total",
			Help:      "Cues demonstrated during watch",
		}, []string{"cue"}),
		CuesSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cues_submitted_total",
			Help:      "Cues accepted from the player",
		}, []string{"cue"}),
		PhaseTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "phase_transitions_total",
			Help:      "Phase machine transitions",
		}, []string{"from", "to"}),
		CurrentLevel: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "current_level",
			Help:      "Level of the active playthrough, 0 when idle",
		}),
		CurrentScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "current_score",
			Help:      "Score of the active playthrough",
		}),
		FinalScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "final_score",
			Help:      "Score reported at completion",
			Buckets:   prometheus.LinearBuckets(0, 20, 7),
		}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Completion deliveries by sink and outcome",
		}, []string{"sink", "outcome"}),
	}

	m.registry.MustRegister(
		m.PlaythroughsStarted,
		m.PlaythroughsCompleted,
		m.Restarts,
		m.Rounds,
		m.CuesPlayed,
		m.CuesSubmitted,
		m.PhaseTransitions,
		m.CurrentLevel,
		m.CurrentScore,
		m.FinalScore,
		m.Notifications,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry served on /metrics
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe updates counters from one game event
func (m *Metrics) Observe(ev event.GameEvent) {
	switch p := ev.Payload.(type) {
	case *event.GameStartedPayload:
		m.PlaythroughsStarted.Inc()
		m.CurrentLevel.Set(1)
		m.CurrentScore.Set(0)
	case *event.PhaseChangedPayload:
		m.PhaseTransitions.WithLabelValues(p.From, p.To).Inc()
	case *event.CuePayload:
		switch ev.Type {
		case event.EventCuePlayed:
			m.CuesPlayed.WithLabelValues(p.Cue.String()).Inc()
		case event.EventCueSubmitted:
			m.CuesSubmitted.WithLabelValues(p.Cue.String()).Inc()
		}
	case *event.VerdictPayload:
		result := "fail"
		if p.Passed {
			result = "pass"
		}
		m.Rounds.WithLabelValues(strconv.Itoa(p.Level), result).Inc()
		m.CurrentScore.Set(float64(p.Score))
	case *event.LevelPayload:
		m.CurrentLevel.Set(float64(p.Level))
	case *event.CompletionPayload:
		m.PlaythroughsCompleted.Inc()
		m.FinalScore.Observe(float64(p.Score))
	default:
		if ev.Type == event.EventGameRestarted {
			m.Restarts.Inc()
			m.CurrentLevel.Set(0)
			m.CurrentScore.Set(0)
		}
	}
}

// ObserveDelivery records one sink delivery outcome
// Safe for concurrent use
func (m *Metrics) ObserveDelivery(sink string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.Notifications.WithLabelValues(sink, outcome).Inc()
}

// ObservedTypes lists the events Observe consumes
func ObservedTypes() []event.EventType {
	return []event.EventType{
		event.EventGameStarted,
		event.EventPhaseChanged,
		event.EventCuePlayed,
		event.EventCueSubmitted,
		event.EventVerdict,
		event.EventLevelAdvanced,
		event.EventGameCompleted,
		event.EventGameRestarted,
	}
}

// Handler adapts m into an event router handler
func Handler[T any](m *Metrics) event.Handler[T] {
	return event.HandlerFunc[T]{
		Types: ObservedTypes(),
		Fn:    func(_ T, ev event.GameEvent) { m.Observe(ev) },
	}
}
