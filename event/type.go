package event

// EventType identifies a game lifecycle event
type EventType int

const (
	// EventGameStarted signals a new playthrough
	// Trigger: Start action in intro | Payload: *GameStartedPayload
	EventGameStarted EventType = iota + 1

	// EventPhaseChanged signals a phase transition
	// Trigger: every FSM transition | Payload: *PhaseChangedPayload
	EventPhaseChanged

	// EventCuePlayed signals one cue of a pattern playback
	// Trigger: SequencePlayer step | Payload: *CuePayload
	EventCuePlayed

	// EventCueSubmitted signals an accepted player cue
	// Trigger: Submit in practice | Payload: *CuePayload
	EventCueSubmitted

	// EventVerdict signals a judged round
	// Trigger: input reached pattern length | Payload: *VerdictPayload
	EventVerdict

	// EventLevelAdvanced signals the move to the next pattern
	// Trigger: delayed pass transition | Payload: *LevelPayload
	EventLevelAdvanced

	// EventGameCompleted signals the final pattern was solved
	// Trigger: delayed pass transition on last level | Payload: *CompletionPayload
	EventGameCompleted

	// EventGameRestarted signals a return to intro from complete
	// Payload: nil
	EventGameRestarted
)

// String returns the event name used in logs and metrics labels
func (t EventType) String() string {
	switch t {
	case EventGameStarted:
		return "game_started"
	case EventPhaseChanged:
		return "phase_changed"
	case EventCuePlayed:
		return "cue_played"
	case EventCueSubmitted:
		return "cue_submitted"
	case EventVerdict:
		return "verdict"
	case EventLevelAdvanced:
		return "level_advanced"
	case EventGameCompleted:
		return "game_completed"
	case EventGameRestarted:
		return "game_restarted"
	default:
		return "unknown"
	}
}

// GameEvent is one queued event
type GameEvent struct {
	Type       EventType
	Payload    any
	Generation uint64 // Session generation that produced the event
}
