package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit       // Ctrl+C, Esc, q
	IntentToggleMute // m
	IntentResize     // Terminal resize event

	// Game actions, routed to the controller
	IntentStart   // Enter on intro
	IntentReplay  // r while watching
	IntentReady   // Space while watching
	IntentClap    // Primary cue
	IntentStomp   // Secondary cue
	IntentRestart // Enter on the completion screen
)

var intentNames = [...]string{
	IntentNone:       "none",
	IntentQuit:       "quit",
	IntentToggleMute: "toggle_mute",
	IntentResize:     "resize",
	IntentStart:      "start",
	IntentReplay:     "replay",
	IntentReady:      "ready",
	IntentClap:       "clap",
	IntentStomp:      "stomp",
	IntentRestart:    "restart",
}

// String returns the action name used in key configuration
func (t IntentType) String() string {
	if int(t) < len(intentNames) {
		return intentNames[t]
	}
	return "unknown"
}

// Intent is the output of key translation
type Intent struct {
	Type IntentType
	Key  string // Display name of the originating key, for logs
}
