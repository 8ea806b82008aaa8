package constants

import "time"

// Round Timing Constants
const (
	// InterCueDelay is the pause after each cue while a pattern plays back
	InterCueDelay = 600 * time.Millisecond

	// AutoPlayDelay is the delay between entering watch and the automatic playback
	AutoPlayDelay = 1000 * time.Millisecond

	// FeedbackDelay is how long a verdict message stays up before the session moves on
	FeedbackDelay = 2000 * time.Millisecond
)

// Scoring
const (
	// PointsPerDifficulty multiplies a pattern's difficulty into its score delta
	PointsPerDifficulty = 10
)

// Completion record
const (
	// CompletionEventType tags every completion record
	CompletionEventType = "BLOCK_COMPLETION"

	// DefaultBlockID identifies this game instance to the embedding host
	DefaultBlockID = "6853cc587405ab9cb3e4cfbb"
)

// Feedback messages
const (
	MessageYourTurn = "Now it's your turn! Press the keys to copy the pattern."
	MessagePerfect  = "Perfect! You got it right!"
	MessageNotQuite = "Not quite! Try listening again and copy the pattern."
)
