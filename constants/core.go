package constants

import "time"

// Event Loop Timing
const (
	// FrameUpdateInterval is the rendering refresh interval
	FrameUpdateInterval = 33 * time.Millisecond

	// IdleWakeInterval bounds how long the loop sleeps when no timer is pending
	IdleWakeInterval = time.Second
)

// Queue Limits
const (
	// EventQueueSize is the initial capacity of the game event queue
	EventQueueSize = 64

	// InputChannelSize is the buffer between the terminal poller and the loop
	InputChannelSize = 256
)

// Notification delivery
const (
	// DefaultNotifyTimeout bounds a single sink delivery
	DefaultNotifyTimeout = 5 * time.Second

	// DefaultRedisChannel is the pub/sub channel used when none is configured
	DefaultRedisChannel = "rhythm-detective:completion"
)
