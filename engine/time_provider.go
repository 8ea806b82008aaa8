package engine

import (
	"sync"
	"time"
)

// TimeProvider is the clock the scheduler reads
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the system clock with its monotonic component
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates the production clock
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now implements TimeProvider
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider is a manually advanced clock for deterministic round timing
// Readable from any goroutine; tests advance it and then call Scheduler.RunDue
type MockTimeProvider struct {
	mu  sync.RWMutex
	now time.Time
}

// NewMockTimeProvider starts the clock at start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{now: start}
}

// Now implements TimeProvider
func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Advance moves the clock forward by d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}
