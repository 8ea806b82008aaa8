package engine

import (
	"container/heap"
	"time"
)

// TimerID identifies a scheduled callback
type TimerID uint64

type timer struct {
	id       TimerID
	deadline time.Time
	seq      uint64 // Insertion order, breaks deadline ties FIFO
	fn       func()
	index    int
}

type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].deadline.Equal(h[j].deadline) {
		return h[i].seq < h[j].seq
	}
	return h[i].deadline.Before(h[j].deadline)
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

// Scheduler is a cooperative timer queue for the event loop
// Callbacks run on the goroutine calling RunDue; nothing here is safe for concurrent use
//
// Timers scheduled from inside a running callback are based on that callback's
// deadline rather than the wall clock, so chained delays do not accumulate drift
type Scheduler struct {
	clock   TimeProvider
	timers  timerHeap
	byID    map[TimerID]*timer
	nextID  TimerID
	nextSeq uint64

	running  bool
	baseTime time.Time
}

// NewScheduler creates a scheduler reading the given clock
func NewScheduler(clock TimeProvider) *Scheduler {
	return &Scheduler{
		clock: clock,
		byID:  make(map[TimerID]*timer),
	}
}

// now returns the base for new deadlines
func (s *Scheduler) now() time.Time {
	if s.running {
		return s.baseTime
	}
	return s.clock.Now()
}

// After schedules fn to run once d has elapsed
func (s *Scheduler) After(d time.Duration, fn func()) TimerID {
	if d < 0 {
		d = 0
	}
	s.nextID++
	s.nextSeq++
	t := &timer{
		id:       s.nextID,
		deadline: s.now().Add(d),
		seq:      s.nextSeq,
		fn:       fn,
	}
	heap.Push(&s.timers, t)
	s.byID[t.id] = t
	return t.id
}

// Cancel removes a pending timer, returns false if it already ran or never existed
func (s *Scheduler) Cancel(id TimerID) bool {
	t, ok := s.byID[id]
	if !ok {
		return false
	}
	heap.Remove(&s.timers, t.index)
	delete(s.byID, id)
	return true
}

// CancelAll drops every pending timer
func (s *Scheduler) CancelAll() {
	s.timers = s.timers[:0]
	s.byID = make(map[TimerID]*timer)
}

// Next returns the earliest pending deadline
func (s *Scheduler) Next() (time.Time, bool) {
	if len(s.timers) == 0 {
		return time.Time{}, false
	}
	return s.timers[0].deadline, true
}

// Pending returns the number of scheduled timers
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// RunDue runs every timer whose deadline has passed, in deadline order
// Timers that become due while running (zero or short delays) run in the same call
func (s *Scheduler) RunDue() int {
	now := s.clock.Now()
	ran := 0
	for len(s.timers) > 0 && !s.timers[0].deadline.After(now) {
		t := heap.Pop(&s.timers).(*timer)
		delete(s.byID, t.id)

		s.running = true
		s.baseTime = t.deadline
		t.fn()
		s.running = false
		ran++
	}
	return ran
}
