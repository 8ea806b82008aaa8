package terminal

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/rhythm-detective/constants"
)

// ScreenFactory creates the screen at Init; tests pass a simulation screen
type ScreenFactory func() (tcell.Screen, error)

// TerminalService manages the screen lifecycle and input polling
type TerminalService struct {
	factory ScreenFactory
	screen  tcell.Screen
	eventCh chan tcell.Event
	doneCh  chan struct{}
	mu      sync.Mutex
	running bool
	closed  bool
}

// NewService creates a terminal service; nil factory uses tcell.NewScreen
func NewService(factory ScreenFactory) *TerminalService {
	if factory == nil {
		factory = tcell.NewScreen
	}
	return &TerminalService{
		factory: factory,
		eventCh: make(chan tcell.Event, constants.InputChannelSize),
		doneCh:  make(chan struct{}),
	}
}

// Name implements Service
func (s *TerminalService) Name() string {
	return "terminal"
}

// Dependencies implements Service
func (s *TerminalService) Dependencies() []string {
	return nil
}

// Init implements Service
func (s *TerminalService) Init(args ...any) error {
	screen, err := s.factory()
	if err != nil {
		return fmt.Errorf("terminal create: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	screen.HideCursor()
	screen.Clear()
	s.screen = screen
	return nil
}

// Start implements Service - launches input polling goroutine
func (s *TerminalService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running || s.screen == nil {
		return nil
	}
	s.running = true
	go s.pollLoop()
	return nil
}

// pollLoop forwards screen events until the screen is finalized
func (s *TerminalService) pollLoop() {
	defer close(s.doneCh)
	defer close(s.eventCh)

	defer func() {
		if r := recover(); r != nil {
			EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mTERMINAL POLL CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	for {
		// nil once Fini has been called
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		s.eventCh <- ev
	}
}

// Stop implements Service - finalizes the screen, which unblocks polling
func (s *TerminalService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.screen == nil {
		return nil
	}
	s.closed = true

	if s.running {
		// Drain so a blocked forward cannot hold the poller
		go func() {
			for range s.eventCh {
			}
		}()
	}
	s.screen.Fini()
	if s.running {
		<-s.doneCh
	}
	return nil
}

// Screen returns the wrapped screen (nil before Init)
func (s *TerminalService) Screen() tcell.Screen {
	return s.screen
}

// Events returns the input event channel, closed after Stop
func (s *TerminalService) Events() <-chan tcell.Event {
	return s.eventCh
}
