package fsm

// StateID is a unique identifier for a state
type StateID int

const (
	StateNone StateID = 0
)

// Trigger names an external event that may cause a transition
type Trigger string

// Machine is a flat finite state machine runtime
// T is the context type passed to actions and guards
type Machine[T any] struct {
	// Graph data, immutable after Init
	nodes map[StateID]*Node[T]

	// InitialStateID is entered by Init and Reset
	InitialStateID StateID

	// Runtime state
	activeStateID StateID
	transitions   uint64 // Completed transitions since Init
}

// Node represents one state
type Node[T any] struct {
	ID   StateID
	Name string

	// Lifecycle actions
	OnEnter []ActionFunc[T]
	OnExit  []ActionFunc[T]

	// Transitions in evaluation order; first passing guard wins
	Transitions []Transition[T]
}

// Transition defines a link between states
type Transition[T any] struct {
	Trigger  Trigger
	TargetID StateID
	Guard    GuardFunc[T]  // nil = always true
	Action   ActionFunc[T] // optional effect, runs after exit and before entry
}

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T) bool

// ActionFunc executes a side effect on entering, leaving or crossing into a state
type ActionFunc[T any] func(ctx T)
