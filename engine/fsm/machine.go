package fsm

import (
	"fmt"
)

// NewMachine creates a new FSM instance
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes: make(map[StateID]*Node[T]),
	}
}

// Init validates the graph and enters the initial state
func (m *Machine[T]) Init(ctx T) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("fsm init: %w", err)
	}
	m.activeStateID = m.InitialStateID
	m.transitions = 0
	for _, action := range m.nodes[m.activeStateID].OnEnter {
		action(ctx)
	}
	return nil
}

// Fire routes a trigger from the active state
// Returns true if a transition happened; unknown or guarded-out triggers are ignored
func (m *Machine[T]) Fire(ctx T, trigger Trigger) bool {
	node, ok := m.nodes[m.activeStateID]
	if !ok {
		return false
	}
	for _, t := range node.Transitions {
		if t.Trigger != trigger {
			continue
		}
		if t.Guard == nil || t.Guard(ctx) {
			m.transition(ctx, node, t)
			return true
		}
	}
	return false
}

// Can reports whether trigger would cause a transition right now
func (m *Machine[T]) Can(ctx T, trigger Trigger) bool {
	node, ok := m.nodes[m.activeStateID]
	if !ok {
		return false
	}
	for _, t := range node.Transitions {
		if t.Trigger == trigger && (t.Guard == nil || t.Guard(ctx)) {
			return true
		}
	}
	return false
}

// transition runs exit actions, the transition effect, switches state, then runs entry actions
// The active state is updated before OnEnter so entry actions observe the new state
func (m *Machine[T]) transition(ctx T, from *Node[T], t Transition[T]) {
	target, ok := m.nodes[t.TargetID]
	if !ok {
		panic(fmt.Sprintf("FSM: attempted transition to unknown state ID %d", t.TargetID))
	}

	for _, action := range from.OnExit {
		action(ctx)
	}

	if t.Action != nil {
		t.Action(ctx)
	}

	m.activeStateID = t.TargetID
	m.transitions++

	for _, action := range target.OnEnter {
		action(ctx)
	}
}

// Reset returns the machine to its initial state without running any actions
func (m *Machine[T]) Reset() {
	m.activeStateID = m.InitialStateID
}

// Current returns the active StateID
func (m *Machine[T]) Current() StateID {
	return m.activeStateID
}

// StateName returns the name of the active state
func (m *Machine[T]) StateName() string {
	if node, ok := m.nodes[m.activeStateID]; ok {
		return node.Name
	}
	return ""
}

// TransitionCount returns completed transitions since Init
func (m *Machine[T]) TransitionCount() uint64 {
	return m.transitions
}
