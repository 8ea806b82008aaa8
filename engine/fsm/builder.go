package fsm

import "fmt"

// AddState adds a state to the machine
func (m *Machine[T]) AddState(id StateID, name string) *Node[T] {
	node := &Node[T]{
		ID:          id,
		Name:        name,
		Transitions: make([]Transition[T], 0),
	}
	m.nodes[id] = node
	return node
}

// AddTransition adds a transition to a specific state
func (m *Machine[T]) AddTransition(sourceID StateID, t Transition[T]) {
	if node, ok := m.nodes[sourceID]; ok {
		node.Transitions = append(node.Transitions, t)
	}
}

// OnEnter appends an entry action to a state
func (m *Machine[T]) OnEnter(id StateID, fn ActionFunc[T]) {
	if node, ok := m.nodes[id]; ok {
		node.OnEnter = append(node.OnEnter, fn)
	}
}

// OnExit appends an exit action to a state
func (m *Machine[T]) OnExit(id StateID, fn ActionFunc[T]) {
	if node, ok := m.nodes[id]; ok {
		node.OnExit = append(node.OnExit, fn)
	}
}

// Validate checks that every transition targets a known state
// Must be called after all states are added and before Init
func (m *Machine[T]) Validate() error {
	if _, ok := m.nodes[m.InitialStateID]; !ok {
		return fmt.Errorf("initial state %d not defined", m.InitialStateID)
	}
	for id, node := range m.nodes {
		for _, t := range node.Transitions {
			if _, ok := m.nodes[t.TargetID]; !ok {
				return fmt.Errorf("state %d (%s): transition %q targets missing state %d", id, node.Name, t.Trigger, t.TargetID)
			}
		}
	}
	return nil
}
