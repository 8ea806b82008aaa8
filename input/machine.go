package input

import "github.com/gdamore/tcell/v2"

// Machine translates terminal events into intents
// Stateless between events; phase filtering is the controller's job
type Machine struct {
	keyTable *KeyTable
}

// NewMachine creates a machine over kt (nil = defaults)
func NewMachine(kt *KeyTable) *Machine {
	if kt == nil {
		kt = DefaultKeyTable()
	}
	return &Machine{keyTable: kt}
}

// SetKeyTable replaces the active bindings
func (m *Machine) SetKeyTable(kt *KeyTable) {
	m.keyTable = kt
}

// KeyTable returns the active bindings
func (m *Machine) KeyTable() *KeyTable {
	return m.keyTable
}

// Process returns the intent for ev, or IntentNone when unbound
func (m *Machine) Process(ev tcell.Event) Intent {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return m.processKey(ev)
	case *tcell.EventResize:
		return Intent{Type: IntentResize}
	}
	return Intent{}
}

func (m *Machine) processKey(ev *tcell.EventKey) Intent {
	if ev.Key() == tcell.KeyRune {
		// Ctrl/Alt chords on printable keys are never game input
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) != 0 {
			return Intent{}
		}
		if t, ok := m.keyTable.Runes[ev.Rune()]; ok {
			return Intent{Type: t, Key: runeName(ev.Rune())}
		}
		return Intent{}
	}

	if t, ok := m.keyTable.SpecialKeys[ev.Key()]; ok {
		return Intent{Type: t, Key: ev.Name()}
	}
	return Intent{}
}
