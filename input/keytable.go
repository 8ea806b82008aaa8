package input

import "github.com/gdamore/tcell/v2"

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (Ctrl+*, Enter, Esc, arrows)
	SpecialKeys map[tcell.Key]IntentType

	// Printable rune bindings
	Runes map[rune]IntentType
}

// DefaultKeyTable returns the default key bindings
// Both cases of a letter are bound so Caps Lock does not break play
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]IntentType{
			tcell.KeyCtrlC:  IntentQuit,
			tcell.KeyCtrlQ:  IntentQuit,
			tcell.KeyEscape: IntentQuit,
			tcell.KeyEnter:  IntentStart,
			tcell.KeyLeft:   IntentClap,
			tcell.KeyRight:  IntentStomp,
		},
		Runes: map[rune]IntentType{
			'q': IntentQuit,
			'Q': IntentQuit,
			'm': IntentToggleMute,
			'M': IntentToggleMute,
			'r': IntentReplay,
			'R': IntentReplay,
			' ': IntentReady,
			'a': IntentClap,
			'A': IntentClap,
			'l': IntentStomp,
			'L': IntentStomp,
			'n': IntentRestart,
			'N': IntentRestart,
		},
	}
}

// Clone returns a deep copy
func (kt *KeyTable) Clone() *KeyTable {
	out := &KeyTable{
		SpecialKeys: make(map[tcell.Key]IntentType, len(kt.SpecialKeys)),
		Runes:       make(map[rune]IntentType, len(kt.Runes)),
	}
	for k, v := range kt.SpecialKeys {
		out.SpecialKeys[k] = v
	}
	for k, v := range kt.Runes {
		out.Runes[k] = v
	}
	return out
}

// Bindings returns the display names of keys bound to t, for help text
func (kt *KeyTable) Bindings(t IntentType) []string {
	var names []string
	for k, v := range kt.SpecialKeys {
		if v == t {
			names = append(names, tcell.KeyNames[k])
		}
	}
	for r, v := range kt.Runes {
		if v == t {
			names = append(names, runeName(r))
		}
	}
	sortKeyNames(names)
	return names
}
