package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBindings(t *testing.T) {
	m := NewMachine(nil)

	cases := []struct {
		name string
		ev   tcell.Event
		want IntentType
	}{
		{"a claps", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), IntentClap},
		{"A claps", tcell.NewEventKey(tcell.KeyRune, 'A', tcell.ModShift), IntentClap},
		{"l stomps", tcell.NewEventKey(tcell.KeyRune, 'l', tcell.ModNone), IntentStomp},
		{"left claps", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), IntentClap},
		{"right stomps", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), IntentStomp},
		{"space readies", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), IntentReady},
		{"r replays", tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), IntentReplay},
		{"enter starts", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), IntentStart},
		{"n restarts", tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone), IntentRestart},
		{"m mutes", tcell.NewEventKey(tcell.KeyRune, 'm', tcell.ModNone), IntentToggleMute},
		{"ctrl-c quits", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), IntentQuit},
		{"esc quits", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), IntentQuit},
		{"unbound rune", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), IntentNone},
		{"alt chord ignored", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModAlt), IntentNone},
		{"resize", tcell.NewEventResize(80, 24), IntentResize},
		{"interrupt ignored", tcell.NewEventInterrupt(nil), IntentNone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, m.Process(tc.ev).Type)
		})
	}
}

func TestIntentCarriesKeyName(t *testing.T) {
	m := NewMachine(nil)
	assert.Equal(t, "space", m.Process(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)).Key)
	assert.Equal(t, "Left", m.Process(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone)).Key)
}

func TestLoadKeyBindings(t *testing.T) {
	kt, err := LoadKeyBindings(map[string]string{
		"j":     "clap",
		"k":     "secondary",
		"space": "ready",
		"Tab":   "replay",
		"a":     "unbind",
	})
	require.NoError(t, err)

	assert.Equal(t, IntentClap, kt.Runes['j'])
	assert.Equal(t, IntentStomp, kt.Runes['k'])
	assert.Equal(t, IntentReady, kt.Runes[' '])
	assert.Equal(t, IntentReplay, kt.SpecialKeys[tcell.KeyTab])
	assert.Equal(t, IntentNone, kt.Runes['a'])

	merged := MergeKeyTable(DefaultKeyTable(), kt)
	m := NewMachine(merged)
	assert.Equal(t, IntentClap, m.Process(tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone)).Type)
	assert.Equal(t, IntentNone, m.Process(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone)).Type)
	assert.Equal(t, IntentReplay, m.Process(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone)).Type)

	// Defaults are untouched by the merge
	assert.Equal(t, IntentClap, DefaultKeyTable().Runes['a'])
}

func TestLoadKeyBindingsErrors(t *testing.T) {
	_, err := LoadKeyBindings(map[string]string{"j": "jump"})
	assert.ErrorContains(t, err, "unknown action")

	_, err = LoadKeyBindings(map[string]string{"notakey": "clap"})
	assert.ErrorContains(t, err, "invalid key")
}

func TestBindingsForHelp(t *testing.T) {
	kt := DefaultKeyTable()
	assert.Equal(t, []string{"A", "Left", "a"}, kt.Bindings(IntentClap))
	assert.Equal(t, []string{"space"}, kt.Bindings(IntentReady))
}

func TestIntentNames(t *testing.T) {
	assert.Equal(t, "clap", IntentClap.String())
	assert.Equal(t, "unknown", IntentType(200).String())

	got, ok := ActionIntent("primary")
	assert.True(t, ok)
	assert.Equal(t, IntentClap, got)
	_, ok = ActionIntent("resize")
	assert.False(t, ok, "resize is not bindable")
	assert.Contains(t, ActionNames(), "stomp")
}
