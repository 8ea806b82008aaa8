package input

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Rune aliases for keys that are awkward as bare configuration keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
}

// specialKeyByName is the lowercase reverse of tcell.KeyNames
var specialKeyByName = func() map[string]tcell.Key {
	m := make(map[string]tcell.Key, len(tcell.KeyNames))
	for k, name := range tcell.KeyNames {
		m[strings.ToLower(name)] = k
	}
	return m
}()

// LoadKeyBindings parses key name → action name pairs into a sparse override KeyTable
// Returns error on unknown action names or invalid key names
func LoadKeyBindings(bindings map[string]string) (*KeyTable, error) {
	kt := &KeyTable{
		SpecialKeys: make(map[tcell.Key]IntentType),
		Runes:       make(map[rune]IntentType),
	}

	for keyStr, actionName := range bindings {
		intent, err := resolveAction(actionName)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", keyStr, err)
		}

		if k, ok := specialKeyByName[strings.ToLower(keyStr)]; ok && len([]rune(keyStr)) > 1 {
			kt.SpecialKeys[k] = intent
			continue
		}

		r, err := resolveRune(keyStr)
		if err != nil {
			return nil, err
		}
		kt.Runes[r] = intent
	}

	return kt, nil
}

// resolveRune converts a configured key string to a rune
// Accepts single characters and named aliases
func resolveRune(s string) (rune, error) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, nil
	}

	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], nil
	}

	return 0, fmt.Errorf("invalid key: %q (expected single character, alias or key name)", s)
}

// resolveAction converts an action name string to an intent
func resolveAction(name string) (IntentType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	intent, ok := ActionIntent(name)
	if !ok {
		return IntentNone, fmt.Errorf("unknown action: %q", name)
	}
	return intent, nil
}

// MergeKeyTable returns a new KeyTable with base values overridden by override
// Override entries bound to IntentNone delete the key from the result
func MergeKeyTable(base, override *KeyTable) *KeyTable {
	result := base.Clone()
	if override == nil {
		return result
	}

	for k, v := range override.SpecialKeys {
		if v == IntentNone {
			delete(result.SpecialKeys, k)
		} else {
			result.SpecialKeys[k] = v
		}
	}
	for r, v := range override.Runes {
		if v == IntentNone {
			delete(result.Runes, r)
		} else {
			result.Runes[r] = v
		}
	}

	return result
}

// runeName renders a rune binding for display
func runeName(r rune) string {
	for name, alias := range runeAliases {
		if alias == r {
			return name
		}
	}
	return string(r)
}

func sortKeyNames(names []string) {
	sort.Strings(names)
}
