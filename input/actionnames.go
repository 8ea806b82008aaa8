package input

// actionRegistry maps canonical action names to intents
// Used by the key binding loader to resolve configured action strings
var actionRegistry map[string]IntentType

func init() {
	actionRegistry = buildActionRegistry()
}

func buildActionRegistry() map[string]IntentType {
	reg := make(map[string]IntentType, len(intentNames))
	for t, name := range intentNames {
		if IntentType(t) == IntentResize {
			continue
		}
		reg[name] = IntentType(t)
	}

	// Aliases accepted in configuration
	reg["primary"] = IntentClap
	reg["secondary"] = IntentStomp
	reg["mute"] = IntentToggleMute
	reg["unbind"] = IntentNone
	return reg
}

// ActionIntent resolves an action name
func ActionIntent(name string) (IntentType, bool) {
	t, ok := actionRegistry[name]
	return t, ok
}

// ActionNames returns all bindable action names, unordered
func ActionNames() []string {
	names := make([]string, 0, len(actionRegistry))
	for name := range actionRegistry {
		names = append(names, name)
	}
	return names
}
