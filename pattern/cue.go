package pattern

import (
	"fmt"
	"strings"
)

// Cue is one beat the player must reproduce
type Cue int

const (
	CueClap  Cue = iota // Primary cue
	CueStomp            // Secondary cue
)

// String returns the lowercase cue name
func (c Cue) String() string {
	switch c {
	case CueClap:
		return "clap"
	case CueStomp:
		return "stomp"
	default:
		return fmt.Sprintf("cue(%d)", int(c))
	}
}

// Valid reports whether c is one of the two defined cues
func (c Cue) Valid() bool {
	return c == CueClap || c == CueStomp
}

// ParseCue maps a cue name back to its value, accepting the primary/secondary aliases
func ParseCue(s string) (Cue, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "clap", "primary":
		return CueClap, nil
	case "stomp", "secondary":
		return CueStomp, nil
	default:
		return 0, fmt.Errorf("unknown cue %q", s)
	}
}

// Equal reports positional equality of two cue sequences
func Equal(a, b []Cue) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
