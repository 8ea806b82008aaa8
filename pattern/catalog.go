package pattern

// catalog is the level progression, ordered by ascending difficulty
// Level n plays catalog[n-1]
var catalog = [...]Pattern{
	{ID: 1, Sequence: []Cue{CueClap, CueClap}, Name: "Double Clap", Difficulty: 1},
	{ID: 2, Sequence: []Cue{CueClap, CueStomp}, Name: "Clap-Stomp", Difficulty: 1},
	{ID: 3, Sequence: []Cue{CueClap, CueClap, CueStomp}, Name: "Two Claps & Stomp", Difficulty: 2},
	{ID: 4, Sequence: []Cue{CueStomp, CueClap, CueClap}, Name: "Stomp & Two Claps", Difficulty: 2},
	{ID: 5, Sequence: []Cue{CueClap, CueStomp, CueClap, CueStomp}, Name: "Alternating Beat", Difficulty: 3},
	{ID: 6, Sequence: []Cue{CueClap, CueClap, CueStomp, CueStomp}, Name: "Double Double", Difficulty: 3},
}

// maxScore is precomputed once; the catalog never changes
var maxScore = func() int {
	total := 0
	for _, p := range catalog {
		total += p.Points()
	}
	return total
}()

// Catalog returns the ordered level list
// Each call returns fresh copies so callers cannot alter the progression
func Catalog() []Pattern {
	out := make([]Pattern, len(catalog))
	for i, p := range catalog {
		p.Sequence = p.Cues()
		out[i] = p
	}
	return out
}

// At returns the pattern for a 1-based level
func At(level int) (Pattern, bool) {
	if level < 1 || level > len(catalog) {
		return Pattern{}, false
	}
	p := catalog[level-1]
	p.Sequence = p.Cues()
	return p, true
}

// Count returns the number of levels
func Count() int {
	return len(catalog)
}

// MaxScore returns the score of a flawless playthrough
func MaxScore() int {
	return maxScore
}
