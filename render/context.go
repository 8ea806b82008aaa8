package render

import (
	"github.com/lixenwraith/rhythm-detective/engine"
	"github.com/lixenwraith/rhythm-detective/input"
)

// RenderContext is everything a frame needs; built fresh by the event loop
type RenderContext struct {
	Snapshot engine.Snapshot
	Keys     *input.KeyTable
	Muted    bool
	Silent   bool // No audio device

	// HidePattern blanks the demonstrated pattern on the practice screen
	HidePattern bool
}
