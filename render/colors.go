package render

import "github.com/gdamore/tcell/v2"

// RGB palette
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbText       = tcell.NewRGBColor(230, 230, 240) // Body text
	RgbDim        = tcell.NewRGBColor(130, 130, 150) // Help and placeholders
	RgbTitle      = tcell.NewRGBColor(255, 215, 90)  // Headings
	RgbStar       = tcell.NewRGBColor(255, 200, 0)   // Difficulty stars

	RgbClap  = tcell.NewRGBColor(255, 107, 107) // Primary cue
	RgbStomp = tcell.NewRGBColor(78, 205, 196)  // Secondary cue

	RgbInfo    = tcell.NewRGBColor(140, 190, 255) // Instruction feedback
	RgbSuccess = tcell.NewRGBColor(50, 255, 50)   // Pass feedback
	RgbFailure = tcell.NewRGBColor(255, 120, 120) // Fail feedback
	RgbPlaying = tcell.NewRGBColor(255, 165, 0)   // Playback indicator
)

// Styles derived from the palette
var (
	styleBase    = tcell.StyleDefault.Background(RgbBackground).Foreground(RgbText)
	styleDim     = styleBase.Foreground(RgbDim)
	styleTitle   = styleBase.Foreground(RgbTitle).Bold(true)
	styleStar    = styleBase.Foreground(RgbStar)
	stylePlaying = styleBase.Foreground(RgbPlaying).Bold(true)
	styleClap    = styleBase.Foreground(RgbClap).Bold(true)
	styleStomp   = styleBase.Foreground(RgbStomp).Bold(true)
)
