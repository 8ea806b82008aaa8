package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// drawText writes text starting at x, clipped to the screen width
// Returns the column after the last cell written
func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) int {
	w, h := s.Size()
	if y < 0 || y >= h {
		return x
	}
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x >= 0 && x+rw <= w {
			s.SetContent(x, y, r, nil, style)
		}
		x += rw
	}
	return x
}

// drawCentered writes text horizontally centered on row y
func drawCentered(s tcell.Screen, y int, text string, style tcell.Style) {
	w, _ := s.Size()
	x := (w - runewidth.StringWidth(text)) / 2
	if x < 0 {
		x = 0
	}
	drawText(s, x, y, text, style)
}

// segment is one styled run of a composed line
type segment struct {
	text  string
	style tcell.Style
}

// drawSegmentsCentered centers a line built from differently styled runs
func drawSegmentsCentered(s tcell.Screen, y int, segs []segment) {
	total := 0
	for _, seg := range segs {
		total += runewidth.StringWidth(seg.text)
	}
	w, _ := s.Size()
	x := (w - total) / 2
	if x < 0 {
		x = 0
	}
	for _, seg := range segs {
		x = drawText(s, x, y, seg.text, seg.style)
	}
}

// fill paints the whole screen with style
func fill(s tcell.Screen, style tcell.Style) {
	s.SetStyle(style)
	s.Clear()
}
