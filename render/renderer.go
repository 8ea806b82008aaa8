package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/rhythm-detective/engine"
	"github.com/lixenwraith/rhythm-detective/input"
	"github.com/lixenwraith/rhythm-detective/pattern"
)

// Renderer draws one frame per call from a session snapshot
// Stateless; must be called from the goroutine that owns the screen
type Renderer struct {
	screen tcell.Screen
}

// NewRenderer creates a renderer on screen
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Draw renders ctx and flushes the screen
func (r *Renderer) Draw(ctx RenderContext) {
	if ctx.Keys == nil {
		ctx.Keys = input.DefaultKeyTable()
	}

	s := r.screen
	fill(s, styleBase)

	var lines []line
	switch ctx.Snapshot.Phase {
	case engine.PhaseIntro:
		lines = introLines(ctx)
	case engine.PhaseWatch, engine.PhasePractice, engine.PhaseChallenge:
		lines = roundLines(ctx)
	case engine.PhaseComplete:
		lines = completeLines(ctx)
	}

	_, h := s.Size()
	top := (h - len(lines) - 2) / 2
	if top < 0 {
		top = 0
	}
	for i, l := range lines {
		drawSegmentsCentered(s, top+i, l)
	}
	drawFooter(s, ctx)

	s.Show()
}

// Sync forces a full repaint after a resize
func (r *Renderer) Sync() {
	r.screen.Sync()
}

// line is one centered row made of styled segments
type line []segment

func text(s string, style tcell.Style) line {
	return line{{s, style}}
}

func blank() line {
	return nil
}

// keyHint formats the bindings of t, e.g. "a/Left"
func keyHint(kt *input.KeyTable, t input.IntentType) string {
	names := kt.Bindings(t)
	if len(names) == 0 {
		return "unbound"
	}
	// Letters first, shifted duplicates dropped, then named keys
	var letters, named []string
	for _, n := range names {
		switch {
		case len(n) != 1:
			named = append(named, n)
		case n >= "A" && n <= "Z":
		default:
			letters = append(letters, n)
		}
	}
	shown := append(letters, named...)
	if len(shown) == 0 {
		shown = names
	}
	return strings.Join(shown, "/")
}

func introLines(ctx RenderContext) []line {
	kt := ctx.Keys
	return []line{
		text("RHYTHM DETECTIVE", styleTitle),
		blank(),
		text("Welcome, Detective! Your mission is to solve rhythm mysteries", styleBase),
		text("by listening carefully and copying the beat patterns you hear.", styleBase),
		blank(),
		text("How to Play:", styleTitle),
		text("1. Watch and listen to the pattern", styleBase),
		line{
			{"2. Copy it back with ", styleBase},
			{"CLAP", styleClap},
			{" [" + keyHint(kt, input.IntentClap) + "] and ", styleBase},
			{"STOMP", styleStomp},
			{" [" + keyHint(kt, input.IntentStomp) + "]", styleBase},
		},
		text(fmt.Sprintf("3. Solve all %d rhythm mysteries to win!", ctx.Snapshot.Levels), styleBase),
		blank(),
		text("Press "+keyHint(kt, input.IntentStart)+" to start detective training", stylePlaying),
	}
}

// cueSegments renders a cue sequence as colored tokens
func cueSegments(cues []pattern.Cue, total int) line {
	var l line
	for i := 0; i < total; i++ {
		if i > 0 {
			l = append(l, segment{"  ", styleBase})
		}
		if i >= len(cues) {
			l = append(l, segment{"?", styleDim})
			continue
		}
		if cues[i] == pattern.CueClap {
			l = append(l, segment{"CLAP", styleClap})
		} else {
			l = append(l, segment{"STOMP", styleStomp})
		}
	}
	return l
}

func roundLines(ctx RenderContext) []line {
	snap := ctx.Snapshot
	kt := ctx.Keys
	p := snap.Pattern
	if p == nil {
		return nil
	}

	lines := []line{
		text(fmt.Sprintf("Mystery #%d: %s", snap.Level, p.Name), styleTitle),
		{
			{fmt.Sprintf("Level: %d/%d    Score: %d    Difficulty: ", snap.Level, snap.Levels, snap.Score), styleBase},
			{p.Stars(), styleStar},
		},
		blank(),
	}

	if snap.Phase == engine.PhaseWatch {
		lines = append(lines,
			text("Watch and Listen Carefully!", styleTitle),
			blank(),
			cueSegments(p.Sequence, p.Len()),
			blank(),
		)
		if snap.Playing {
			lines = append(lines, text("Playing...", stylePlaying))
		} else {
			lines = append(lines, text(fmt.Sprintf("[%s] play again    [%s] I'm ready!",
				keyHint(kt, input.IntentReplay), keyHint(kt, input.IntentReady)), styleDim))
		}
	} else {
		lines = append(lines, text("Your Turn - Copy the Pattern!", styleTitle), blank())
		if !ctx.HidePattern {
			lines = append(lines, cueSegments(p.Sequence, p.Len()))
		}
		lines = append(lines,
			append(line{{"Your pattern:  ", styleBase}}, cueSegments(snap.Input, p.Len())...),
			blank(),
			text(fmt.Sprintf("[%s] clap    [%s] stomp",
				keyHint(kt, input.IntentClap), keyHint(kt, input.IntentStomp)), styleDim),
		)
	}

	lines = append(lines, blank(), feedbackLine(snap))
	return lines
}

func feedbackLine(snap engine.Snapshot) line {
	if snap.Feedback == "" {
		return blank()
	}
	style := styleBase
	switch snap.FeedbackKind {
	case engine.FeedbackInfo:
		style = styleBase.Foreground(RgbInfo)
	case engine.FeedbackSuccess:
		style = styleBase.Foreground(RgbSuccess).Bold(true)
	case engine.FeedbackFailure:
		style = styleBase.Foreground(RgbFailure).Bold(true)
	}
	return text(snap.Feedback, style)
}

func completeLines(ctx RenderContext) []line {
	snap := ctx.Snapshot
	return []line{
		text("Congratulations, Detective!", styleTitle),
		blank(),
		text("You've solved all the rhythm mysteries!", styleBase),
		blank(),
		text(fmt.Sprintf("Final Score: %d points", snap.Score), styleTitle),
		text(fmt.Sprintf("You've completed all %d of %d challenges!", snap.Level, snap.Levels), styleBase),
		text("You're officially a certified Rhythm Detective!", styleStar),
		blank(),
		text("Press "+keyHint(ctx.Keys, input.IntentStart)+" to play again", stylePlaying),
	}
}

// drawFooter shows global keys and the audio state on the last row
func drawFooter(s tcell.Screen, ctx RenderContext) {
	_, h := s.Size()
	audio := "sound on"
	switch {
	case ctx.Silent:
		audio = "no audio device"
	case ctx.Muted:
		audio = "muted"
	}
	drawCentered(s, h-1, fmt.Sprintf("[%s] %s    [%s] quit",
		keyHint(ctx.Keys, input.IntentToggleMute), audio, keyHint(ctx.Keys, input.IntentQuit)), styleDim)
}
