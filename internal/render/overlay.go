package render

import (
	"fmt"
	"unicode/utf8"

	"github.com/tomz197/avoider/internal/draw"
	"github.com/tomz197/avoider/internal/game"
)

// Style selects how a label is emphasised.
type Style int

const (
	StylePlain Style = iota
	StyleTitle
	StyleButton
	StyleHover // Button under the pointer
)

// Label is a line of overlay text at a 1-based canvas position.
type Label struct {
	Col, Row int
	Text     string
	Style    Style
}

// Logical rows of the menu text. Buttons come from game.MenuButtons.
const (
	titleY    = 150
	subtitleY = 180
	controlsY = 350
)

var controlLines = []string{
	"A D / < >  . .  Rotate",
	"W / Up  . . . . Thrust",
	"Click or SPACE to play, Q to quit",
}

// Overlay returns the text drawn over the canvas for the snapshot's phase.
func Overlay(c *draw.Canvas, snap game.Snapshot) []Label {
	var labels []Label

	switch snap.Phase {
	case game.PhaseMainMenu:
		labels = append(labels,
			centredAt(c, titleY, "A V O I D E R", StyleTitle),
			centredAt(c, subtitleY, "~ dodge the drifting rocks ~", StylePlain),
		)
		_, row := c.LogicalToTerminal(0, controlsY)
		for i, line := range controlLines {
			labels = append(labels, Centred(c, row+i, line, StylePlain))
		}
	case game.PhasePlaying:
		labels = append(labels, Label{Col: 2, Row: 1, Text: fmt.Sprintf("Time: %-8.1f", snap.Timer)})
		count := fmt.Sprintf("Obstacles: %-4d", len(snap.Obstacles))
		labels = append(labels, Label{Col: c.TerminalWidth() - utf8.RuneCountInString(count), Row: 1, Text: count})
	case game.PhaseGameOver:
		labels = append(labels,
			centredAt(c, titleY, "G A M E   O V E R", StyleTitle),
			centredAt(c, subtitleY, fmt.Sprintf("You survived %.1f seconds", snap.Timer), StylePlain),
		)
	}

	hovered, hasHover := snap.Hovered()
	for _, b := range snap.Buttons {
		style := StyleButton
		if hasHover && b.Action == hovered.Action {
			style = StyleHover
		}
		_, cy := b.Rect.Center()
		labels = append(labels, centredAt(c, cy, "[ "+b.Label+" ]", style))
	}

	return clip(c, labels)
}

// Centred returns a label horizontally centred on canvas row.
func Centred(c *draw.Canvas, row int, text string, style Style) Label {
	col := max(c.TerminalWidth()/2-utf8.RuneCountInString(text)/2+1, 1)
	return Label{Col: col, Row: row, Text: text, Style: style}
}

func centredAt(c *draw.Canvas, y float64, text string, style Style) Label {
	_, row := c.LogicalToTerminal(0, y)
	return Centred(c, row, text, style)
}

// clip drops labels outside the canvas and truncates those that overrun it.
func clip(c *draw.Canvas, labels []Label) []Label {
	kept := labels[:0]
	for _, l := range labels {
		if l.Row < 1 || l.Row > c.TerminalHeight() || l.Col > c.TerminalWidth() {
			continue
		}
		l.Col = max(l.Col, 1)
		if room := c.TerminalWidth() - l.Col + 1; utf8.RuneCountInString(l.Text) > room {
			l.Text = string([]rune(l.Text)[:room])
		}
		kept = append(kept, l)
	}
	return kept
}

// WriteLabels writes labels through cw and marks their cells so the next
// canvas Render paints over them.
func WriteLabels(cw *draw.ChunkWriter, c *draw.Canvas, labels []Label) {
	for _, l := range labels {
		text := l.Text
		switch l.Style {
		case StyleTitle:
			text = draw.ColorBold + draw.ColorBrightCyan + text + draw.ColorReset
		case StyleHover:
			text = draw.ColorReverse + text + draw.ColorReset
		}
		cw.WriteAt(l.Col, l.Row, text)
		c.MarkTextDirty(l.Col, l.Row, utf8.RuneCountInString(l.Text))
	}
}

// Notice centres lines on the canvas, two rows apart, the first as a title.
func Notice(c *draw.Canvas, lines ...string) []Label {
	labels := make([]Label, 0, len(lines))
	top := c.TerminalHeight()/2 - len(lines) + 1
	for i, line := range lines {
		style := StylePlain
		if i == 0 {
			style = StyleTitle
		}
		labels = append(labels, Centred(c, top+2*i, line, style))
	}
	return clip(c, labels)
}
