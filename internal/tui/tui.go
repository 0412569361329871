// Package tui runs the game on a tcell screen. It shares the game core and
// the canvas renderer with the ANSI loop; only input decoding and cell output
// go through tcell.
package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/avoider/internal/draw"
	"github.com/tomz197/avoider/internal/game"
	"github.com/tomz197/avoider/internal/input"
	"github.com/tomz197/avoider/internal/loop"
	"github.com/tomz197/avoider/internal/object"
	"github.com/tomz197/avoider/internal/render"
)

// keyHold is how long a key counts as held after its last press event.
// Terminals report presses and auto-repeats, never releases.
const keyHold = 60 * time.Millisecond

// Options configures the tcell frontend.
type Options struct {
	Config    *game.Config // nil: game.DefaultConfig()
	Rand      object.Rand
	Logger    *log.Logger // nil: discard
	Sink      loop.EventSink
	FrameTime time.Duration // 0: loop.TargetFrameTime
}

// Run initialises screen, plays one game on it and finalises it on return.
func Run(ctx context.Context, screen tcell.Screen, opts Options) error {
	if opts.Config == nil {
		cfg := game.DefaultConfig()
		opts.Config = &cfg
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.FrameTime <= 0 {
		opts.FrameTime = loop.TargetFrameTime
	}

	g, err := game.New(*opts.Config, opts.Rand)
	if err != nil {
		return fmt.Errorf("new game: %w", err)
	}

	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()
	screen.Clear()

	f := newFrontend(g, screen, opts)

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	return f.run(ctx, events)
}

// frontend is the tcell counterpart of the loop's session.
type frontend struct {
	game   *game.Game
	screen tcell.Screen
	opts   Options
	canvas *draw.Canvas

	keys  map[tcell.Key]time.Time
	runes map[rune]time.Time
	mouse input.Mouse
	press bool // a button went down since the last frame
}

func newFrontend(g *game.Game, screen tcell.Screen, opts Options) *frontend {
	f := &frontend{
		game:   g,
		screen: screen,
		opts:   opts,
		canvas: draw.NewScaledCanvas(1, 1, game.ViewWidth, game.ViewHeight),
		keys:   make(map[tcell.Key]time.Time),
		runes:  make(map[rune]time.Time),
	}
	f.resize()
	return f
}

func (f *frontend) run(ctx context.Context, events <-chan tcell.Event) error {
	lastTime := time.Now()
	ticker := time.NewTicker(f.opts.FrameTime)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			f.handleEvent(ev, time.Now())
			continue
		case <-ticker.C:
		}

		now := time.Now()
		f.game.Update(f.input(now), now.Sub(lastTime))
		lastTime = now

		for _, e := range f.game.Events() {
			f.opts.Logger.Debug(e.Kind.String(), "frame", e.Frame, "to", e.To)
			if f.opts.Sink != nil {
				f.opts.Sink.HandleEvent(e)
			}
		}

		f.draw(f.game.Snapshot())

		if !f.game.Running() {
			return nil
		}
	}
}

// handleEvent records key presses and mouse state until the next frame.
func (f *frontend) handleEvent(ev tcell.Event, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyRune {
			f.runes[ev.Rune()] = now
		} else {
			f.keys[ev.Key()] = now
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		down := ev.Buttons()&tcell.Button1 != 0
		f.mouse = input.Mouse{Col: x + 1, Row: y + 1, Down: down, Valid: true}
		f.press = f.press || down
	case *tcell.EventResize:
		f.resize()
		f.screen.Sync()
	}
}

// input builds the frame's Input from the recorded events.
func (f *frontend) input(now time.Time) input.Input {
	key := func(k tcell.Key) bool {
		t, ok := f.keys[k]
		return ok && now.Sub(t) < keyHold
	}
	r := func(runes ...rune) bool {
		for _, c := range runes {
			if t, ok := f.runes[c]; ok && now.Sub(t) < keyHold {
				return true
			}
		}
		return false
	}

	in := input.Input{
		Quit:   r('q', 'Q') || key(tcell.KeyCtrlC),
		Left:   r('a', 'A') || key(tcell.KeyLeft),
		Right:  r('d', 'D') || key(tcell.KeyRight),
		Up:     r('w', 'W') || key(tcell.KeyUp),
		Down:   r('s', 'S') || key(tcell.KeyDown),
		Space:  r(' '),
		Enter:  key(tcell.KeyEnter),
		Escape: key(tcell.KeyEscape),
		Mouse:  f.mouse,
	}
	// A click shorter than a frame still counts as a press.
	in.Mouse.Down = in.Mouse.Down || f.press
	f.press = false

	if in.Mouse.Valid {
		x, y, ok := f.canvas.ScreenToLogical(in.Mouse.Col, in.Mouse.Row)
		if ok {
			in.PointerX, in.PointerY, in.PointerDown = x, y, in.Mouse.Down
		} else {
			in.Mouse.Valid = false
		}
	}
	return in
}

func (f *frontend) resize() {
	w, h := f.screen.Size()
	rw, rh, offCol, offRow := loop.ClampTermSize(w, h)
	f.canvas.Resize(rw, rh)
	f.canvas.SetOffset(offCol, offRow)
}

// Overlay styles.
var (
	styleTitle = tcell.StyleDefault.Bold(true).Foreground(tcell.ColorAqua)
	styleHover = tcell.StyleDefault.Reverse(true)
)

// draw paints the snapshot: canvas cells, the border, then overlay text.
func (f *frontend) draw(snap game.Snapshot) {
	s, c := f.screen, f.canvas
	offCol, offRow := c.OffsetCol(), c.OffsetRow()

	s.Clear()
	c.Clear()
	render.World(c, snap)

	c.EachCell(func(col, row int, r rune, fg, bg draw.Ink) {
		style := tcell.StyleDefault.Foreground(tcell.PaletteColor(fg.Palette256()))
		if bg != draw.InkNone {
			style = style.Background(tcell.PaletteColor(bg.Palette256()))
		}
		s.SetContent(col+offCol, row+offRow, r, nil, style)
	})
	f.drawBorder()

	for _, l := range render.Overlay(c, snap) {
		style := tcell.StyleDefault
		switch l.Style {
		case render.StyleTitle:
			style = styleTitle
		case render.StyleHover:
			style = styleHover
		}
		x := l.Col - 1 + offCol
		for _, r := range l.Text {
			s.SetContent(x, l.Row-1+offRow, r, nil, style)
			x++
		}
	}

	s.Show()
}

// drawBorder frames the canvas when the screen is larger than it.
func (f *frontend) drawBorder() {
	c := f.canvas
	left, top := c.OffsetCol()-1, c.OffsetRow()-1
	right, bottom := c.OffsetCol()+c.TerminalWidth(), c.OffsetRow()+c.TerminalHeight()
	if left < 0 || top < 0 {
		return
	}

	for x := left + 1; x < right; x++ {
		f.screen.SetContent(x, top, tcell.RuneHLine, nil, tcell.StyleDefault)
		f.screen.SetContent(x, bottom, tcell.RuneHLine, nil, tcell.StyleDefault)
	}
	for y := top + 1; y < bottom; y++ {
		f.screen.SetContent(left, y, tcell.RuneVLine, nil, tcell.StyleDefault)
		f.screen.SetContent(right, y, tcell.RuneVLine, nil, tcell.StyleDefault)
	}
	f.screen.SetContent(left, top, tcell.RuneULCorner, nil, tcell.StyleDefault)
	f.screen.SetContent(right, top, tcell.RuneURCorner, nil, tcell.StyleDefault)
	f.screen.SetContent(left, bottom, tcell.RuneLLCorner, nil, tcell.StyleDefault)
	f.screen.SetContent(right, bottom, tcell.RuneLRCorner, nil, tcell.StyleDefault)
}
