package render

import (
	"bytes"
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/tomz197/avoider/internal/draw"
	"github.com/tomz197/avoider/internal/game"
	"github.com/tomz197/avoider/internal/object"
)

// newCanvas returns a canvas where one pixel is 10x10 logical units.
func newCanvas() *draw.Canvas {
	return draw.NewScaledCanvas(64, 24, game.ViewWidth, game.ViewHeight)
}

func playingSnapshot() game.Snapshot {
	return game.Snapshot{
		Phase:  game.PhasePlaying,
		Camera: object.Camera{X: 100, Y: 50},
		Player: game.PlayerView{
			X: 100, Y: 50,
			Rotation: object.PlayerStartRotation,
			Radius:   object.PlayerRadius,
			Sprite:   object.SpriteShip,
		},
	}
}

func countCells(c *draw.Canvas) int {
	n := 0
	c.EachCell(func(int, int, rune, draw.Ink, draw.Ink) { n++ })
	return n
}

func TestToView(t *testing.T) {
	x, y := ToView(object.Camera{X: 100, Y: 50}, 100, 50)
	if x != game.ViewWidth/2 || y != game.ViewHeight/2 {
		t.Errorf("camera position maps to (%v, %v), want the view centre", x, y)
	}
	x, y = ToView(object.Camera{X: 100, Y: 50}, 90, 70)
	if x != 310 || y != 260 {
		t.Errorf("got (%v, %v), want (310, 260)", x, y)
	}
}

func TestShipDrawnOnlyWhilePlaying(t *testing.T) {
	c := newCanvas()
	snap := playingSnapshot()

	World(c, snap)
	if got := c.Pixel(32, 24); got != draw.InkWhite {
		t.Errorf("ship centre pixel = %v, want white", got)
	}

	for _, phase := range []game.Phase{game.PhaseMainMenu, game.PhaseGameOver} {
		c.Clear()
		snap.Phase = phase
		World(c, snap)
		if n := countCells(c); n != 0 {
			t.Errorf("%v: %d cells drawn, want an empty field", phase, n)
		}
	}
}

func TestBoostFlame(t *testing.T) {
	c := newCanvas()
	snap := playingSnapshot()

	World(c, snap)
	if got := c.Pixel(32, 25); got != draw.InkNone {
		t.Errorf("pixel behind an idle ship = %v, want empty", got)
	}

	c.Clear()
	snap.Player.Boost = true
	snap.Player.Sprite = object.SpriteShipBoost
	World(c, snap)
	if got := c.Pixel(32, 25); got != draw.InkOrange {
		t.Errorf("pixel behind a boosting ship = %v, want orange", got)
	}
}

func TestObstacles(t *testing.T) {
	c := newCanvas()
	snap := playingSnapshot()
	snap.Phase = game.PhaseGameOver // hide the ship
	snap.Obstacles = []game.ObstacleView{{X: 10000, Y: 0, Radius: object.ObstacleRadius}}

	World(c, snap)
	if n := countCells(c); n != 0 {
		t.Errorf("off-view obstacle drew %d cells", n)
	}

	snap.Obstacles = []game.ObstacleView{{X: 100, Y: 50, Radius: object.ObstacleRadius}}
	World(c, snap)
	if got := c.Pixel(32, 24); got != draw.InkGray {
		t.Errorf("obstacle centre = %v, want gray", got)
	}
}

func TestParticles(t *testing.T) {
	c := newCanvas()
	snap := playingSnapshot()
	snap.Phase = game.PhaseGameOver
	snap.Particles = []object.Particle{{X: 100, Y: 50, Scale: 20, Color: object.ColorRed, Lifetime: 5}}

	World(c, snap)
	if got := c.Pixel(32, 24); got != draw.InkRed {
		t.Errorf("particle centre = %v, want red", got)
	}
}

func TestTinyParticleCoversItsPixel(t *testing.T) {
	c := newCanvas()
	snap := playingSnapshot()
	snap.Phase = game.PhaseGameOver
	snap.Particles = []object.Particle{{X: 103, Y: 53, Scale: 0.5, Color: object.ColorBlack, Lifetime: 5}}

	World(c, snap)
	if got := c.Pixel(32, 24); got != draw.InkDark {
		t.Errorf("sub-pixel particle = %v, want dark", got)
	}
}

func TestParticleInk(t *testing.T) {
	tests := []struct {
		col  object.Color
		want draw.Ink
	}{
		{object.ColorOrange, draw.InkOrange},
		{object.ColorBrown, draw.InkBrown},
		{object.ColorBlack, draw.InkDark},
		{object.ColorRed, draw.InkRed},
		{object.ColorYellow, draw.InkYellow},
		{object.Color(99), draw.InkWhite},
	}
	for _, tc := range tests {
		if got := ParticleInk(tc.col); got != tc.want {
			t.Errorf("ParticleInk(%v) = %v, want %v", tc.col, got, tc.want)
		}
	}
}

func findLabel(labels []Label, substr string) (Label, bool) {
	for _, l := range labels {
		if strings.Contains(l.Text, substr) {
			return l, true
		}
	}
	return Label{}, false
}

func TestOverlayMainMenu(t *testing.T) {
	c := newCanvas()
	buttons := game.MenuButtons(game.PhaseMainMenu)
	px, py := buttons[1].Rect.Center()
	snap := game.Snapshot{
		Phase:      game.PhaseMainMenu,
		Buttons:    buttons,
		PointerX:   px,
		PointerY:   py,
		HasPointer: true,
	}

	labels := Overlay(c, snap)

	title, ok := findLabel(labels, "A V O I D E R")
	if !ok || title.Style != StyleTitle {
		t.Errorf("title label = %+v, found %v", title, ok)
	}
	play, ok := findLabel(labels, "[ PLAY ]")
	if !ok || play.Style != StyleButton {
		t.Errorf("play label = %+v, found %v", play, ok)
	}
	quit, ok := findLabel(labels, "[ QUIT ]")
	if !ok || quit.Style != StyleHover {
		t.Errorf("hovered quit label = %+v, found %v", quit, ok)
	}
	if quit.Row <= play.Row {
		t.Errorf("quit row %d should be below play row %d", quit.Row, play.Row)
	}
	// Play is centred on y=240: row 13 of a 24-row canvas.
	if play.Row != 13 {
		t.Errorf("play row = %d, want 13", play.Row)
	}
}

func TestOverlayPlayingHUD(t *testing.T) {
	c := newCanvas()
	snap := playingSnapshot()
	snap.Timer = 3.3
	snap.Obstacles = make([]game.ObstacleView, 7)

	labels := Overlay(c, snap)

	timer, ok := findLabel(labels, "Time: 3.3")
	if !ok || timer.Col != 2 || timer.Row != 1 {
		t.Errorf("timer label = %+v, found %v", timer, ok)
	}
	count, ok := findLabel(labels, "Obstacles: 7")
	if !ok {
		t.Fatal("obstacle count missing")
	}
	if end := count.Col + utf8.RuneCountInString(count.Text) - 1; end > c.TerminalWidth() {
		t.Errorf("count label ends at column %d past the canvas", end)
	}
}

func TestOverlayGameOver(t *testing.T) {
	c := newCanvas()
	snap := game.Snapshot{
		Phase:   game.PhaseGameOver,
		Timer:   12.5,
		Buttons: game.MenuButtons(game.PhaseGameOver),
	}

	labels := Overlay(c, snap)

	if _, ok := findLabel(labels, "You survived 12.5 seconds"); !ok {
		t.Error("survival time missing")
	}
	if _, ok := findLabel(labels, "[ PLAY AGAIN ]"); !ok {
		t.Error("play again button missing")
	}
}

func TestOverlayClipsToCanvas(t *testing.T) {
	c := draw.NewScaledCanvas(10, 3, game.ViewWidth, game.ViewHeight)
	snap := game.Snapshot{
		Phase:   game.PhaseGameOver,
		Timer:   1,
		Buttons: game.MenuButtons(game.PhaseGameOver),
	}

	for _, l := range Overlay(c, snap) {
		if l.Row < 1 || l.Row > 3 || l.Col < 1 {
			t.Errorf("label outside the canvas: %+v", l)
		}
		if end := l.Col + utf8.RuneCountInString(l.Text) - 1; end > 10 {
			t.Errorf("label %q overruns to column %d", l.Text, end)
		}
	}
}

func TestWriteLabels(t *testing.T) {
	var buf bytes.Buffer
	c := newCanvas()
	cw := draw.NewChunkWriter(&buf, 2, 1)

	WriteLabels(cw, c, []Label{
		{Col: 5, Row: 3, Text: "plain"},
		{Col: 5, Row: 4, Text: "hover", Style: StyleHover},
	})
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "\033[4;7Hplain") {
		t.Errorf("plain label not positioned with the offset: %q", out)
	}
	if !strings.Contains(out, draw.ColorReverse+"hover"+draw.ColorReset) {
		t.Errorf("hovered label not reversed: %q", out)
	}
}

func TestFrameRepaintsUnderLabels(t *testing.T) {
	var buf bytes.Buffer
	c := newCanvas()
	cw := draw.NewChunkWriter(&buf, 0, 0)
	snap := game.Snapshot{Phase: game.PhaseMainMenu, Buttons: game.MenuButtons(game.PhaseMainMenu)}

	if err := Frame(cw, c, snap, nil); err != nil {
		t.Fatal(err)
	}
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	buf.Reset()

	// Same frame again, but now in play: the old menu text must be painted over.
	snap = playingSnapshot()
	if err := Frame(cw, c, snap, nil); err != nil {
		t.Fatal(err)
	}
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	_, row := c.LogicalToTerminal(0, titleY)
	if !strings.Contains(buf.String(), "\033["+strconv.Itoa(row)+";") {
		t.Errorf("title row %d not repainted", row)
	}
}

func TestNotice(t *testing.T) {
	c := newCanvas()
	labels := Notice(c, "TITLE", "first", "second")

	if len(labels) != 3 {
		t.Fatalf("got %d labels, want 3", len(labels))
	}
	if labels[0].Style != StyleTitle || labels[1].Style != StylePlain {
		t.Errorf("styles = %v, %v", labels[0].Style, labels[1].Style)
	}
	if labels[1].Row-labels[0].Row != 2 || labels[2].Row-labels[1].Row != 2 {
		t.Errorf("rows = %d, %d, %d; want two apart", labels[0].Row, labels[1].Row, labels[2].Row)
	}
	if mid := labels[1].Row; mid != c.TerminalHeight()/2 {
		t.Errorf("middle line on row %d, want %d", mid, c.TerminalHeight()/2)
	}
}
