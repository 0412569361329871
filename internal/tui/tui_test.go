package tui

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/avoider/internal/game"
)

func newTestFrontend(t *testing.T, w, h int) (*frontend, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(sim.Fini)
	sim.SetSize(w, h)

	g := game.MustNew(game.DefaultConfig(), rand.New(rand.NewSource(1)))
	return newFrontend(g, sim, Options{FrameTime: time.Millisecond}), sim
}

func TestRunQuitsOnQ(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	done := make(chan error, 1)
	go func() {
		done <- Run(context.Background(), sim, Options{Rand: rand.New(rand.NewSource(1)), FrameTime: time.Millisecond})
	}()

	// Keep pressing until the loop is up and sees it.
	tick := time.NewTicker(10 * time.Millisecond)
	defer tick.Stop()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("Run: %v", err)
			}
			return
		case <-tick.C:
			sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
		case <-timeout:
			t.Fatal("Run did not return after q")
		}
	}
}

func TestKeysAreHeldBriefly(t *testing.T) {
	f, _ := newTestFrontend(t, 80, 24)
	now := time.Now()

	f.handleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), now)
	f.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), now)

	in := f.input(now.Add(10 * time.Millisecond))
	if !in.Left || !in.Up || in.Right {
		t.Errorf("fresh presses: %+v", in)
	}
	if in := f.input(now.Add(keyHold + time.Millisecond)); in.Left || in.Up {
		t.Errorf("keys still held after the hold window: %+v", in)
	}
}

func TestQuitKeys(t *testing.T) {
	for _, ev := range []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl),
	} {
		f, _ := newTestFrontend(t, 80, 24)
		now := time.Now()
		f.handleEvent(ev, now)
		if !f.input(now).Quit {
			t.Errorf("%v does not quit", ev.Name())
		}
	}
}

func TestMouseClickLatches(t *testing.T) {
	f, _ := newTestFrontend(t, 80, 24)
	now := time.Now()

	// Press and release between two frames.
	f.handleEvent(tcell.NewEventMouse(40, 12, tcell.Button1, tcell.ModNone), now)
	f.handleEvent(tcell.NewEventMouse(40, 12, tcell.ButtonNone, tcell.ModNone), now)

	in := f.input(now)
	if !in.PointerDown || !in.Mouse.Valid {
		t.Fatalf("click lost: %+v", in)
	}
	// Cell (41, 13) is centred on (324, 250) in an 80x24 canvas.
	if in.PointerX != 324 || in.PointerY != 250 {
		t.Errorf("pointer = (%v, %v), want (324, 250)", in.PointerX, in.PointerY)
	}
	if in := f.input(now); in.PointerDown {
		t.Error("click reported twice")
	}
}

func TestDrawMenu(t *testing.T) {
	f, sim := newTestFrontend(t, 80, 24)

	f.draw(f.game.Snapshot())

	// "A V O I D E R" is centred on canvas row 8.
	r, _, style, _ := sim.GetContent(34, 7)
	if r != 'A' {
		t.Errorf("title cell = %q, want 'A'", r)
	}
	if style != styleTitle {
		t.Errorf("title style = %v, want the title style", style)
	}
}

func TestDrawBorderOnLargeScreen(t *testing.T) {
	f, sim := newTestFrontend(t, 200, 80) // canvas 160x60 at offset (20, 10)

	f.draw(f.game.Snapshot())

	if r, _, _, _ := sim.GetContent(19, 9); r != tcell.RuneULCorner {
		t.Errorf("top-left corner = %q", r)
	}
	if r, _, _, _ := sim.GetContent(180, 70); r != tcell.RuneLRCorner {
		t.Errorf("bottom-right corner = %q", r)
	}
}
