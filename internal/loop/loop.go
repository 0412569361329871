// Package loop runs one game session on an ANSI terminal: read input, update
// the game, draw the frame, at a fixed frame rate.
package loop

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/avoider/internal/draw"
	"github.com/tomz197/avoider/internal/game"
	"github.com/tomz197/avoider/internal/input"
	"github.com/tomz197/avoider/internal/object"
	"github.com/tomz197/avoider/internal/render"
)

// ErrIdle is returned when a session is closed for inactivity.
var ErrIdle = errors.New("disconnected after inactivity")

// EventSink receives every game event, e.g. to play sounds.
type EventSink interface {
	HandleEvent(e game.Event)
}

// Options configures a session. The zero value runs the full game on
// os.Stdout's terminal size with no logging.
type Options struct {
	Config *game.Config // nil: game.DefaultConfig()
	Rand   object.Rand  // nil: time-seeded

	TermSizeFunc draw.TermSizeFunc // nil: draw.DefaultTermSizeFunc
	Logger       *log.Logger       // nil: discard
	Sink         EventSink
	FrameTime    time.Duration // 0: TargetFrameTime

	// Inactivity limits. Zero disables the warning or the disconnect.
	InactivityWarn       time.Duration
	InactivityDisconnect time.Duration

	// Hub, when set, registers the session so a server shutdown reaches it.
	Hub             *Hub
	User            string
	ShutdownDisplay time.Duration // 0: ShutdownDisplay
}

func (o *Options) setDefaults() {
	if o.Config == nil {
		cfg := game.DefaultConfig()
		o.Config = &cfg
	}
	if o.TermSizeFunc == nil {
		o.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.FrameTime <= 0 {
		o.FrameTime = TargetFrameTime
	}
	if o.ShutdownDisplay <= 0 {
		o.ShutdownDisplay = ShutdownDisplay
	}
}

// Run plays one game on r/w until the player quits, ctx is cancelled, the
// input ends or the session idles out. It blocks.
func Run(ctx context.Context, r io.Reader, w io.Writer, opts Options) error {
	opts.setDefaults()

	g, err := game.New(*opts.Config, opts.Rand)
	if err != nil {
		return fmt.Errorf("new game: %w", err)
	}

	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}

	s := newSession(g, w, input.StartStream(br), opts)
	if opts.Hub != nil {
		s.handle = opts.Hub.Register(opts.User)
		defer opts.Hub.Unregister(s.handle)
	}

	if err := draw.EnterScreen(w); err != nil {
		return fmt.Errorf("enter screen: %w", err)
	}
	if err := input.EnableMouse(w); err != nil {
		return fmt.Errorf("enable mouse: %w", err)
	}
	defer func() {
		_ = input.DisableMouse(w)
		_ = draw.LeaveScreen(w)
	}()

	return s.run(ctx)
}

// session is the per-connection state around one Game.
type session struct {
	game   *game.Game
	opts   Options
	log    *log.Logger
	canvas *draw.Canvas
	cw     *draw.ChunkWriter
	stream *input.Stream
	handle *Handle

	lastInput time.Time
	inactive  bool

	shuttingDown  bool
	shutdownUntil time.Time

	// What the previous frame showed, to clear the terminal on transitions.
	prevPhase  game.Phase
	prevNotice bool
}

func newSession(g *game.Game, w io.Writer, stream *input.Stream, opts Options) *session {
	termWidth, termHeight, _ := opts.TermSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := ClampTermSize(termWidth, termHeight)

	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, game.ViewWidth, game.ViewHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	return &session{
		game:      g,
		opts:      opts,
		log:       opts.Logger,
		canvas:    canvas,
		cw:        draw.NewChunkWriter(w, offsetCol, offsetRow),
		stream:    stream,
		lastInput: time.Now(),
		prevPhase: g.Phase(),
	}
}

func (s *session) run(ctx context.Context) error {
	lastTime := time.Now()

	for {
		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		in := s.processInput(frameStart)
		s.checkShutdown(frameStart)
		s.updateScreen()

		s.game.Update(in, delta)
		s.dispatchEvents()

		if err := s.drawFrame(frameStart); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}

		switch {
		case !s.game.Running():
			s.log.Info("player quit", "user", s.opts.User, "phase", s.game.Phase())
			return nil
		case in.Closed:
			s.log.Info("input closed", "user", s.opts.User)
			return nil
		case s.idleFor(frameStart, s.opts.InactivityDisconnect):
			s.log.Info("disconnecting idle session", "user", s.opts.User)
			return ErrIdle
		case s.shuttingDown && !frameStart.Before(s.shutdownUntil):
			return nil
		}

		elapsed := time.Since(frameStart)
		if elapsed < s.opts.FrameTime {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(s.opts.FrameTime - elapsed):
			}
		} else if ctx.Err() != nil {
			return nil
		}
	}
}

// processInput reads this frame's input, tracks activity and maps the mouse
// onto the view.
func (s *session) processInput(now time.Time) input.Input {
	in := input.ReadInput(s.stream)

	if active(in) {
		s.lastInput = now
	}
	s.inactive = s.idleFor(now, s.opts.InactivityWarn)

	s.applyPointer(&in)
	return in
}

// applyPointer converts the terminal mouse cell to view coordinates.
// A pointer outside the canvas counts as no pointer.
func (s *session) applyPointer(in *input.Input) {
	if !in.Mouse.Valid {
		return
	}
	x, y, ok := s.canvas.ScreenToLogical(in.Mouse.Col, in.Mouse.Row)
	if !ok {
		in.Mouse.Valid = false
		return
	}
	in.PointerX, in.PointerY = x, y
	in.PointerDown = in.Mouse.Down
}

func active(in input.Input) bool {
	return in.Left || in.Right || in.Up || in.Down || in.Space || in.Enter || in.Escape || in.Quit || in.Mouse.Down
}

func (s *session) idleFor(now time.Time, limit time.Duration) bool {
	return limit > 0 && now.Sub(s.lastInput) > limit
}

func (s *session) checkShutdown(now time.Time) {
	if s.handle == nil || s.shuttingDown {
		return
	}
	select {
	case <-s.handle.Shutdown():
		s.shuttingDown = true
		s.shutdownUntil = now.Add(s.opts.ShutdownDisplay)
		s.log.Info("server shutdown notice", "user", s.opts.User)
	default:
	}
}

// dispatchEvents logs the frame's events and forwards them to the sink.
func (s *session) dispatchEvents() {
	for _, e := range s.game.Events() {
		switch e.Kind {
		case game.EventPhaseChanged:
			s.log.Info("phase changed", "user", s.opts.User, "from", e.From, "to", e.To, "frame", e.Frame)
		case game.EventCollision:
			s.log.Info("collision", "user", s.opts.User, "x", e.X, "y", e.Y, "frame", e.Frame)
		default:
			s.log.Debug(e.Kind.String(), "user", s.opts.User, "x", e.X, "y", e.Y, "frame", e.Frame)
		}
		if s.opts.Sink != nil {
			s.opts.Sink.HandleEvent(e)
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (s *session) updateScreen() {
	termWidth, termHeight, err := s.opts.TermSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := ClampTermSize(termWidth, termHeight)

	c := s.canvas
	if renderWidth != c.TerminalWidth() || renderHeight != c.TerminalHeight() ||
		offsetCol != c.OffsetCol() || offsetRow != c.OffsetRow() {
		s.cw.ClearScreen()
		c.ForceRedraw()
	}

	c.Resize(renderWidth, renderHeight)
	c.SetOffset(offsetCol, offsetRow)
	s.cw.SetOffset(offsetCol, offsetRow)
}

// ClampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func ClampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, MaxTermWidth)
	renderHeight = min(termHeight, MaxTermHeight)
	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = max((termHeight-renderHeight)/2, 0)
	return
}

func (s *session) drawFrame(now time.Time) error {
	notice := s.notice(now)

	// On phase or notice transitions, do a full terminal clear
	// so text from the previous screen doesn't persist.
	if s.game.Phase() != s.prevPhase || (len(notice) > 0) != s.prevNotice {
		s.cw.ClearScreen()
		s.canvas.ForceRedraw()
		s.prevPhase = s.game.Phase()
		s.prevNotice = len(notice) > 0
	}

	if err := render.Frame(s.cw, s.canvas, s.game.Snapshot(), notice); err != nil {
		return err
	}
	return s.cw.Flush()
}

// notice returns the shutdown or inactivity screen, if one applies.
func (s *session) notice(now time.Time) []render.Label {
	switch {
	case s.shuttingDown:
		left := int(s.shutdownUntil.Sub(now).Seconds()) + 1
		return render.Notice(s.canvas,
			"SERVER SHUTTING DOWN",
			"The server is restarting for maintenance.",
			fmt.Sprintf("Disconnecting in %d seconds...", left),
			"Press Q to disconnect now",
		)
	case s.inactive:
		msg := "You have been inactive for too long."
		if limit := s.opts.InactivityDisconnect; limit > 0 {
			left := int((limit - now.Sub(s.lastInput)).Seconds())
			msg = fmt.Sprintf("You have been inactive for too long. Disconnecting in %d seconds.", max(left, 0))
		}
		return render.Notice(s.canvas, "INACTIVITY WARNING", msg, "Press any key to continue")
	}
	return nil
}
