package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
const keyHoldDuration = 30 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Quit   bool
	Left   bool
	Right  bool
	Up     bool // Thrust
	Down   bool
	Space  bool
	Enter  bool
	Escape bool

	// Mouse is the raw terminal mouse state, in 1-based cells.
	Mouse Mouse

	// Pointer in view coordinates. Filled by the frontend from Mouse.
	PointerX    float64
	PointerY    float64
	PointerDown bool

	// Closed is set once the underlying reader has ended.
	Closed bool
}

// Play reports whether a play accelerator (Space or Enter) is held.
func (in Input) Play() bool {
	return in.Space || in.Enter
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit   time.Time
	left   time.Time
	right  time.Time
	up     time.Time
	down   time.Time
	space  time.Time
	enter  time.Time
	escape time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	// Hold is how long a key counts as held after its last byte arrived.
	Hold time.Duration

	ch      chan byte
	state   keyState
	mouse   Mouse
	pending []byte // incomplete escape sequence carried to the next read
	closed  bool
}

func newStream() *Stream {
	return &Stream{
		Hold: keyHoldDuration,
		ch:   make(chan byte, 128),
	}
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and mouse reports, and keeps key
// state between calls so simultaneous keys are seen together.
func ReadInput(s *Stream) Input {
	return readInputAt(s, time.Now())
}

func readInputAt(s *Stream, now time.Time) Input {
	buf := s.pending
	s.pending = nil

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	clicked := false
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != '\x1b' {
			applyByteToState(&s.state, b, now)
			continue
		}

		n, ev, complete := parseEscape(buf[i:])
		if !complete && !s.closed {
			// Wait for the rest of the sequence.
			s.pending = append([]byte(nil), buf[i:]...)
			break
		}
		switch ev.kind {
		case escArrowUp:
			s.state.up = now
		case escArrowDown:
			s.state.down = now
		case escArrowRight:
			s.state.right = now
		case escArrowLeft:
			s.state.left = now
		case escMouse:
			if ev.mouse.Down {
				clicked = true
			}
			s.mouse = ev.mouse
		case escUnknown:
			// Swallowed.
		default:
			s.state.escape = now
		}
		i += n - 1
	}

	held := func(t time.Time) bool {
		return now.Sub(t) < s.Hold
	}

	mouse := s.mouse
	// A press and its release can arrive in the same batch.
	mouse.Down = mouse.Down || clicked

	return Input{
		Quit:   held(s.state.quit) || s.closed,
		Left:   held(s.state.left),
		Right:  held(s.state.right),
		Up:     held(s.state.up),
		Down:   held(s.state.down),
		Space:  held(s.state.space),
		Enter:  held(s.state.enter),
		Escape: held(s.state.escape),
		Mouse:  mouse,
		Closed: s.closed,
	}
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', 0x03: // Ctrl+C arrives as a byte in raw mode
		state.quit = now
	case 'a', 'A', 'j', 'J':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'i', 'I':
		state.up = now
	case 's', 'S', 'k', 'K':
		state.down = now
	case ' ':
		state.space = now
	case '\n', '\r':
		state.enter = now
	}
}
