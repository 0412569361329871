package loop

import "time"

// Frame timing
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Max render resolution. Larger terminals get a centred canvas with a border.
// 160x60 cells is 160x120 half-block pixels, the 4:3 shape of the view.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 60
)

// Inactivity, for shared servers. Zero in Options disables the check.
const (
	DefaultInactivityWarn       = 90 * time.Second
	DefaultInactivityDisconnect = 120 * time.Second
)

// Shutdown
const (
	ShutdownDisplay = 10 * time.Second // Notice shown before a session is closed
)
