package physics

import (
	"fmt"
	"math"
)

// SpeedCap selects which quantity is compared against a body's max speed.
type SpeedCap int

const (
	// SpeedCapLinear compares |v| against the limit (a true max speed).
	SpeedCapLinear SpeedCap = iota
	// SpeedCapSquared compares |v|² against the limit. Kept for parity with the
	// first prototypes, where the ship snaps to max speed once |v| passes √max.
	SpeedCapSquared
)

func (c SpeedCap) String() string {
	switch c {
	case SpeedCapLinear:
		return "linear"
	case SpeedCapSquared:
		return "squared"
	default:
		return fmt.Sprintf("SpeedCap(%d)", int(c))
	}
}

// ParseSpeedCap converts a flag/env value into a SpeedCap.
func ParseSpeedCap(s string) (SpeedCap, error) {
	switch s {
	case "linear", "":
		return SpeedCapLinear, nil
	case "squared":
		return SpeedCapSquared, nil
	}
	return 0, fmt.Errorf("unknown speed cap %q", s)
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// Heading returns the unit vector for an angle in degrees (0 = +X, 90 = +Y).
func Heading(deg float64) (float64, float64) {
	rad := DegToRad(deg)
	return math.Cos(rad), math.Sin(rad)
}

// Thrust adds an impulse of the given magnitude along the heading to a velocity.
func Thrust(vx, vy, magnitude, headingDeg float64) (float64, float64) {
	hx, hy := Heading(headingDeg)
	return vx + hx*magnitude, vy + hy*magnitude
}

// CapSpeed renormalises the velocity to maxSpeed when the policy's comparator
// exceeds maxSpeed. The velocity is returned unchanged otherwise.
func CapSpeed(vx, vy, maxSpeed float64, policy SpeedCap) (float64, float64, bool) {
	lenSq := vx*vx + vy*vy

	var over bool
	switch policy {
	case SpeedCapSquared:
		over = lenSq > maxSpeed
	default:
		over = lenSq > maxSpeed*maxSpeed
	}
	if !over || lenSq == 0 {
		return vx, vy, false
	}

	scale := maxSpeed / math.Sqrt(lenSq)
	return vx * scale, vy * scale, true
}
