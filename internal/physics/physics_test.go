package physics

import (
	"math"
	"math/rand"
	"testing"
)

const epsilon = 1e-9

func TestCirclesOverlapIdenticalCenters(t *testing.T) {
	for _, r := range []float64{0.001, 1, 20, 1e6} {
		if !CirclesOverlap(5, -3, r, 5, -3, r) {
			t.Errorf("identical centers with r=%v should collide", r)
		}
	}
}

func TestCirclesOverlapBoundary(t *testing.T) {
	tests := []struct {
		name string
		dist float64
		want bool
	}{
		{"inside", 29.9, true},
		{"exactly touching", 30, true},
		{"just apart", 30.0001, false},
		{"far", 500, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Radii 20 and 10 along the X axis so the boundary is exact in floating point.
			if got := CirclesOverlap(0, 0, 20, tc.dist, 0, 10); got != tc.want {
				t.Errorf("CirclesOverlap at distance %v = %v, want %v", tc.dist, got, tc.want)
			}
		})
	}
}

func TestDistance(t *testing.T) {
	if d := Distance(0, 0, 3, 4); math.Abs(d-5) > epsilon {
		t.Errorf("Distance = %v, want 5", d)
	}
	if d := DistanceSquared(1, 1, 4, 5); d != 25 {
		t.Errorf("DistanceSquared = %v, want 25", d)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 30}

	points := []struct {
		x, y float64
		want bool
	}{
		{10, 20, true},
		{110, 50, true},
		{60, 35, true},
		{9.9, 35, false},
		{60, 50.1, false},
	}
	for _, p := range points {
		if got := r.Contains(p.x, p.y); got != p.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", p.x, p.y, got, p.want)
		}
	}

	cx, cy := r.Center()
	if cx != 60 || cy != 35 {
		t.Errorf("Center = (%v, %v), want (60, 35)", cx, cy)
	}
}

func TestHeading(t *testing.T) {
	tests := []struct {
		deg    float64
		wx, wy float64
	}{
		{0, 1, 0},
		{90, 0, 1},
		{180, -1, 0},
		{-90, 0, -1},
		{450, 0, 1},
	}
	for _, tc := range tests {
		x, y := Heading(tc.deg)
		if math.Abs(x-tc.wx) > epsilon || math.Abs(y-tc.wy) > epsilon {
			t.Errorf("Heading(%v) = (%v, %v), want (%v, %v)", tc.deg, x, y, tc.wx, tc.wy)
		}
	}
}

func TestThrustAccumulates(t *testing.T) {
	vx, vy := 0.0, 0.0
	for i := 0; i < 10; i++ {
		vx, vy = Thrust(vx, vy, 0.5, 0)
	}
	if math.Abs(vx-5) > epsilon || math.Abs(vy) > epsilon {
		t.Errorf("10 thrusts of 0.5 along +X = (%v, %v), want (5, 0)", vx, vy)
	}
}

func TestCapSpeedProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, policy := range []SpeedCap{SpeedCapLinear, SpeedCapSquared} {
		const maxSpeed = 2.0
		for i := 0; i < 5000; i++ {
			vx := (rng.Float64() - 0.5) * 10
			vy := (rng.Float64() - 0.5) * 10

			lenSq := vx*vx + vy*vy
			comparator := math.Sqrt(lenSq)
			if policy == SpeedCapSquared {
				comparator = lenSq
			}

			gx, gy, capped := CapSpeed(vx, vy, maxSpeed, policy)
			if comparator > maxSpeed {
				if !capped {
					t.Fatalf("%v: (%v, %v) exceeded the limit but was not capped", policy, vx, vy)
				}
				if m := math.Hypot(gx, gy); math.Abs(m-maxSpeed) > 1e-9 {
					t.Fatalf("%v: capped magnitude = %v, want %v", policy, m, maxSpeed)
				}
				// Direction must be preserved.
				if math.Abs(gx*vy-gy*vx) > 1e-9 || gx*vx+gy*vy <= 0 {
					t.Fatalf("%v: capping changed direction: (%v, %v) -> (%v, %v)", policy, vx, vy, gx, gy)
				}
			} else if capped || gx != vx || gy != vy {
				t.Fatalf("%v: (%v, %v) under the limit was modified to (%v, %v)", policy, vx, vy, gx, gy)
			}
		}
	}
}

func TestCapSpeedSquaredTriggersEarlier(t *testing.T) {
	// |v| = 1.5 is under a true max of 2 but |v|² = 2.25 is over it.
	vx, vy, capped := CapSpeed(1.5, 0, 2, SpeedCapSquared)
	if !capped || vx != 2 || vy != 0 {
		t.Errorf("squared policy: got (%v, %v, %v), want (2, 0, true)", vx, vy, capped)
	}

	vx, vy, capped = CapSpeed(1.5, 0, 2, SpeedCapLinear)
	if capped || vx != 1.5 || vy != 0 {
		t.Errorf("linear policy: got (%v, %v, %v), want (1.5, 0, false)", vx, vy, capped)
	}
}

func TestCapSpeedZeroVelocity(t *testing.T) {
	vx, vy, capped := CapSpeed(0, 0, 0, SpeedCapLinear)
	if capped || vx != 0 || vy != 0 {
		t.Errorf("zero velocity must stay untouched, got (%v, %v, %v)", vx, vy, capped)
	}
}

func TestParseSpeedCap(t *testing.T) {
	for _, c := range []SpeedCap{SpeedCapLinear, SpeedCapSquared} {
		got, err := ParseSpeedCap(c.String())
		if err != nil || got != c {
			t.Errorf("ParseSpeedCap(%q) = %v, %v", c.String(), got, err)
		}
	}
	if _, err := ParseSpeedCap("cubic"); err == nil {
		t.Error("expected error for unknown policy")
	}
}
