package field

import (
	"math"
	"testing"
)

func TestFullDisplacementInsideShell(t *testing.T) {
	c := cubeConfig()
	for j := 6; j <= 14; j++ {
		for i := 6; i <= 14; i++ {
			// Every point with distance <= size-1 gets the full pull.
			if got := Displacement(float64(i), float64(j), c); got != 200 {
				t.Fatalf("Displacement(%d,%d) = %v, want 200", i, j, got)
			}
		}
	}
}

func TestFalloffBoundaryValues(t *testing.T) {
	c := cubeConfig()
	// On the shell: full pull.
	if got := Displacement(14, 10, c); got != 200 {
		t.Errorf("at shell: %v, want 200", got)
	}
	// At the falloff boundary (distance 16 = 4 + 12): exactly zero.
	if got := Displacement(26, 10, c); got != 0 {
		t.Errorf("at falloff boundary: %v, want 0", got)
	}
	// Beyond the falloff extent: exactly zero.
	if got := Displacement(30, 10, c); got != 0 {
		t.Errorf("past falloff: %v, want 0", got)
	}
	// Monotonically non-increasing across the falloff zone.
	prev := math.Inf(1)
	for i := 14; i <= 27; i++ {
		d := Displacement(float64(i), 10, c)
		if d > prev {
			t.Fatalf("displacement rose from %v to %v at i=%d", prev, d, i)
		}
		prev = d
	}
}

func TestFalloffCosineCurve(t *testing.T) {
	c := cubeConfig()
	// Distance 6, t = 2/12: (cos(t·π)+1)/2 ≈ 0.93301.
	got := Displacement(16, 10, c)
	want := 200 * (math.Cos(math.Pi/6) + 1) / 2
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Displacement(16,10) = %v, want %v", got, want)
	}
	if math.Abs(got-186.6) > 0.1 {
		t.Errorf("Displacement(16,10) = %v, want ≈186.6", got)
	}
}

func TestZeroFalloffSharpCutoff(t *testing.T) {
	c := cubeConfig()
	c.Falloff = 0
	for i := 0; i <= 40; i++ {
		got := Displacement(float64(i), 10, c)
		d := math.Abs(float64(i) - 10)
		if d <= 4 {
			if got != 200 {
				t.Fatalf("inside at i=%d: %v, want 200", i, got)
			}
		} else if got != 0 {
			// No intermediate values may ever occur.
			t.Fatalf("outside at i=%d: %v, want 0", i, got)
		}
	}
}

func TestNegativePull(t *testing.T) {
	c := cubeConfig()
	c.Pull = -200
	if got := Displacement(10, 10, c); got != -200 {
		t.Errorf("center: %v, want -200", got)
	}
	got := Displacement(16, 10, c)
	if got >= 0 || got <= -200 {
		t.Errorf("falloff zone: %v, want in (-200, 0)", got)
	}
	if d := Displacement(30, 10, c); d != 0 {
		t.Errorf("past falloff: %v, want 0", d)
	}
}

func TestExponentialFalloffStrategy(t *testing.T) {
	c := cubeConfig()
	c.Ease = FalloffExponential(2)

	// Shared endpoints with the cosine curve: full at the shell,
	// zero at the falloff boundary.
	if got := Displacement(14, 10, c); got != 200 {
		t.Errorf("at shell: %v, want 200", got)
	}
	if got := Displacement(26, 10, c); got != 0 {
		t.Errorf("at falloff boundary: %v, want 0", got)
	}

	// Midway (t = 0.5, stiffness 2): 1 - 0.25 = 0.75.
	got := Displacement(20, 10, c)
	if math.Abs(got-150) > 1e-9 {
		t.Errorf("midway: %v, want 150", got)
	}
}

func TestDisplacementWithSmoothCornerMetric(t *testing.T) {
	c := cubeConfig()
	c.Metric = CubeSmoothMetric(c.Size - 1)
	// Off-corner behavior is unchanged.
	if got := Displacement(14, 10, c); got != 200 {
		t.Errorf("at face shell: %v, want 200", got)
	}
	// Past the corner the rounded distance is larger, so the falloff
	// value is smaller than under plain Chebyshev.
	plain := Displacement(15, 15, cubeConfig())
	smooth := Displacement(15, 15, c)
	if smooth >= plain {
		t.Errorf("smooth corner %v should fall below plain %v", smooth, plain)
	}
}
