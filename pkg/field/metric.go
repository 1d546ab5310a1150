package field

import "math"

// Chebyshev returns the L∞ distance max(|i-cx|, |j-cy|). For integer
// inputs the result is an exact integer, which the cube shell test
// relies on.
func Chebyshev(i, j, cx, cy float64) float64 {
	dx := math.Abs(i - cx)
	dy := math.Abs(j - cy)
	if dx > dy {
		return dx
	}
	return dy
}

// Euclidean returns the L2 distance sqrt((i-cx)² + (j-cy)²).
func Euclidean(i, j, cx, cy float64) float64 {
	return math.Hypot(i-cx, j-cy)
}

// MetricFor returns the default metric for a shape kind: Chebyshev for
// cubes, Euclidean for spheres.
func MetricFor(kind ShapeKind) MetricFunc {
	if kind == KindSphere {
		return Euclidean
	}
	return Chebyshev
}

// CubeSmoothMetric returns an alternate cube metric that rounds the
// shell corners. Off-corner it is exactly Chebyshev (linear distance
// from the nearest face); in the corner region, where both coordinate
// offsets exceed the shell radius, it uses the Euclidean distance to
// the corner instead. shellRadius is size-1 in grid units.
func CubeSmoothMetric(shellRadius float64) MetricFunc {
	r := shellRadius
	if r < 0 {
		r = 0
	}
	return func(i, j, cx, cy float64) float64 {
		dx := math.Abs(i-cx) - r
		dy := math.Abs(j-cy) - r
		if dx > 0 && dy > 0 {
			return r + math.Hypot(dx, dy)
		}
		if dx > dy {
			return r + dx
		}
		return r + dy
	}
}
