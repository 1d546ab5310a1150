package field

import "math"

// SphereShellTol is the tolerance band for the sphere shell test.
// Euclidean distance over a discrete grid rarely lands exactly on the
// radius; just over half a grid unit of slack yields a visually
// continuous ring.
const SphereShellTol = 0.7

// VisibleEpsilon is the displacement magnitude below which a point is
// treated as undisplaced. It suppresses floating-point noise near zero
// and carries no domain meaning.
const VisibleEpsilon = 0.1

// Distance returns the distance from (i, j) to the center under the
// default metric for the shape kind.
func Distance(i, j, cx, cy float64, kind ShapeKind) float64 {
	return MetricFor(kind)(i, j, cx, cy)
}

// IsInside reports whether (i, j) lies within the shape volume,
// shell included: distance <= size-1.
func IsInside(i, j float64, c ShapeConfig) bool {
	return c.metric()(i, j, c.CenterX, c.CenterY) <= c.Size-1
}

// IsOnShell reports whether (i, j) lies on the shape boundary.
//
// Cubes use exact equality: Chebyshev distance of integer coordinates
// is always an integer, so distance == size-1 is a safe test. Spheres
// use the SphereShellTol band around the radius.
//
// For size <= 1 the shell collapses to the center point alone, so that
// a degenerate shape still has a visible boundary.
func IsOnShell(i, j float64, c ShapeConfig) bool {
	d := c.metric()(i, j, c.CenterX, c.CenterY)
	if c.Size <= 1 {
		return d == 0
	}
	if c.Kind == KindSphere {
		return math.Abs(d-(c.Size-1)) <= SphereShellTol
	}
	return d == c.Size-1
}

// Classify assigns the region label for (i, j). The shell test runs
// first so that Shell and Interior stay disjoint; everything outside
// the volume is Cloth, whether or not it is visibly displaced.
func Classify(i, j float64, c ShapeConfig) Region {
	if IsOnShell(i, j, c) {
		return RegionShell
	}
	if IsInside(i, j, c) {
		return RegionInterior
	}
	return RegionCloth
}

// HasVisibleDisplacement reports whether the displacement magnitude at
// (i, j) exceeds the noise threshold. The comparison is strictly
// greater-than so exact-zero boundary points stay non-visible.
func HasVisibleDisplacement(i, j float64, c ShapeConfig) bool {
	return math.Abs(Displacement(i, j, c)) > VisibleEpsilon
}
