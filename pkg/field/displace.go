package field

import "math"

// FalloffCosine is the canonical falloff curve: a smooth cosine ease
// from 1 at the shell to 0 at the falloff boundary. The exact curve
// matters for visual parity; do not substitute a linear ramp.
func FalloffCosine(t float64) float64 {
	return (math.Cos(t*math.Pi) + 1) / 2
}

// FalloffExponential returns the stiffness-controlled alternative
// curve 1 - t^stiffness. It is a named strategy, selected explicitly;
// it is not equivalent to the cosine curve and never replaces it
// silently.
func FalloffExponential(stiffness float64) FalloffCurve {
	return func(t float64) float64 {
		return 1 - math.Pow(t, stiffness)
	}
}

// Displacement returns the signed displacement for grid coordinate
// (i, j) under the two-zone profile:
//
//	d <= size-1                 full pull (interior and shell)
//	d <= size-1 + falloff       pull scaled by the falloff curve
//	beyond                      exactly zero
//
// A falloff extent of zero collapses the middle zone entirely: the
// effect cuts off sharply at the shell, and the division by the extent
// is never reached. A negative pull flips the direction; the sign
// passes through the curve unchanged.
func Displacement(i, j float64, c ShapeConfig) float64 {
	d := c.metric()(i, j, c.CenterX, c.CenterY)
	shell := c.Size - 1

	if d <= shell {
		return c.Pull
	}
	if c.Falloff > 0 && d <= shell+c.Falloff {
		t := (d - shell) / c.Falloff
		ease := c.Ease
		if ease == nil {
			ease = FalloffCosine
		}
		return c.Pull * ease(t)
	}
	return 0
}
