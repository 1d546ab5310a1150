// Package field implements the displacement engine for the grid-cube
// visualization: a planar grid is pulled toward the viewer to trace the
// silhouette of a solid (cube or sphere), with full displacement inside
// the shape, a cosine falloff "cloth" region beyond its shell, and a
// segment admission policy that decides which grid lines are drawn.
//
// All functions in this package are pure. The whole field is rebuilt
// from scratch on every configuration change; nothing is cached or
// mutated in place.
package field

// ShapeKind selects the solid the grid is draped over.
type ShapeKind int

const (
	KindCube ShapeKind = iota
	KindSphere
)

func (k ShapeKind) String() string {
	switch k {
	case KindCube:
		return "cube"
	case KindSphere:
		return "sphere"
	default:
		return "unknown"
	}
}

// Region is the classification of a grid point relative to the shape.
type Region int

const (
	RegionShell    Region = iota // on the shape boundary, always drawn
	RegionInterior               // strictly enclosed, never drawn as surface lines
	RegionCloth                  // outside the shape, may carry falloff displacement
)

func (r Region) String() string {
	switch r {
	case RegionShell:
		return "shell"
	case RegionInterior:
		return "interior"
	case RegionCloth:
		return "cloth"
	default:
		return "unknown"
	}
}

// MetricFunc computes a non-negative distance from a grid coordinate to
// the shape center. The default metrics are Chebyshev (cube) and
// Euclidean (sphere); alternate metrics plug in behind the same type.
type MetricFunc func(i, j, cx, cy float64) float64

// FalloffCurve maps the normalized shell distance t in (0, 1] to a
// displacement factor in [0, 1]. It must be 1 at t=0 and 0 at t=1.
type FalloffCurve func(t float64) float64

// ShapeConfig describes the shape and its pull on the grid. It is a
// plain value, passed by value into every function and never mutated.
type ShapeConfig struct {
	Kind    ShapeKind
	Size    float64 // half-extent / radius in grid units
	CenterX float64
	CenterY float64
	Pull    float64 // maximum displacement, signed
	Falloff float64 // cloth extension beyond the shell in grid units, >= 0

	// Metric overrides the distance metric for Kind when non-nil.
	Metric MetricFunc
	// Ease overrides the canonical cosine falloff curve when non-nil.
	Ease FalloffCurve
}

// metric returns the effective distance metric for the config.
func (c ShapeConfig) metric() MetricFunc {
	if c.Metric != nil {
		return c.Metric
	}
	return MetricFor(c.Kind)
}

// Opacities maps region labels to line opacities in [0, 1]. Interior is
// kept for point-only rendering modes even though interior segments are
// never admitted.
type Opacities struct {
	Shell      float64 `json:"shell"`
	Cloth      float64 `json:"cloth"`
	Interior   float64 `json:"interior"`
	Background float64 `json:"background"`
}

// For returns the opacity for a region label.
func (o Opacities) For(r Region) float64 {
	switch r {
	case RegionShell:
		return o.Shell
	case RegionInterior:
		return o.Interior
	default:
		return o.Cloth
	}
}

// Vec3 is a world-space position. The grid lies in the XY plane and
// displacement runs along Z.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// GridSpec fixes the index space and the world size of one grid step.
type GridSpec struct {
	Density int     `json:"density"` // points run 0..Density inclusive per axis
	Spacing float64 `json:"spacing"` // world units per grid step
}

// Point is one displaced grid point.
type Point struct {
	I            int     `json:"i"`
	J            int     `json:"j"`
	Pos          Vec3    `json:"pos"`
	Displacement float64 `json:"displacement"`
	Region       Region  `json:"region"`
	Visible      bool    `json:"visible"` // abs displacement above the noise threshold
}

// SegmentKind tells the renderer which layer a segment belongs to.
type SegmentKind int

const (
	SegDisplaced SegmentKind = iota // lateral segment in the displaced layer
	SegWall                         // vertical connector, flat point to displaced point
	SegReference                    // lateral segment in the flat reference layer
	SegSlice                        // lateral segment in an intermediate height slice
)

// Segment is one admitted line segment with per-endpoint opacities. The
// renderer interpolates opacity linearly from A to B.
type Segment struct {
	A      Vec3        `json:"a"`
	B      Vec3        `json:"b"`
	AlphaA float64     `json:"alphaA"`
	AlphaB float64     `json:"alphaB"`
	Kind   SegmentKind `json:"kind"`
	Slice  int         `json:"slice,omitempty"` // 1-based slice index for SegSlice
}

// Field is the fully materialized output for one configuration: every
// grid point with its classification, and every admitted segment.
type Field struct {
	Grid      GridSpec  `json:"grid"`
	Points    []Point   `json:"points"`
	Segments  []Segment `json:"segments"`
	NumSlices int       `json:"numSlices"`
}
