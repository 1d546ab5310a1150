// Package scene defines the serializable scene description for the
// grid-cube visualization: grid size, shape, opacities and strategy
// choices. The scene is the single "current configuration" value; it
// is owned by the UI layer and passed by value into the core, which
// never reads it implicitly.
package scene

import (
	"fmt"

	"github.com/stephanschulz/grid-cube/pkg/field"
)

// Falloff curve style names.
const (
	StyleCosine      = "cosine"
	StyleExponential = "exponential"
)

// Shape kind names as used in scripts and JSON.
const (
	KindCube   = "cube"
	KindSphere = "sphere"
)

// DefaultStiffness is the exponent used by the exponential falloff
// style when none is configured.
const DefaultStiffness = 2.5

// Shape describes the solid and its pull on the grid, in grid units.
type Shape struct {
	Kind    string  `json:"kind"` // "cube" or "sphere"
	Size    float64 `json:"size"`
	CenterX float64 `json:"centerX"`
	CenterY float64 `json:"centerY"`
	Pull    float64 `json:"pull"`    // maximum displacement, signed, world units
	Falloff float64 `json:"falloff"` // cloth extension in grid units
}

// Scene is the complete configuration for one rendering.
type Scene struct {
	Grid          field.GridSpec  `json:"grid"`
	Shape         Shape           `json:"shape"`
	Opacity       field.Opacities `json:"opacity"`
	FalloffStyle  string          `json:"falloffStyle"`
	Stiffness     float64         `json:"stiffness"`
	SmoothCorners bool            `json:"smoothCorners"`
}

// Default returns the canonical demo scene: a cube of size 5 centered
// on a 20-density grid, pulled 200 world units, with the cloth
// extending 60% of the grid width.
func Default() Scene {
	return Scene{
		Grid: field.GridSpec{Density: 20, Spacing: 12},
		Shape: Shape{
			Kind:    KindCube,
			Size:    5,
			CenterX: 10,
			CenterY: 10,
			Pull:    200,
			Falloff: 12,
		},
		Opacity: field.Opacities{
			Shell:      1.0,
			Cloth:      0.55,
			Interior:   0.25,
			Background: 0.12,
		},
		FalloffStyle: StyleCosine,
		Stiffness:    DefaultStiffness,
	}
}

// Clamp forces every value into its sane range. The core does not
// re-validate; this runs once at the configuration boundary before a
// scene reaches field.Build.
func (s *Scene) Clamp() {
	s.Grid.Density = clampInt(s.Grid.Density, 2, 256)
	if s.Grid.Spacing <= 0 {
		s.Grid.Spacing = 12
	}
	if s.Shape.Kind != KindSphere {
		s.Shape.Kind = KindCube
	}
	if s.Shape.Size < 0 {
		s.Shape.Size = 0
	}
	if s.Shape.Falloff < 0 {
		s.Shape.Falloff = 0
	}
	s.Opacity.Shell = clampUnit(s.Opacity.Shell)
	s.Opacity.Cloth = clampUnit(s.Opacity.Cloth)
	s.Opacity.Interior = clampUnit(s.Opacity.Interior)
	s.Opacity.Background = clampUnit(s.Opacity.Background)
	if s.FalloffStyle != StyleExponential {
		s.FalloffStyle = StyleCosine
	}
	if s.Stiffness <= 0 {
		s.Stiffness = DefaultStiffness
	}
}

// Warning is an advisory finding about a scene that still produces
// defined output.
type Warning struct {
	Message string `json:"message"`
}

// Validate reports advisory geometry warnings. None of them block a
// build; degenerate scenes still produce defined (if dull) output.
func (s Scene) Validate() []Warning {
	var warnings []Warning
	d := float64(s.Grid.Density)

	if s.Shape.CenterX < 0 || s.Shape.CenterX > d || s.Shape.CenterY < 0 || s.Shape.CenterY > d {
		warnings = append(warnings, Warning{
			Message: fmt.Sprintf("shape center (%.1f, %.1f) lies outside the grid", s.Shape.CenterX, s.Shape.CenterY),
		})
	}
	if s.Shape.Size-1 > d/2 {
		warnings = append(warnings, Warning{
			Message: fmt.Sprintf("shape size %.1f exceeds half the grid density", s.Shape.Size),
		})
	}
	if reach := s.Shape.Size - 1 + s.Shape.Falloff; reach > d {
		warnings = append(warnings, Warning{
			Message: fmt.Sprintf("falloff reaches %.1f grid units, past the grid edge", reach),
		})
	}
	if s.Shape.Size <= 1 {
		warnings = append(warnings, Warning{
			Message: "shape size <= 1 collapses the shell to a single point",
		})
	}
	return warnings
}

// Resolve binds the scene's strategy names to the pluggable core
// functions and returns the value-typed inputs for field.Build.
func (s Scene) Resolve() (field.GridSpec, field.ShapeConfig, field.Opacities) {
	cfg := field.ShapeConfig{
		Kind:    field.KindCube,
		Size:    s.Shape.Size,
		CenterX: s.Shape.CenterX,
		CenterY: s.Shape.CenterY,
		Pull:    s.Shape.Pull,
		Falloff: s.Shape.Falloff,
	}
	if s.Shape.Kind == KindSphere {
		cfg.Kind = field.KindSphere
	}
	if s.SmoothCorners && cfg.Kind == field.KindCube {
		cfg.Metric = field.CubeSmoothMetric(cfg.Size - 1)
	}
	if s.FalloffStyle == StyleExponential {
		cfg.Ease = field.FalloffExponential(s.Stiffness)
	}
	return s.Grid, cfg, s.Opacity
}

// Build is a convenience wrapper resolving the scene and building the
// field in one call. The scene should be clamped first.
func (s Scene) Build() *field.Field {
	grid, cfg, op := s.Resolve()
	return field.Build(grid, cfg, op)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
