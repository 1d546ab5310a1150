package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stephanschulz/grid-cube/pkg/field"
	"github.com/stephanschulz/grid-cube/pkg/kernel/sdfx"
	"github.com/stephanschulz/grid-cube/pkg/scene"
)

// TestE2ECubeExample exercises the full pipeline: scene script →
// engine → field → meshes. This is the same path the Wails Evaluate
// binding takes, but without the Wails runtime.
func TestE2ECubeExample(t *testing.T) {
	app := NewApp()

	source, err := os.ReadFile("examples/cube.scene")
	if err != nil {
		t.Fatalf("failed to read cube.scene: %v", err)
	}

	result := app.Evaluate(string(source))

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error (line %d): %s", e.Line, e.Message)
		}
		t.FailNow()
	}

	if result.Field == nil {
		t.Fatal("no field built")
	}
	if len(result.Field.Points) != 21*21 {
		t.Errorf("point count = %d, want 441", len(result.Field.Points))
	}
	if result.Field.NumSlices != 16 {
		t.Errorf("NumSlices = %d, want 16", result.Field.NumSlices)
	}
	if result.Surface == nil || result.Surface.IsEmpty() {
		t.Error("expected a surface mesh")
	}
	if result.Solid == nil || result.Solid.IsEmpty() {
		t.Error("expected a solid mesh")
	}
	if result.Solid != nil && result.Solid.Name != "cube" {
		t.Errorf("solid mesh name = %q, want cube", result.Solid.Name)
	}
}

func TestE2ESphereExample(t *testing.T) {
	app := NewApp()

	source, err := os.ReadFile("examples/sphere.scene")
	if err != nil {
		t.Fatalf("failed to read sphere.scene: %v", err)
	}

	result := app.Evaluate(string(source))
	if len(result.Errors) > 0 {
		t.Fatalf("eval errors: %v", result.Errors)
	}
	if result.Scene.Shape.Kind != scene.KindSphere {
		t.Errorf("kind = %q, want sphere", result.Scene.Shape.Kind)
	}
	if result.Scene.FalloffStyle != scene.StyleExponential {
		t.Errorf("falloff style = %q, want exponential", result.Scene.FalloffStyle)
	}
	// Negative pull: every displacement must be <= 0.
	for _, p := range result.Field.Points {
		if p.Displacement > 0 {
			t.Fatalf("point (%d,%d) displaced %v upward under negative pull", p.I, p.J, p.Displacement)
		}
	}
}

// Without the manifold build tag the app must come up on the sdfx
// backend and still produce a solid mesh.
func TestKernelFallsBackToSdfx(t *testing.T) {
	app := NewApp()
	if app.kernel == nil {
		t.Fatal("no kernel selected")
	}
	if _, ok := app.kernel.(*sdfx.SdfxKernel); !ok {
		t.Fatalf("kernel = %T, want *sdfx.SdfxKernel without the manifold tag", app.kernel)
	}

	result := app.Build(scene.Default())
	if result.Solid == nil || result.Solid.IsEmpty() {
		t.Error("expected a solid mesh from the fallback kernel")
	}
}

func TestEvaluateErrorPath(t *testing.T) {
	app := NewApp()
	result := app.Evaluate("(cube :size")
	if len(result.Errors) == 0 {
		t.Fatal("expected eval errors")
	}
	if result.Field != nil {
		t.Error("no field should be built on eval error")
	}
}

func TestBuildClampsScene(t *testing.T) {
	app := NewApp()
	sc := scene.Default()
	sc.Grid.Density = 9999
	sc.Opacity.Shell = 3

	result := app.Build(sc)
	if result.Scene.Grid.Density != 256 {
		t.Errorf("density = %d, want clamped to 256", result.Scene.Grid.Density)
	}
	if result.Scene.Opacity.Shell != 1 {
		t.Errorf("shell opacity = %v, want clamped to 1", result.Scene.Opacity.Shell)
	}
	if result.Field == nil {
		t.Fatal("expected a field")
	}
}

func TestBuildWarnsOnDegenerateShape(t *testing.T) {
	app := NewApp()
	sc := scene.Default()
	sc.Shape.Size = 1

	result := app.Build(sc)
	if len(result.Warnings) == 0 {
		t.Error("expected a degenerate-shell warning")
	}
	// The shell collapses to the center point; interior is empty.
	for _, p := range result.Field.Points {
		if p.Region == field.RegionInterior {
			t.Fatalf("point (%d,%d) is interior with size=1", p.I, p.J)
		}
	}
}

func TestExportImage(t *testing.T) {
	app := NewApp()
	path := filepath.Join(t.TempDir(), "snapshot.png")

	if err := app.ExportImage(scene.Default(), path, 128); err != nil {
		t.Fatalf("ExportImage failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("snapshot missing: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("snapshot is empty")
	}
}

func TestSceneRoundTripsThroughJSON(t *testing.T) {
	// Build goes through the Wails JSON boundary in production; make
	// sure a scene survives the displacement math after clamping.
	app := NewApp()
	sc := scene.Default()
	sc.Shape.Falloff = 12

	result := app.Build(sc)
	n := result.Scene.Grid.Density + 1
	p := result.Field.Points[10*n+16] // (16,10)
	if math.Abs(p.Displacement-186.6) > 0.1 {
		t.Errorf("(16,10) displacement = %v, want ≈186.6", p.Displacement)
	}
}
