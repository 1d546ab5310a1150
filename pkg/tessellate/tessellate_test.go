package tessellate_test

import (
	"math"
	"testing"

	"github.com/stephanschulz/grid-cube/pkg/field"
	"github.com/stephanschulz/grid-cube/pkg/kernel"
	"github.com/stephanschulz/grid-cube/pkg/scene"
	"github.com/stephanschulz/grid-cube/pkg/tessellate"
)

// flatField builds a small field with no shape pull at all.
func flatField(density int) *field.Field {
	grid := field.GridSpec{Density: density, Spacing: 10}
	shape := field.ShapeConfig{Kind: field.KindCube, Size: 0, Pull: 0}
	return field.Build(grid, shape, field.Opacities{})
}

func TestSurfaceCounts(t *testing.T) {
	f := flatField(2)
	m := tessellate.Surface(f)

	if m.VertexCount() != 9 {
		t.Errorf("vertex count = %d, want 9", m.VertexCount())
	}
	if m.TriangleCount() != 8 {
		t.Errorf("triangle count = %d, want 8", m.TriangleCount())
	}
	if len(m.Normals) != len(m.Vertices) {
		t.Errorf("normals length %d != vertices length %d", len(m.Normals), len(m.Vertices))
	}
	for _, idx := range m.Indices {
		if int(idx) >= m.VertexCount() {
			t.Fatalf("index %d out of range", idx)
		}
	}
}

func TestSurfaceFlatNormals(t *testing.T) {
	m := tessellate.Surface(flatField(3))
	for v := 0; v < m.VertexCount(); v++ {
		nx, ny, nz := m.Normals[v*3], m.Normals[v*3+1], m.Normals[v*3+2]
		if nx != 0 || ny != 0 || math.Abs(float64(nz)-1) > 1e-6 {
			t.Fatalf("vertex %d normal = (%v,%v,%v), want (0,0,1)", v, nx, ny, nz)
		}
	}
}

func TestSurfaceTiltsUnderPull(t *testing.T) {
	sc := scene.Default()
	m := tessellate.Surface(sc.Build())
	tilted := false
	for v := 0; v < m.VertexCount(); v++ {
		if m.Normals[v*3] != 0 || m.Normals[v*3+1] != 0 {
			tilted = true
			break
		}
	}
	if !tilted {
		t.Error("a pulled surface should have non-vertical normals somewhere")
	}
}

// fakeKernel records primitive calls and returns stub solids.
type fakeKernel struct {
	boxDims   [3]float64
	sphereRad float64
	translate [3]float64
}

type fakeSolid struct{}

func (fakeSolid) BoundingBox() (min, max [3]float64) { return }

func (k *fakeKernel) Box(x, y, z float64) kernel.Solid {
	k.boxDims = [3]float64{x, y, z}
	return fakeSolid{}
}

func (k *fakeKernel) Sphere(r float64) kernel.Solid {
	k.sphereRad = r
	return fakeSolid{}
}

func (k *fakeKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	k.translate = [3]float64{x, y, z}
	return s
}

func (k *fakeKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	return &kernel.Mesh{Vertices: []float32{0, 0, 0}}, nil
}

func TestSolidCube(t *testing.T) {
	k := &fakeKernel{}
	sc := scene.Default() // cube size 5, spacing 12, pull 200, center (10,10)

	m, err := tessellate.Solid(sc, k)
	if err != nil {
		t.Fatalf("Solid failed: %v", err)
	}
	if m == nil || m.IsEmpty() {
		t.Fatal("expected a mesh")
	}
	if m.Name != "cube" {
		t.Errorf("mesh name = %q, want cube", m.Name)
	}
	// Shell radius 4 grid units × spacing 12 → half-extent 48.
	if k.boxDims != [3]float64{96, 96, 200} {
		t.Errorf("box dims = %v, want [96 96 200]", k.boxDims)
	}
	if k.translate != [3]float64{120, 120, 100} {
		t.Errorf("translate = %v, want [120 120 100]", k.translate)
	}
}

func TestSolidSphere(t *testing.T) {
	k := &fakeKernel{}
	sc := scene.Default()
	sc.Shape.Kind = scene.KindSphere

	m, err := tessellate.Solid(sc, k)
	if err != nil {
		t.Fatalf("Solid failed: %v", err)
	}
	if m.Name != "sphere" {
		t.Errorf("mesh name = %q, want sphere", m.Name)
	}
	if k.sphereRad != 48 {
		t.Errorf("sphere radius = %v, want 48", k.sphereRad)
	}
}

func TestSolidDegenerate(t *testing.T) {
	k := &fakeKernel{}
	sc := scene.Default()
	sc.Shape.Size = 1

	m, err := tessellate.Solid(sc, k)
	if err != nil {
		t.Fatalf("Solid failed: %v", err)
	}
	if m != nil {
		t.Error("size=1 shape has no volume; expected nil mesh")
	}
}
