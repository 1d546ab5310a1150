// Package tessellate turns a built field into triangle meshes for the
// 3D view: the draped grid surface is triangulated directly from the
// height field, and the underlying solid is modeled and meshed through
// a geometry kernel.
package tessellate

import (
	"fmt"
	"math"

	"github.com/stephanschulz/grid-cube/pkg/field"
	"github.com/stephanschulz/grid-cube/pkg/kernel"
	"github.com/stephanschulz/grid-cube/pkg/scene"
)

// Surface triangulates the displaced grid into a mesh: two triangles
// per grid cell, with per-vertex normals from central differences of
// the height field. The input field is read-only.
func Surface(f *field.Field) *kernel.Mesh {
	n := f.Grid.Density + 1
	if len(f.Points) != n*n || n < 2 {
		return &kernel.Mesh{Name: "surface"}
	}

	at := func(i, j int) field.Point { return f.Points[j*n+i] }

	vertices := make([]float32, 0, n*n*3)
	normals := make([]float32, 0, n*n*3)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			p := at(i, j)
			vertices = append(vertices, float32(p.Pos.X), float32(p.Pos.Y), float32(p.Pos.Z))
			nx, ny, nz := vertexNormal(f, at, i, j, n)
			normals = append(normals, nx, ny, nz)
		}
	}

	indices := make([]uint32, 0, f.Grid.Density*f.Grid.Density*6)
	for j := 0; j < n-1; j++ {
		for i := 0; i < n-1; i++ {
			a := uint32(j*n + i)
			b := uint32(j*n + i + 1)
			c := uint32((j+1)*n + i + 1)
			d := uint32((j+1)*n + i)
			indices = append(indices, a, b, c, a, c, d)
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
		Name:     "surface",
	}
}

// vertexNormal computes the surface normal at a grid vertex from the
// height differences to its neighbors, one-sided at the grid edges.
func vertexNormal(f *field.Field, at func(i, j int) field.Point, i, j, n int) (float32, float32, float32) {
	slope := func(lo, hi field.Point, steps float64) float64 {
		return (hi.Pos.Z - lo.Pos.Z) / (steps * f.Grid.Spacing)
	}

	var dzdx, dzdy float64
	switch {
	case i == 0:
		dzdx = slope(at(0, j), at(1, j), 1)
	case i == n-1:
		dzdx = slope(at(n-2, j), at(n-1, j), 1)
	default:
		dzdx = slope(at(i-1, j), at(i+1, j), 2)
	}
	switch {
	case j == 0:
		dzdy = slope(at(i, 0), at(i, 1), 1)
	case j == n-1:
		dzdy = slope(at(i, n-2), at(i, n-1), 1)
	default:
		dzdy = slope(at(i, j-1), at(i, j+1), 2)
	}

	x, y, z := -dzdx, -dzdy, 1.0
	inv := 1 / math.Sqrt(x*x+y*y+z*z)
	return float32(x * inv), float32(y * inv), float32(z * inv)
}

// Solid models the scene's cube or sphere through the kernel and
// returns its mesh, positioned under the draped grid in world units.
// A degenerate shape (size <= 1 or zero pull) has no volume to draw
// and yields a nil mesh with no error.
func Solid(sc scene.Scene, k kernel.Kernel) (*kernel.Mesh, error) {
	_, cfg, _ := sc.Resolve()
	spacing := sc.Grid.Spacing

	half := (cfg.Size - 1) * spacing
	if half <= 0 || cfg.Pull == 0 {
		return nil, nil
	}

	var s kernel.Solid
	switch cfg.Kind {
	case field.KindSphere:
		s = k.Sphere(half)
	default:
		s = k.Box(2*half, 2*half, math.Abs(cfg.Pull))
	}
	s = k.Translate(s, cfg.CenterX*spacing, cfg.CenterY*spacing, cfg.Pull/2)

	mesh, err := k.ToMesh(s)
	if err != nil {
		return nil, fmt.Errorf("tessellate: solid mesh: %w", err)
	}
	mesh.Name = cfg.Kind.String()
	return mesh, nil
}
