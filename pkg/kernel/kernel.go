// Package kernel defines the abstract solid-geometry kernel interface.
// Implementations (sdfx, manifold) model the cube or sphere the grid is draped
// over and turn it into a triangle mesh for the 3D view. The kernel
// abstraction allows swapping backends without changing the rest of
// the system.
package kernel

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives, centered at the origin.
	Box(x, y, z float64) Solid
	Sphere(radius float64) Solid

	// Translate moves a solid by (x, y, z).
	Translate(s Solid, x, y, z float64) Solid

	// ToMesh converts a solid to a triangle mesh.
	ToMesh(s Solid) (*Mesh, error)
}
