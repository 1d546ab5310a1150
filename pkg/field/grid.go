package field

import "math"

// Build materializes the full field for one configuration: the height
// field over the (density+1)² index space, the region label per point,
// and every admitted segment (reference layer, displaced layer, wall
// connectors, intermediate slices).
//
// Build is a single synchronous pass; callers rebuild wholesale on
// every parameter change rather than patching a previous field.
func Build(grid GridSpec, shape ShapeConfig, op Opacities) *Field {
	n := grid.Density + 1
	if n < 2 {
		n = 2
	}

	f := &Field{
		Grid:   grid,
		Points: make([]Point, 0, n*n),
	}

	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			fi, fj := float64(i), float64(j)
			disp := Displacement(fi, fj, shape)
			f.Points = append(f.Points, Point{
				I:            i,
				J:            j,
				Pos:          Vec3{X: fi * grid.Spacing, Y: fj * grid.Spacing, Z: disp},
				Displacement: disp,
				Region:       Classify(fi, fj, shape),
				Visible:      math.Abs(disp) > VisibleEpsilon,
			})
		}
	}

	at := func(i, j int) Point { return f.Points[j*n+i] }

	// Flat reference layer: the undisturbed grid at z = 0.
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			p := at(i, j)
			flat := Vec3{X: p.Pos.X, Y: p.Pos.Y}
			if i+1 < n {
				q := at(i+1, j)
				f.Segments = append(f.Segments, Segment{
					A: flat, B: Vec3{X: q.Pos.X, Y: q.Pos.Y},
					AlphaA: op.Background, AlphaB: op.Background,
					Kind: SegReference,
				})
			}
			if j+1 < n {
				q := at(i, j+1)
				f.Segments = append(f.Segments, Segment{
					A: flat, B: Vec3{X: q.Pos.X, Y: q.Pos.Y},
					AlphaA: op.Background, AlphaB: op.Background,
					Kind: SegReference,
				})
			}
		}
	}

	// Displaced layer and wall connectors.
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			p := at(i, j)
			if i+1 < n {
				if q := at(i+1, j); admitLateral(p, q) {
					f.Segments = append(f.Segments, lateral(p, q, op))
				}
			}
			if j+1 < n {
				if q := at(i, j+1); admitLateral(p, q) {
					f.Segments = append(f.Segments, lateral(p, q, op))
				}
			}
			if admitWall(p) {
				f.Segments = append(f.Segments, Segment{
					A:      Vec3{X: p.Pos.X, Y: p.Pos.Y},
					B:      p.Pos,
					AlphaA: op.Background,
					AlphaB: op.For(p.Region),
					Kind:   SegWall,
				})
			}
		}
	}

	f.NumSlices = numSlices(shape.Pull, grid.Spacing)
	buildSlices(f, n, at, shape, op)

	return f
}

// admitLateral decides whether the displaced-layer segment between two
// adjacent points exists. Interior points never produce surface lines,
// which is what makes the shape read as a solid volume; beyond that,
// at least one endpoint must be on the shell or visibly displaced.
// Pairs of undisplaced cloth points would duplicate the reference
// layer and are skipped.
func admitLateral(a, b Point) bool {
	if a.Region == RegionInterior || b.Region == RegionInterior {
		return false
	}
	return pullsGrid(a) || pullsGrid(b)
}

// admitWall decides whether the vertical connector between a point's
// flat reference position and its displaced position exists.
func admitWall(p Point) bool {
	if p.Region == RegionInterior {
		return false
	}
	return pullsGrid(p)
}

// pullsGrid reports whether a point anchors visible geometry: shell
// points always do, cloth points only when visibly displaced.
func pullsGrid(p Point) bool {
	return p.Region == RegionShell || (p.Region == RegionCloth && p.Visible)
}

func lateral(a, b Point, op Opacities) Segment {
	return Segment{
		A: a.Pos, B: b.Pos,
		AlphaA: op.For(a.Region), AlphaB: op.For(b.Region),
		Kind: SegDisplaced,
	}
}

// numSlices returns how many intermediate horizontal slices fit between
// the reference layer and the full displacement, one per grid step.
func numSlices(pull, spacing float64) int {
	if spacing <= 0 {
		return 0
	}
	return int(math.Floor(math.Abs(pull) / spacing))
}

// inSlice reports whether a point reaches the slice at height h: the
// slice height must lie strictly between the flat reference height and
// the point's own displaced height.
func inSlice(p Point, h float64) bool {
	return math.Abs(h) < math.Abs(p.Displacement)
}

// buildSlices emits segments for each intermediate height slice. A
// segment is admitted only when both endpoints reach the slice height,
// so a partially pulled point never sprouts a line to a height it was
// not displaced to. Fully interior pairs stay invisible here too; a
// shell-interior pair is allowed, which keeps the solid's cross-section
// outline closed.
func buildSlices(f *Field, n int, at func(i, j int) Point, shape ShapeConfig, op Opacities) {
	sign := 1.0
	if shape.Pull < 0 {
		sign = -1
	}

	for s := 1; s <= f.NumSlices; s++ {
		h := float64(s) * f.Grid.Spacing * sign
		admit := func(a, b Point) {
			if !inSlice(a, h) || !inSlice(b, h) {
				return
			}
			if a.Region == RegionInterior && b.Region == RegionInterior {
				return
			}
			f.Segments = append(f.Segments, Segment{
				A:      Vec3{X: a.Pos.X, Y: a.Pos.Y, Z: h},
				B:      Vec3{X: b.Pos.X, Y: b.Pos.Y, Z: h},
				AlphaA: op.For(a.Region),
				AlphaB: op.For(b.Region),
				Kind:   SegSlice,
				Slice:  s,
			})
		}
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				p := at(i, j)
				if i+1 < n {
					admit(p, at(i+1, j))
				}
				if j+1 < n {
					admit(p, at(i, j+1))
				}
			}
		}
	}
}
