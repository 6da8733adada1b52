// Package spatial tests point containment against volume meshes. It has
// no dependency on the skeleton tree model; callers pass raw coordinate
// sequences.
package spatial

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/arborlabs/arbor/pkg/errors"
)

// Volume is a boundary mesh, reduced to its vertex cloud. Containment is
// evaluated against the convex hull of the vertices.
type Volume struct {
	Name     string
	ID       int64
	Vertices []r3.Vec
}

// Options selects the containment mode.
type Options struct {
	// Approximate replaces the convex hull test with an axis-aligned
	// bounding box test.
	Approximate bool
	// IgnoreAxes lists axes (0 = x, 1 = y, 2 = z) excluded from the
	// bounding box test. Only honored in approximate mode.
	IgnoreAxes []int
}

// InVolume reports, for each point, whether it lies inside the volume.
// The result has the same length and order as the input. Points exactly
// on the hull boundary count as inside.
func InVolume(points []r3.Vec, vol Volume, opts Options) ([]bool, error) {
	if len(vol.Vertices) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "volume %q has no vertices", vol.Name)
	}

	if opts.Approximate {
		return inBoundingBox(points, vol, opts.IgnoreAxes), nil
	}

	out := make([]bool, len(points))
	for i, p := range points {
		inside, err := inHull(p, vol.Vertices)
		if err != nil {
			return nil, err
		}
		out[i] = inside
	}
	return out, nil
}

func inBoundingBox(points []r3.Vec, vol Volume, ignore []int) []bool {
	min := r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	max := r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, v := range vol.Vertices {
		min.X = math.Min(min.X, v.X)
		min.Y = math.Min(min.Y, v.Y)
		min.Z = math.Min(min.Z, v.Z)
		max.X = math.Max(max.X, v.X)
		max.Y = math.Max(max.Y, v.Y)
		max.Z = math.Max(max.Z, v.Z)
	}

	skip := make(map[int]bool, len(ignore))
	for _, ax := range ignore {
		skip[ax] = true
	}

	axes := func(v r3.Vec) [3]float64 { return [3]float64{v.X, v.Y, v.Z} }
	lo, hi := axes(min), axes(max)

	out := make([]bool, len(points))
	for i, p := range points {
		c := axes(p)
		inside := true
		for ax := 0; ax < 3; ax++ {
			if skip[ax] {
				continue
			}
			if c[ax] < lo[ax] || c[ax] > hi[ax] {
				inside = false
				break
			}
		}
		out[i] = inside
	}
	return out
}
