package spatial

import (
	stderrors "errors"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/arborlabs/arbor/pkg/errors"
)

const hullTol = 1e-10

// inHull reports whether p lies inside the convex hull of the vertex
// cloud. A point is inside exactly when it is a convex combination of
// the vertices: some lambda >= 0 with sum(lambda) = 1 and V^T lambda = p.
// Finding such a lambda is a pure feasibility problem, solved as a linear
// program with a zero objective; an infeasible program means the point
// would extend the hull, i.e. lies outside.
func inHull(p r3.Vec, vertices []r3.Vec) (bool, error) {
	n := len(vertices)

	// Four equality rows: the three coordinates and the convexity
	// constraint sum(lambda) = 1.
	a := mat.NewDense(4, n, nil)
	for j, v := range vertices {
		a.Set(0, j, v.X)
		a.Set(1, j, v.Y)
		a.Set(2, j, v.Z)
		a.Set(3, j, 1)
	}
	b := []float64{p.X, p.Y, p.Z, 1}
	c := make([]float64, n)

	_, _, err := lp.Simplex(c, a, b, hullTol, nil)
	switch {
	case err == nil:
		return true, nil
	case stderrors.Is(err, lp.ErrInfeasible):
		return false, nil
	default:
		return false, errors.Wrap(errors.ErrCodeInternal, err, "convex hull feasibility solve failed")
	}
}
