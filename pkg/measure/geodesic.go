package measure

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/arborlabs/arbor/pkg/errors"
	"github.com/arborlabs/arbor/pkg/skeleton"
)

// DistCalc answers geodesic distance-to-root queries over one skeleton,
// memoizing along the way: every node on a walked path gets its exact
// distance to the root cached once that distance is known, so later
// queries for any node on an already walked path stop at the first cached
// ancestor instead of re-walking to the root.
//
// The calculator holds a reference to the skeleton; structural mutation
// between queries invalidates the cache in ways it cannot detect. Build a
// fresh calculator after transforming.
type DistCalc struct {
	sk   *skeleton.Skeleton
	memo map[int64]float64
}

// NewDistCalc validates that the skeleton has a unique root and returns a
// calculator with an empty cache.
func NewDistCalc(sk *skeleton.Skeleton) (*DistCalc, error) {
	if _, err := sk.Root(); err != nil {
		return nil, err
	}
	return &DistCalc{sk: sk, memo: make(map[int64]float64, sk.NodeCount())}, nil
}

// DistToRoot returns the geodesic distance in nanometers from the node to
// the root, summing edge lengths along the unique rootward path. The
// node's DistToRoot field is annotated as a side effect, as is every
// ancestor the walk had to visit.
func (d *DistCalc) DistToRoot(id int64) (float64, error) {
	if v, ok := d.memo[id]; ok {
		return v, nil
	}
	n, ok := d.sk.Node(id)
	if !ok {
		return 0, errors.New(errors.ErrCodeNodeNotFound, "no node %d in skeleton %d", id, d.sk.ID)
	}

	// Walk rootward, recording each edge until the root or a node whose
	// distance is already known.
	var (
		walked []int64
		edges  []float64
		base   float64
	)
	steps := 0
	for {
		if steps++; steps > d.sk.NodeCount() {
			return 0, errors.New(errors.ErrCodeMalformedTree,
				"rootward walk from node %d in skeleton %d did not terminate", id, d.sk.ID)
		}
		if v, ok := d.memo[n.ID]; ok {
			base = v
			break
		}
		if n.IsRoot() {
			d.memo[n.ID] = 0
			n.DistToRoot = 0
			break
		}
		p, ok := d.sk.Node(n.ParentID)
		if !ok {
			return 0, errors.New(errors.ErrCodeMalformedTree,
				"node %d references missing parent %d in skeleton %d", n.ID, n.ParentID, d.sk.ID)
		}
		walked = append(walked, n.ID)
		edges = append(edges, r3.Norm(r3.Sub(n.Pos, p.Pos)))
		n = p
	}

	// Suffix sums turn per-edge lengths into exact distances for every
	// node on the walked path, not just the queried one.
	total := base
	for i := len(walked) - 1; i >= 0; i-- {
		total += edges[i]
		d.memo[walked[i]] = total
		if wn, ok := d.sk.Node(walked[i]); ok {
			wn.DistToRoot = total
		}
	}
	return d.memo[id], nil
}
