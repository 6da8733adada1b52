// Package measure computes cable and geodesic metrics over neuron
// skeletons. Node positions are nanometers; cable totals and per-edge
// distances are reported in micrometers, geodesic distances in
// nanometers.
package measure

import (
	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/arborlabs/arbor/pkg/errors"
	"github.com/arborlabs/arbor/pkg/skeleton"
	"github.com/arborlabs/arbor/pkg/skeleton/transform"
)

const nmPerMicrometer = 1000.0

// ParentDistances returns the Euclidean distance from every node to its
// parent in micrometers, keyed by node ID, and annotates each node's
// ParentDist field. The root has no incoming edge and contributes zero.
func ParentDistances(sk *skeleton.Skeleton) (map[int64]float64, error) {
	dists := make(map[int64]float64, sk.NodeCount())
	for _, n := range sk.Nodes() {
		if n.IsRoot() {
			n.ParentDist = 0
			dists[n.ID] = 0
			continue
		}
		p, ok := sk.Node(n.ParentID)
		if !ok {
			return nil, errors.New(errors.ErrCodeMalformedTree,
				"node %d references missing parent %d in skeleton %d", n.ID, n.ParentID, sk.ID)
		}
		d := r3.Norm(r3.Sub(n.Pos, p.Pos)) / nmPerMicrometer
		n.ParentDist = d
		dists[n.ID] = d
	}
	return dists, nil
}

// CableOptions configures CableLength.
type CableOptions struct {
	// Smoothing downsamples a copy of the neuron by this factor before
	// measuring. Values below 2 measure the neuron as is.
	Smoothing int
	// Logger receives progress diagnostics. Nil means log.Default().
	Logger *log.Logger
}

// CableLength returns the total cable length of the neuron in
// micrometers. The input is never mutated, even when smoothing is
// requested.
func CableLength(sk *skeleton.Skeleton, opts CableOptions) (float64, error) {
	target := sk
	if opts.Smoothing > 1 {
		var err error
		target, err = transform.Downsample(sk, opts.Smoothing, transform.Options{Logger: opts.Logger})
		if err != nil {
			return 0, err
		}
	}

	dists, err := ParentDistances(target)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, d := range dists {
		total += d
	}
	return total, nil
}
