package transform

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/arborlabs/arbor/pkg/errors"
	"github.com/arborlabs/arbor/pkg/skeleton"
)

// DefaultSomaRadius is the radius threshold, in nm, above which a node is
// taken to be the soma.
const DefaultSomaRadius = 1000

// LongestNeuriteOptions configures LongestNeurite.
type LongestNeuriteOptions struct {
	Options
	// RootToSoma reroots the neuron to its soma before measuring. The
	// soma is the single node whose radius exceeds SomaRadius; none or
	// several matching nodes is an error.
	RootToSoma bool
	// SomaRadius overrides DefaultSomaRadius when positive.
	SomaRadius float64
}

// LongestNeurite reduces the neuron to its longest neurite: the path from
// the geodesically farthest end node down to the root. All other nodes
// are dropped, along with connectors that attached to them; tags are kept
// unmodified.
func LongestNeurite(sk *skeleton.Skeleton, opts LongestNeuriteOptions) (*skeleton.Skeleton, error) {
	out := sk
	if !opts.InPlace {
		out = sk.Copy()
	}

	if opts.RootToSoma {
		threshold := opts.SomaRadius
		if threshold <= 0 {
			threshold = DefaultSomaRadius
		}
		var soma []int64
		for _, n := range out.Nodes() {
			if n.Radius > threshold {
				soma = append(soma, n.ID)
			}
		}
		if len(soma) != 1 {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"cannot reroot to soma: %d nodes above radius %g in skeleton %d",
				len(soma), threshold, out.ID)
		}
		if n, _ := out.Node(soma[0]); !n.IsRoot() {
			if _, err := Reroot(out, skeleton.ByID(soma[0]), Options{InPlace: true, Logger: opts.Logger}); err != nil {
				return nil, err
			}
		}
	}

	root, err := out.Root()
	if err != nil {
		return nil, err
	}
	if err := skeleton.Classify(out); err != nil {
		return nil, err
	}

	// Geodesic distance from the root to every node, top down.
	children := skeleton.ChildMap(out)
	dist := map[int64]float64{root.ID: 0}
	stack := []int64{root.ID}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n, _ := out.Node(cur)
		for _, c := range children[cur] {
			cn, _ := out.Node(c)
			dist[c] = dist[cur] + r3.Norm(r3.Sub(cn.Pos, n.Pos))
			stack = append(stack, c)
		}
	}

	var tip int64
	var best float64 = -1
	for _, id := range out.NodeIDs() {
		if d := dist[id]; d > best {
			tip, best = id, d
		}
	}

	keep := make(map[int64]bool)
	for cur := tip; ; {
		keep[cur] = true
		n, _ := out.Node(cur)
		if n.IsRoot() {
			break
		}
		cur = n.ParentID
	}

	for _, id := range out.NodeIDs() {
		if !keep[id] {
			out.RemoveNode(id)
		}
	}
	kept := out.Connectors()[:0]
	for _, c := range out.Connectors() {
		if keep[c.NodeID] {
			kept = append(kept, c)
		}
	}
	out.SetConnectors(kept)
	out.Invalidate()

	if err := skeleton.Classify(out); err != nil {
		return nil, err
	}

	opts.logger().Info("extracted longest neurite",
		"skeleton", out.ID, "tip", tip, "length_nm", best, "nodes", out.NodeCount())
	return out, nil
}
