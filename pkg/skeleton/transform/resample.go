package transform

import (
	"github.com/arborlabs/arbor/pkg/errors"
	"github.com/arborlabs/arbor/pkg/skeleton"
)

// Downsample reduces the skeleton's node count by the given factor while
// preserving every topologically or biologically significant node.
//
// Fixed points - the root, branch points, end nodes and every
// synapse-bearing node - are never removed. Each fixed point is walked
// toward the root, skipping up to factor-1 intermediate slab nodes, and
// reattached to the node the walk ends on: the next fixed point if one is
// reached early, otherwise the node after the skip budget is spent. Nodes
// that no walk ends on are dropped. Connectors are unaffected; they only
// ever reference retained fixed points.
//
// A factor of 1 is the identity transform. An empty skeleton is returned
// unchanged with a warning. Returns INVALID_INPUT for factors below 1.
func Downsample(sk *skeleton.Skeleton, factor int, opts Options) (*skeleton.Skeleton, error) {
	if factor < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "resampling factor must be >= 1, got %d", factor)
	}

	out := sk
	if !opts.InPlace {
		out = sk.Copy()
	}

	if out.NodeCount() == 0 {
		opts.logger().Warn("unable to downsample: no nodes in neuron", "skeleton", out.ID)
		return out, nil
	}

	if err := skeleton.Classify(out); err != nil {
		return nil, err
	}

	fixed := make(map[int64]bool)
	for _, n := range out.Nodes() {
		if n.Role != skeleton.RoleSlab || n.HasSynapse {
			fixed[n.ID] = true
		}
	}

	// Walk from every fixed point toward the root, skipping up to
	// factor-1 slab nodes per hop. Every hop endpoint is retained.
	newParents := make(map[int64]int64)
	for id := range fixed {
		this := id
		for {
			n, _ := out.Node(this)
			if n.IsRoot() {
				newParents[this] = skeleton.NoParent
				break
			}

			next := n.ParentID
			for skipped := 0; !fixed[next] && skipped < factor-1; skipped++ {
				p, _ := out.Node(next)
				next = p.ParentID
			}
			newParents[this] = next
			if fixed[next] {
				break
			}
			this = next
		}
	}

	before := out.NodeCount()
	for _, id := range out.NodeIDs() {
		newParent, keep := newParents[id]
		if !keep {
			out.RemoveNode(id)
			continue
		}
		n, _ := out.Node(id)
		n.ParentID = newParent
	}
	out.Invalidate()

	if err := skeleton.Classify(out); err != nil {
		return nil, err
	}

	opts.logger().Info("downsampled neuron",
		"skeleton", out.ID, "factor", factor,
		"before", before, "after", out.NodeCount())
	return out, nil
}
