package transform

import (
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/arborlabs/arbor/pkg/errors"
	"github.com/arborlabs/arbor/pkg/skeleton"
)

// Reroot redirects all parent links so the target node becomes the new
// root. The target may be given by ID or by a tag resolving to exactly
// one node.
//
// The tree is treated as undirected: for every current end node the
// unique shortest path to the target is computed, and every edge on any
// such path is reoriented so the endpoint nearer the target becomes the
// parent. The target's own parent becomes absent. The cached graph index
// is rebuilt, never patched, and classification is recomputed since root
// and end designations change.
//
// Returns NO_OP if the target already is the root, NODE_NOT_FOUND or
// TAG_NOT_RESOLVED if it cannot be located.
func Reroot(sk *skeleton.Skeleton, target skeleton.NodeRef, opts Options) (*skeleton.Skeleton, error) {
	targetID, err := sk.Resolve(target)
	if err != nil {
		return nil, err
	}
	if n, _ := sk.Node(targetID); n.IsRoot() {
		return nil, errors.New(errors.ErrCodeNoOp,
			"node %d already is the root of skeleton %d", targetID, sk.ID)
	}

	out := sk
	if !opts.InPlace {
		out = sk.Copy()
	}

	if err := skeleton.Classify(out); err != nil {
		return nil, err
	}

	// Undirected leaves: all end nodes, plus the old root when it has a
	// single child. Paths from the target to these cover every node.
	leaves := out.NodesByRole(skeleton.RoleEnd)
	if oldRoot, err := out.Root(); err == nil {
		if len(out.Graph().Neighbors(oldRoot.ID)) == 1 {
			leaves = append(leaves, oldRoot.ID)
		}
	}

	// Shortest paths from the new root to every leaf over the
	// undirected view. On a tree these paths are unique, so a single
	// pass fixes all parent links.
	shortest := path.DijkstraFrom(simple.Node(targetID), out.Graph().Undirected())

	newParents := map[int64]int64{targetID: skeleton.NoParent}
	for _, leaf := range leaves {
		if leaf == targetID {
			continue
		}
		nodes, _ := shortest.To(leaf)
		if len(nodes) < 2 {
			return nil, errors.New(errors.ErrCodeMalformedTree,
				"no path from node %d to node %d in skeleton %d", targetID, leaf, out.ID)
		}
		// nodes runs target -> leaf; each node's parent is its
		// predecessor on the path.
		for i := 1; i < len(nodes); i++ {
			newParents[nodes[i].ID()] = nodes[i-1].ID()
		}
	}

	for _, n := range out.Nodes() {
		parent, ok := newParents[n.ID]
		if !ok {
			return nil, errors.New(errors.ErrCodeMalformedTree,
				"node %d in skeleton %d is not connected to any leaf path", n.ID, out.ID)
		}
		n.ParentID = parent
	}
	out.Invalidate()

	if err := skeleton.Classify(out); err != nil {
		return nil, err
	}

	opts.logger().Info("rerooted neuron", "skeleton", out.ID, "root", targetID)
	return out, nil
}
