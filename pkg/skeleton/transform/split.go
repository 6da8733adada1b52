package transform

import (
	"github.com/arborlabs/arbor/pkg/errors"
	"github.com/arborlabs/arbor/pkg/skeleton"
)

// Strategy selects the algorithm Cut uses to partition the tree.
// Both strategies must produce identical partitions on a well-formed
// tree; any divergence is a defect, not an intentional difference.
type Strategy int

const (
	// StrategyMinCut models the tree's edges as a unit-capacity flow
	// network and computes the minimum edge cut separating the cut node
	// from its parent. On a tree the cut is degenerate (capacity 1) and
	// isolates exactly the edge above the cut node.
	StrategyMinCut Strategy = iota
	// StrategyLeafWalk walks from every leaf toward the root and
	// assigns nodes by whether the walk passes through the cut node,
	// memoizing branch point assignments for later walks.
	StrategyLeafWalk
)

// Cut partitions the skeleton into two independent skeletons at the edge
// above the cut node: distal (the cut node and its entire subtree under
// the original rooting, with the cut node as new root) and proximal
// (everything else, with the cut node's former parent reclassified as an
// end node).
//
// Connectors are partitioned by which side their node fell into; the tag
// mapping is copied unmodified to both halves. The input skeleton is
// never mutated.
//
// Fails with LEAF_CUT when the cut node has no descendants (both
// strategies reject this, so they always agree), INVALID_INPUT when the
// cut node is the root, and the usual resolution errors otherwise.
func Cut(sk *skeleton.Skeleton, cut skeleton.NodeRef, strategy Strategy, opts Options) (distal, proximal *skeleton.Skeleton, err error) {
	cutID, err := sk.Resolve(cut)
	if err != nil {
		return nil, nil, err
	}

	cutNode, _ := sk.Node(cutID)
	if cutNode.IsRoot() {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput,
			"cannot cut skeleton %d at its root (node %d)", sk.ID, cutID)
	}

	children := skeleton.ChildMap(sk)
	if len(children[cutID]) == 0 {
		return nil, nil, errors.New(errors.ErrCodeLeafCut,
			"cannot cut skeleton %d at leaf node %d: no subtree below the cut", sk.ID, cutID)
	}

	if err := skeleton.Classify(sk); err != nil {
		return nil, nil, err
	}

	var distalSet map[int64]bool
	switch strategy {
	case StrategyMinCut:
		distalSet, err = minCutPartition(sk, cutID, cutNode.ParentID)
	case StrategyLeafWalk:
		distalSet, err = leafWalkPartition(sk, cutID, children)
	default:
		err = errors.New(errors.ErrCodeInvalidInput, "unknown cut strategy %d", strategy)
	}
	if err != nil {
		return nil, nil, err
	}

	distal = carve(sk, sk.Name+"_dist", distalSet, true)
	proximal = carve(sk, sk.Name+"_prox", distalSet, false)

	// The cut node roots the distal half; its former parent is now a
	// leaf of the proximal half.
	dRoot, _ := distal.Node(cutID)
	dRoot.ParentID = skeleton.NoParent
	dRoot.Role = skeleton.RoleRoot
	if pEnd, ok := proximal.Node(cutNode.ParentID); ok {
		pEnd.Role = skeleton.RoleEnd
	}
	distal.Invalidate()
	proximal.Invalidate()

	opts.logger().Info("cut neuron",
		"skeleton", sk.ID, "node", cutID,
		"distal_nodes", distal.NodeCount(), "proximal_nodes", proximal.NodeCount(),
		"distal_synapses", len(distal.Connectors()), "proximal_synapses", len(proximal.Connectors()))
	return distal, proximal, nil
}

// carve copies the nodes on one side of the partition, the connectors
// attached to them, and the full tag mapping into a fresh skeleton.
func carve(sk *skeleton.Skeleton, name string, distalSet map[int64]bool, wantDistal bool) *skeleton.Skeleton {
	out := skeleton.New(name, sk.ID)
	for _, n := range sk.Nodes() {
		if distalSet[n.ID] == wantDistal {
			out.AddNode(*n)
		}
	}
	for _, c := range sk.Connectors() {
		if distalSet[c.NodeID] == wantDistal {
			clone := *c
			clone.Partners = append([]int64(nil), c.Partners...)
			out.AddConnector(clone)
		}
	}
	for label, ids := range sk.Tags() {
		out.AddTag(label, ids...)
	}
	return out
}

// leafWalkPartition assigns every node by walking from each leaf toward
// the root: a walk that reaches the cut node before any already
// classified branch point puts its nodes on the distal side, a walk that
// reaches the root or a classified proximal branch point puts them on
// the proximal side. Branch point assignments are memoized through the
// growing side sets, so later walks stop early instead of re-deciding.
//
// The cut node itself is an extra starting point so the chain between it
// and the root is covered even when no proximal leaf exists.
func leafWalkPartition(sk *skeleton.Skeleton, cutID int64, children map[int64][]int64) (map[int64]bool, error) {
	root, err := sk.Root()
	if err != nil {
		return nil, err
	}

	distal := make(map[int64]bool)
	proximal := make(map[int64]bool)

	starts := sk.NodesByRole(skeleton.RoleEnd)
	starts = append(starts, cutID)

	for _, start := range starts {
		walked := []int64{}
		this := start
		if start == cutID {
			// The cut node belongs to the distal side by
			// definition; its walk only classifies the chain above.
			distal[cutID] = true
			n, _ := sk.Node(this)
			this = n.ParentID
		}

		steps := 0
		for {
			if steps++; steps > sk.NodeCount()+1 {
				return nil, errors.New(errors.ErrCodeMalformedTree,
					"walk from node %d in skeleton %d did not terminate", start, sk.ID)
			}

			walked = append(walked, this)

			if this == cutID || distal[this] {
				for _, id := range walked {
					distal[id] = true
				}
				break
			}
			if this == root.ID || proximal[this] {
				for _, id := range walked {
					proximal[id] = true
				}
				break
			}

			n, _ := sk.Node(this)
			this = n.ParentID
		}
	}

	return distal, nil
}
