package transform

import (
	"github.com/arborlabs/arbor/pkg/errors"
	"github.com/arborlabs/arbor/pkg/skeleton"
)

// Strahler assigns every node its Strahler order via a bottom-up
// wavefront and returns the full order map. Orders start at 1 on end
// nodes; at a fork the maximum child order continues, unless the maximum
// is attained by two or more children, in which case the order increases
// by one. Orders propagate unchanged along slab spines, since slab nodes
// contribute no branching decision. A branch node joins the wavefront
// only once all of its children are ordered.
//
// The per-node Strahler field is annotated in place; no structural
// mutation happens. Returns INCOMPLETE_TREE if the wavefront empties
// before every node is ordered, which indicates a malformed, non-tree
// structure.
func Strahler(sk *skeleton.Skeleton) (map[int64]int, error) {
	if err := skeleton.Classify(sk); err != nil {
		return nil, err
	}

	children := skeleton.ChildMap(sk)
	isBranch := func(id int64) bool { return len(children[id]) > 1 }

	orders := make(map[int64]int, sk.NodeCount())
	frontier := sk.NodesByRole(skeleton.RoleEnd)
	if sk.NodeCount() == 1 {
		frontier = sk.NodesByRole(skeleton.RoleRoot)
	}

	for len(frontier) > 0 {
		var next []int64
		queued := make(map[int64]bool)

		for _, start := range frontier {
			if _, done := orders[start]; done {
				continue
			}

			// Order from the already-computed children. End nodes
			// have none and start at 1.
			order := 1
			if cs := children[start]; len(cs) > 0 {
				max, ties := 0, 0
				for _, c := range cs {
					switch o := orders[c]; {
					case o > max:
						max, ties = o, 1
					case o == max:
						ties++
					}
				}
				order = max
				if ties >= 2 {
					order = max + 1
				}
			}
			orders[start] = order

			// Propagate along the slab spine up to the next branch
			// or the root.
			this := start
			steps := 0
			for {
				if steps++; steps > sk.NodeCount() {
					return nil, errors.New(errors.ErrCodeIncompleteTree,
						"spine walk from node %d in skeleton %d did not terminate", start, sk.ID)
				}
				n, _ := sk.Node(this)
				if n.IsRoot() || isBranch(n.ParentID) {
					break
				}
				orders[n.ParentID] = order
				this = n.ParentID
			}

			// The spine ended below a branch point; it becomes
			// eligible once every child is ordered.
			n, _ := sk.Node(this)
			if n.IsRoot() {
				continue
			}
			branch := n.ParentID
			eligible := true
			for _, c := range children[branch] {
				if _, ok := orders[c]; !ok {
					eligible = false
					break
				}
			}
			if eligible && !queued[branch] {
				queued[branch] = true
				next = append(next, branch)
			}
		}

		frontier = next
	}

	if len(orders) != sk.NodeCount() {
		return nil, errors.New(errors.ErrCodeIncompleteTree,
			"strahler wavefront stalled in skeleton %d: %d of %d nodes ordered",
			sk.ID, len(orders), sk.NodeCount())
	}

	for _, n := range sk.Nodes() {
		n.Strahler = orders[n.ID]
	}
	return orders, nil
}
