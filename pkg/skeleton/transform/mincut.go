package transform

import (
	"github.com/arborlabs/arbor/pkg/errors"
	"github.com/arborlabs/arbor/pkg/skeleton"
)

// minCutPartition computes the minimum edge cut separating the cut node
// (sink) from its parent (source) on the unit-capacity undirected view of
// the tree, via Edmonds-Karp. The distal side is the set of nodes that
// end up on the sink side of the cut.
//
// On a well-formed tree the maximum flow is 1 and the cut isolates
// exactly the edge between the cut node and its parent, so the partition
// equals the subtree split. The flow formulation keeps working even when
// the adjacency is denser than expected, which makes divergence from the
// leaf walk observable in tests instead of silently wrong.
func minCutPartition(sk *skeleton.Skeleton, cutID, parentID int64) (map[int64]bool, error) {
	g := sk.Graph().Undirected()

	// Residual capacities per directed arc. Every undirected edge
	// contributes one unit in each direction.
	type arc struct{ from, to int64 }
	residual := make(map[arc]int)
	edges := g.Edges()
	for edges.Next() {
		e := edges.Edge()
		u, v := e.From().ID(), e.To().ID()
		residual[arc{u, v}] = 1
		residual[arc{v, u}] = 1
	}

	neighbors := func(id int64) []int64 {
		var out []int64
		it := g.From(id)
		for it.Next() {
			out = append(out, it.Node().ID())
		}
		return out
	}

	// bfsPath finds an augmenting path source -> sink through arcs with
	// remaining capacity, returning the predecessor map.
	bfsPath := func() map[int64]int64 {
		prev := map[int64]int64{parentID: parentID}
		queue := []int64{parentID}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, next := range neighbors(cur) {
				if _, seen := prev[next]; seen || residual[arc{cur, next}] == 0 {
					continue
				}
				prev[next] = cur
				if next == cutID {
					return prev
				}
				queue = append(queue, next)
			}
		}
		return nil
	}

	flow := 0
	for {
		prev := bfsPath()
		if prev == nil {
			break
		}
		if flow++; flow > sk.NodeCount() {
			return nil, errors.New(errors.ErrCodeMalformedTree,
				"max flow between nodes %d and %d in skeleton %d did not converge",
				parentID, cutID, sk.ID)
		}
		for cur := cutID; cur != parentID; cur = prev[cur] {
			residual[arc{prev[cur], cur}]--
			residual[arc{cur, prev[cur]}]++
		}
	}
	if flow == 0 {
		return nil, errors.New(errors.ErrCodeMalformedTree,
			"nodes %d and %d are disconnected in skeleton %d", parentID, cutID, sk.ID)
	}

	// The source side of the cut is everything still reachable from the
	// parent in the residual network; the sink side is distal.
	sourceSide := map[int64]bool{parentID: true}
	queue := []int64{parentID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range neighbors(cur) {
			if sourceSide[next] || residual[arc{cur, next}] == 0 {
				continue
			}
			sourceSide[next] = true
			queue = append(queue, next)
		}
	}

	distal := make(map[int64]bool)
	for _, id := range sk.NodeIDs() {
		if !sourceSide[id] {
			distal[id] = true
		}
	}
	return distal, nil
}
