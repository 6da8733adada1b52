package skeleton

import (
	"gonum.org/v1/gonum/graph/simple"
)

// Index is the cached graph view of a skeleton's parent links.
// Treenode IDs are used directly as gonum node IDs, so translating
// between the two worlds is free.
//
// The index is rebuilt from scratch whenever the tree structure changes;
// operations that reorient edges globally (rerooting) must never patch it
// incrementally.
type Index struct {
	und *simple.UndirectedGraph
}

// Graph returns the skeleton's cached graph index, building it on first
// use. The index stays valid until the next structural mutation.
func (s *Skeleton) Graph() *Index {
	if s.index == nil {
		s.index = buildIndex(s)
	}
	return s.index
}

// Invalidate drops the cached graph index. Any structural change to the
// node set or the parent links must call this; accessors that only touch
// derived per-node fields need not.
func (s *Skeleton) Invalidate() { s.index = nil }

func buildIndex(s *Skeleton) *Index {
	g := simple.NewUndirectedGraph()
	for id := range s.nodes {
		g.AddNode(simple.Node(id))
	}
	for id, n := range s.nodes {
		if n.IsRoot() {
			continue
		}
		if _, ok := s.nodes[n.ParentID]; !ok {
			continue // dangling parent; Validate reports these
		}
		g.SetEdge(g.NewEdge(simple.Node(n.ParentID), simple.Node(id)))
	}
	return &Index{und: g}
}

// Undirected returns the tree as an undirected gonum graph.
// The caller must treat it as read-only.
func (ix *Index) Undirected() *simple.UndirectedGraph { return ix.und }

// Neighbors returns the IDs of all nodes adjacent to id in the
// undirected view: the parent (if any) and all children.
func (ix *Index) Neighbors(id int64) []int64 {
	var out []int64
	it := ix.und.From(id)
	for it.Next() {
		out = append(out, it.Node().ID())
	}
	return out
}
