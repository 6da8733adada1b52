package transform

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/arborlabs/arbor/pkg/skeleton"
)

// forkTree builds the canonical fixture: a chain 1-2-3 with a fork at 3
// into the leaves 4 and 5, a presynaptic connector on 4 and a soma-sized
// radius on the root.
func forkTree(t *testing.T) *skeleton.Skeleton {
	t.Helper()
	s := skeleton.New("fork", 16)
	nodes := []skeleton.Node{
		{ID: 1, ParentID: skeleton.NoParent, Pos: r3.Vec{X: 0, Y: 0, Z: 0}, Radius: 1200},
		{ID: 2, ParentID: 1, Pos: r3.Vec{X: 1000, Y: 0, Z: 0}},
		{ID: 3, ParentID: 2, Pos: r3.Vec{X: 2000, Y: 0, Z: 0}},
		{ID: 4, ParentID: 3, Pos: r3.Vec{X: 3000, Y: 1000, Z: 0}},
		{ID: 5, ParentID: 3, Pos: r3.Vec{X: 3000, Y: -1000, Z: 0}},
	}
	for _, n := range nodes {
		if err := s.AddNode(n); err != nil {
			t.Fatalf("AddNode(%d): %v", n.ID, err)
		}
	}
	s.AddConnector(skeleton.Connector{ID: 100, NodeID: 4, Relation: skeleton.RelPresynaptic, Partners: []int64{77}})
	s.AddTag("soma", 1)
	s.AddTag("twig", 4, 5)
	return s
}

// chainTree builds an unbranched chain 1-2-...-n along the x axis with
// 1000 nm spacing.
func chainTree(t *testing.T, n int) *skeleton.Skeleton {
	t.Helper()
	s := skeleton.New("chain", 17)
	for i := 1; i <= n; i++ {
		parent := int64(i - 1)
		if i == 1 {
			parent = skeleton.NoParent
		}
		err := s.AddNode(skeleton.Node{
			ID:       int64(i),
			ParentID: parent,
			Pos:      r3.Vec{X: float64(i-1) * 1000},
		})
		if err != nil {
			t.Fatalf("AddNode(%d): %v", i, err)
		}
	}
	return s
}

func quiet() Options {
	return Options{Logger: log.New(io.Discard)}
}

// parentMap snapshots every node's parent link for structural comparison.
func parentMap(s *skeleton.Skeleton) map[int64]int64 {
	out := make(map[int64]int64, s.NodeCount())
	for _, n := range s.Nodes() {
		out[n.ID] = n.ParentID
	}
	return out
}
