package skeleton

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/arborlabs/arbor/pkg/errors"
)

// testTree builds the canonical fixture: a chain 1-2-3 with a fork at 3
// into the leaves 4 and 5.
//
//	1 (root) - 2 - 3 - 4
//	               \
//	                5
func testTree(t *testing.T) *Skeleton {
	t.Helper()
	s := New("fixture", 16)
	nodes := []Node{
		{ID: 1, ParentID: NoParent, Pos: r3.Vec{X: 0, Y: 0, Z: 0}, Radius: 1200},
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
	s.AddConnector(Connector{ID: 100, NodeID: 4, Relation: RelPresynaptic, Partners: []int64{77}})
	s.AddTag("soma", 1)
	s.AddTag("twig", 4, 5)
	return s
}

func TestValidate_WellFormed(t *testing.T) {
	s := testTree(t)
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestValidate_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Skeleton
	}{
		{
			name: "no root",
			build: func() *Skeleton {
				s := New("t", 1)
				s.AddNode(Node{ID: 1, ParentID: 2})
				s.AddNode(Node{ID: 2, ParentID: 1})
				return s
			},
		},
		{
			name: "multiple roots",
			build: func() *Skeleton {
				s := New("t", 1)
				s.AddNode(Node{ID: 1, ParentID: NoParent})
				s.AddNode(Node{ID: 2, ParentID: NoParent})
				return s
			},
		},
		{
			name: "dangling parent",
			build: func() *Skeleton {
				s := New("t", 1)
				s.AddNode(Node{ID: 1, ParentID: NoParent})
				s.AddNode(Node{ID: 2, ParentID: 99})
				return s
			},
		},
		{
			name: "connector to missing node",
			build: func() *Skeleton {
				s := New("t", 1)
				s.AddNode(Node{ID: 1, ParentID: NoParent})
				s.AddConnector(Connector{ID: 9, NodeID: 42})
				return s
			},
		},
		{
			name: "cycle off the root",
			build: func() *Skeleton {
				s := New("t", 1)
				s.AddNode(Node{ID: 1, ParentID: NoParent})
				s.AddNode(Node{ID: 2, ParentID: 3})
				s.AddNode(Node{ID: 3, ParentID: 2})
				return s
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build().Validate()
			if !errors.Is(err, errors.ErrCodeMalformedTree) {
				t.Errorf("Validate() = %v, want MALFORMED_TREE", err)
			}
		})
	}
}

func TestCopy_Independent(t *testing.T) {
	s := testTree(t)
	c := s.Copy()

	// Mutate the copy in every owned collection.
	n, _ := c.Node(2)
	n.ParentID = 3
	c.Connectors()[0].Partners[0] = 999
	c.AddTag("soma", 5)
	c.RemoveNode(5)

	if orig, _ := s.Node(2); orig.ParentID != 1 {
		t.Errorf("original node 2 parent = %d, want 1", orig.ParentID)
	}
	if got := s.Connectors()[0].Partners[0]; got != 77 {
		t.Errorf("original connector partner = %d, want 77", got)
	}
	if got := len(s.Tags()["soma"]); got != 1 {
		t.Errorf("original soma tag count = %d, want 1", got)
	}
	if s.NodeCount() != 5 {
		t.Errorf("original NodeCount() = %d, want 5", s.NodeCount())
	}
}

func TestCopy_DoesNotShareIndex(t *testing.T) {
	s := testTree(t)
	_ = s.Graph() // populate the cache
	c := s.Copy()
	if c.index != nil {
		t.Fatal("copy carries the original's cached index")
	}
	if got := c.Graph().Undirected().Nodes().Len(); got != 5 {
		t.Errorf("rebuilt index has %d nodes, want 5", got)
	}
}

func TestResolve(t *testing.T) {
	s := testTree(t)

	tests := []struct {
		name     string
		ref      NodeRef
		want     int64
		wantCode errors.Code
	}{
		{name: "by id", ref: ByID(3), want: 3},
		{name: "by unique tag", ref: ByTag("soma"), want: 1},
		{name: "missing id", ref: ByID(42), wantCode: errors.ErrCodeNodeNotFound},
		{name: "missing tag", ref: ByTag("axon"), wantCode: errors.ErrCodeTagNotResolved},
		{name: "ambiguous tag", ref: ByTag("twig"), wantCode: errors.ErrCodeTagNotResolved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Resolve(tt.ref)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("Resolve() error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestList_Single(t *testing.T) {
	s := testTree(t)

	if got, err := (List{s}).Single(); err != nil || got != s {
		t.Errorf("Single() = %v, %v; want fixture, nil", got, err)
	}

	_, err := (List{s, s.Copy()}).Single()
	if !errors.Is(err, errors.ErrCodeMultipleNeurons) {
		t.Errorf("Single() error = %v, want MULTIPLE_NEURONS", err)
	}

	_, err = (List{}).Single()
	if !errors.Is(err, errors.ErrCodeMultipleNeurons) {
		t.Errorf("Single() on empty list error = %v, want MULTIPLE_NEURONS", err)
	}
}

func TestGraph_InvalidatedOnMutation(t *testing.T) {
	s := testTree(t)
	g1 := s.Graph()
	s.AddNode(Node{ID: 6, ParentID: 5})
	g2 := s.Graph()
	if g1 == g2 {
		t.Fatal("index not rebuilt after AddNode")
	}
	if got := g2.Undirected().Nodes().Len(); got != 6 {
		t.Errorf("index has %d nodes, want 6", got)
	}
}

func TestToDOT(t *testing.T) {
	s := testTree(t)
	if err := Classify(s); err != nil {
		t.Fatal(err)
	}
	dot := s.ToDOT()

	for _, want := range []string{"digraph skeleton_16", "n1 [label=\"1\", shape=doublecircle", "n3 -> n5;"} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q:\n%s", want, dot)
		}
	}
	// Synapse-bearing node 4 should be shaded.
	if !strings.Contains(dot, "n4 [label=\"4\", shape=box, style=filled") {
		t.Errorf("ToDOT() does not shade synapse node:\n%s", dot)
	}
}
