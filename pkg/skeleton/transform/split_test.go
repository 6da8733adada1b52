package transform

import (
	"reflect"
	"testing"

	"github.com/arborlabs/arbor/pkg/errors"
	"github.com/arborlabs/arbor/pkg/skeleton"
)

func TestCut(t *testing.T) {
	for _, strategy := range []Strategy{StrategyMinCut, StrategyLeafWalk} {
		s := forkTree(t)

		distal, proximal, err := Cut(s, skeleton.ByID(3), strategy, quiet())
		if err != nil {
			t.Fatalf("Cut(strategy=%d) error = %v", strategy, err)
		}

		if got, want := distal.NodeIDs(), []int64{3, 4, 5}; !reflect.DeepEqual(got, want) {
			t.Errorf("distal nodes = %v, want %v", got, want)
		}
		if got, want := proximal.NodeIDs(), []int64{1, 2}; !reflect.DeepEqual(got, want) {
			t.Errorf("proximal nodes = %v, want %v", got, want)
		}

		// The cut node roots the distal half; its former parent ends the
		// proximal half.
		if n, _ := distal.Node(3); !n.IsRoot() || n.Role != skeleton.RoleRoot {
			t.Errorf("distal node 3 = %+v, want root", n)
		}
		if n, _ := proximal.Node(2); n.Role != skeleton.RoleEnd {
			t.Errorf("proximal node 2 role = %v, want end", n.Role)
		}

		// The connector on node 4 follows its node to the distal side.
		if got := len(distal.Connectors()); got != 1 {
			t.Errorf("distal connectors = %d, want 1", got)
		}
		if got := len(proximal.Connectors()); got != 0 {
			t.Errorf("proximal connectors = %d, want 0", got)
		}

		// Tags are copied unmodified to both halves.
		for _, half := range []*skeleton.Skeleton{distal, proximal} {
			if !reflect.DeepEqual(half.Tags(), s.Tags()) {
				t.Errorf("%s tags = %v, want %v", half.Name, half.Tags(), s.Tags())
			}
		}

		if err := distal.Validate(); err != nil {
			t.Errorf("distal Validate() = %v", err)
		}
		if err := proximal.Validate(); err != nil {
			t.Errorf("proximal Validate() = %v", err)
		}

		// The input is untouched.
		if s.NodeCount() != 5 {
			t.Errorf("input NodeCount() = %d, want 5", s.NodeCount())
		}
	}
}

func TestCut_StrategiesAgree(t *testing.T) {
	build := func() *skeleton.Skeleton {
		s := forkTree(t)
		// Deepen the fixture: a second fork below 5 and a chain below 4.
		s.AddNode(skeleton.Node{ID: 6, ParentID: 4})
		s.AddNode(skeleton.Node{ID: 7, ParentID: 5})
		s.AddNode(skeleton.Node{ID: 8, ParentID: 5})
		s.AddNode(skeleton.Node{ID: 9, ParentID: 8})
		return s
	}

	// Every non-root, non-leaf node is a valid cut point.
	for _, cut := range []int64{2, 3, 4, 5, 8} {
		s := build()
		d1, p1, err := Cut(s, skeleton.ByID(cut), StrategyMinCut, quiet())
		if err != nil {
			t.Fatalf("Cut(%d, mincut) error = %v", cut, err)
		}
		d2, p2, err := Cut(s, skeleton.ByID(cut), StrategyLeafWalk, quiet())
		if err != nil {
			t.Fatalf("Cut(%d, leafwalk) error = %v", cut, err)
		}

		if !reflect.DeepEqual(d1.NodeIDs(), d2.NodeIDs()) {
			t.Errorf("cut %d: distal mincut = %v, leafwalk = %v", cut, d1.NodeIDs(), d2.NodeIDs())
		}
		if !reflect.DeepEqual(p1.NodeIDs(), p2.NodeIDs()) {
			t.Errorf("cut %d: proximal mincut = %v, leafwalk = %v", cut, p1.NodeIDs(), p2.NodeIDs())
		}

		// The halves always partition the node set.
		if got := len(d1.NodeIDs()) + len(p1.NodeIDs()); got != s.NodeCount() {
			t.Errorf("cut %d: halves cover %d nodes, want %d", cut, got, s.NodeCount())
		}
	}
}

func TestCut_Errors(t *testing.T) {
	tests := []struct {
		name     string
		cut      skeleton.NodeRef
		wantCode errors.Code
	}{
		{name: "root", cut: skeleton.ByID(1), wantCode: errors.ErrCodeInvalidInput},
		{name: "leaf", cut: skeleton.ByID(4), wantCode: errors.ErrCodeLeafCut},
		{name: "missing", cut: skeleton.ByID(42), wantCode: errors.ErrCodeNodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, strategy := range []Strategy{StrategyMinCut, StrategyLeafWalk} {
				_, _, err := Cut(forkTree(t), tt.cut, strategy, quiet())
				if !errors.Is(err, tt.wantCode) {
					t.Errorf("Cut(strategy=%d) error = %v, want %s", strategy, err, tt.wantCode)
				}
			}
		})
	}
}
