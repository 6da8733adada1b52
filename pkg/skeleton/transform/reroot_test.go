package transform

import (
	"reflect"
	"testing"

	"github.com/arborlabs/arbor/pkg/errors"
	"github.com/arborlabs/arbor/pkg/skeleton"
)

func TestReroot(t *testing.T) {
	s := forkTree(t)

	got, err := Reroot(s, skeleton.ByID(4), quiet())
	if err != nil {
		t.Fatalf("Reroot() error = %v", err)
	}

	want := map[int64]int64{
		4: skeleton.NoParent,
		3: 4,
		2: 3,
		1: 2,
		5: 3,
	}
	if !reflect.DeepEqual(parentMap(got), want) {
		t.Errorf("parents = %v, want %v", parentMap(got), want)
	}

	// The old root is now a leaf, the new root replaces it.
	if n, _ := got.Node(1); n.Role != skeleton.RoleEnd {
		t.Errorf("node 1 role = %v, want end", n.Role)
	}
	if n, _ := got.Node(4); n.Role != skeleton.RoleRoot {
		t.Errorf("node 4 role = %v, want root", n.Role)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("Validate() after reroot = %v", err)
	}

	// The input is untouched.
	if n, _ := s.Node(1); !n.IsRoot() {
		t.Error("input skeleton lost its root")
	}
}

func TestReroot_Involution(t *testing.T) {
	s := forkTree(t)
	want := parentMap(s)

	once, err := Reroot(s, skeleton.ByID(4), quiet())
	if err != nil {
		t.Fatalf("Reroot(4) error = %v", err)
	}
	back, err := Reroot(once, skeleton.ByID(1), quiet())
	if err != nil {
		t.Fatalf("Reroot(1) error = %v", err)
	}

	if !reflect.DeepEqual(parentMap(back), want) {
		t.Errorf("round trip parents = %v, want %v", parentMap(back), want)
	}
}

func TestReroot_MidChain(t *testing.T) {
	// Rerooting to a slab node must still cover the old root, which is
	// degree one but never classified as an end node.
	s := chainTree(t, 5)

	got, err := Reroot(s, skeleton.ByID(3), quiet())
	if err != nil {
		t.Fatalf("Reroot() error = %v", err)
	}

	want := map[int64]int64{
		3: skeleton.NoParent,
		2: 3,
		1: 2,
		4: 3,
		5: 4,
	}
	if !reflect.DeepEqual(parentMap(got), want) {
		t.Errorf("parents = %v, want %v", parentMap(got), want)
	}
}

func TestReroot_ByTag(t *testing.T) {
	s := forkTree(t)
	s.AddTag("mark", 4)

	got, err := Reroot(s, skeleton.ByTag("mark"), quiet())
	if err != nil {
		t.Fatalf("Reroot() error = %v", err)
	}
	if n, _ := got.Node(4); !n.IsRoot() {
		t.Error("tag target did not become the root")
	}
}

func TestReroot_Errors(t *testing.T) {
	s := forkTree(t)

	tests := []struct {
		name     string
		target   skeleton.NodeRef
		wantCode errors.Code
	}{
		{name: "already root", target: skeleton.ByID(1), wantCode: errors.ErrCodeNoOp},
		{name: "missing node", target: skeleton.ByID(42), wantCode: errors.ErrCodeNodeNotFound},
		{name: "ambiguous tag", target: skeleton.ByTag("twig"), wantCode: errors.ErrCodeTagNotResolved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Reroot(s, tt.target, quiet())
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Reroot() error = %v, want %s", err, tt.wantCode)
			}
		})
	}
}
