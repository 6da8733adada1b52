package transform

import (
	"reflect"
	"testing"

	"github.com/arborlabs/arbor/pkg/errors"
	"github.com/arborlabs/arbor/pkg/skeleton"
)

func TestDownsample_FactorOneIsIdentity(t *testing.T) {
	s := chainTree(t, 7)
	want := parentMap(s)

	got, err := Downsample(s, 1, quiet())
	if err != nil {
		t.Fatalf("Downsample() error = %v", err)
	}
	if !reflect.DeepEqual(parentMap(got), want) {
		t.Errorf("factor 1 changed the tree:\n got %v\nwant %v", parentMap(got), want)
	}
}

func TestDownsample_Chain(t *testing.T) {
	s := chainTree(t, 7)

	got, err := Downsample(s, 2, quiet())
	if err != nil {
		t.Fatalf("Downsample() error = %v", err)
	}

	want := map[int64]int64{
		1: skeleton.NoParent,
		3: 1,
		5: 3,
		7: 5,
	}
	if !reflect.DeepEqual(parentMap(got), want) {
		t.Errorf("parents = %v, want %v", parentMap(got), want)
	}
}

func TestDownsample_PreservesFixedPoints(t *testing.T) {
	s := forkTree(t)
	s.AddNode(skeleton.Node{ID: 6, ParentID: 2})
	s.AddConnector(skeleton.Connector{ID: 101, NodeID: 6, Relation: skeleton.RelPostsynaptic})

	// A huge factor reduces every chain to its endpoints, but the root,
	// the branch point, the leaves and the synapse node must survive.
	got, err := Downsample(s, 100, quiet())
	if err != nil {
		t.Fatalf("Downsample() error = %v", err)
	}

	want := []int64{1, 2, 3, 4, 5, 6}
	if !reflect.DeepEqual(got.NodeIDs(), want) {
		t.Fatalf("NodeIDs() = %v, want %v", got.NodeIDs(), want)
	}
	// Node 2 turned into a branch point by the extra child, so nothing
	// was droppable here; verify the synapse flag survived reclassification.
	if n, _ := got.Node(6); !n.HasSynapse {
		t.Error("synapse node lost its flag")
	}
	if err := got.Validate(); err != nil {
		t.Errorf("Validate() after downsample = %v", err)
	}
}

func TestDownsample_DropsSlabs(t *testing.T) {
	s := chainTree(t, 7)
	s.AddConnector(skeleton.Connector{ID: 100, NodeID: 4, Relation: skeleton.RelPresynaptic})

	got, err := Downsample(s, 100, quiet())
	if err != nil {
		t.Fatalf("Downsample() error = %v", err)
	}

	// Only root, synapse node and end node remain.
	want := map[int64]int64{
		1: skeleton.NoParent,
		4: 1,
		7: 4,
	}
	if !reflect.DeepEqual(parentMap(got), want) {
		t.Errorf("parents = %v, want %v", parentMap(got), want)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("Validate() after downsample = %v", err)
	}
}

func TestDownsample_InvalidFactor(t *testing.T) {
	_, err := Downsample(chainTree(t, 3), 0, quiet())
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Downsample(0) error = %v, want INVALID_INPUT", err)
	}
}

func TestDownsample_CopySemantics(t *testing.T) {
	s := chainTree(t, 7)

	got, err := Downsample(s, 2, quiet())
	if err != nil {
		t.Fatalf("Downsample() error = %v", err)
	}
	if got == s {
		t.Error("default mode returned the input skeleton")
	}
	if s.NodeCount() != 7 {
		t.Errorf("input mutated: NodeCount() = %d, want 7", s.NodeCount())
	}

	inPlace, err := Downsample(s, 2, Options{InPlace: true, Logger: quiet().Logger})
	if err != nil {
		t.Fatalf("Downsample(InPlace) error = %v", err)
	}
	if inPlace != s {
		t.Error("InPlace mode did not return the input skeleton")
	}
	if s.NodeCount() != 4 {
		t.Errorf("InPlace NodeCount() = %d, want 4", s.NodeCount())
	}
}

func TestDownsample_Empty(t *testing.T) {
	s := skeleton.New("empty", 1)
	got, err := Downsample(s, 4, quiet())
	if err != nil {
		t.Fatalf("Downsample() error = %v", err)
	}
	if got.NodeCount() != 0 {
		t.Errorf("NodeCount() = %d, want 0", got.NodeCount())
	}
}
