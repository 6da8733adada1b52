package cli

import (
	"context"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/arborlabs/arbor/pkg/errors"
	"github.com/arborlabs/arbor/pkg/skeleton"
)

func TestTargetRef(t *testing.T) {
	tests := []struct {
		name    string
		nodeID  int64
		tag     string
		wantErr bool
	}{
		{name: "by id", nodeID: 7},
		{name: "by tag", tag: "soma"},
		{name: "both", nodeID: 7, tag: "soma", wantErr: true},
		{name: "neither", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := targetRef(tt.nodeID, tt.tag)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidInput) {
					t.Fatalf("expected INVALID_INPUT, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestNeuronInputRejectsBothSources(t *testing.T) {
	in := neuronInput{swcPath: "n.swc", skeletonID: 42}
	if _, err := in.load(context.Background()); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}

func TestNeuronInputRequiresASource(t *testing.T) {
	var in neuronInput
	if _, err := in.load(context.Background()); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}

func TestSWCFileRoundtrip(t *testing.T) {
	sk := skeleton.New("roundtrip", 1)
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(sk.AddNode(skeleton.Node{ID: 1, ParentID: skeleton.NoParent, Radius: 500}))
	must(sk.AddNode(skeleton.Node{ID: 2, ParentID: 1, Pos: r3.Vec{X: 1000}, Radius: 100}))
	must(sk.AddNode(skeleton.Node{ID: 3, ParentID: 2, Pos: r3.Vec{X: 2000}, Radius: 100}))

	path := filepath.Join(t.TempDir(), "roundtrip.swc")
	must(writeSWCFile(sk, path))

	got, err := readSWCFile(path)
	must(err)

	if got.Name != "roundtrip" {
		t.Errorf("name = %q, want roundtrip", got.Name)
	}
	if got.NodeCount() != sk.NodeCount() {
		t.Errorf("node count = %d, want %d", got.NodeCount(), sk.NodeCount())
	}
	n, ok := got.Node(2)
	if !ok {
		t.Fatal("node 2 missing after roundtrip")
	}
	if n.ParentID != 1 || n.Pos.X != 1000 {
		t.Errorf("node 2 = parent %d pos %v, want parent 1 x=1000", n.ParentID, n.Pos)
	}
}

func TestReadSWCFileMissing(t *testing.T) {
	if _, err := readSWCFile(filepath.Join(t.TempDir(), "absent.swc")); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}
