package skeleton

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// ToDOT returns a Graphviz DOT representation of the skeleton's topology.
//
// The output is a digraph with edges pointing from parent to child. Node
// shapes follow roles: the root is a double circle, branch points are
// diamonds, end nodes are boxes and slabs plain circles. Synapse-bearing
// nodes are shaded. Run Classify first if roles should be visible;
// unclassified nodes render as plain circles.
//
// This is a topology debugging aid, not a morphology renderer - positions
// and radii are ignored.
func (s *Skeleton) ToDOT() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph skeleton_%d {\n", s.ID)
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=12];\n\n")

	for _, id := range s.NodeIDs() {
		n := s.nodes[id]
		shape := "circle"
		switch n.Role {
		case RoleRoot:
			shape = "doublecircle"
		case RoleBranch:
			shape = "diamond"
		case RoleEnd:
			shape = "box"
		}
		if n.HasSynapse {
			fmt.Fprintf(&buf, "  n%d [label=\"%d\", shape=%s, style=filled, fillcolor=lightgrey];\n", id, id, shape)
		} else {
			fmt.Fprintf(&buf, "  n%d [label=\"%d\", shape=%s];\n", id, id, shape)
		}
	}
	buf.WriteString("\n")
	for _, id := range s.NodeIDs() {
		n := s.nodes[id]
		if n.IsRoot() {
			continue
		}
		fmt.Fprintf(&buf, "  n%d -> n%d;\n", n.ParentID, id)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders the skeleton topology as an SVG image.
//
// RenderSVG generates a DOT representation via ToDOT, then uses Graphviz
// to render it. The returned bytes are a complete SVG document.
//
// Errors are returned if Graphviz cannot initialize, the DOT is
// malformed, or rendering fails; all are wrapped with %w.
func (s *Skeleton) RenderSVG(ctx context.Context) ([]byte, error) {
	dot := s.ToDOT()

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render SVG: %w", err)
	}
	return buf.Bytes(), nil
}
