package skeleton

import "gonum.org/v1/gonum/spatial/r3"

// NoParent is the parent sentinel carried by the root node.
// Treenode identifiers from annotation servers are non-negative, so -1
// can never collide with a real node.
const NoParent int64 = -1

// Role classifies a node by its position in the tree topology.
type Role string

const (
	// RoleRoot is the unique node without a parent. Overrides the
	// child-count rules below.
	RoleRoot Role = "root"
	// RoleSlab is a node with exactly one child.
	RoleSlab Role = "slab"
	// RoleBranch is a node with two or more children.
	RoleBranch Role = "branch"
	// RoleEnd is a leaf node without children.
	RoleEnd Role = "end"
)

// Relation is the direction of a synaptic connection relative to the
// skeleton the connector attaches to.
type Relation string

const (
	// RelPresynaptic marks the attached node as the presynaptic side.
	RelPresynaptic Relation = "presynaptic"
	// RelPostsynaptic marks the attached node as a postsynaptic partner.
	RelPostsynaptic Relation = "postsynaptic"
)

// Node is a single point along a skeleton.
//
// ID and ParentID are authoritative; everything below them is derived and
// recomputed by [Classify] and the annotators. The zero value is not
// usable - ID must be set and ParentID defaults to 0, which is a valid
// node identifier; use NoParent explicitly for roots.
type Node struct {
	ID       int64
	ParentID int64   // NoParent at the root
	Pos      r3.Vec  // position in nm
	Radius   float64 // node radius in nm; radii above the soma threshold mark a soma

	// Derived fields. Never trusted as input: reclassification starts
	// from the parent links.
	Role       Role
	HasSynapse bool
	Strahler   int     // 0 until annotated
	ParentDist float64 // Euclidean distance to parent in µm; 0 at the root
	DistToRoot float64 // geodesic distance to the root in nm
}

// IsRoot reports whether the node carries the absent-parent sentinel.
func (n *Node) IsRoot() bool { return n.ParentID == NoParent }

// Connector is a synapse record attached to one treenode.
type Connector struct {
	ID       int64
	NodeID   int64    // the treenode the connector attaches to
	Relation Relation // presynaptic or postsynaptic, relative to this skeleton
	Partners []int64  // skeleton IDs on the other side of the synapse
}
