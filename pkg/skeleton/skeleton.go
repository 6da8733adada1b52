package skeleton

import (
	"slices"

	"github.com/arborlabs/arbor/pkg/errors"
)

// Skeleton is the rooted tree representing one reconstructed neuron.
//
// The zero value is not usable - use New. Skeleton is not safe for
// concurrent mutation without external synchronization; concurrent
// read-only use is fine.
type Skeleton struct {
	Name string
	ID   int64

	nodes      map[int64]*Node
	connectors []*Connector
	tags       map[string][]int64

	// Cached graph index, built lazily by Graph and dropped on any
	// structural change. Never shared between copies.
	index *Index
}

// New creates an empty skeleton with the given name and stable identifier.
func New(name string, id int64) *Skeleton {
	return &Skeleton{
		Name:  name,
		ID:    id,
		nodes: make(map[int64]*Node),
		tags:  make(map[string][]int64),
	}
}

// AddNode adds a node to the skeleton.
// Returns INVALID_INPUT if the ID is negative or already present.
func (s *Skeleton) AddNode(n Node) error {
	if n.ID < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "node ID must be non-negative, got %d", n.ID)
	}
	if _, exists := s.nodes[n.ID]; exists {
		return errors.New(errors.ErrCodeInvalidInput, "duplicate node ID %d in skeleton %d", n.ID, s.ID)
	}
	node := &n
	s.nodes[node.ID] = node
	s.Invalidate()
	return nil
}

// RemoveNode deletes a node by ID. Missing IDs are ignored.
// Parent links of other nodes are not touched; callers that remove
// interior nodes must rewire parents themselves (the resampler does).
func (s *Skeleton) RemoveNode(id int64) {
	delete(s.nodes, id)
	s.Invalidate()
}

// Node returns the node with the given ID and true, or nil and false.
// The pointer refers to the actual node, so modifications affect the
// skeleton (structural changes still require Invalidate).
func (s *Skeleton) Node(id int64) (*Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// Nodes returns all nodes. The order is not guaranteed; use NodeIDs for
// a deterministic iteration order.
func (s *Skeleton) Nodes() []*Node {
	nodes := make([]*Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		nodes = append(nodes, n)
	}
	return nodes
}

// NodeIDs returns all node IDs in ascending order.
func (s *Skeleton) NodeIDs() []int64 {
	ids := make([]int64, 0, len(s.nodes))
	for id := range s.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// NodeCount returns the number of nodes.
func (s *Skeleton) NodeCount() int { return len(s.nodes) }

// AddConnector attaches a synapse record to the skeleton.
// The referenced node does not have to exist yet; Validate checks the
// reference once the skeleton is fully built.
func (s *Skeleton) AddConnector(c Connector) {
	s.connectors = append(s.connectors, &c)
}

// Connectors returns all synapse records. The returned slice is the
// skeleton's own; callers must not modify it.
func (s *Skeleton) Connectors() []*Connector { return s.connectors }

// SetConnectors replaces the connector set.
func (s *Skeleton) SetConnectors(cs []*Connector) { s.connectors = cs }

// AddTag maps a free-text label to one or more node IDs.
func (s *Skeleton) AddTag(label string, ids ...int64) {
	s.tags[label] = append(s.tags[label], ids...)
}

// Tags returns the tag mapping. The returned map is the skeleton's own;
// callers must not modify it.
func (s *Skeleton) Tags() map[string][]int64 { return s.tags }

// Root returns the unique node carrying the absent-parent sentinel.
// Returns MALFORMED_TREE if no or multiple such nodes exist.
func (s *Skeleton) Root() (*Node, error) {
	var root *Node
	for _, n := range s.nodes {
		if !n.IsRoot() {
			continue
		}
		if root != nil {
			return nil, errors.New(errors.ErrCodeMalformedTree,
				"skeleton %d has multiple roots (%d and %d)", s.ID, root.ID, n.ID)
		}
		root = n
	}
	if root == nil {
		return nil, errors.New(errors.ErrCodeMalformedTree, "skeleton %d has no root", s.ID)
	}
	return root, nil
}

// Validate checks the tree invariants and returns nil if the skeleton is
// well formed:
//   - exactly one root
//   - every non-root parent reference resolves
//   - the parent relation is acyclic
//   - every connector attaches to an existing node
//
// All violations are reported as MALFORMED_TREE; they are structural
// input errors and are never retried.
func (s *Skeleton) Validate() error {
	if _, err := s.Root(); err != nil {
		return err
	}

	for _, n := range s.nodes {
		if n.IsRoot() {
			continue
		}
		if _, ok := s.nodes[n.ParentID]; !ok {
			return errors.New(errors.ErrCodeMalformedTree,
				"node %d in skeleton %d references missing parent %d", n.ID, s.ID, n.ParentID)
		}
	}

	// Cycle check: walk rootward from every node, marking resolved nodes.
	// A walk that revisits itself before reaching a resolved node or the
	// root is a cycle.
	resolved := make(map[int64]bool, len(s.nodes))
	for id := range s.nodes {
		if resolved[id] {
			continue
		}
		seen := map[int64]bool{}
		cur := id
		for {
			if seen[cur] {
				return errors.New(errors.ErrCodeMalformedTree,
					"cycle through node %d in skeleton %d", cur, s.ID)
			}
			seen[cur] = true
			n := s.nodes[cur]
			if n.IsRoot() || resolved[n.ParentID] {
				break
			}
			cur = n.ParentID
		}
		for id := range seen {
			resolved[id] = true
		}
	}

	for _, c := range s.connectors {
		if _, ok := s.nodes[c.NodeID]; !ok {
			return errors.New(errors.ErrCodeMalformedTree,
				"connector %d in skeleton %d references missing node %d", c.ID, s.ID, c.NodeID)
		}
	}
	return nil
}

// Copy returns an independent deep copy. Nodes, connectors and tags are
// all cloned; the cached graph index is dropped and rebuilt lazily, so no
// mutable state is shared between the original and the copy.
func (s *Skeleton) Copy() *Skeleton {
	out := New(s.Name, s.ID)
	for id, n := range s.nodes {
		clone := *n
		out.nodes[id] = &clone
	}
	out.connectors = make([]*Connector, len(s.connectors))
	for i, c := range s.connectors {
		clone := *c
		clone.Partners = slices.Clone(c.Partners)
		out.connectors[i] = &clone
	}
	for label, ids := range s.tags {
		out.tags[label] = slices.Clone(ids)
	}
	return out
}

// NodeRef addresses a node either by identifier or by a tag that must
// resolve to exactly one node. Use ByID or ByTag to construct one.
type NodeRef struct {
	id    int64
	tag   string
	byTag bool
}

// ByID references a node by its identifier.
func ByID(id int64) NodeRef { return NodeRef{id: id} }

// ByTag references a node by a free-text tag.
func ByTag(tag string) NodeRef { return NodeRef{tag: tag, byTag: true} }

// Resolve turns the reference into a concrete node ID.
// Returns TAG_NOT_RESOLVED if the tag is absent or ambiguous, and
// NODE_NOT_FOUND if the identifier (direct or tag-resolved) is not
// present in the skeleton.
func (s *Skeleton) Resolve(ref NodeRef) (int64, error) {
	id := ref.id
	if ref.byTag {
		ids, ok := s.tags[ref.tag]
		if !ok || len(ids) == 0 {
			return 0, errors.New(errors.ErrCodeTagNotResolved,
				"no node tagged %q in skeleton %d", ref.tag, s.ID)
		}
		if len(ids) > 1 {
			return 0, errors.New(errors.ErrCodeTagNotResolved,
				"tag %q is ambiguous in skeleton %d: %d matching nodes", ref.tag, s.ID, len(ids))
		}
		id = ids[0]
	}
	if _, ok := s.nodes[id]; !ok {
		return 0, errors.New(errors.ErrCodeNodeNotFound,
			"node %d not found in skeleton %d", id, s.ID)
	}
	return id, nil
}

// List is an ordered collection of skeletons. Operations that accept
// either a single neuron or a collection take a List and resolve the
// shape once at the boundary.
type List []*Skeleton

// Single returns the collection's only skeleton.
// Returns MULTIPLE_NEURONS if the list does not contain exactly one.
func (l List) Single() (*Skeleton, error) {
	if len(l) != 1 {
		return nil, errors.New(errors.ErrCodeMultipleNeurons,
			"operation requires exactly one neuron, got %d", len(l))
	}
	return l[0], nil
}
