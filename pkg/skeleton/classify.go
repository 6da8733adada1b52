package skeleton

import "slices"

// ChildMap maps every node ID to the ordered IDs of its children.
// Nodes without children map to an empty (nil) entry, and the NoParent
// sentinel itself gets an entry collecting the root, so callers can look
// up any parent reference without special-casing the root.
func ChildMap(s *Skeleton) map[int64][]int64 {
	children := make(map[int64][]int64, len(s.nodes)+1)
	for _, id := range s.NodeIDs() {
		children[id] = children[id] // materialize the entry
		children[s.nodes[id].ParentID] = append(children[s.nodes[id].ParentID], id)
	}
	for id := range children {
		slices.Sort(children[id])
	}
	return children
}

// Classify recomputes every node's role and synapse flag from the current
// parent links and connectors.
//
// Roles follow child count: no children is an end node, one child a slab,
// two or more a branch. The node without a parent is always the root,
// overriding the child-count rule. A node is synapse-bearing if any
// connector attaches to it.
//
// Classify is idempotent and never trusts previously stored roles.
// Returns MALFORMED_TREE if the skeleton has no or multiple roots.
func Classify(s *Skeleton) error {
	if _, err := s.Root(); err != nil {
		return err
	}

	children := ChildMap(s)
	for id, n := range s.nodes {
		switch {
		case n.IsRoot():
			n.Role = RoleRoot
		case len(children[id]) == 0:
			n.Role = RoleEnd
		case len(children[id]) == 1:
			n.Role = RoleSlab
		default:
			n.Role = RoleBranch
		}
		n.HasSynapse = false
	}

	for _, c := range s.connectors {
		if n, ok := s.nodes[c.NodeID]; ok {
			n.HasSynapse = true
		}
	}
	return nil
}

// NodesByRole returns the IDs of all nodes with the given role, in
// ascending order. Classify must have run on the current structure.
func (s *Skeleton) NodesByRole(role Role) []int64 {
	var ids []int64
	for id, n := range s.nodes {
		if n.Role == role {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}
