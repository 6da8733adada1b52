// Package skeleton provides the rooted-tree data model for reconstructed
// neuron morphologies.
//
// A [Skeleton] holds the full set of treenodes of one neuron, the synaptic
// connectors attached to them, and free-text tags addressing nodes by label.
// Nodes are linked by parent references; exactly one node, the root, has no
// parent. The parent relation induces the tree that all downstream
// operations (resampling, rerooting, cutting, Strahler annotation, cable
// measurement) work on.
//
// # Invariants
//
// A well-formed skeleton satisfies:
//   - exactly one node has no parent (the root)
//   - every other node's parent refers to a node in the same skeleton
//   - the parent relation is acyclic
//   - every connector attaches to an existing node
//
// [Skeleton.Validate] checks all four and reports violations as
// MALFORMED_TREE errors. Transformations assume a validated tree.
//
// # Copy semantics
//
// Every transformation either mutates the given skeleton in place (explicit
// request) or operates on an independent deep copy. [Skeleton.Copy] clones
// nodes, connectors and tags; the cached graph index is never shared between
// copies, it is rebuilt lazily on demand.
//
// Positions are in nanometers, matching the annotation server's native
// unit. Derived per-node fields (role, synapse flag, Strahler order,
// distances) are computed, never authoritative: reclassification always
// starts from the raw parent links.
package skeleton
