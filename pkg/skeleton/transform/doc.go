// Package transform implements the structural operations on neuron
// skeletons: topology-preserving downsampling, rerooting, cutting into
// distal and proximal halves, Strahler annotation and longest-neurite
// extraction.
//
// Every operation that changes tree structure takes an [Options] value
// whose InPlace flag decides between mutating the given skeleton and
// working on an independent deep copy (the default). Operations that only
// write derived per-node fields (Strahler) always annotate in place.
//
// All operations recompute classification from the current parent links
// before and after restructuring; none of them trusts stale roles.
package transform
