// Package ir provides the value tree configuration documents parse
// into.
//
// # Node Structure
//
// A Node represents a single value. The IR works as a recursive tagged
// union: the Type field says which payload fields are meaningful.
//
//   - NullType: null value
//   - BoolType: boolean (true/false)
//   - NumberType: numeric value (Int64 or Float64, original literal in Number)
//   - StringType: string value (Str)
//   - ObjectType: key-value pairs (Keys and Values, insertion order kept)
//   - ListType: ordered list of nodes (Values)
//   - SubstitutionType: unresolved reference ${path} or ${?path} (Path, Optional)
//   - ConcatType: adjacent value chunks to be joined at resolution (Values)
//   - DelayedMergeType: a fallback stack awaiting lazy merge (Values,
//     highest priority first)
//
// # Immutability
//
// Trees are immutable once built. Every transformation (merge,
// resolution, re-origin) returns a new tree sharing untouched subtrees;
// nothing mutates in place, which is what makes resolved documents safe
// to share across goroutines without locking.
//
// # Resolve status
//
// Every node carries a Status computed structurally at construction: an
// object or list is Resolved iff all of its children are; substitution,
// concatenation, and delayed-merge nodes are always Unresolved. The
// status is a cache of a structural property, never an independent
// degree of freedom.
//
// # Objects
//
// For ObjectType nodes, Keys[i] names the value at Values[i], so both
// slices always have the same length. A NullType entry for a key is a
// present key with no value, distinct from the key being absent.
//
// # Numbers
//
// Number values keep the original literal text in Number so rendering
// reproduces the input exactly; Int64 is set when the literal is an
// integer, Float64 otherwise.
package ir
