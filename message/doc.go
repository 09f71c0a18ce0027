// Package message owns the typed message contract and the id registry.
//
// Ownership boundary:
// - the Message contract (id + ordered fields)
// - generic read/write/length/validity/equality over any Message
// - the Registry mapping ids to constructors, sorted for binary search
package message
