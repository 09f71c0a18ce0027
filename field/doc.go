// Package field owns the typed, serializable values messages are made of.
//
// Ownership boundary:
// - the Field contract (encode/decode/length/validity/refresh)
// - the concrete type family: Uint, Int, Enum, Bitmask, Bitfield, Bytes,
//   Raw, String, List, Optional, Float
//
// Every field keeps its serialized length consistent with its current
// value and configured encoding. Validity predicates are pure.
package field
