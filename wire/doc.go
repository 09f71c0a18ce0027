// Package wire owns the byte-level primitives the framing stack is built on.
//
// Ownership boundary:
// - bounded random-access read cursor (Reader)
// - bounded random-access write cursor (Writer)
// - append-only sink (AppendSink)
// - byte-order configuration for arbitrary 1..8 byte integers
package wire
