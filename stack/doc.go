// Package stack owns the layered framing pipeline.
//
// Ownership boundary:
// - one Layer per transport-metadata concern: sync prefix, size, message
//   id, checksum, payload
// - the Stack facade: Read / Write / WriteTo / Update / Length
// - message handles and the optional capacity-1 in-place allocation slot
//
// Layers compose by ownership: the outer layer holds the next inner one
// and pre/post-processes the byte range that layer consumes. A full read
// pass runs sync check, size check, id lookup and allocation, checksum
// verification, then payload decode; the first failure is terminal for
// that call and nothing is retried.
package stack
