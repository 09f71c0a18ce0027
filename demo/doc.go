// Package demo is the reference instantiation of the framing stack:
//
//	SYNC(2B, 0xAB 0xBC) | LENGTH(2B) | ID(1B) | PAYLOAD | CHECKSUM(2B)
//
// All multi-byte integers are big-endian. LENGTH counts ID + PAYLOAD +
// CHECKSUM. CHECKSUM is the additive sum mod 2^16 over LENGTH through the
// end of PAYLOAD. The message set exercises every field type the library
// ships.
package demo
