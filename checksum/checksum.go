// Package checksum owns the pluggable calculators the checksum layer
// verifies frames with. Calculators are deterministic and side-effect
// free; byte order of the serialized result belongs to the layer, not
// the calculator.
package checksum

import (
	"fmt"
	"hash/crc32"

	"github.com/danmuck/wirestack/wire"
)

// Calculator folds a byte span into an accumulator. Sum must be pure:
// the same seed and span always produce the same value.
type Calculator interface {
	// Sum folds span into the accumulator starting from seed.
	Sum(seed uint64, span []byte) uint64
	// Name is the stable identifier used in configuration files.
	Name() string
}

// Additive sums bytes modulo 2^(8*Width). Width 2 is the classic
// 16-bit cumulative checksum.
type Additive struct {
	Width int
}

func (c Additive) Sum(seed uint64, span []byte) uint64 {
	v := seed
	for _, b := range span {
		v += uint64(b)
	}
	return v & wire.Mask(c.Width)
}

func (c Additive) Name() string { return fmt.Sprintf("sum%d", 8*c.Width) }

// XOR folds bytes with exclusive-or into a single byte.
type XOR struct{}

func (XOR) Sum(seed uint64, span []byte) uint64 {
	v := byte(seed)
	for _, b := range span {
		v ^= b
	}
	return uint64(v)
}

func (XOR) Name() string { return "xor8" }

// CRC16 is CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF when seeded
// with DefaultCRC16Seed).
type CRC16 struct{}

// DefaultCRC16Seed is the conventional CCITT-FALSE initial value.
const DefaultCRC16Seed = 0xFFFF

func (CRC16) Sum(seed uint64, span []byte) uint64 {
	crc := uint16(seed)
	for _, b := range span {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return uint64(crc)
}

func (CRC16) Name() string { return "crc16" }

// CRC32 is the IEEE polynomial via the standard library table.
type CRC32 struct{}

func (CRC32) Sum(seed uint64, span []byte) uint64 {
	return uint64(crc32.Update(uint32(seed), crc32.IEEETable, span))
}

func (CRC32) Name() string { return "crc32" }

// ByName resolves a calculator from its configuration name.
func ByName(name string) (Calculator, error) {
	switch name {
	case "sum8":
		return Additive{Width: 1}, nil
	case "sum16":
		return Additive{Width: 2}, nil
	case "sum32":
		return Additive{Width: 4}, nil
	case "xor8":
		return XOR{}, nil
	case "crc16":
		return CRC16{}, nil
	case "crc32":
		return CRC32{}, nil
	default:
		return nil, fmt.Errorf("checksum: unknown calculator %q", name)
	}
}
