package field

import (
	"fmt"

	"github.com/danmuck/wirestack/wire"
)

// BitMember describes one sub-value inside a Bitfield.
type BitMember struct {
	Name string
	Bits int
}

// Bitfield packs several narrow unsigned values into one fixed-width
// integer. Members occupy bits from the least significant end upward, in
// declaration order. Member bit counts must sum to exactly 8*Width.
type Bitfield struct {
	Width   int
	Order   wire.ByteOrder
	Members []BitMember

	vals []uint64
}

// NewBitfield panics if the member bit counts do not fill the width
// exactly; that is a construction-time programming error, not a wire
// condition.
func NewBitfield(width int, o wire.ByteOrder, members ...BitMember) *Bitfield {
	total := 0
	for _, m := range members {
		if m.Bits < 1 || m.Bits > 64 {
			panic(fmt.Sprintf("field: bitfield member %q has invalid bit count %d", m.Name, m.Bits))
		}
		total += m.Bits
	}
	if total != 8*width {
		panic(fmt.Sprintf("field: bitfield members cover %d bits, width holds %d", total, 8*width))
	}
	return &Bitfield{
		Width:   width,
		Order:   o,
		Members: members,
		vals:    make([]uint64, len(members)),
	}
}

// Get returns member i's value.
func (f *Bitfield) Get(i int) uint64 { return f.vals[i] }

// Set stores v into member i, truncated to the member's bit count.
func (f *Bitfield) Set(i int, v uint64) {
	f.vals[i] = v & bitMask(f.Members[i].Bits)
}

func (f *Bitfield) pack() uint64 {
	var v uint64
	shift := uint(0)
	for i, m := range f.Members {
		v |= f.vals[i] << shift
		shift += uint(m.Bits)
	}
	return v
}

func (f *Bitfield) unpack(v uint64) {
	shift := uint(0)
	for i, m := range f.Members {
		f.vals[i] = (v >> shift) & bitMask(m.Bits)
		shift += uint(m.Bits)
	}
}

func (f *Bitfield) Encode(s wire.Sink) error {
	return s.WriteUint(f.pack(), f.Width, f.Order)
}

func (f *Bitfield) Decode(r *wire.Reader) error {
	v, err := r.Uint(f.Width, f.Order)
	if err != nil {
		return err
	}
	f.unpack(v)
	return nil
}

func (f *Bitfield) Len() int { return f.Width }

func (f *Bitfield) Valid() bool { return true }

func (f *Bitfield) Refresh() bool { return false }

func bitMask(bits int) uint64 {
	if bits >= 64 {
		return ^uint64(0)
	}
	return 1<<bits - 1
}
