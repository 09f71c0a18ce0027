package field

import "github.com/danmuck/wirestack/wire"

// Bitmask is an unsigned integer field interpreted bit-by-bit. Bits in
// Reserved must stay clear for the value to be valid.
type Bitmask struct {
	Uint
	Reserved uint64
}

func NewBitmask(width int, o wire.ByteOrder, reserved uint64) *Bitmask {
	return &Bitmask{
		Uint:     Uint{Width: width, Order: o},
		Reserved: reserved & wire.Mask(width),
	}
}

func (f *Bitmask) WithValue(v uint64) *Bitmask {
	f.Set(v)
	return f
}

// Bit reports whether bit n is set.
func (f *Bitmask) Bit(n uint) bool {
	return f.Value()&(1<<n) != 0
}

// SetBit sets or clears bit n.
func (f *Bitmask) SetBit(n uint, on bool) {
	if on {
		f.Set(f.Value() | 1<<n)
		return
	}
	f.Set(f.Value() &^ (1 << n))
}

func (f *Bitmask) Valid() bool {
	return f.Value()&f.Reserved == 0
}
