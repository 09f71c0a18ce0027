package field

import (
	"slices"

	"github.com/danmuck/wirestack/wire"
)

// Enum is an unsigned integer field restricted to a fixed set of values.
type Enum struct {
	Uint
	allowed []uint64
}

func NewEnum(width int, o wire.ByteOrder, allowed ...uint64) *Enum {
	f := &Enum{Uint: Uint{Width: width, Order: o}}
	f.allowed = slices.Clone(allowed)
	slices.Sort(f.allowed)
	return f
}

func (f *Enum) WithValue(v uint64) *Enum {
	f.Set(v)
	return f
}

func (f *Enum) Valid() bool {
	_, ok := slices.BinarySearch(f.allowed, f.Value())
	return ok
}
