package field

import "github.com/danmuck/wirestack/wire"

// Uint is a fixed-width unsigned integer field. Values wider than the
// configured width are silently truncated on Set and on decode, per the
// fixed-width contract.
type Uint struct {
	Width int
	Order wire.ByteOrder

	val uint64

	hasRange bool
	min, max uint64
}

func NewUint(width int, o wire.ByteOrder) *Uint {
	return &Uint{Width: width, Order: o}
}

// WithRange constrains validity to min..max inclusive.
func (f *Uint) WithRange(min, max uint64) *Uint {
	f.hasRange = true
	f.min, f.max = min, max
	return f
}

// WithValue sets the initial value.
func (f *Uint) WithValue(v uint64) *Uint {
	f.Set(v)
	return f
}

func (f *Uint) Value() uint64 { return f.val }

func (f *Uint) Set(v uint64) {
	f.val = v & wire.Mask(f.Width)
}

func (f *Uint) Encode(s wire.Sink) error {
	return s.WriteUint(f.val, f.Width, f.Order)
}

func (f *Uint) Decode(r *wire.Reader) error {
	v, err := r.Uint(f.Width, f.Order)
	if err != nil {
		return err
	}
	f.val = v
	return nil
}

func (f *Uint) Len() int { return f.Width }

func (f *Uint) Valid() bool {
	if !f.hasRange {
		return true
	}
	return f.val >= f.min && f.val <= f.max
}

func (f *Uint) Refresh() bool { return false }
