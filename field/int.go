package field

import "github.com/danmuck/wirestack/wire"

// Int is a fixed-width signed integer field, two's complement on the
// wire, sign-extended on decode.
type Int struct {
	Width int
	Order wire.ByteOrder

	val int64

	hasRange bool
	min, max int64
}

func NewInt(width int, o wire.ByteOrder) *Int {
	return &Int{Width: width, Order: o}
}

func (f *Int) WithRange(min, max int64) *Int {
	f.hasRange = true
	f.min, f.max = min, max
	return f
}

func (f *Int) WithValue(v int64) *Int {
	f.Set(v)
	return f
}

func (f *Int) Value() int64 { return f.val }

// Set truncates v to the configured width and sign-extends the result.
func (f *Int) Set(v int64) {
	f.val = signExtend(uint64(v)&wire.Mask(f.Width), f.Width)
}

func (f *Int) Encode(s wire.Sink) error {
	return s.WriteUint(uint64(f.val)&wire.Mask(f.Width), f.Width, f.Order)
}

func (f *Int) Decode(r *wire.Reader) error {
	v, err := r.Uint(f.Width, f.Order)
	if err != nil {
		return err
	}
	f.val = signExtend(v, f.Width)
	return nil
}

func (f *Int) Len() int { return f.Width }

func (f *Int) Valid() bool {
	if !f.hasRange {
		return true
	}
	return f.val >= f.min && f.val <= f.max
}

func (f *Int) Refresh() bool { return false }

func signExtend(v uint64, width int) int64 {
	if width >= wire.MaxIntWidth {
		return int64(v)
	}
	shift := uint(64 - 8*width)
	return int64(v<<shift) >> shift
}
