package field

import (
	"math"

	"github.com/danmuck/wirestack/wire"
)

// Float is an IEEE 754 floating-point field, 4 or 8 bytes wide.
type Float struct {
	Width int
	Order wire.ByteOrder

	val float64
}

func NewFloat(width int, o wire.ByteOrder) *Float {
	return &Float{Width: width, Order: o}
}

func (f *Float) WithValue(v float64) *Float {
	f.Set(v)
	return f
}

func (f *Float) Value() float64 { return f.val }

// Set stores v, rounding through float32 when the field is 4 bytes wide
// so the in-memory value always matches what the wire can carry.
func (f *Float) Set(v float64) {
	if f.Width == 4 {
		v = float64(float32(v))
	}
	f.val = v
}

func (f *Float) Encode(s wire.Sink) error {
	if f.Width == 4 {
		return s.WriteUint(uint64(math.Float32bits(float32(f.val))), 4, f.Order)
	}
	return s.WriteUint(math.Float64bits(f.val), 8, f.Order)
}

func (f *Float) Decode(r *wire.Reader) error {
	v, err := r.Uint(f.Width, f.Order)
	if err != nil {
		return err
	}
	if f.Width == 4 {
		f.val = float64(math.Float32frombits(uint32(v)))
		return nil
	}
	f.val = math.Float64frombits(v)
	return nil
}

func (f *Float) Len() int { return f.Width }

func (f *Float) Valid() bool { return !math.IsNaN(f.val) }

func (f *Float) Refresh() bool { return false }
