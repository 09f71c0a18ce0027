package field

import (
	"strings"

	"github.com/danmuck/wirestack/wire"
)

// String is a text field, either length-prefixed (PrefixWidth > 0) or
// fixed-size (FixedLen > 0, zero-padded on the wire, trailing NULs
// stripped on decode). Exactly one of the two modes is configured.
type String struct {
	PrefixWidth int
	FixedLen    int
	Order       wire.ByteOrder

	val string
}

func NewString(prefixWidth int, o wire.ByteOrder) *String {
	return &String{PrefixWidth: prefixWidth, Order: o}
}

func NewFixedString(size int) *String {
	return &String{FixedLen: size}
}

func (f *String) WithValue(v string) *String {
	f.val = v
	return f
}

func (f *String) Value() string { return f.val }

func (f *String) Set(v string) { f.val = v }

func (f *String) Encode(s wire.Sink) error {
	if f.PrefixWidth > 0 {
		if uint64(len(f.val)) > wire.Mask(f.PrefixWidth) {
			return ErrValueTooLong
		}
		if err := s.WriteUint(uint64(len(f.val)), f.PrefixWidth, f.Order); err != nil {
			return err
		}
		return s.Write([]byte(f.val))
	}
	buf := make([]byte, f.FixedLen)
	copy(buf, f.val)
	return s.Write(buf)
}

func (f *String) Decode(r *wire.Reader) error {
	if f.PrefixWidth > 0 {
		n, err := r.Uint(f.PrefixWidth, f.Order)
		if err != nil {
			return err
		}
		b, err := r.Bytes(int(n))
		if err != nil {
			return err
		}
		f.val = string(b)
		return nil
	}
	b, err := r.Bytes(f.FixedLen)
	if err != nil {
		return err
	}
	f.val = strings.TrimRight(string(b), "\x00")
	return nil
}

func (f *String) Len() int {
	if f.PrefixWidth > 0 {
		return f.PrefixWidth + len(f.val)
	}
	return f.FixedLen
}

func (f *String) Valid() bool {
	if f.PrefixWidth > 0 {
		return uint64(len(f.val)) <= wire.Mask(f.PrefixWidth)
	}
	return len(f.val) <= f.FixedLen
}

func (f *String) Refresh() bool { return false }
