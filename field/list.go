package field

import "github.com/danmuck/wirestack/wire"

// List is a homogeneous sequence of fields. With CountWidth > 0 the
// element count is serialized as a prefix; with CountWidth == 0 decode
// consumes elements until the cursor is exhausted.
//
// The serialized count is derived state: Refresh synchronizes it with the
// element slice and reports whether it moved. Validity requires the two
// to agree, which is how a stale count surfaces after mutation without an
// intervening Refresh.
type List struct {
	CountWidth int
	Order      wire.ByteOrder
	New        func() Field

	Elems []Field

	count uint64
}

func NewList(countWidth int, o wire.ByteOrder, elem func() Field) *List {
	return &List{CountWidth: countWidth, Order: o, New: elem}
}

// Append adds elements and refreshes the count.
func (f *List) Append(elems ...Field) *List {
	f.Elems = append(f.Elems, elems...)
	f.Refresh()
	return f
}

// Count returns the serialized element count.
func (f *List) Count() int { return int(f.count) }

func (f *List) Encode(s wire.Sink) error {
	if f.CountWidth > 0 {
		if err := s.WriteUint(f.count, f.CountWidth, f.Order); err != nil {
			return err
		}
	}
	for _, e := range f.Elems {
		if err := e.Encode(s); err != nil {
			return err
		}
	}
	return nil
}

func (f *List) Decode(r *wire.Reader) error {
	f.Elems = f.Elems[:0]
	if f.CountWidth > 0 {
		n, err := r.Uint(f.CountWidth, f.Order)
		if err != nil {
			return err
		}
		for i := uint64(0); i < n; i++ {
			e := f.New()
			if err := e.Decode(r); err != nil {
				return err
			}
			f.Elems = append(f.Elems, e)
		}
		f.count = n
		return nil
	}
	for r.Remaining() > 0 {
		e := f.New()
		if err := e.Decode(r); err != nil {
			return err
		}
		f.Elems = append(f.Elems, e)
	}
	f.count = uint64(len(f.Elems))
	return nil
}

func (f *List) Len() int {
	n := 0
	if f.CountWidth > 0 {
		n = f.CountWidth
	}
	for _, e := range f.Elems {
		n += e.Len()
	}
	return n
}

func (f *List) Valid() bool {
	if f.count != uint64(len(f.Elems)) {
		return false
	}
	if f.CountWidth > 0 && f.count > wire.Mask(f.CountWidth) {
		return false
	}
	for _, e := range f.Elems {
		if !e.Valid() {
			return false
		}
	}
	return true
}

func (f *List) Refresh() bool {
	changed := false
	if n := uint64(len(f.Elems)); n != f.count {
		f.count = n
		changed = true
	}
	for _, e := range f.Elems {
		if e.Refresh() {
			changed = true
		}
	}
	return changed
}
