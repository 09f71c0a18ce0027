package field

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/danmuck/wirestack/wire"
)

func encode(t *testing.T, f Field) []byte {
	t.Helper()
	s := wire.NewAppendSink()
	if err := f.Encode(s); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(s.Bytes()) != f.Len() {
		t.Fatalf("encoded %d bytes, Len() says %d", len(s.Bytes()), f.Len())
	}
	return s.Bytes()
}

func decode(t *testing.T, f Field, b []byte) {
	t.Helper()
	if err := f.Decode(wire.NewReader(b)); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestUintTruncatesToWidth(t *testing.T) {
	f := NewUint(2, wire.BigEndian)
	f.Set(0x123456)
	if f.Value() != 0x3456 {
		t.Fatalf("set did not truncate: %#x", f.Value())
	}
	if !bytes.Equal(encode(t, f), []byte{0x34, 0x56}) {
		t.Fatalf("encoding: % X", encode(t, f))
	}
}

func TestUintDecodeShortIsNotEnoughData(t *testing.T) {
	f := NewUint(4, wire.BigEndian)
	err := f.Decode(wire.NewReader([]byte{1, 2, 3}))
	if !errors.Is(err, wire.ErrNotEnoughData) {
		t.Fatalf("expected ErrNotEnoughData, got %v", err)
	}
}

func TestUintRange(t *testing.T) {
	f := NewUint(1, wire.BigEndian).WithRange(10, 20)
	f.Set(15)
	if !f.Valid() {
		t.Fatalf("15 should be valid")
	}
	f.Set(21)
	if f.Valid() {
		t.Fatalf("21 should be invalid")
	}
}

func TestIntSignExtension(t *testing.T) {
	f := NewInt(1, wire.BigEndian)
	decode(t, f, []byte{0xFF})
	if f.Value() != -1 {
		t.Fatalf("sign extension: got %d", f.Value())
	}
	f.Set(-2)
	if !bytes.Equal(encode(t, f), []byte{0xFE}) {
		t.Fatalf("two's complement: % X", encode(t, f))
	}
}

func TestEnumValidity(t *testing.T) {
	f := NewEnum(1, wire.BigEndian, 0, 1, 2)
	f.Set(2)
	if !f.Valid() {
		t.Fatalf("2 is a member")
	}
	decode(t, f, []byte{9})
	if f.Valid() {
		t.Fatalf("9 is not a member")
	}
	if f.Value() != 9 {
		t.Fatalf("decode keeps the raw value: %d", f.Value())
	}
}

func TestBitmaskReservedBits(t *testing.T) {
	f := NewBitmask(1, wire.BigEndian, 0xF0)
	f.SetBit(0, true)
	f.SetBit(3, true)
	if !f.Valid() || f.Value() != 0x09 {
		t.Fatalf("low bits: valid=%v value=%#x", f.Valid(), f.Value())
	}
	decode(t, f, []byte{0x19})
	if f.Valid() {
		t.Fatalf("reserved bit set must be invalid")
	}
	if !f.Bit(4) {
		t.Fatalf("bit accessor")
	}
}

func TestBitfieldPacking(t *testing.T) {
	f := NewBitfield(1, wire.BigEndian,
		BitMember{Name: "prio", Bits: 3},
		BitMember{Name: "chan", Bits: 5},
	)
	f.Set(0, 5)  // 0b101
	f.Set(1, 17) // 0b10001
	// chan occupies bits 3..7, prio bits 0..2.
	want := byte(17<<3 | 5)
	if got := encode(t, f); got[0] != want {
		t.Fatalf("packed: %#x want %#x", got[0], want)
	}
	g := NewBitfield(1, wire.BigEndian,
		BitMember{Name: "prio", Bits: 3},
		BitMember{Name: "chan", Bits: 5},
	)
	decode(t, g, []byte{want})
	if g.Get(0) != 5 || g.Get(1) != 17 {
		t.Fatalf("unpacked: %d %d", g.Get(0), g.Get(1))
	}
}

func TestBitfieldConstructionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for uncovered bits")
		}
	}()
	NewBitfield(1, wire.BigEndian, BitMember{Name: "short", Bits: 7})
}

func TestStringPrefixed(t *testing.T) {
	f := NewString(1, wire.BigEndian).WithValue("abc")
	b := encode(t, f)
	if !bytes.Equal(b, []byte{3, 'a', 'b', 'c'}) {
		t.Fatalf("encoding: % X", b)
	}
	g := NewString(1, wire.BigEndian)
	decode(t, g, b)
	if g.Value() != "abc" {
		t.Fatalf("roundtrip: %q", g.Value())
	}
	// Prefix present but body short.
	err := g.Decode(wire.NewReader([]byte{5, 'a'}))
	if !errors.Is(err, wire.ErrNotEnoughData) {
		t.Fatalf("expected ErrNotEnoughData, got %v", err)
	}
}

func TestStringFixedPadsAndTrims(t *testing.T) {
	f := NewFixedString(4).WithValue("ab")
	b := encode(t, f)
	if !bytes.Equal(b, []byte{'a', 'b', 0, 0}) {
		t.Fatalf("padding: % X", b)
	}
	g := NewFixedString(4)
	decode(t, g, b)
	if g.Value() != "ab" {
		t.Fatalf("trim: %q", g.Value())
	}
}

func TestFloatRoundTrip(t *testing.T) {
	f4 := NewFloat(4, wire.BigEndian).WithValue(1.5)
	g4 := NewFloat(4, wire.BigEndian)
	decode(t, g4, encode(t, f4))
	if g4.Value() != 1.5 {
		t.Fatalf("float32 roundtrip: %v", g4.Value())
	}

	f8 := NewFloat(8, wire.BigEndian).WithValue(math.Pi)
	g8 := NewFloat(8, wire.BigEndian)
	decode(t, g8, encode(t, f8))
	if g8.Value() != math.Pi {
		t.Fatalf("float64 roundtrip: %v", g8.Value())
	}

	f4.Set(math.NaN())
	if f4.Valid() {
		t.Fatalf("NaN should be invalid")
	}
}

func TestListCountIsDerivedState(t *testing.T) {
	f := NewList(1, wire.BigEndian, func() Field { return NewUint(2, wire.BigEndian) })
	f.Elems = append(f.Elems, NewUint(2, wire.BigEndian).WithValue(7))
	// Count not refreshed yet: stale, so invalid.
	if f.Valid() {
		t.Fatalf("stale count must be invalid")
	}
	if !f.Refresh() {
		t.Fatalf("refresh should report a change")
	}
	if f.Refresh() {
		t.Fatalf("second refresh should be a no-op")
	}
	if !f.Valid() || f.Count() != 1 {
		t.Fatalf("after refresh: valid=%v count=%d", f.Valid(), f.Count())
	}
	b := encode(t, f)
	if !bytes.Equal(b, []byte{1, 0, 7}) {
		t.Fatalf("encoding: % X", b)
	}

	g := NewList(1, wire.BigEndian, func() Field { return NewUint(2, wire.BigEndian) })
	decode(t, g, b)
	if g.Count() != 1 || len(g.Elems) != 1 {
		t.Fatalf("decode: count=%d elems=%d", g.Count(), len(g.Elems))
	}
}

func TestListConsumeRemaining(t *testing.T) {
	f := NewList(0, wire.BigEndian, func() Field { return NewUint(1, wire.BigEndian) })
	decode(t, f, []byte{9, 8, 7})
	if len(f.Elems) != 3 {
		t.Fatalf("elements: %d", len(f.Elems))
	}
}

func TestOptionalTagged(t *testing.T) {
	f := NewOptional(NewUint(2, wire.BigEndian), Tagged)
	b := encode(t, f)
	if !bytes.Equal(b, []byte{0}) {
		t.Fatalf("absent encoding: % X", b)
	}

	f.SetPresent(true)
	f.Inner.(*Uint).Set(0x0102)
	b = encode(t, f)
	if !bytes.Equal(b, []byte{1, 1, 2}) {
		t.Fatalf("present encoding: % X", b)
	}

	g := NewOptional(NewUint(2, wire.BigEndian), Tagged)
	decode(t, g, b)
	if !g.Present() || g.Inner.(*Uint).Value() != 0x0102 {
		t.Fatalf("roundtrip: present=%v", g.Present())
	}

	err := g.Decode(wire.NewReader([]byte{2}))
	if !errors.Is(err, ErrInvalidPresenceFlag) {
		t.Fatalf("expected ErrInvalidPresenceFlag, got %v", err)
	}
}

func TestOptionalExistsByDefault(t *testing.T) {
	f := NewOptional(NewUint(2, wire.BigEndian), ExistsByDefault)
	decode(t, f, []byte{})
	if f.Present() {
		t.Fatalf("empty cursor means absent")
	}
	decode(t, f, []byte{0xAA, 0xBB})
	if !f.Present() || f.Inner.(*Uint).Value() != 0xAABB {
		t.Fatalf("present: %v", f.Present())
	}
}

func TestBytesFixedSize(t *testing.T) {
	f := NewBytes(4).WithValue([]byte{1, 2})
	b := encode(t, f)
	if !bytes.Equal(b, []byte{1, 2, 0, 0}) {
		t.Fatalf("zero padding: % X", b)
	}
	f.Set([]byte{9, 9, 9, 9, 9, 9})
	if !bytes.Equal(f.Value(), []byte{9, 9, 9, 9}) {
		t.Fatalf("truncation: % X", f.Value())
	}
	g := NewBytes(4)
	err := g.Decode(wire.NewReader([]byte{1, 2, 3}))
	if !errors.Is(err, wire.ErrNotEnoughData) {
		t.Fatalf("expected ErrNotEnoughData, got %v", err)
	}
	decode(t, g, b)
	if !bytes.Equal(g.Value(), []byte{1, 2, 0, 0}) {
		t.Fatalf("roundtrip: % X", g.Value())
	}
}

func TestRawConsumesRemaining(t *testing.T) {
	f := NewRaw()
	decode(t, f, []byte{1, 2, 3})
	if !bytes.Equal(f.Value(), []byte{1, 2, 3}) {
		t.Fatalf("value: % X", f.Value())
	}
	if f.Len() != 3 {
		t.Fatalf("len: %d", f.Len())
	}
	if !bytes.Equal(encode(t, f), []byte{1, 2, 3}) {
		t.Fatalf("encoding: % X", encode(t, f))
	}
}
