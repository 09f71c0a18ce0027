package stack_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/danmuck/wirestack/checksum"
	"github.com/danmuck/wirestack/field"
	"github.com/danmuck/wirestack/internal/testutil/testlog"
	"github.com/danmuck/wirestack/message"
	"github.com/danmuck/wirestack/stack"
	"github.com/danmuck/wirestack/wire"
)

const (
	blobID message.ID = 1
	pairID message.ID = 2
)

type blob struct {
	Data *field.Raw
}

func newBlob() *blob { return &blob{Data: field.NewRaw()} }

func (m *blob) ID() message.ID { return blobID }

func (m *blob) Name() string { return "Blob" }

func (m *blob) Fields() []field.Field { return []field.Field{m.Data} }

type pair struct {
	A *field.Uint
	B *field.Uint
}

func newPair() *pair {
	return &pair{
		A: field.NewUint(1, wire.BigEndian),
		B: field.NewUint(2, wire.BigEndian),
	}
}

func (m *pair) ID() message.ID { return pairID }

func (m *pair) Name() string { return "Pair" }

func (m *pair) Fields() []field.Field { return []field.Field{m.A, m.B} }

var syncMarker = []byte{0xAB, 0xBC}

func newRegistry(t *testing.T) *message.Registry {
	t.Helper()
	reg, err := message.NewRegistry(
		message.Entry{ID: blobID, New: func() message.Message { return newBlob() }},
		message.Entry{ID: pairID, New: func() message.Message { return newPair() }},
	)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	return reg
}

func newStack(t *testing.T, opts ...stack.Option) *stack.Stack {
	t.Helper()
	reg := newRegistry(t)
	layers := stack.NewSyncPrefix(syncMarker,
		stack.NewSize(2, wire.BigEndian,
			stack.NewMsgID(reg, 1, wire.BigEndian,
				stack.NewChecksum(checksum.Additive{Width: 2}, 2, wire.BigEndian, stack.CoverFromSize,
					stack.NewPayload()))))
	opts = append(opts, stack.WithLogger(testlog.Logger(t)))
	s, err := stack.New(layers, reg, opts...)
	if err != nil {
		t.Fatalf("stack: %v", err)
	}
	return s
}

// AB BC | 00 05 | 01 | 02 03 | 00 0B — sum16 over 00 05 01 02 03 is 0x000B.
var refFrame = []byte{0xAB, 0xBC, 0x00, 0x05, 0x01, 0x02, 0x03, 0x00, 0x0B}

func TestReadConcreteFrame(t *testing.T) {
	s := newStack(t)
	h, n, err := s.Read(refFrame)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if n != len(refFrame) {
		t.Fatalf("consumed %d of %d", n, len(refFrame))
	}
	m, ok := h.Msg().(*blob)
	if !ok {
		t.Fatalf("wrong type: %T", h.Msg())
	}
	if !bytes.Equal(m.Data.Value(), []byte{0x02, 0x03}) {
		t.Fatalf("payload: % X", m.Data.Value())
	}

	// Re-encoding reproduces the identical byte sequence.
	out := make([]byte, len(refFrame))
	wn, err := s.Write(m, out)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if !bytes.Equal(out[:wn], refFrame) {
		t.Fatalf("re-encoded frame differs:\n got % X\nwant % X", out[:wn], refFrame)
	}
	h.Release()
}

func TestWriteKnownBytes(t *testing.T) {
	s := newStack(t)
	m := newPair()
	m.A.Set(0x11)
	m.B.Set(0x2233)

	buf := make([]byte, 32)
	n, err := s.Write(m, buf)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	want := []byte{0xAB, 0xBC, 0x00, 0x06, 0x02, 0x11, 0x22, 0x33, 0x00, 0x6E}
	if !bytes.Equal(buf[:n], want) {
		t.Fatalf("frame:\n got % X\nwant % X", buf[:n], want)
	}
	if s.Length(m) != n {
		t.Fatalf("Length says %d, wrote %d", s.Length(m), n)
	}
}

func TestRoundTrip(t *testing.T) {
	s := newStack(t)
	m := newPair()
	m.A.Set(0x7F)
	m.B.Set(0xBEEF)

	buf := make([]byte, 64)
	n, err := s.Write(m, buf)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	h, rn, err := s.Read(buf[:n])
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if rn != n {
		t.Fatalf("consumed %d, wrote %d", rn, n)
	}
	if !message.Equal(m, h.Msg()) {
		t.Fatalf("roundtrip mismatch")
	}
}

// Every strict prefix of a valid encoding is a buffering condition, not
// a protocol failure.
func TestTruncatedPrefixes(t *testing.T) {
	s := newStack(t)
	for i := 0; i < len(refFrame); i++ {
		_, _, err := s.Read(refFrame[:i])
		if !errors.Is(err, wire.ErrNotEnoughData) {
			t.Fatalf("prefix %d: expected ErrNotEnoughData, got %v", i, err)
		}
	}
}

func TestChecksumSpanCorruption(t *testing.T) {
	s := newStack(t)
	// Size low byte, payload bytes, and both checksum bytes: flips
	// inside the covered span or in the stored value must be terminal
	// protocol errors.
	for _, i := range []int{3, 5, 6, 7, 8} {
		bad := bytes.Clone(refFrame)
		bad[i] ^= 0x01
		_, _, err := s.Read(bad)
		if !errors.Is(err, stack.ErrProtocol) {
			t.Fatalf("flip at %d: expected ErrProtocol, got %v", i, err)
		}
	}
}

// The sync marker sits outside the checksummed span: the stored checksum
// is exactly the sum over size..payload, no sync bytes folded in.
func TestChecksumExcludesSyncMarker(t *testing.T) {
	calc := checksum.Additive{Width: 2}
	stored := wire.BigEndian.Uint(refFrame[7:9])
	if got := calc.Sum(0, refFrame[2:7]); got != stored {
		t.Fatalf("span sum %#x, frame carries %#x", got, stored)
	}
	if withSync := calc.Sum(0, refFrame[0:7]); withSync == stored {
		t.Fatalf("sum including sync should differ")
	}
}

func TestBadSyncMarker(t *testing.T) {
	s := newStack(t)
	bad := bytes.Clone(refFrame)
	bad[0] = 0xFF
	_, _, err := s.Read(bad)
	if !errors.Is(err, stack.ErrProtocol) {
		t.Fatalf("expected ErrProtocol, got %v", err)
	}
}

// An unregistered id consumes exactly through the id field so the caller
// can decide whether to skip the advertised frame.
func TestUnknownIDConsumption(t *testing.T) {
	s := newStack(t)
	frame := []byte{0xAB, 0xBC, 0x00, 0x05, 0x63, 0x02, 0x03, 0x00, 0x6D}
	_, n, err := s.Read(frame)
	if !errors.Is(err, stack.ErrInvalidMsgID) {
		t.Fatalf("expected ErrInvalidMsgID, got %v", err)
	}
	if n != 5 {
		t.Fatalf("consumed %d, want 5 (through the id field)", n)
	}
}

func TestPayloadTrailingBytes(t *testing.T) {
	s := newStack(t)
	// Pair payload is 3 bytes; this frame declares 4 plus the trailer.
	frame := []byte{0xAB, 0xBC, 0x00, 0x07, 0x02, 0x11, 0x22, 0x33, 0x44}
	ck := checksum.Additive{Width: 2}.Sum(0, frame[2:])
	frame = append(frame, byte(ck>>8), byte(ck))
	_, _, err := s.Read(frame)
	if !errors.Is(err, stack.ErrProtocol) {
		t.Fatalf("expected ErrProtocol, got %v", err)
	}
}

func TestInPlaceCapacityOne(t *testing.T) {
	s := newStack(t, stack.WithInPlaceAllocation())

	h1, _, err := s.Read(refFrame)
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	if _, _, err := s.Read(refFrame); !errors.Is(err, stack.ErrMsgAllocFailure) {
		t.Fatalf("expected ErrMsgAllocFailure, got %v", err)
	}

	h1.Release()
	h1.Release() // idempotent
	if h1.Msg() != nil {
		t.Fatalf("released handle must not expose the slot")
	}

	h2, _, err := s.Read(refFrame)
	if err != nil {
		t.Fatalf("read after release: %v", err)
	}
	h2.Release()
}

// A failed read must hand the slot back: allocation happens at the id
// layer, before checksum verification.
func TestInPlaceSlotFreedOnFailedRead(t *testing.T) {
	s := newStack(t, stack.WithInPlaceAllocation())
	bad := bytes.Clone(refFrame)
	bad[len(bad)-1] ^= 0xFF
	if _, _, err := s.Read(bad); !errors.Is(err, stack.ErrProtocol) {
		t.Fatalf("expected ErrProtocol, got %v", err)
	}
	h, _, err := s.Read(refFrame)
	if err != nil {
		t.Fatalf("slot leaked by failed read: %v", err)
	}
	h.Release()
}

func TestWriteBufferOverflow(t *testing.T) {
	s := newStack(t)
	m := newPair()
	buf := make([]byte, 3)
	_, err := s.Write(m, buf)
	if !errors.Is(err, wire.ErrBufferOverflow) {
		t.Fatalf("expected ErrBufferOverflow, got %v", err)
	}
}

func TestAppendOnlyWriteNeedsUpdate(t *testing.T) {
	s := newStack(t)
	m := newPair()
	m.A.Set(0x11)
	m.B.Set(0x2233)

	sink := wire.NewAppendSink()
	n, err := s.WriteTo(m, sink)
	if !errors.Is(err, stack.ErrUpdateRequired) {
		t.Fatalf("expected ErrUpdateRequired, got %v", err)
	}
	if n != s.Length(m) {
		t.Fatalf("wrote %d, Length says %d", n, s.Length(m))
	}

	// Size and checksum are dummies until the update pass runs.
	window := sink.Bytes()
	if err := s.Update(window); err != nil {
		t.Fatalf("update: %v", err)
	}

	direct := make([]byte, n)
	if _, err := s.Write(m, direct); err != nil {
		t.Fatalf("direct write: %v", err)
	}
	if !bytes.Equal(window, direct) {
		t.Fatalf("updated frame differs:\n got % X\nwant % X", window, direct)
	}
}

func TestUpdateRejectsForeignWindow(t *testing.T) {
	s := newStack(t)
	window := bytes.Clone(refFrame)
	window[0] = 0x00
	if err := s.Update(window); !errors.Is(err, stack.ErrProtocol) {
		t.Fatalf("expected ErrProtocol, got %v", err)
	}
}

func TestRegistryAccessor(t *testing.T) {
	s := newStack(t)
	if _, ok := s.Registry().Lookup(pairID); !ok {
		t.Fatalf("registry lookup through the stack failed")
	}
}
