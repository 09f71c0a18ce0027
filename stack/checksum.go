package stack

import (
	"fmt"

	"github.com/danmuck/wirestack/checksum"
	"github.com/danmuck/wirestack/wire"
)

// Coverage selects where the checksummed span begins. It always ends at
// the last payload byte; the sync marker and the checksum field itself
// are never covered.
type Coverage int

const (
	// CoverFromSize starts the span at the size field.
	CoverFromSize Coverage = iota
	// CoverFromID starts the span at the id field.
	CoverFromID
)

// checksumLayer verifies a trailing checksum over the span the layers it
// wraps produce. The field sits at the physical end of the frame, so on
// read it is peeked before the payload is decoded: a corrupt frame is
// rejected without constructing field state from garbage.
type checksumLayer struct {
	calc  checksum.Calculator
	width int
	order wire.ByteOrder
	cov   Coverage
	seed  uint64
	next  Layer
}

func NewChecksum(calc checksum.Calculator, width int, o wire.ByteOrder, cov Coverage, next Layer) Layer {
	return NewChecksumSeeded(calc, width, o, cov, 0, next)
}

// NewChecksumSeeded sets a non-zero initial accumulator (CRC-16/CCITT
// conventionally starts at 0xFFFF).
func NewChecksumSeeded(calc checksum.Calculator, width int, o wire.ByteOrder, cov Coverage, seed uint64, next Layer) Layer {
	return &checksumLayer{calc: calc, width: width, order: o, cov: cov, seed: seed, next: next}
}

func (l *checksumLayer) spanFrom(sizeAt, idAt int) int {
	from := sizeAt
	if l.cov == CoverFromID {
		from = idAt
	}
	if from < 0 {
		from = 0
	}
	return from
}

func (l *checksumLayer) read(st *readState) error {
	end := st.frameEnd
	if end < 0 {
		end = st.r.Len()
	}
	ckAt := end - l.width
	if ckAt < st.r.Offset() {
		return fmt.Errorf("%w: frame too short for checksum", ErrProtocol)
	}
	stored, err := st.r.At(ckAt, l.width)
	if err != nil {
		return err
	}
	want := l.order.Uint(stored)
	span, err := st.r.Span(l.spanFrom(st.sizeAt, st.idAt), ckAt)
	if err != nil {
		return err
	}
	if got := l.calc.Sum(l.seed, span); got != want {
		return fmt.Errorf("%w: %s mismatch: computed %#x, frame carries %#x", ErrProtocol, l.calc.Name(), got, want)
	}
	st.payloadEnd = ckAt
	if err := l.next.read(st); err != nil {
		return err
	}
	return st.r.Skip(l.width)
}

func (l *checksumLayer) write(st *writeState) error {
	if err := l.next.write(st); err != nil {
		return err
	}
	ckAt := st.sink.Offset()
	if err := st.sink.WriteUint(0, l.width, l.order); err != nil {
		return err
	}
	if st.patcher == nil {
		st.needsUpdate = true
		return nil
	}
	// The size placeholder inside the span is patched by the size layer
	// on unwind, after this returns. The sum is deferred so it folds the
	// final bytes, not the placeholder.
	from := l.spanFrom(st.sizeAt, st.idAt)
	p := st.patcher
	st.fixups = append(st.fixups, func() error {
		span, err := p.Span(from, ckAt)
		if err != nil {
			return err
		}
		return p.PutUintAt(ckAt, l.calc.Sum(l.seed, span), l.width, l.order)
	})
	return nil
}

func (l *checksumLayer) update(st *updateState) error {
	ckAt := len(st.buf) - l.width
	if ckAt < st.off {
		return wire.ErrNotEnoughData
	}
	if err := l.next.update(st); err != nil {
		return err
	}
	from := l.spanFrom(st.sizeAt, st.idAt)
	l.order.PutUint(st.buf[ckAt:], l.calc.Sum(l.seed, st.buf[from:ckAt]))
	st.off = len(st.buf)
	return nil
}

func (l *checksumLayer) overhead() int { return l.width + l.next.overhead() }
