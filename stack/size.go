package stack

import (
	"fmt"

	"github.com/danmuck/wirestack/wire"
)

// sizeLayer reads and rewrites the remaining-length field. The value
// counts every byte after the field itself through the end of the frame,
// checksum included.
type sizeLayer struct {
	width int
	order wire.ByteOrder
	next  Layer
}

func NewSize(width int, o wire.ByteOrder, next Layer) Layer {
	return &sizeLayer{width: width, order: o, next: next}
}

func (l *sizeLayer) read(st *readState) error {
	st.sizeAt = st.r.Offset()
	v, err := st.r.Uint(l.width, l.order)
	if err != nil {
		return err
	}
	// The frame is complete only when the declared remainder is all here.
	if uint64(st.r.Remaining()) < v {
		return wire.ErrNotEnoughData
	}
	st.frameEnd = st.r.Offset() + int(v)
	return l.next.read(st)
}

func (l *sizeLayer) write(st *writeState) error {
	st.sizeAt = st.sink.Offset()
	if err := st.sink.WriteUint(0, l.width, l.order); err != nil {
		return err
	}
	if err := l.next.write(st); err != nil {
		return err
	}
	content := uint64(st.sink.Offset() - st.sizeAt - l.width)
	if content > wire.Mask(l.width) {
		return fmt.Errorf("%w: %d bytes in a %d-byte size field", ErrFrameTooLarge, content, l.width)
	}
	if st.patcher == nil {
		st.needsUpdate = true
		return nil
	}
	return st.patcher.PutUintAt(st.sizeAt, content, l.width, l.order)
}

func (l *sizeLayer) update(st *updateState) error {
	if len(st.buf)-st.off < l.width {
		return wire.ErrNotEnoughData
	}
	st.sizeAt = st.off
	content := uint64(len(st.buf) - st.off - l.width)
	if content > wire.Mask(l.width) {
		return fmt.Errorf("%w: %d bytes in a %d-byte size field", ErrFrameTooLarge, content, l.width)
	}
	l.order.PutUint(st.buf[st.off:st.off+l.width], content)
	st.off += l.width
	return l.next.update(st)
}

func (l *sizeLayer) overhead() int { return l.width + l.next.overhead() }
