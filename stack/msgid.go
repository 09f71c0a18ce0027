package stack

import (
	"fmt"

	"github.com/danmuck/wirestack/message"
	"github.com/danmuck/wirestack/wire"
)

// msgIDLayer decodes the message identifier, resolves it against the
// registry, and allocates the concrete message the payload layer will
// decode into. On write it takes the id straight off the message being
// serialized; nothing is allocated.
type msgIDLayer struct {
	reg   *message.Registry
	width int
	order wire.ByteOrder
	next  Layer
}

func NewMsgID(reg *message.Registry, width int, o wire.ByteOrder, next Layer) Layer {
	return &msgIDLayer{reg: reg, width: width, order: o, next: next}
}

func (l *msgIDLayer) read(st *readState) error {
	if st.frameEnd >= 0 && st.frameEnd-st.r.Offset() < l.width {
		return fmt.Errorf("%w: frame too short for message id", ErrProtocol)
	}
	st.idAt = st.r.Offset()
	v, err := st.r.Uint(l.width, l.order)
	if err != nil {
		return err
	}
	id := message.ID(v)
	ctor, ok := l.reg.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrInvalidMsgID, id)
	}
	msg, release, err := st.s.allocate(id, ctor)
	if err != nil {
		return err
	}
	st.msg, st.release = msg, release
	if err := l.next.read(st); err != nil {
		// A failed frame never hands out a handle, so the in-place
		// slot must come back on this path.
		if st.release != nil {
			st.release()
		}
		st.msg, st.release = nil, nil
		return err
	}
	return nil
}

func (l *msgIDLayer) write(st *writeState) error {
	st.idAt = st.sink.Offset()
	if err := st.sink.WriteUint(uint64(st.msg.ID()), l.width, l.order); err != nil {
		return err
	}
	return l.next.write(st)
}

func (l *msgIDLayer) update(st *updateState) error {
	if len(st.buf)-st.off < l.width {
		return wire.ErrNotEnoughData
	}
	st.idAt = st.off
	st.off += l.width
	return l.next.update(st)
}

func (l *msgIDLayer) overhead() int { return l.width + l.next.overhead() }
