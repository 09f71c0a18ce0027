package stack

import (
	"github.com/danmuck/wirestack/message"
	"github.com/danmuck/wirestack/wire"
)

// Layer is one transport-metadata concern in the framing pipeline. A
// layer is stateless with respect to message data: it holds only its own
// field descriptor and the next inner layer. Implementations live in
// this package; the interface is sealed.
type Layer interface {
	read(st *readState) error
	write(st *writeState) error
	update(st *updateState) error

	// overhead is this layer's own field width plus everything inner,
	// payload excluded.
	overhead() int
}

// readState threads one Read pass through the layer chain. Offsets are
// absolute positions in the input buffer; -1 means not yet established.
type readState struct {
	s *Stack
	r *wire.Reader

	sizeAt     int // offset of the size field
	idAt       int // offset of the id field
	frameEnd   int // offset one past the frame (set by the size layer)
	payloadEnd int // frameEnd minus the trailing checksum field

	msg     message.Message
	release func()
}

// writeState threads one Write pass. Patching is only possible when the
// sink also has random access; otherwise layers write dummies and flag
// the deferred update pass.
type writeState struct {
	s       *Stack
	sink    wire.Sink
	patcher wire.Patcher // nil when sink is append-only
	msg     message.Message

	sizeAt int
	idAt   int

	needsUpdate bool
	fixups      []func() error
}

// updateState threads an Update pass over a completed frame window.
type updateState struct {
	buf []byte
	off int

	sizeAt int
	idAt   int
}

func (st *readState) payloadLimit() int {
	if st.payloadEnd >= 0 {
		return st.payloadEnd
	}
	if st.frameEnd >= 0 {
		return st.frameEnd
	}
	return st.r.Len()
}
