package stack

import (
	"bytes"
	"fmt"

	"github.com/danmuck/wirestack/wire"
)

// syncPrefix strips and verifies the constant synchronization marker at
// the physical front of every frame.
type syncPrefix struct {
	marker []byte
	next   Layer
}

// NewSyncPrefix builds the sync layer. The marker is copied.
func NewSyncPrefix(marker []byte, next Layer) Layer {
	return &syncPrefix{marker: bytes.Clone(marker), next: next}
}

func (l *syncPrefix) read(st *readState) error {
	b, err := st.r.Bytes(len(l.marker))
	if err != nil {
		return err
	}
	if !bytes.Equal(b, l.marker) {
		return fmt.Errorf("%w: sync marker % X, want % X", ErrProtocol, b, l.marker)
	}
	return l.next.read(st)
}

func (l *syncPrefix) write(st *writeState) error {
	if err := st.sink.Write(l.marker); err != nil {
		return err
	}
	return l.next.write(st)
}

func (l *syncPrefix) update(st *updateState) error {
	n := len(l.marker)
	if len(st.buf)-st.off < n {
		return wire.ErrNotEnoughData
	}
	if !bytes.Equal(st.buf[st.off:st.off+n], l.marker) {
		return fmt.Errorf("%w: update window does not start at a frame", ErrProtocol)
	}
	st.off += n
	return l.next.update(st)
}

func (l *syncPrefix) overhead() int { return len(l.marker) + l.next.overhead() }
