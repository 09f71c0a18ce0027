package wire

// Writer is a bounded random-access write cursor over a caller-supplied
// buffer. Every write is bounds-checked before any byte is touched, so a
// failed call leaves the buffer exactly as it was.
type Writer struct {
	buf []byte
	off int
}

func NewWriter(buf []byte) *Writer {
	return &Writer{buf: buf}
}

func (w *Writer) Offset() int { return w.off }

// Remaining is the writable space left.
func (w *Writer) Remaining() int { return len(w.buf) - w.off }

// Bytes returns the written prefix of the buffer.
func (w *Writer) Bytes() []byte { return w.buf[:w.off] }

func (w *Writer) Write(p []byte) error {
	if w.Remaining() < len(p) {
		return ErrBufferOverflow
	}
	copy(w.buf[w.off:], p)
	w.off += len(p)
	return nil
}

func (w *Writer) WriteUint(v uint64, width int, o ByteOrder) error {
	if width < 1 || width > MaxIntWidth {
		return ErrBadWidth
	}
	if w.Remaining() < width {
		return ErrBufferOverflow
	}
	o.PutUint(w.buf[w.off:w.off+width], v)
	w.off += width
	return nil
}

// PutUintAt overwrites width bytes at the absolute offset off without
// moving the append position. Only already-written space may be patched.
func (w *Writer) PutUintAt(off int, v uint64, width int, o ByteOrder) error {
	if width < 1 || width > MaxIntWidth {
		return ErrBadWidth
	}
	if off < 0 || off+width > w.off {
		return ErrBadOffset
	}
	o.PutUint(w.buf[off:off+width], v)
	return nil
}

// Span returns the written bytes between the absolute offsets from and to.
func (w *Writer) Span(from, to int) ([]byte, error) {
	if from < 0 || to < from || to > w.off {
		return nil, ErrBadOffset
	}
	return w.buf[from:to], nil
}

var _ Patcher = (*Writer)(nil)
var _ Sink = (*AppendSink)(nil)
