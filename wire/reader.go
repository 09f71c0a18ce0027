package wire

// Reader is a bounded random-access cursor over a caller-supplied buffer.
// It never copies and never grows; running past the end yields
// ErrNotEnoughData with the cursor unmoved.
type Reader struct {
	buf []byte
	off int
}

func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Offset is the number of bytes consumed so far.
func (r *Reader) Offset() int { return r.off }

// Len is the total size of the underlying buffer.
func (r *Reader) Len() int { return len(r.buf) }

// Remaining is the number of unconsumed bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.off }

// Bytes consumes and returns the next n bytes. The returned slice aliases
// the underlying buffer.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrBadOffset
	}
	if r.Remaining() < n {
		return nil, ErrNotEnoughData
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

// Uint consumes a width-byte unsigned integer in the given order.
func (r *Reader) Uint(width int, o ByteOrder) (uint64, error) {
	if width < 1 || width > MaxIntWidth {
		return 0, ErrBadWidth
	}
	b, err := r.Bytes(width)
	if err != nil {
		return 0, err
	}
	return o.Uint(b), nil
}

// Skip consumes n bytes without returning them.
func (r *Reader) Skip(n int) error {
	_, err := r.Bytes(n)
	return err
}

// At returns n bytes at the absolute offset off without moving the cursor.
// The checksum layer uses this to peek at a trailing field before the
// bytes in front of it have been consumed.
func (r *Reader) At(off, n int) ([]byte, error) {
	if off < 0 || n < 0 || off+n > len(r.buf) {
		return nil, ErrBadOffset
	}
	return r.buf[off : off+n], nil
}

// Span returns the bytes between the absolute offsets from and to.
func (r *Reader) Span(from, to int) ([]byte, error) {
	if from < 0 || to < from || to > len(r.buf) {
		return nil, ErrBadOffset
	}
	return r.buf[from:to], nil
}
