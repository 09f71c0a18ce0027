package wire

// Sink is the minimal output capability fields and layers encode into.
// Writer (bounded, random access) and AppendSink (growable, append only)
// both satisfy it.
type Sink interface {
	// Write appends p. A bounded sink fails with ErrBufferOverflow
	// without writing anything when p does not fit.
	Write(p []byte) error
	// WriteUint appends a width-byte unsigned integer in the given order.
	WriteUint(v uint64, width int, o ByteOrder) error
	// Offset is the number of bytes written so far.
	Offset() int
}

// Patcher is the random-access capability layers need to rewrite a
// placeholder (length, checksum) after the bytes it depends on exist.
// A Sink that does not also satisfy Patcher forces the deferred-update
// write path.
type Patcher interface {
	Sink
	// PutUintAt overwrites width bytes at the absolute offset off.
	// It never moves the append position.
	PutUintAt(off int, v uint64, width int, o ByteOrder) error
	// Span returns the bytes between the absolute offsets from and to.
	Span(from, to int) ([]byte, error)
}

// AppendSink is an append-only Sink backed by a growable buffer. It has
// no random access, so a Stack writing through it reports
// ErrUpdateRequired and expects a later Update pass over Bytes().
type AppendSink struct {
	buf []byte
}

func NewAppendSink() *AppendSink { return &AppendSink{} }

func (s *AppendSink) Write(p []byte) error {
	s.buf = append(s.buf, p...)
	return nil
}

func (s *AppendSink) WriteUint(v uint64, width int, o ByteOrder) error {
	if width < 1 || width > MaxIntWidth {
		return ErrBadWidth
	}
	var scratch [MaxIntWidth]byte
	o.PutUint(scratch[:width], v)
	s.buf = append(s.buf, scratch[:width]...)
	return nil
}

func (s *AppendSink) Offset() int { return len(s.buf) }

// Bytes returns everything written so far. The slice aliases the sink's
// internal buffer.
func (s *AppendSink) Bytes() []byte { return s.buf }

// Reset discards everything written so far, keeping capacity.
func (s *AppendSink) Reset() { s.buf = s.buf[:0] }
